package models

func (v *Venta) SetID(id string)      { v.ID = id }
func (c *CajaDiaria) SetID(id string) { c.ID = id }
func (s *StockItem) SetID(id string)  { s.ID = id }
func (p *Pago) SetID(id string)       { p.ID = id }
func (c *Cliente) SetID(id string)    { c.ID = id }
func (t *Trabajo) SetID(id string)    { t.ID = id }
func (u *User) SetID(id string)       { u.ID = id }

// Singletons under configuracion carry a fixed id.
func (c *Configuracion) SetID(string) {}
func (c *Capital) SetID(string)       {}
