package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"celustock-backend/models"

	"github.com/shopspring/decimal"
)

type TipoMovimiento string

const (
	Debe  TipoMovimiento = "debe"
	Haber TipoMovimiento = "haber"
)

// Movimiento is one line of a client statement.
type Movimiento struct {
	Fecha      time.Time      `json:"-"`
	FechaTexto string         `json:"fecha"`
	Origen     string         `json:"origen"`
	Referencia string         `json:"referencia"`
	Concepto   string         `json:"concepto"`
	Tipo       TipoMovimiento `json:"tipo"`
	Moneda     models.Moneda  `json:"moneda"`
	Monto      float64        `json:"monto"`
	SaldoARS   float64        `json:"saldoARS"`
	SaldoUSD   float64        `json:"saldoUSD"`
}

type EstadoCuenta struct {
	Movimientos []Movimiento `json:"movimientos"`
	SaldoARS    float64      `json:"saldoARS"`
	SaldoUSD    float64      `json:"saldoUSD"`
	// Historico is true when no zero balance point exists and the whole
	// history is shown.
	Historico bool `json:"historico"`
}

const tolerancia = 0.01

func monedaOARS(m models.Moneda) models.Moneda {
	if m == models.USD {
		return models.USD
	}
	return models.ARS
}

func conceptoVenta(v models.Venta) string {
	if len(v.Productos) == 0 {
		return fmt.Sprintf("Venta #%d", v.NroVenta)
	}
	p := v.Productos[0]
	nombre := p.Producto
	if nombre == "" {
		nombre = p.Descripcion
	}
	if len(v.Productos) > 1 {
		return fmt.Sprintf("Venta #%d: %s y %d más", v.NroVenta, nombre, len(v.Productos)-1)
	}
	return fmt.Sprintf("Venta #%d: %s", v.NroVenta, nombre)
}

// ConstruirMovimientos merges jobs and sales (debt) with payments (credit).
// DUAL sales are split into one ARS and one USD entry from their stored
// sub-totals. Records with an unreadable fecha are left out; the returned
// error joins one error per omitted record and the movements are still
// usable.
func ConstruirMovimientos(trabajos []models.Trabajo, ventas []models.Venta, pagos []models.Pago) ([]Movimiento, error) {
	var (
		movs     []Movimiento
		omitidos []error
	)

	for _, t := range trabajos {
		fecha, err := ParseFecha(t.Fecha)
		if err != nil {
			omitidos = append(omitidos, fmt.Errorf("trabajo %s: %w", t.ID, err))
			continue
		}
		movs = append(movs, Movimiento{
			Fecha:      fecha,
			FechaTexto: FormatoFecha(fecha),
			Origen:     "trabajo",
			Referencia: t.ID,
			Concepto:   fmt.Sprintf("Trabajo: %s %s", t.Trabajo, t.Modelo),
			Tipo:       Debe,
			Moneda:     monedaOARS(t.Moneda),
			Monto:      t.Precio,
		})
	}

	for _, v := range ventas {
		fecha, err := ParseFecha(v.Fecha)
		if err != nil {
			omitidos = append(omitidos, fmt.Errorf("venta %s: %w", v.ID, err))
			continue
		}
		base := Movimiento{
			Fecha:      fecha,
			FechaTexto: FormatoFecha(fecha),
			Origen:     "venta",
			Referencia: v.ID,
			Concepto:   conceptoVenta(v),
			Tipo:       Debe,
		}
		if v.Moneda == models.DUAL {
			if v.TotalARS != 0 {
				m := base
				m.Moneda, m.Monto = models.ARS, v.TotalARS
				movs = append(movs, m)
			}
			if v.TotalUSD != 0 {
				m := base
				m.Moneda, m.Monto = models.USD, v.TotalUSD
				movs = append(movs, m)
			}
			continue
		}
		base.Moneda, base.Monto = monedaOARS(v.Moneda), v.Total
		movs = append(movs, base)
	}

	for _, p := range pagos {
		fecha, err := ParseFecha(p.Fecha)
		if err != nil {
			omitidos = append(omitidos, fmt.Errorf("pago %s: %w", p.ID, err))
			continue
		}
		concepto := "Pago"
		if p.Forma != "" {
			concepto = "Pago en " + p.Forma
		}
		movs = append(movs, Movimiento{
			Fecha:      fecha,
			FechaTexto: FormatoFecha(fecha),
			Origen:     "pago",
			Referencia: p.ID,
			Concepto:   concepto,
			Tipo:       Haber,
			Moneda:     monedaOARS(p.Moneda),
			Monto:      p.Monto,
		})
	}

	// Same-day debts come before same-day payments.
	sort.SliceStable(movs, func(i, j int) bool { return movs[i].Fecha.Before(movs[j].Fecha) })
	return movs, errors.Join(omitidos...)
}

func acumular(movs []Movimiento) []Movimiento {
	out := make([]Movimiento, len(movs))
	saldos := map[models.Moneda]decimal.Decimal{models.ARS: decimal.Zero, models.USD: decimal.Zero}
	for i, m := range movs {
		monto := dec(m.Monto)
		if m.Tipo == Haber {
			monto = monto.Neg()
		}
		saldos[m.Moneda] = saldos[m.Moneda].Add(monto)
		m.SaldoARS = flt(saldos[models.ARS])
		m.SaldoUSD = flt(saldos[models.USD])
		out[i] = m
	}
	return out
}

func enCero(m Movimiento) bool {
	return abs(m.SaldoARS) < tolerancia && abs(m.SaldoUSD) < tolerancia
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// EstadoDeCuenta returns the statement since the last point where both the
// ARS and USD balances were zero. movs must be in ascending date order, as
// returned by ConstruirMovimientos.
func EstadoDeCuenta(movs []Movimiento) EstadoCuenta {
	conSaldo := acumular(movs)

	corte := -1
	for i := len(conSaldo) - 1; i >= 0; i-- {
		if enCero(conSaldo[i]) {
			corte = i
			break
		}
	}

	activos := acumular(movs[corte+1:])
	estado := EstadoCuenta{Movimientos: activos, Historico: corte == -1}
	if n := len(activos); n > 0 {
		estado.SaldoARS = activos[n-1].SaldoARS
		estado.SaldoUSD = activos[n-1].SaldoUSD
	}
	return estado
}
