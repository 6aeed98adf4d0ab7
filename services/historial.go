package services

import (
	"math"
	"sort"

	"celustock-backend/models"

	"github.com/shopspring/decimal"
)

type TotalesMes struct {
	Ventas               float64 `json:"ventas"`
	Efectivo             float64 `json:"efectivo"`
	Transferencia        float64 `json:"transferencia"`
	CuentaCorriente      float64 `json:"cuentaCorriente"`
	DiferenciasPositivas float64 `json:"diferenciasPositivas"`
	// DiferenciasNegativas accumulates the magnitude of negative diferencias.
	DiferenciasNegativas float64 `json:"diferenciasNegativas"`
	PromedioVentas       float64 `json:"promedioVentas"`
}

type ResumenMensual struct {
	Mes            string                       `json:"mes"`
	DiasTrabajados int                          `json:"diasTrabajados"`
	Monedas        map[models.Moneda]TotalesMes `json:"monedas"`
}

type cierreMoneda struct {
	ventas, efectivo, transferencia, cuentaCorriente, diferencia float64
}

func porMoneda(c models.CajaDiaria) map[models.Moneda]cierreMoneda {
	return map[models.Moneda]cierreMoneda{
		models.ARS: {c.TotalVentas, c.Efectivo, c.Transferencia, c.CuentaCorriente, c.Diferencia},
		models.USD: {c.TotalVentasUSD, c.EfectivoUSD, c.TransferenciaUSD, c.CuentaCorrienteUSD, c.DiferenciaUSD},
	}
}

type mesAcumulado struct {
	dias                                          int
	ventas, efectivo, transferencia, cc, pos, neg map[models.Moneda]decimal.Decimal
}

func nuevoMes() *mesAcumulado {
	return &mesAcumulado{
		ventas:        map[models.Moneda]decimal.Decimal{},
		efectivo:      map[models.Moneda]decimal.Decimal{},
		transferencia: map[models.Moneda]decimal.Decimal{},
		cc:            map[models.Moneda]decimal.Decimal{},
		pos:           map[models.Moneda]decimal.Decimal{},
		neg:           map[models.Moneda]decimal.Decimal{},
	}
}

// Promedio is round(ventas / dias). A month without days averages 0.
func Promedio(ventas float64, dias int) float64 {
	if dias == 0 {
		return 0
	}
	return math.Round(ventas / float64(dias))
}

// AgruparPorMes groups closed registers by YYYY-MM, most recent month first.
func AgruparPorMes(cajas []models.CajaDiaria) []ResumenMensual {
	meses := map[string]*mesAcumulado{}
	for _, c := range cajas {
		clave := MesClave(c.Fecha)
		m, ok := meses[clave]
		if !ok {
			m = nuevoMes()
			meses[clave] = m
		}
		m.dias++
		for moneda, v := range porMoneda(c) {
			m.ventas[moneda] = m.ventas[moneda].Add(dec(v.ventas))
			m.efectivo[moneda] = m.efectivo[moneda].Add(dec(v.efectivo))
			m.transferencia[moneda] = m.transferencia[moneda].Add(dec(v.transferencia))
			m.cc[moneda] = m.cc[moneda].Add(dec(v.cuentaCorriente))
			d := dec(v.diferencia)
			if d.IsPositive() {
				m.pos[moneda] = m.pos[moneda].Add(d)
			} else if d.IsNegative() {
				m.neg[moneda] = m.neg[moneda].Add(d.Abs())
			}
		}
	}

	out := make([]ResumenMensual, 0, len(meses))
	for clave, m := range meses {
		r := ResumenMensual{Mes: clave, DiasTrabajados: m.dias, Monedas: map[models.Moneda]TotalesMes{}}
		for _, moneda := range []models.Moneda{models.ARS, models.USD} {
			ventas := flt(m.ventas[moneda])
			r.Monedas[moneda] = TotalesMes{
				Ventas:               ventas,
				Efectivo:             flt(m.efectivo[moneda]),
				Transferencia:        flt(m.transferencia[moneda]),
				CuentaCorriente:      flt(m.cc[moneda]),
				DiferenciasPositivas: flt(m.pos[moneda]),
				DiferenciasNegativas: flt(m.neg[moneda]),
				PromedioVentas:       Promedio(ventas, m.dias),
			}
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mes > out[j].Mes })
	return out
}
