package services

import (
	"strings"
	"time"

	"celustock-backend/models"

	"github.com/shopspring/decimal"
)

type ResumenMoneda struct {
	TotalVentas     float64 `json:"totalVentas"`
	Efectivo        float64 `json:"efectivo"`
	Transferencia   float64 `json:"transferencia"`
	CuentaCorriente float64 `json:"cuentaCorriente"`
}

// ResumenCaja holds one summary per currency. ARS and USD are always present.
type ResumenCaja map[models.Moneda]ResumenMoneda

type ConteoCaja struct {
	EfectivoEnCaja    float64 `json:"efectivoEnCaja" binding:"gte=0"`
	EfectivoEnCajaUSD float64 `json:"efectivoEnCajaUSD" binding:"gte=0"`
}

// VentasDelDia keeps the sales whose stored fecha equals the D/M/YYYY form
// of fechaISO. The comparison is plain string equality.
func VentasDelDia(ventas []models.Venta, fechaISO string) ([]models.Venta, error) {
	fecha, err := FechaVenta(fechaISO)
	if err != nil {
		return nil, err
	}
	out := make([]models.Venta, 0)
	for _, v := range ventas {
		if v.Fecha == fecha {
			out = append(out, v)
		}
	}
	return out, nil
}

func EsEfectivo(metodoPago string) bool {
	return strings.Contains(strings.ToLower(metodoPago), "efectivo")
}

type acumulado struct {
	total, efectivo, transferencia, cuentaCorriente decimal.Decimal
}

func (a *acumulado) sumar(v models.Venta, monto float64) {
	m := dec(monto)
	a.total = a.total.Add(m)
	switch {
	case v.Estado != models.Pagado:
		a.cuentaCorriente = a.cuentaCorriente.Add(m)
	case EsEfectivo(v.MetodoPago):
		a.efectivo = a.efectivo.Add(m)
	default:
		a.transferencia = a.transferencia.Add(m)
	}
}

// ResumirCaja partitions sales by currency and folds every partition into
// totals by payment bucket. DUAL sales add totalARS to ARS and totalUSD to
// USD.
func ResumirCaja(ventas []models.Venta) ResumenCaja {
	acc := map[models.Moneda]*acumulado{
		models.ARS: {},
		models.USD: {},
	}
	for _, v := range ventas {
		switch v.Moneda {
		case models.DUAL:
			acc[models.ARS].sumar(v, v.TotalARS)
			acc[models.USD].sumar(v, v.TotalUSD)
		case models.USD:
			acc[models.USD].sumar(v, v.Total)
		default:
			acc[models.ARS].sumar(v, v.Total)
		}
	}

	out := make(ResumenCaja, len(acc))
	for moneda, a := range acc {
		out[moneda] = ResumenMoneda{
			TotalVentas:     flt(a.total),
			Efectivo:        flt(a.efectivo),
			Transferencia:   flt(a.transferencia),
			CuentaCorriente: flt(a.cuentaCorriente),
		}
	}
	return out
}

// Diferencia is efectivoEnCaja − efectivo. Equal inputs give exactly 0.
func Diferencia(efectivoEnCaja, efectivo float64) float64 {
	d := dec(efectivoEnCaja).Sub(dec(efectivo))
	if d.IsZero() {
		return 0
	}
	return flt(d)
}

// CerrarCaja builds the immutable register record for fechaISO.
func CerrarCaja(fechaISO string, resumen ResumenCaja, conteo ConteoCaja, usuario string, now time.Time) models.CajaDiaria {
	ars := resumen[models.ARS]
	usd := resumen[models.USD]
	return models.CajaDiaria{
		ID:                 fechaISO,
		Fecha:              fechaISO,
		TotalVentas:        ars.TotalVentas,
		Efectivo:           ars.Efectivo,
		Transferencia:      ars.Transferencia,
		CuentaCorriente:    ars.CuentaCorriente,
		EfectivoEnCaja:     conteo.EfectivoEnCaja,
		Diferencia:         Diferencia(conteo.EfectivoEnCaja, ars.Efectivo),
		TotalVentasUSD:     usd.TotalVentas,
		EfectivoUSD:        usd.Efectivo,
		TransferenciaUSD:   usd.Transferencia,
		CuentaCorrienteUSD: usd.CuentaCorriente,
		EfectivoEnCajaUSD:  conteo.EfectivoEnCajaUSD,
		DiferenciaUSD:      Diferencia(conteo.EfectivoEnCajaUSD, usd.Efectivo),
		CerradaPor:         usuario,
		Timestamp:          now.UnixMilli(),
	}
}
