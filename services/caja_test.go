package services

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"celustock-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumirCajaEjemplo(t *testing.T) {
	ventas := []models.Venta{
		{Moneda: models.ARS, Total: 1000, Estado: models.Pagado, MetodoPago: "efectivo"},
		{Moneda: models.ARS, Total: 500, Estado: models.Pendiente},
	}

	r := ResumirCaja(ventas)

	assert.Equal(t, ResumenMoneda{TotalVentas: 1500, Efectivo: 1000, Transferencia: 0, CuentaCorriente: 500}, r[models.ARS])
	assert.Equal(t, ResumenMoneda{}, r[models.USD])
}

func TestResumirCajaMetodos(t *testing.T) {
	ventas := []models.Venta{
		{Moneda: models.ARS, Total: 100, Estado: models.Pagado, MetodoPago: "EFECTIVO"},
		{Moneda: models.ARS, Total: 200, Estado: models.Pagado, MetodoPago: "Efectivo y débito"},
		{Moneda: models.ARS, Total: 300, Estado: models.Pagado, MetodoPago: "Transferencia"},
		{Moneda: models.ARS, Total: 400, Estado: models.Pagado, MetodoPago: "Mercado Pago"},
		{Moneda: models.USD, Total: 50, Estado: models.Pagado, MetodoPago: "efectivo"},
		{Moneda: models.USD, Total: 70, Estado: "", MetodoPago: "efectivo"},
	}

	r := ResumirCaja(ventas)

	assert.Equal(t, 300.0, r[models.ARS].Efectivo)
	assert.Equal(t, 700.0, r[models.ARS].Transferencia)
	assert.Equal(t, 50.0, r[models.USD].Efectivo)
	assert.Equal(t, 70.0, r[models.USD].CuentaCorriente)
}

func TestResumirCajaDual(t *testing.T) {
	ventas := []models.Venta{
		{Moneda: models.DUAL, Total: 150500, TotalARS: 500, TotalUSD: 150, Estado: models.Pagado, MetodoPago: "efectivo"},
	}

	r := ResumirCaja(ventas)

	assert.Equal(t, 500.0, r[models.ARS].TotalVentas)
	assert.Equal(t, 150.0, r[models.USD].TotalVentas)
	assert.Equal(t, 150.0, r[models.USD].Efectivo)
}

func TestResumirCajaBucketsSumToTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	metodos := []string{"efectivo", "Transferencia", "tarjeta", "EFECTIVO"}
	estados := []models.EstadoVenta{models.Pagado, models.Pendiente}
	monedas := []models.Moneda{models.ARS, models.USD}

	for i := 0; i < 50; i++ {
		var ventas []models.Venta
		for j := 0; j < rng.Intn(30); j++ {
			ventas = append(ventas, models.Venta{
				Moneda:     monedas[rng.Intn(2)],
				Total:      float64(rng.Intn(100000)) / 100,
				Estado:     estados[rng.Intn(2)],
				MetodoPago: metodos[rng.Intn(len(metodos))],
			})
		}
		for moneda, r := range ResumirCaja(ventas) {
			suma := dec(r.Efectivo).Add(dec(r.Transferencia)).Add(dec(r.CuentaCorriente))
			assert.True(t, suma.Equal(dec(r.TotalVentas)), "moneda %s: %v != %v", moneda, suma, r.TotalVentas)
		}
	}
}

func TestVentasDelDia(t *testing.T) {
	ventas := []models.Venta{
		{ID: "a", Fecha: "5/3/2024"},
		{ID: "b", Fecha: "05/03/2024"},
		{ID: "c", Fecha: "15/3/2024"},
	}

	got, err := VentasDelDia(ventas, "2024-03-05")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	_, err = VentasDelDia(ventas, "05/03/2024")
	assert.Error(t, err)
}

func TestDiferencia(t *testing.T) {
	d := Diferencia(1234.56, 1234.56)
	assert.Equal(t, 0.0, d)
	assert.False(t, math.Signbit(d))

	assert.Equal(t, 0.2, Diferencia(0.3, 0.1))
	assert.Equal(t, -50.0, Diferencia(950, 1000))
}

func TestCerrarCaja(t *testing.T) {
	resumen := ResumenCaja{
		models.ARS: {TotalVentas: 1500, Efectivo: 1000, CuentaCorriente: 500},
		models.USD: {TotalVentas: 200, Efectivo: 200},
	}
	now := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)

	c := CerrarCaja("2024-03-05", resumen, ConteoCaja{EfectivoEnCaja: 1100, EfectivoEnCajaUSD: 200}, "u1", now)

	assert.Equal(t, "2024-03-05", c.ID)
	assert.Equal(t, 1500.0, c.TotalVentas)
	assert.Equal(t, 100.0, c.Diferencia)
	assert.Equal(t, 0.0, c.DiferenciaUSD)
	assert.Equal(t, 500.0, c.CuentaCorriente)
	assert.Equal(t, now.UnixMilli(), c.Timestamp)
}
