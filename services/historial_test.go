package services

import (
	"testing"

	"celustock-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgruparPorMes(t *testing.T) {
	cajas := []models.CajaDiaria{
		{Fecha: "2024-02-10", TotalVentas: 800},
		{Fecha: "2024-03-01", TotalVentas: 1000, Diferencia: 100, TotalVentasUSD: 50, DiferenciaUSD: -5},
		{Fecha: "2024-03-02", TotalVentas: 2000, Diferencia: -30},
	}

	meses := AgruparPorMes(cajas)

	require.Len(t, meses, 2)
	assert.Equal(t, "2024-03", meses[0].Mes)
	assert.Equal(t, "2024-02", meses[1].Mes)

	marzo := meses[0].Monedas[models.ARS]
	assert.Equal(t, 2, meses[0].DiasTrabajados)
	assert.Equal(t, 3000.0, marzo.Ventas)
	assert.Equal(t, 100.0, marzo.DiferenciasPositivas)
	assert.Equal(t, 30.0, marzo.DiferenciasNegativas)
	assert.Equal(t, 1500.0, marzo.PromedioVentas)

	usd := meses[0].Monedas[models.USD]
	assert.Equal(t, 5.0, usd.DiferenciasNegativas)
	assert.Equal(t, 25.0, usd.PromedioVentas)
}

func TestAgruparPorMesDiferenciasNetas(t *testing.T) {
	cajas := []models.CajaDiaria{
		{Fecha: "2024-05-01", Diferencia: 12.5},
		{Fecha: "2024-05-02", Diferencia: -7.25},
		{Fecha: "2024-05-03", Diferencia: 0},
		{Fecha: "2024-05-04", Diferencia: -0.1},
	}

	mes := AgruparPorMes(cajas)[0].Monedas[models.ARS]

	neto := dec(mes.DiferenciasPositivas).Sub(dec(mes.DiferenciasNegativas))
	assert.True(t, neto.Equal(dec(12.5).Add(dec(-7.25)).Add(dec(-0.1))), neto.String())
}

func TestPromedio(t *testing.T) {
	assert.Equal(t, 0.0, Promedio(1000, 0))
	assert.Equal(t, 3.0, Promedio(10, 3))
	assert.Equal(t, 3.0, Promedio(5, 2))
}

func TestAgruparPorMesVacio(t *testing.T) {
	assert.Empty(t, AgruparPorMes(nil))
}
