package services

import (
	"testing"

	"celustock-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestConversiones(t *testing.T) {
	assert.Equal(t, 125000.0, ConvertirUSDaARS(100, 1250))
	assert.Equal(t, 100.0, ConvertirARSaUSD(125000, 1250))
	assert.Equal(t, 0.0, ConvertirARSaUSD(1000, 0))
}

func TestMonedaDeVenta(t *testing.T) {
	conTel := []models.ProductoVendido{{Categoria: models.Accesorio}, {Categoria: models.Telefono}}
	sinTel := []models.ProductoVendido{{Categoria: models.Repuesto}}

	assert.Equal(t, models.USD, MonedaDeVenta(conTel))
	assert.Equal(t, models.ARS, MonedaDeVenta(sinTel))
}

func TestTotalVenta(t *testing.T) {
	productos := []models.ProductoVendido{
		{Categoria: models.Telefono, Cantidad: 1, PrecioUnitario: 300, Moneda: models.USD},
		{Categoria: models.Accesorio, Cantidad: 2, PrecioUnitario: 5000, Moneda: models.ARS},
	}

	assert.Equal(t, 310.0, TotalVenta(productos, 1000, models.USD))
	assert.Equal(t, 310000.0, TotalVenta(productos, 1000, models.ARS))

	ars, usd := Subtotales(productos, models.ARS)
	assert.Equal(t, 10000.0, ars)
	assert.Equal(t, 300.0, usd)

	sinMoneda := []models.ProductoVendido{{Cantidad: 3, PrecioUnitario: 0.1}}
	assert.Equal(t, 0.3, TotalVenta(sinMoneda, 0, models.ARS))
}

func TestCalcularCapital(t *testing.T) {
	stock := map[models.TipoStock]Valuacion{
		models.StockAccesorios: {TotalARS: 20000, TotalUSD: 20},
	}

	r := CalcularCapital(models.Capital{EfectivoARS: 10000, EfectivoUSD: 50}, stock, 1000)

	assert.Equal(t, 80000.0, r.TotalARS)
	assert.Equal(t, 80.0, r.TotalUSD)
}
