package services

import (
	"celustock-backend/models"

	"github.com/shopspring/decimal"
)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func flt(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func ConvertirUSDaARS(usd, cotizacion float64) float64 {
	return flt(dec(usd).Mul(dec(cotizacion)))
}

// ConvertirARSaUSD returns 0 when no rate is configured.
func ConvertirARSaUSD(ars, cotizacion float64) float64 {
	if cotizacion <= 0 {
		return 0
	}
	return flt(dec(ars).Div(dec(cotizacion)).Round(2))
}

func TieneTelefono(productos []models.ProductoVendido) bool {
	for _, p := range productos {
		if p.Categoria == models.Telefono {
			return true
		}
	}
	return false
}

// MonedaDeVenta applies the shop rule: sales with a phone are tracked in
// USD, everything else in ARS.
func MonedaDeVenta(productos []models.ProductoVendido) models.Moneda {
	if TieneTelefono(productos) {
		return models.USD
	}
	return models.ARS
}

// Subtotales sums line items by their own currency. Lines without a
// currency count in fallback.
func Subtotales(productos []models.ProductoVendido, fallback models.Moneda) (ars, usd float64) {
	a, u := decimal.Zero, decimal.Zero
	for _, p := range productos {
		line := dec(p.PrecioUnitario).Mul(decimal.NewFromInt(int64(p.Cantidad)))
		moneda := p.Moneda
		if moneda == "" {
			moneda = fallback
		}
		if moneda == models.USD {
			u = u.Add(line)
		} else {
			a = a.Add(line)
		}
	}
	return flt(a), flt(u)
}

// TotalVenta is Σ precioUnitario×cantidad expressed in moneda, converting
// lines priced in the other currency with cotizacion.
func TotalVenta(productos []models.ProductoVendido, cotizacion float64, moneda models.Moneda) float64 {
	ars, usd := Subtotales(productos, moneda)
	switch moneda {
	case models.USD:
		return flt(dec(usd).Add(dec(ConvertirARSaUSD(ars, cotizacion))))
	default:
		return flt(dec(ars).Add(dec(ConvertirUSDaARS(usd, cotizacion))))
	}
}
