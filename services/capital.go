package services

import (
	"celustock-backend/models"
)

type ResumenCapital struct {
	EfectivoARS float64                        `json:"efectivoARS"`
	EfectivoUSD float64                        `json:"efectivoUSD"`
	Stock       map[models.TipoStock]Valuacion `json:"stock"`
	TotalARS    float64                        `json:"totalARS"`
	TotalUSD    float64                        `json:"totalUSD"`
}

// CalcularCapital merges the manual cash figures with the computed
// inventory valuations.
func CalcularCapital(c models.Capital, stock map[models.TipoStock]Valuacion, cotizacion float64) ResumenCapital {
	ars := dec(c.EfectivoARS).Add(dec(ConvertirUSDaARS(c.EfectivoUSD, cotizacion)))
	usd := dec(c.EfectivoUSD).Add(dec(ConvertirARSaUSD(c.EfectivoARS, cotizacion)))
	for _, v := range stock {
		ars = ars.Add(dec(v.TotalARS))
		usd = usd.Add(dec(v.TotalUSD))
	}
	return ResumenCapital{
		EfectivoARS: c.EfectivoARS,
		EfectivoUSD: c.EfectivoUSD,
		Stock:       stock,
		TotalARS:    flt(ars),
		TotalUSD:    flt(usd),
	}
}
