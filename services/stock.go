package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"celustock-backend/database"
	"celustock-backend/models"

	"github.com/shopspring/decimal"
)

// Descontar never goes below zero.
func Descontar(cantidad, vendido int) int {
	if vendido < 0 {
		vendido = 0
	}
	if r := cantidad - vendido; r > 0 {
		return r
	}
	return 0
}

// Reponer has no upper bound; stockIdeal is not a ceiling.
func Reponer(cantidad, devuelto int) int {
	if devuelto < 0 {
		return cantidad
	}
	return cantidad + devuelto
}

var coleccionesStock = map[models.TipoStock]string{
	models.StockAccesorios: database.StockAccesorios,
	models.StockRepuestos:  database.StockExtra,
	models.StockTelefonos:  database.StockTelefonos,
}

var prefijosStock = map[models.TipoStock]string{
	models.StockAccesorios: "ACC",
	models.StockRepuestos:  "REP",
	models.StockTelefonos:  "TEL",
}

func ColeccionStock(tipo models.TipoStock) (string, bool) {
	c, ok := coleccionesStock[tipo]
	return c, ok
}

func PrefijoCodigo(tipo models.TipoStock) string {
	return prefijosStock[tipo]
}

// TipoPorCategoria maps a sale line category to the stock it is taken from.
func TipoPorCategoria(c models.Categoria) (models.TipoStock, bool) {
	switch c {
	case models.Accesorio:
		return models.StockAccesorios, true
	case models.Repuesto:
		return models.StockRepuestos, true
	case models.Telefono:
		return models.StockTelefonos, true
	}
	return "", false
}

// SiguienteCodigo returns prefix + max(existing)+1, zero padded to three
// digits: ACC001, ACC002, ...
func SiguienteCodigo(prefijo string, existentes []string) string {
	ultimo := 0
	for _, c := range existentes {
		if !strings.HasPrefix(c, prefijo) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(c, prefijo))
		if err == nil && n > ultimo {
			ultimo = n
		}
	}
	return fmt.Sprintf("%s%03d", prefijo, ultimo+1)
}

// AjustarStock applies delta to the item with codigo in the given stock
// collection: negative deltas are sales, positive ones are returns. It is a
// plain get → compute → set with no locking.
func AjustarStock(ctx context.Context, store database.Store, ref database.Ref, codigo string, delta int) (int, error) {
	items, err := database.ListAs[models.StockItem](ctx, store, ref, database.Filter{Field: "codigo", Value: codigo})
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, fmt.Errorf("%s en %s: %w", codigo, ref.Collection, database.ErrNotFound)
	}
	item := items[0]

	nueva := Reponer(item.Cantidad, delta)
	if delta < 0 {
		nueva = Descontar(item.Cantidad, -delta)
	}
	if err := store.Update(ctx, ref, item.ID, map[string]interface{}{"cantidad": nueva}); err != nil {
		return 0, err
	}
	return nueva, nil
}

type Valuacion struct {
	Items    int     `json:"items"`
	Unidades int     `json:"unidades"`
	CostoARS float64 `json:"costoARS"`
	CostoUSD float64 `json:"costoUSD"`
	// TotalARS and TotalUSD are the whole valuation converted to one currency.
	TotalARS float64 `json:"totalARS"`
	TotalUSD float64 `json:"totalUSD"`
}

// Valuar sums precioCosto × cantidad by each item's currency.
func Valuar(items []models.StockItem, cotizacion float64) Valuacion {
	ars, usd := decimal.Zero, decimal.Zero
	v := Valuacion{Items: len(items)}
	for _, it := range items {
		v.Unidades += it.Cantidad
		costo := dec(it.PrecioCosto).Mul(decimal.NewFromInt(int64(it.Cantidad)))
		if it.Moneda == models.USD {
			usd = usd.Add(costo)
		} else {
			ars = ars.Add(costo)
		}
	}
	v.CostoARS = flt(ars)
	v.CostoUSD = flt(usd)
	v.TotalARS = flt(ars.Add(dec(ConvertirUSDaARS(v.CostoUSD, cotizacion))))
	v.TotalUSD = flt(usd.Add(dec(ConvertirARSaUSD(v.CostoARS, cotizacion))))
	return v
}

type Reposicion struct {
	Codigo      string        `json:"codigo"`
	Producto    string        `json:"producto"`
	Marca       string        `json:"marca"`
	Modelo      string        `json:"modelo"`
	Proveedor   string        `json:"proveedor"`
	Cantidad    int           `json:"cantidad"`
	StockIdeal  int           `json:"stockIdeal"`
	Sugerido    int           `json:"sugerido"`
	Bajo        bool          `json:"bajo"`
	PrecioCosto float64       `json:"precioCosto"`
	Moneda      models.Moneda `json:"moneda"`
}

// SugerenciasReposicion lists items under their ideal stock, largest
// shortfall first.
func SugerenciasReposicion(items []models.StockItem) []Reposicion {
	out := make([]Reposicion, 0)
	for _, it := range items {
		if it.Cantidad >= it.StockIdeal {
			continue
		}
		out = append(out, Reposicion{
			Codigo:      it.Codigo,
			Producto:    it.Producto,
			Marca:       it.Marca,
			Modelo:      it.Modelo,
			Proveedor:   it.Proveedor,
			Cantidad:    it.Cantidad,
			StockIdeal:  it.StockIdeal,
			Sugerido:    it.StockIdeal - it.Cantidad,
			Bajo:        it.Cantidad <= it.StockBajo,
			PrecioCosto: it.PrecioCosto,
			Moneda:      it.Moneda,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sugerido != out[j].Sugerido {
			return out[i].Sugerido > out[j].Sugerido
		}
		return out[i].Codigo < out[j].Codigo
	})
	return out
}
