package handlers

import (
	"net/http"
	"testing"

	"celustock-backend/database"
	"celustock-backend/models"
	"celustock-backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStockAsignaCodigo(t *testing.T) {
	setup(t)
	r := testRouter(models.RolVendedor)

	var item models.StockItem
	for i, want := range []string{"ACC001", "ACC002"} {
		w := do(t, r, http.MethodPost, "/api/stock/accesorios", map[string]interface{}{
			"producto":    "Templado",
			"precioCosto": 100,
			"cantidad":    i + 1,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		decode(t, w, &item)
		assert.Equal(t, want, item.Codigo)
		assert.Equal(t, models.Accesorio, item.Categoria)
		assert.Equal(t, models.ARS, item.Moneda)
	}

	w := do(t, r, http.MethodPost, "/api/stock/telefonos", map[string]interface{}{"producto": "Moto G", "imei": "123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &item)
	assert.Equal(t, "TEL001", item.Codigo)
	assert.Equal(t, models.USD, item.Moneda)

	w = do(t, r, http.MethodPost, "/api/stock/repuestos", map[string]interface{}{"producto": "Pin de carga"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &item)
	assert.Equal(t, "REP001", item.Codigo)

	var items []models.StockItem
	decode(t, do(t, r, http.MethodGet, "/api/stock/accesorios", nil), &items)
	require.Len(t, items, 2)
	assert.Equal(t, "ACC001", items[0].Codigo)
}

func TestStockTipoInvalido(t *testing.T) {
	setup(t)
	r := testRouter(models.RolVendedor)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/stock/tablets", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/stock/tablets", map[string]interface{}{"producto": "x"}).Code)
}

func TestUpdateYDeleteStock(t *testing.T) {
	store := setup(t)
	r := testRouter(models.RolVendedor)
	item := seedStock(t, store, database.StockAccesorios, models.StockItem{Codigo: "ACC001", Producto: "Funda", Cantidad: 2})

	w := do(t, r, http.MethodPut, "/api/stock/accesorios/"+item.ID, map[string]interface{}{"cantidad": 8, "precio1": 1500})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var actualizado models.StockItem
	decode(t, w, &actualizado)
	assert.Equal(t, 8, actualizado.Cantidad)
	assert.Equal(t, 1500.0, actualizado.Precio1)
	assert.Equal(t, "Funda", actualizado.Producto)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/stock/accesorios/"+item.ID, map[string]interface{}{"cantidad": -1}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPut, "/api/stock/accesorios/"+item.ID, map[string]interface{}{}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPut, "/api/stock/accesorios/otro", map[string]interface{}{"cantidad": 1}).Code)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/api/stock/accesorios/"+item.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/api/stock/accesorios/"+item.ID, nil).Code)
}

func TestValuacionYReposicion(t *testing.T) {
	store := setup(t)
	r := testRouter(models.RolVendedor)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPut, "/api/configuracion", map[string]interface{}{"cotizacion": 1000}).Code)
	seedStock(t, store, database.StockTelefonos, models.StockItem{Codigo: "TEL001", PrecioCosto: 200, Cantidad: 2, Moneda: models.USD, StockIdeal: 3})
	seedStock(t, store, database.StockTelefonos, models.StockItem{Codigo: "TEL002", PrecioCosto: 50000, Cantidad: 1, Moneda: models.ARS, StockIdeal: 1})

	var v services.Valuacion
	decode(t, do(t, r, http.MethodGet, "/api/stock/telefonos/valuacion", nil), &v)
	assert.Equal(t, 2, v.Items)
	assert.Equal(t, 3, v.Unidades)
	assert.Equal(t, 400.0, v.CostoUSD)
	assert.Equal(t, 50000.0, v.CostoARS)
	assert.Equal(t, 450000.0, v.TotalARS)
	assert.Equal(t, 450.0, v.TotalUSD)

	w := do(t, r, http.MethodGet, "/api/stock/telefonos/reposicion.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "reposicion-telefonos.xlsx")
	assert.Equal(t, "PK", string(w.Body.Bytes()[:2]))
}
