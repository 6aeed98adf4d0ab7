package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"celustock-backend/database"
	"celustock-backend/middleware"
	"celustock-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testNegocio = "negocio-test"

func init() {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidations(); err != nil {
		panic(err)
	}
}

// setup points the handlers at a fresh in-memory store and freezes the
// clock at 2024-03-05 12:00 ART.
func setup(t *testing.T) *database.MemoryStore {
	t.Helper()
	store := database.NewMemoryStore()
	database.DB = store
	middleware.LoadSecret("test-secret", false)

	prev := now
	now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, zonaHoraria) }
	t.Cleanup(func() { now = prev })
	return store
}

// sesion stands in for AuthMiddleware.
func sesion(rol models.Rol) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-test")
		c.Set(middleware.NegocioIDKey, testNegocio)
		c.Set(middleware.RolKey, string(rol))
		c.Next()
	}
}

func testRouter(rol models.Rol) *gin.Engine {
	r := gin.New()
	r.POST("/login", LoginHandler)
	r.POST("/admin/create-user", AdminCreateUserHandler)

	api := r.Group("/api", sesion(rol))
	api.POST("/usuarios", middleware.RequireAdmin(), CreateUsuarioHandler)
	api.POST("/ventas", CreateVentaHandler)
	api.GET("/ventas", GetVentasHandler)
	api.GET("/ventas/:id", GetVentaHandler)
	api.PUT("/ventas/:id", UpdateVentaHandler)
	api.DELETE("/ventas/:id", DeleteVentaHandler)
	api.GET("/ventas/:id/remito.pdf", RemitoHandler)
	api.GET("/caja", GetCajaHandler)
	api.POST("/caja/cerrar", CerrarCajaHandler)
	api.GET("/caja/historial", GetHistorialCajasHandler)
	api.GET("/caja/mensual", GetResumenMensualHandler)
	api.DELETE("/caja/:fecha", middleware.RequireAdmin(), DeleteCajaHandler)
	api.GET("/stock/:tipo", GetStockHandler)
	api.POST("/stock/:tipo", CreateStockHandler)
	api.PUT("/stock/:tipo/:id", UpdateStockHandler)
	api.DELETE("/stock/:tipo/:id", DeleteStockHandler)
	api.GET("/stock/:tipo/valuacion", GetValuacionHandler)
	api.GET("/stock/:tipo/reposicion.xlsx", GetReposicionHandler)
	api.POST("/clientes", CreateClienteHandler)
	api.GET("/clientes", GetClientesHandler)
	api.GET("/clientes/:id", GetClienteHandler)
	api.PUT("/clientes/:id", UpdateClienteHandler)
	api.DELETE("/clientes/:id", DeleteClienteHandler)
	api.GET("/clientes/:id/cuenta", GetCuentaClienteHandler)
	api.GET("/clientes/:id/cuenta.pdf", GetCuentaClientePDFHandler)
	api.POST("/pagos", CreatePagoHandler)
	api.GET("/pagos", GetPagosHandler)
	api.DELETE("/pagos/:id", DeletePagoHandler)
	api.POST("/trabajos", CreateTrabajoHandler)
	api.GET("/trabajos", GetTrabajosHandler)
	api.PUT("/trabajos/:id", UpdateTrabajoHandler)
	api.GET("/configuracion", GetConfiguracionHandler)
	api.PUT("/configuracion", UpdateConfiguracionHandler)
	api.GET("/capital", GetCapitalHandler)
	api.PUT("/capital", UpdateCapitalHandler)
	api.GET("/cotizacion/sugerida", GetCotizacionSugeridaHandler)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func seedStock(t *testing.T, store database.Store, coleccion string, item models.StockItem) models.StockItem {
	t.Helper()
	if item.ID == "" {
		item.ID = newID()
	}
	require.NoError(t, store.Set(context.Background(), database.Negocio(testNegocio, coleccion), item.ID, item))
	return item
}

func stockItem(t *testing.T, store database.Store, coleccion, id string) models.StockItem {
	t.Helper()
	item, err := database.GetAs[models.StockItem](context.Background(), store, database.Negocio(testNegocio, coleccion), id)
	require.NoError(t, err)
	return item
}

func pagosDe(t *testing.T, store database.Store, idVenta string) []models.Pago {
	t.Helper()
	pagos, err := database.ListAs[models.Pago](context.Background(), store, database.Negocio(testNegocio, database.Pagos),
		database.Filter{Field: "idVenta", Value: idVenta})
	require.NoError(t, err)
	return pagos
}
