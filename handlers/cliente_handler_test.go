package handlers

import (
	"context"
	"net/http"
	"testing"

	"celustock-backend/database"
	"celustock-backend/models"
	"celustock-backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crearCliente(t *testing.T, r http.Handler, nombre string) models.Cliente {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/clientes", map[string]interface{}{"nombre": nombre, "telefono": "11-5555-0000"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cliente models.Cliente
	decode(t, w, &cliente)
	return cliente
}

func TestClientesCRUD(t *testing.T) {
	setup(t)
	r := testRouter(models.RolVendedor)
	juan := crearCliente(t, r, "Juan")
	crearCliente(t, r, "ana")

	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodPost, "/api/clientes", map[string]interface{}{"nombre": "Juan"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/clientes", map[string]interface{}{"telefono": "1"}).Code)

	var clientes []models.Cliente
	decode(t, do(t, r, http.MethodGet, "/api/clientes", nil), &clientes)
	require.Len(t, clientes, 2)
	assert.Equal(t, "ana", clientes[0].Nombre)

	w := do(t, r, http.MethodPut, "/api/clientes/"+juan.ID, map[string]interface{}{"nombre": "Juan", "email": "juan@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Cliente
	decode(t, do(t, r, http.MethodGet, "/api/clientes/"+juan.ID, nil), &got)
	assert.Equal(t, "juan@example.com", got.Email)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/api/clientes/"+juan.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/clientes/"+juan.ID, nil).Code)
}

func TestCuentaDesdeUltimoSaldoCero(t *testing.T) {
	setup(t)
	r := testRouter(models.RolVendedor)
	juan := crearCliente(t, r, "Juan")

	w := do(t, r, http.MethodPost, "/api/trabajos", map[string]interface{}{
		"cliente": "Juan",
		"fecha":   "2024-03-01",
		"modelo":  "Samsung A52",
		"trabajo": "Cambio de módulo",
		"precio":  1000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(t, r, http.MethodPost, "/api/pagos", map[string]interface{}{
		"cliente": "Juan",
		"fecha":   "2024-03-02",
		"monto":   1000,
		"moneda":  "ARS",
		"forma":   "efectivo",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	venderAccesorio(t, r, "2024-03-05", "pendiente", "", "Juan", 500)
	venderAccesorio(t, r, "2024-03-05", "pendiente", "", "Otro", 700)

	w = do(t, r, http.MethodGet, "/api/clientes/"+juan.ID+"/cuenta", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Cliente models.Cliente        `json:"cliente"`
		Cuenta  services.EstadoCuenta `json:"cuenta"`
	}
	decode(t, w, &res)
	assert.False(t, res.Cuenta.Historico)
	require.Len(t, res.Cuenta.Movimientos, 1)
	assert.Equal(t, "venta", res.Cuenta.Movimientos[0].Origen)
	assert.Equal(t, "05/03/2024", res.Cuenta.Movimientos[0].FechaTexto)
	assert.Equal(t, 500.0, res.Cuenta.SaldoARS)
	assert.Equal(t, 0.0, res.Cuenta.SaldoUSD)

	w = do(t, r, http.MethodGet, "/api/clientes/"+juan.ID+"/cuenta.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF", string(w.Body.Bytes()[:4]))

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/clientes/nadie/cuenta", nil).Code)
}

func TestVentaPagadaNoDejaDeuda(t *testing.T) {
	setup(t)
	r := testRouter(models.RolVendedor)
	juan := crearCliente(t, r, "Juan")
	venderAccesorio(t, r, "2024-03-04", "pagado", "efectivo", "Juan", 800)

	var res struct {
		Cuenta services.EstadoCuenta `json:"cuenta"`
	}
	decode(t, do(t, r, http.MethodGet, "/api/clientes/"+juan.ID+"/cuenta", nil), &res)
	assert.Empty(t, res.Cuenta.Movimientos)
	assert.Equal(t, 0.0, res.Cuenta.SaldoARS)
}

func TestPagosYTrabajos(t *testing.T) {
	setup(t)
	r := testRouter(models.RolVendedor)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/pagos", map[string]interface{}{"cliente": "Juan", "monto": 10, "moneda": "EUR"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/api/pagos", map[string]interface{}{"cliente": "Juan", "monto": 0, "moneda": "ARS"}).Code)

	w := do(t, r, http.MethodPost, "/api/pagos", map[string]interface{}{"cliente": "Juan", "monto": 10, "moneda": "USD"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var pago models.Pago
	decode(t, w, &pago)
	assert.Equal(t, "05/03/2024", pago.Fecha)

	var pagos []models.Pago
	decode(t, do(t, r, http.MethodGet, "/api/pagos?cliente=Juan", nil), &pagos)
	assert.Len(t, pagos, 1)
	require.Equal(t, http.StatusOK, do(t, r, http.MethodDelete, "/api/pagos/"+pago.ID, nil).Code)
	decode(t, do(t, r, http.MethodGet, "/api/pagos", nil), &pagos)
	assert.Empty(t, pagos)

	w = do(t, r, http.MethodPost, "/api/trabajos", map[string]interface{}{"cliente": "Juan", "modelo": "Moto E", "trabajo": "Batería", "precio": 20, "moneda": "USD"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var trabajo models.Trabajo
	decode(t, w, &trabajo)
	assert.Equal(t, "pendiente", trabajo.Estado)
	assert.Equal(t, models.USD, trabajo.Moneda)

	w = do(t, r, http.MethodPut, "/api/trabajos/"+trabajo.ID, map[string]interface{}{"estado": "entregado", "precio": 25})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &trabajo)
	assert.Equal(t, "entregado", trabajo.Estado)
	assert.Equal(t, 25.0, trabajo.Precio)

	var trabajos []models.Trabajo
	decode(t, do(t, r, http.MethodGet, "/api/trabajos?estado=entregado", nil), &trabajos)
	assert.Len(t, trabajos, 1)
	decode(t, do(t, r, http.MethodGet, "/api/trabajos?estado=pendiente", nil), &trabajos)
	assert.Empty(t, trabajos)
}

func TestCuentaOmiteFechasInvalidas(t *testing.T) {
	store := setup(t)
	r := testRouter(models.RolVendedor)
	juan := crearCliente(t, r, "Juan")
	venderAccesorio(t, r, "2024-03-04", "pendiente", "", "Juan", 900)

	roto := models.Pago{Cliente: "Juan", Fecha: "2024-03-05", Monto: 100, Moneda: models.ARS}
	require.NoError(t, store.Set(context.Background(), database.Negocio(testNegocio, database.Pagos), "pago-roto", roto))

	w := do(t, r, http.MethodGet, "/api/clientes/"+juan.ID+"/cuenta", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Cuenta services.EstadoCuenta `json:"cuenta"`
	}
	decode(t, w, &res)
	require.Len(t, res.Cuenta.Movimientos, 1)
	assert.Equal(t, "venta", res.Cuenta.Movimientos[0].Origen)
	assert.Equal(t, 900.0, res.Cuenta.SaldoARS)

	w = do(t, r, http.MethodGet, "/api/clientes/"+juan.ID+"/cuenta.pdf", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
