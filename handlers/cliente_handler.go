package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"celustock-backend/database"
	"celustock-backend/models"
	"celustock-backend/reports"
	"celustock-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func CreateClienteHandler(c *gin.Context) {
	var cliente models.Cliente
	if err := c.ShouldBindJSON(&cliente); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}
	cliente.Nombre = strings.TrimSpace(cliente.Nombre)

	ctx, cancel := dbContext(c)
	defer cancel()

	ref := negocioRef(c, database.Clientes)
	existentes, err := database.ListAs[models.Cliente](ctx, database.DB, ref, database.Filter{Field: "nombre", Value: cliente.Nombre})
	if err != nil {
		storeError(c, err, "Error al obtener clientes")
		return
	}
	if len(existentes) > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Ya existe un cliente con ese nombre"})
		return
	}

	cliente.ID = newID()
	if err := database.DB.Set(ctx, ref, cliente.ID, cliente); err != nil {
		storeError(c, err, "Error al registrar cliente")
		return
	}
	c.JSON(http.StatusCreated, cliente)
}

func GetClientesHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	clientes, err := database.ListAs[models.Cliente](ctx, database.DB, negocioRef(c, database.Clientes))
	if err != nil {
		storeError(c, err, "Error al obtener clientes")
		return
	}
	sort.SliceStable(clientes, func(i, j int) bool {
		return strings.ToLower(clientes[i].Nombre) < strings.ToLower(clientes[j].Nombre)
	})
	c.JSON(http.StatusOK, clientes)
}

func GetClienteHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	cliente, err := database.GetAs[models.Cliente](ctx, database.DB, negocioRef(c, database.Clientes), c.Param("id"))
	if err != nil {
		storeError(c, err, "Error al obtener cliente")
		return
	}
	c.JSON(http.StatusOK, cliente)
}

// UpdateClienteHandler replaces the contact data. The name is the link used
// by sales, jobs and payments, so renaming does not move their history.
func UpdateClienteHandler(c *gin.Context) {
	var cliente models.Cliente
	if err := c.ShouldBindJSON(&cliente); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	ref := negocioRef(c, database.Clientes)
	if _, err := database.DB.Get(ctx, ref, c.Param("id")); err != nil {
		storeError(c, err, "Error al obtener cliente")
		return
	}
	cliente.ID = c.Param("id")
	cliente.Nombre = strings.TrimSpace(cliente.Nombre)
	if err := database.DB.Set(ctx, ref, cliente.ID, cliente); err != nil {
		storeError(c, err, "Error al actualizar cliente")
		return
	}
	c.JSON(http.StatusOK, cliente)
}

func DeleteClienteHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	if err := database.DB.Delete(ctx, negocioRef(c, database.Clientes), c.Param("id")); err != nil {
		storeError(c, err, "Error al eliminar cliente")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cliente eliminado"})
}

// estadoCliente loads the client and builds its statement since the last
// zero balance.
func estadoCliente(ctx context.Context, c *gin.Context) (models.Cliente, services.EstadoCuenta, bool) {
	cliente, err := database.GetAs[models.Cliente](ctx, database.DB, negocioRef(c, database.Clientes), c.Param("id"))
	if err != nil {
		storeError(c, err, "Error al obtener cliente")
		return cliente, services.EstadoCuenta{}, false
	}

	porCliente := database.Filter{Field: "cliente", Value: cliente.Nombre}
	trabajos, err := database.ListAs[models.Trabajo](ctx, database.DB, negocioRef(c, database.Trabajos), porCliente)
	if err != nil {
		storeError(c, err, "Error al obtener trabajos")
		return cliente, services.EstadoCuenta{}, false
	}
	ventas, err := database.ListAs[models.Venta](ctx, database.DB, negocioRef(c, database.Ventas), porCliente)
	if err != nil {
		storeError(c, err, "Error al obtener ventas")
		return cliente, services.EstadoCuenta{}, false
	}
	pagos, err := database.ListAs[models.Pago](ctx, database.DB, negocioRef(c, database.Pagos), porCliente)
	if err != nil {
		storeError(c, err, "Error al obtener pagos")
		return cliente, services.EstadoCuenta{}, false
	}

	movs, err := services.ConstruirMovimientos(trabajos, ventas, pagos)
	if err != nil {
		log.Warn().Err(err).Str("cliente", cliente.ID).Msg("Movimientos con fecha inválida omitidos del estado de cuenta")
	}
	return cliente, services.EstadoDeCuenta(movs), true
}

func GetCuentaClienteHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	cliente, estado, ok := estadoCliente(ctx, c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cliente": cliente, "cuenta": estado})
}

func GetCuentaClientePDFHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	cliente, estado, ok := estadoCliente(ctx, c)
	if !ok {
		return
	}
	cfg, err := configuracion(ctx, c)
	if err != nil {
		storeError(c, err, "Error al leer la configuración")
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="estado-cuenta-`+cliente.ID+`.pdf"`)
	if err := reports.EstadoCuentaPDF(c.Writer, cfg, cliente, estado, now()); err != nil {
		log.Error().Err(err).Str("cliente", cliente.ID).Msg("Error al generar estado de cuenta")
		c.Status(http.StatusInternalServerError)
	}
}
