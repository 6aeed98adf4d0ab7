package handlers

import (
	"errors"
	"net/http"
	"sort"

	"celustock-backend/database"
	"celustock-backend/middleware"
	"celustock-backend/models"
	"celustock-backend/services"

	"github.com/gin-gonic/gin"
)

// GetCajaHandler returns the live summary of a day and its closed record,
// if there is one. fecha defaults to today.
func GetCajaHandler(c *gin.Context) {
	fecha := c.DefaultQuery("fecha", services.FormatoISO(now()))

	ctx, cancel := dbContext(c)
	defer cancel()

	ventas, err := database.ListAs[models.Venta](ctx, database.DB, negocioRef(c, database.Ventas))
	if err != nil {
		storeError(c, err, "Error al obtener ventas")
		return
	}
	delDia, err := services.VentasDelDia(ventas, fecha)
	if err != nil {
		badRequest(c, "Fecha inválida, se espera YYYY-MM-DD")
		return
	}

	var cerrada *models.CajaDiaria
	caja, err := database.GetAs[models.CajaDiaria](ctx, database.DB, negocioRef(c, database.Cajas), fecha)
	switch {
	case err == nil:
		cerrada = &caja
	case !errors.Is(err, database.ErrNotFound):
		storeError(c, err, "Error al obtener la caja")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fecha":          fecha,
		"resumen":        services.ResumirCaja(delDia),
		"cantidadVentas": len(delDia),
		"cerrada":        cerrada != nil,
		"caja":           cerrada,
	})
}

// CerrarCajaHandler writes the register record of a day. A day can only be
// closed once.
func CerrarCajaHandler(c *gin.Context) {
	var input struct {
		Fecha string `json:"fecha" binding:"required,datetime=2006-01-02"`
		services.ConteoCaja
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	cajasRef := negocioRef(c, database.Cajas)
	_, err := database.DB.Get(ctx, cajasRef, input.Fecha)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "La caja de esa fecha ya fue cerrada"})
		return
	}
	if !errors.Is(err, database.ErrNotFound) {
		storeError(c, err, "Error al obtener la caja")
		return
	}

	ventas, err := database.ListAs[models.Venta](ctx, database.DB, negocioRef(c, database.Ventas))
	if err != nil {
		storeError(c, err, "Error al obtener ventas")
		return
	}
	delDia, _ := services.VentasDelDia(ventas, input.Fecha)

	caja := services.CerrarCaja(input.Fecha, services.ResumirCaja(delDia), input.ConteoCaja, c.GetString(middleware.UserIDKey), now())
	if err := database.DB.Set(ctx, cajasRef, caja.ID, caja); err != nil {
		storeError(c, err, "Error al cerrar la caja")
		return
	}
	c.JSON(http.StatusCreated, caja)
}

// GetHistorialCajasHandler lists closed registers, most recent first.
func GetHistorialCajasHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	cajas, err := database.ListAs[models.CajaDiaria](ctx, database.DB, negocioRef(c, database.Cajas))
	if err != nil {
		storeError(c, err, "Error al obtener el historial de cajas")
		return
	}
	sort.SliceStable(cajas, func(i, j int) bool { return cajas[i].Fecha > cajas[j].Fecha })
	c.JSON(http.StatusOK, cajas)
}

func GetResumenMensualHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	cajas, err := database.ListAs[models.CajaDiaria](ctx, database.DB, negocioRef(c, database.Cajas))
	if err != nil {
		storeError(c, err, "Error al obtener el historial de cajas")
		return
	}
	c.JSON(http.StatusOK, services.AgruparPorMes(cajas))
}

// DeleteCajaHandler is admin only.
func DeleteCajaHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	if err := database.DB.Delete(ctx, negocioRef(c, database.Cajas), c.Param("fecha")); err != nil {
		storeError(c, err, "Error al eliminar la caja")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Caja eliminada"})
}
