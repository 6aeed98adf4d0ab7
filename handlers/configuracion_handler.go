package handlers

import (
	"errors"
	"net/http"

	"celustock-backend/cotizacion"
	"celustock-backend/database"
	"celustock-backend/models"
	"celustock-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Cotizaciones is set by main. A nil client disables the suggestion.
var Cotizaciones *cotizacion.Client

func GetConfiguracionHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	cfg, err := configuracion(ctx, c)
	if err != nil {
		storeError(c, err, "Error al leer la configuración")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateConfiguracionHandler replaces the business data and the manual
// USD→ARS rate used for every conversion.
func UpdateConfiguracionHandler(c *gin.Context) {
	var cfg models.Configuracion
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if err := database.DB.Set(ctx, negocioRef(c, database.Configuracion), database.ConfigDatos, cfg); err != nil {
		storeError(c, err, "Error al guardar la configuración")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GetCapitalHandler merges the manual cash figures with the valuation of
// the three stock types.
func GetCapitalHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	capital, err := database.GetAs[models.Capital](ctx, database.DB, negocioRef(c, database.Configuracion), database.ConfigCapital)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		storeError(c, err, "Error al leer el capital")
		return
	}
	cfg, err := configuracion(ctx, c)
	if err != nil {
		storeError(c, err, "Error al leer la configuración")
		return
	}

	stock := map[models.TipoStock]services.Valuacion{}
	for _, tipo := range []models.TipoStock{models.StockAccesorios, models.StockRepuestos, models.StockTelefonos} {
		coleccion, _ := services.ColeccionStock(tipo)
		items, err := database.ListAs[models.StockItem](ctx, database.DB, negocioRef(c, coleccion))
		if err != nil {
			storeError(c, err, "Error al obtener stock")
			return
		}
		stock[tipo] = services.Valuar(items, cfg.Cotizacion)
	}

	c.JSON(http.StatusOK, services.CalcularCapital(capital, stock, cfg.Cotizacion))
}

func UpdateCapitalHandler(c *gin.Context) {
	var capital models.Capital
	if err := c.ShouldBindJSON(&capital); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if err := database.DB.Set(ctx, negocioRef(c, database.Configuracion), database.ConfigCapital, capital); err != nil {
		storeError(c, err, "Error al guardar el capital")
		return
	}
	c.JSON(http.StatusOK, capital)
}

// GetCotizacionSugeridaHandler only suggests a rate; the stored one changes
// through UpdateConfiguracionHandler.
func GetCotizacionSugeridaHandler(c *gin.Context) {
	if Cotizaciones == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cotización externa no configurada"})
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	q, err := Cotizaciones.Obtener(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("No se pudo obtener la cotización sugerida")
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo obtener la cotización"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cotizacion":         q.Venta,
		"compra":             q.Compra,
		"casa":               q.Casa,
		"fechaActualizacion": q.FechaActualizacion,
	})
}
