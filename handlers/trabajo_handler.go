package handlers

import (
	"net/http"
	"sort"

	"celustock-backend/database"
	"celustock-backend/models"
	"celustock-backend/services"

	"github.com/gin-gonic/gin"
)

const estadoTrabajoInicial = "pendiente"

func CreateTrabajoHandler(c *gin.Context) {
	var input struct {
		models.Trabajo
		Fecha string `json:"fecha" binding:"omitempty,datetime=2006-01-02"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	trabajo := input.Trabajo
	trabajo.ID = newID()
	trabajo.Fecha = services.FormatoFecha(now())
	if input.Fecha != "" {
		t, _ := parseISO(input.Fecha)
		trabajo.Fecha = services.FormatoFecha(t)
	}
	if trabajo.Moneda != models.USD {
		trabajo.Moneda = models.ARS
	}
	if trabajo.Estado == "" {
		trabajo.Estado = estadoTrabajoInicial
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if err := database.DB.Set(ctx, negocioRef(c, database.Trabajos), trabajo.ID, trabajo); err != nil {
		storeError(c, err, "Error al registrar trabajo")
		return
	}
	c.JSON(http.StatusCreated, trabajo)
}

func GetTrabajosHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	var filters []database.Filter
	if cliente := c.Query("cliente"); cliente != "" {
		filters = append(filters, database.Filter{Field: "cliente", Value: cliente})
	}
	if estado := c.Query("estado"); estado != "" {
		filters = append(filters, database.Filter{Field: "estado", Value: estado})
	}
	trabajos, err := database.ListAs[models.Trabajo](ctx, database.DB, negocioRef(c, database.Trabajos), filters...)
	if err != nil {
		storeError(c, err, "Error al obtener trabajos")
		return
	}
	sort.SliceStable(trabajos, func(i, j int) bool {
		a, _ := services.ParseFecha(trabajos[i].Fecha)
		b, _ := services.ParseFecha(trabajos[j].Fecha)
		return a.After(b)
	})
	c.JSON(http.StatusOK, trabajos)
}

// UpdateTrabajoHandler changes the job description, price or state.
func UpdateTrabajoHandler(c *gin.Context) {
	var input struct {
		Modelo        *string        `json:"modelo"`
		Trabajo       *string        `json:"trabajo"`
		Clave         *string        `json:"clave"`
		Imei          *string        `json:"imei"`
		Observaciones *string        `json:"observaciones"`
		Precio        *float64       `json:"precio" binding:"omitempty,gte=0"`
		Moneda        *models.Moneda `json:"moneda" binding:"omitempty,oneof=ARS USD"`
		Estado        *string        `json:"estado"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if input.Modelo != nil {
		fields["modelo"] = *input.Modelo
	}
	if input.Trabajo != nil {
		fields["trabajo"] = *input.Trabajo
	}
	if input.Clave != nil {
		fields["clave"] = *input.Clave
	}
	if input.Imei != nil {
		fields["imei"] = *input.Imei
	}
	if input.Observaciones != nil {
		fields["observaciones"] = *input.Observaciones
	}
	if input.Precio != nil {
		fields["precio"] = *input.Precio
	}
	if input.Moneda != nil {
		fields["moneda"] = *input.Moneda
	}
	if input.Estado != nil {
		fields["estado"] = *input.Estado
	}
	if len(fields) == 0 {
		badRequest(c, "No hay cambios para aplicar")
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	ref := negocioRef(c, database.Trabajos)
	if err := database.DB.Update(ctx, ref, c.Param("id"), fields); err != nil {
		storeError(c, err, "Error al actualizar trabajo")
		return
	}
	trabajo, err := database.GetAs[models.Trabajo](ctx, database.DB, ref, c.Param("id"))
	if err != nil {
		storeError(c, err, "Error al obtener trabajo")
		return
	}
	c.JSON(http.StatusOK, trabajo)
}
