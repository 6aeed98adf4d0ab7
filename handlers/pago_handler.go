package handlers

import (
	"net/http"
	"sort"

	"celustock-backend/database"
	"celustock-backend/models"
	"celustock-backend/services"

	"github.com/gin-gonic/gin"
)

// CreatePagoHandler records a client payment. fecha arrives as YYYY-MM-DD
// and is stored as DD/MM/YYYY; it defaults to today.
func CreatePagoHandler(c *gin.Context) {
	var input struct {
		models.Pago
		Fecha string `json:"fecha" binding:"omitempty,datetime=2006-01-02"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	pago := input.Pago
	pago.ID = newID()
	pago.Fecha = services.FormatoFecha(now())
	if input.Fecha != "" {
		t, _ := parseISO(input.Fecha)
		pago.Fecha = services.FormatoFecha(t)
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if err := database.DB.Set(ctx, negocioRef(c, database.Pagos), pago.ID, pago); err != nil {
		storeError(c, err, "Error al registrar pago")
		return
	}
	c.JSON(http.StatusCreated, pago)
}

// GetPagosHandler lists payments, optionally for one cliente, newest first.
func GetPagosHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	var filters []database.Filter
	if cliente := c.Query("cliente"); cliente != "" {
		filters = append(filters, database.Filter{Field: "cliente", Value: cliente})
	}
	pagos, err := database.ListAs[models.Pago](ctx, database.DB, negocioRef(c, database.Pagos), filters...)
	if err != nil {
		storeError(c, err, "Error al obtener pagos")
		return
	}
	sort.SliceStable(pagos, func(i, j int) bool {
		a, _ := services.ParseFecha(pagos[i].Fecha)
		b, _ := services.ParseFecha(pagos[j].Fecha)
		return a.After(b)
	})
	c.JSON(http.StatusOK, pagos)
}

func DeletePagoHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	if err := database.DB.Delete(ctx, negocioRef(c, database.Pagos), c.Param("id")); err != nil {
		storeError(c, err, "Error al eliminar pago")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pago eliminado"})
}
