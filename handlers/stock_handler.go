package handlers

import (
	"net/http"
	"sort"

	"celustock-backend/database"
	"celustock-backend/models"
	"celustock-backend/reports"
	"celustock-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var categoriasStock = map[models.TipoStock]models.Categoria{
	models.StockAccesorios: models.Accesorio,
	models.StockRepuestos:  models.Repuesto,
	models.StockTelefonos:  models.Telefono,
}

// stockRef resolves the :tipo param. It answers 400 and returns false for
// unknown types.
func stockRef(c *gin.Context) (models.TipoStock, database.Ref, bool) {
	tipo := models.TipoStock(c.Param("tipo"))
	coleccion, ok := services.ColeccionStock(tipo)
	if !ok {
		badRequest(c, "Tipo de stock inválido")
		return "", database.Ref{}, false
	}
	return tipo, negocioRef(c, coleccion), true
}

func GetStockHandler(c *gin.Context) {
	_, ref, ok := stockRef(c)
	if !ok {
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	items, err := database.ListAs[models.StockItem](ctx, database.DB, ref)
	if err != nil {
		storeError(c, err, "Error al obtener stock")
		return
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Codigo < items[j].Codigo })
	c.JSON(http.StatusOK, items)
}

// CreateStockHandler assigns the next sequential code of the stock type.
func CreateStockHandler(c *gin.Context) {
	tipo, ref, ok := stockRef(c)
	if !ok {
		return
	}

	var item models.StockItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	existentes, err := database.ListAs[models.StockItem](ctx, database.DB, ref)
	if err != nil {
		storeError(c, err, "Error al obtener stock")
		return
	}
	codigos := make([]string, 0, len(existentes))
	for _, e := range existentes {
		codigos = append(codigos, e.Codigo)
	}

	item.ID = newID()
	item.Codigo = services.SiguienteCodigo(services.PrefijoCodigo(tipo), codigos)
	item.Categoria = categoriasStock[tipo]
	if item.Moneda == "" {
		item.Moneda = models.ARS
		if tipo == models.StockTelefonos {
			item.Moneda = models.USD
		}
	}

	if err := database.DB.Set(ctx, ref, item.ID, item); err != nil {
		storeError(c, err, "Error al registrar producto")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func UpdateStockHandler(c *gin.Context) {
	_, ref, ok := stockRef(c)
	if !ok {
		return
	}

	var input struct {
		Producto    *string        `json:"producto"`
		Marca       *string        `json:"marca"`
		Modelo      *string        `json:"modelo"`
		Color       *string        `json:"color"`
		PrecioCosto *float64       `json:"precioCosto" binding:"omitempty,gte=0"`
		Precio1     *float64       `json:"precio1" binding:"omitempty,gte=0"`
		Precio2     *float64       `json:"precio2" binding:"omitempty,gte=0"`
		Precio3     *float64       `json:"precio3" binding:"omitempty,gte=0"`
		Moneda      *models.Moneda `json:"moneda" binding:"omitempty,oneof=ARS USD"`
		Cantidad    *int           `json:"cantidad" binding:"omitempty,gte=0"`
		StockIdeal  *int           `json:"stockIdeal" binding:"omitempty,gte=0"`
		StockBajo   *int           `json:"stockBajo" binding:"omitempty,gte=0"`
		Proveedor   *string        `json:"proveedor"`
		Imei        *string        `json:"imei"`
		Gb          *string        `json:"gb"`
		Bateria     *string        `json:"bateria"`
		Estado      *string        `json:"estado"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	set := func(name string, v interface{}, present bool) {
		if present {
			fields[name] = v
		}
	}
	set("producto", deref(input.Producto), input.Producto != nil)
	set("marca", deref(input.Marca), input.Marca != nil)
	set("modelo", deref(input.Modelo), input.Modelo != nil)
	set("color", deref(input.Color), input.Color != nil)
	set("precioCosto", deref(input.PrecioCosto), input.PrecioCosto != nil)
	set("precio1", deref(input.Precio1), input.Precio1 != nil)
	set("precio2", deref(input.Precio2), input.Precio2 != nil)
	set("precio3", deref(input.Precio3), input.Precio3 != nil)
	set("moneda", deref(input.Moneda), input.Moneda != nil)
	set("cantidad", deref(input.Cantidad), input.Cantidad != nil)
	set("stockIdeal", deref(input.StockIdeal), input.StockIdeal != nil)
	set("stockBajo", deref(input.StockBajo), input.StockBajo != nil)
	set("proveedor", deref(input.Proveedor), input.Proveedor != nil)
	set("imei", deref(input.Imei), input.Imei != nil)
	set("gb", deref(input.Gb), input.Gb != nil)
	set("bateria", deref(input.Bateria), input.Bateria != nil)
	set("estado", deref(input.Estado), input.Estado != nil)
	if len(fields) == 0 {
		badRequest(c, "No hay cambios para aplicar")
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if err := database.DB.Update(ctx, ref, c.Param("id"), fields); err != nil {
		storeError(c, err, "Error al actualizar producto")
		return
	}
	item, err := database.GetAs[models.StockItem](ctx, database.DB, ref, c.Param("id"))
	if err != nil {
		storeError(c, err, "Error al obtener producto")
		return
	}
	c.JSON(http.StatusOK, item)
}

func DeleteStockHandler(c *gin.Context) {
	_, ref, ok := stockRef(c)
	if !ok {
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	if err := database.DB.Delete(ctx, ref, c.Param("id")); err != nil {
		storeError(c, err, "Error al eliminar producto")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado"})
}

// GetValuacionHandler values the stock of one type at cost.
func GetValuacionHandler(c *gin.Context) {
	_, ref, ok := stockRef(c)
	if !ok {
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	items, err := database.ListAs[models.StockItem](ctx, database.DB, ref)
	if err != nil {
		storeError(c, err, "Error al obtener stock")
		return
	}
	cfg, err := configuracion(ctx, c)
	if err != nil {
		storeError(c, err, "Error al leer la configuración")
		return
	}
	c.JSON(http.StatusOK, services.Valuar(items, cfg.Cotizacion))
}

// GetReposicionHandler exports the restock suggestions as a spreadsheet.
func GetReposicionHandler(c *gin.Context) {
	tipo, ref, ok := stockRef(c)
	if !ok {
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	items, err := database.ListAs[models.StockItem](ctx, database.DB, ref)
	if err != nil {
		storeError(c, err, "Error al obtener stock")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="reposicion-`+string(tipo)+`.xlsx"`)
	if err := reports.ReposicionXLSX(c.Writer, services.SugerenciasReposicion(items)); err != nil {
		log.Error().Err(err).Str("tipo", string(tipo)).Msg("Error al generar planilla de reposición")
		c.Status(http.StatusInternalServerError)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
