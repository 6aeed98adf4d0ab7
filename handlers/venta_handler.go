package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"celustock-backend/database"
	"celustock-backend/models"
	"celustock-backend/reports"
	"celustock-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// destinoVenta marks the pagos written automatically for paid sales with a
// client, so the statement nets them out.
const destinoVenta = "venta"

type ventaInput struct {
	Cliente    string                   `json:"cliente"`
	Fecha      string                   `json:"fecha" binding:"omitempty,datetime=2006-01-02"`
	Productos  []models.ProductoVendido `json:"productos" binding:"required,min=1,dive"`
	Estado     models.EstadoVenta       `json:"estado" binding:"required,oneof=pagado pendiente"`
	MetodoPago string                   `json:"metodoPago"`
	Moneda     models.Moneda            `json:"moneda" binding:"omitempty,moneda"`
}

const msgSinCotizacion = "Configure la cotización antes de vender en dos monedas"

var errSinCotizacion = errors.New("sin cotización para convertir entre monedas")

// prepararVenta fills line currencies and profits and computes the totals.
// A single-currency sale with lines in the other currency needs a rate.
func prepararVenta(v *models.Venta, cotizacion float64) error {
	if v.Moneda == "" {
		v.Moneda = services.MonedaDeVenta(v.Productos)
	}
	for i := range v.Productos {
		p := &v.Productos[i]
		if p.Moneda == "" {
			p.Moneda = v.Moneda
			if v.Moneda == models.DUAL {
				p.Moneda = services.MonedaDeVenta([]models.ProductoVendido{*p})
			}
		}
		if p.PrecioCosto > 0 {
			p.Ganancia = (p.PrecioUnitario - p.PrecioCosto) * float64(p.Cantidad)
		}
	}

	v.Cotizacion = cotizacion
	if v.Moneda == models.DUAL {
		v.TotalARS, v.TotalUSD = services.Subtotales(v.Productos, models.ARS)
		v.Total = services.TotalVenta(v.Productos, cotizacion, models.ARS)
		return nil
	}

	ars, usd := services.Subtotales(v.Productos, v.Moneda)
	otra := usd
	if v.Moneda == models.USD {
		otra = ars
	}
	if otra != 0 && cotizacion <= 0 {
		return errSinCotizacion
	}
	v.TotalARS, v.TotalUSD = 0, 0
	v.Total = services.TotalVenta(v.Productos, cotizacion, v.Moneda)
	return nil
}

func siguienteNroVenta(ventas []models.Venta) int {
	ultimo := 0
	for _, v := range ventas {
		if v.NroVenta > ultimo {
			ultimo = v.NroVenta
		}
	}
	return ultimo + 1
}

// moverStock applies sign×cantidad to every line with a codigo. Failures are
// logged and returned as warnings; nothing already written is rolled back.
func moverStock(ctx context.Context, negocio string, productos []models.ProductoVendido, sign int) []string {
	advertencias := []string{}
	for _, p := range productos {
		if p.Codigo == "" {
			continue
		}
		tipo, ok := services.TipoPorCategoria(p.Categoria)
		if !ok {
			advertencias = append(advertencias, "Categoría sin stock: "+string(p.Categoria))
			continue
		}
		coleccion, _ := services.ColeccionStock(tipo)
		if _, err := services.AjustarStock(ctx, database.DB, database.Negocio(negocio, coleccion), p.Codigo, sign*p.Cantidad); err != nil {
			log.Error().Err(err).
				Str("negocio", negocio).
				Str("codigo", p.Codigo).
				Int("delta", sign*p.Cantidad).
				Msg("No se pudo ajustar el stock")
			advertencias = append(advertencias, "No se pudo ajustar el stock de "+p.Codigo)
		}
	}
	return advertencias
}

// sincronizarPagos replaces the automatic pagos of a sale. A paid sale with
// a client gets one pago per currency it carries.
func sincronizarPagos(ctx context.Context, negocio string, v models.Venta) error {
	ref := database.Negocio(negocio, database.Pagos)
	existentes, err := database.ListAs[models.Pago](ctx, database.DB, ref, database.Filter{Field: "idVenta", Value: v.ID})
	if err != nil {
		return err
	}
	for _, p := range existentes {
		if p.Destino != destinoVenta {
			continue
		}
		if err := database.DB.Delete(ctx, ref, p.ID); err != nil {
			return err
		}
	}
	if v.Estado != models.Pagado || v.Cliente == "" {
		return nil
	}

	fecha := v.Fecha
	if t, err := services.ParseFecha(v.Fecha); err == nil {
		fecha = services.FormatoFecha(t)
	}
	montos := map[models.Moneda]float64{}
	if v.Moneda == models.DUAL {
		montos[models.ARS] = v.TotalARS
		montos[models.USD] = v.TotalUSD
	} else if v.Moneda == models.USD {
		montos[models.USD] = v.Total
	} else {
		montos[models.ARS] = v.Total
	}
	for _, moneda := range []models.Moneda{models.ARS, models.USD} {
		monto, ok := montos[moneda]
		if !ok || monto <= 0 {
			continue
		}
		pago := models.Pago{
			Cliente: v.Cliente,
			Fecha:   fecha,
			Monto:   monto,
			Moneda:  moneda,
			Forma:   v.MetodoPago,
			Destino: destinoVenta,
			IDVenta: v.ID,
		}
		if err := database.DB.Set(ctx, ref, newID(), pago); err != nil {
			return err
		}
	}
	return nil
}

// CreateVentaHandler writes the sale first and then takes the sold units
// out of stock.
func CreateVentaHandler(c *gin.Context) {
	var input ventaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}
	if input.Estado == models.Pendiente && input.Cliente == "" {
		badRequest(c, "Una venta pendiente necesita un cliente")
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	cfg, err := configuracion(ctx, c)
	if err != nil {
		storeError(c, err, "Error al leer la configuración")
		return
	}

	ahora := now()
	fecha := services.FormatoVenta(ahora)
	if input.Fecha != "" {
		fecha, _ = services.FechaVenta(input.Fecha)
	}

	ref := negocioRef(c, database.Ventas)
	ventas, err := database.ListAs[models.Venta](ctx, database.DB, ref)
	if err != nil {
		storeError(c, err, "Error al obtener ventas")
		return
	}

	venta := models.Venta{
		ID:         newID(),
		Cliente:    input.Cliente,
		Fecha:      fecha,
		Productos:  input.Productos,
		Estado:     input.Estado,
		MetodoPago: input.MetodoPago,
		Moneda:     input.Moneda,
		NroVenta:   siguienteNroVenta(ventas),
		Timestamp:  ahora.UnixMilli(),
	}
	if err := prepararVenta(&venta, cfg.Cotizacion); err != nil {
		badRequest(c, msgSinCotizacion)
		return
	}

	if err := database.DB.Set(ctx, ref, venta.ID, venta); err != nil {
		storeError(c, err, "Error al registrar venta")
		return
	}

	advertencias := moverStock(ctx, negocioID(c), venta.Productos, -1)
	if err := sincronizarPagos(ctx, negocioID(c), venta); err != nil {
		log.Error().Err(err).Str("venta", venta.ID).Msg("No se pudo registrar el pago de la venta")
		advertencias = append(advertencias, "No se pudo registrar el pago de la venta")
	}

	c.JSON(http.StatusCreated, gin.H{"venta": venta, "advertencias": advertencias})
}

// GetVentasHandler lists sales, newest number first. fecha (YYYY-MM-DD) and
// cliente narrow the result.
func GetVentasHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	var filters []database.Filter
	if cliente := c.Query("cliente"); cliente != "" {
		filters = append(filters, database.Filter{Field: "cliente", Value: cliente})
	}

	ventas, err := database.ListAs[models.Venta](ctx, database.DB, negocioRef(c, database.Ventas), filters...)
	if err != nil {
		storeError(c, err, "Error al obtener ventas")
		return
	}

	if fecha := c.Query("fecha"); fecha != "" {
		ventas, err = services.VentasDelDia(ventas, fecha)
		if err != nil {
			badRequest(c, "Fecha inválida, se espera YYYY-MM-DD")
			return
		}
	}

	sort.SliceStable(ventas, func(i, j int) bool { return ventas[i].NroVenta > ventas[j].NroVenta })
	c.JSON(http.StatusOK, ventas)
}

func GetVentaHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	venta, err := database.GetAs[models.Venta](ctx, database.DB, negocioRef(c, database.Ventas), c.Param("id"))
	if err != nil {
		storeError(c, err, "Error al obtener venta")
		return
	}
	c.JSON(http.StatusOK, venta)
}

// UpdateVentaHandler edits a sale. A new product list gives back the old
// quantities before taking the new ones.
func UpdateVentaHandler(c *gin.Context) {
	var input struct {
		Cliente    *string                   `json:"cliente"`
		Estado     *models.EstadoVenta       `json:"estado" binding:"omitempty,oneof=pagado pendiente"`
		MetodoPago *string                   `json:"metodoPago"`
		Moneda     *models.Moneda            `json:"moneda" binding:"omitempty,moneda"`
		Productos  *[]models.ProductoVendido `json:"productos" binding:"omitempty,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Datos inválidos: "+err.Error())
		return
	}

	ctx, cancel := dbContext(c)
	defer cancel()

	ref := negocioRef(c, database.Ventas)
	venta, err := database.GetAs[models.Venta](ctx, database.DB, ref, c.Param("id"))
	if err != nil {
		storeError(c, err, "Error al obtener venta")
		return
	}

	if input.Cliente != nil {
		venta.Cliente = *input.Cliente
	}
	if input.Estado != nil {
		venta.Estado = *input.Estado
	}
	if input.MetodoPago != nil {
		venta.MetodoPago = *input.MetodoPago
	}
	if venta.Estado == models.Pendiente && venta.Cliente == "" {
		badRequest(c, "Una venta pendiente necesita un cliente")
		return
	}

	anteriores := venta.Productos
	if input.Productos != nil || input.Moneda != nil {
		if input.Productos != nil {
			venta.Productos = *input.Productos
		}
		if input.Moneda != nil {
			venta.Moneda = *input.Moneda
		}
		cotizacion := venta.Cotizacion
		if cotizacion <= 0 {
			cfg, err := configuracion(ctx, c)
			if err != nil {
				storeError(c, err, "Error al leer la configuración")
				return
			}
			cotizacion = cfg.Cotizacion
		}
		if err := prepararVenta(&venta, cotizacion); err != nil {
			badRequest(c, msgSinCotizacion)
			return
		}
	}

	if err := database.DB.Set(ctx, ref, venta.ID, venta); err != nil {
		storeError(c, err, "Error al actualizar venta")
		return
	}

	advertencias := []string{}
	if input.Productos != nil {
		advertencias = append(advertencias, moverStock(ctx, negocioID(c), anteriores, 1)...)
		advertencias = append(advertencias, moverStock(ctx, negocioID(c), venta.Productos, -1)...)
	}
	if err := sincronizarPagos(ctx, negocioID(c), venta); err != nil {
		log.Error().Err(err).Str("venta", venta.ID).Msg("No se pudo actualizar el pago de la venta")
		advertencias = append(advertencias, "No se pudo actualizar el pago de la venta")
	}

	c.JSON(http.StatusOK, gin.H{"venta": venta, "advertencias": advertencias})
}

// DeleteVentaHandler removes the sale, returns its units to stock and drops
// every pago linked to it.
func DeleteVentaHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	ref := negocioRef(c, database.Ventas)
	venta, err := database.GetAs[models.Venta](ctx, database.DB, ref, c.Param("id"))
	if err != nil {
		storeError(c, err, "Error al obtener venta")
		return
	}
	if err := database.DB.Delete(ctx, ref, venta.ID); err != nil {
		storeError(c, err, "Error al eliminar venta")
		return
	}

	advertencias := moverStock(ctx, negocioID(c), venta.Productos, 1)

	pagosRef := database.Negocio(negocioID(c), database.Pagos)
	pagos, err := database.ListAs[models.Pago](ctx, database.DB, pagosRef, database.Filter{Field: "idVenta", Value: venta.ID})
	if err != nil {
		log.Error().Err(err).Str("venta", venta.ID).Msg("No se pudieron leer los pagos de la venta")
		advertencias = append(advertencias, "No se pudieron eliminar los pagos de la venta")
	}
	for _, p := range pagos {
		if err := database.DB.Delete(ctx, pagosRef, p.ID); err != nil {
			log.Error().Err(err).Str("pago", p.ID).Msg("No se pudo eliminar el pago")
			advertencias = append(advertencias, "No se pudo eliminar el pago "+p.ID)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Venta eliminada", "advertencias": advertencias})
}

// RemitoHandler renders the delivery note of a sale.
func RemitoHandler(c *gin.Context) {
	ctx, cancel := dbContext(c)
	defer cancel()

	venta, err := database.GetAs[models.Venta](ctx, database.DB, negocioRef(c, database.Ventas), c.Param("id"))
	if err != nil {
		storeError(c, err, "Error al obtener venta")
		return
	}
	cfg, err := configuracion(ctx, c)
	if err != nil {
		storeError(c, err, "Error al leer la configuración")
		return
	}

	cliente := models.Cliente{Nombre: venta.Cliente}
	if venta.Cliente != "" {
		encontrados, err := database.ListAs[models.Cliente](ctx, database.DB, negocioRef(c, database.Clientes), database.Filter{Field: "nombre", Value: venta.Cliente})
		if err == nil && len(encontrados) > 0 {
			cliente = encontrados[0]
		}
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="remito-`+venta.ID+`.pdf"`)
	if err := reports.RemitoPDF(c.Writer, cfg, cliente, venta); err != nil {
		log.Error().Err(err).Str("venta", venta.ID).Msg("Error al generar remito")
		c.Status(http.StatusInternalServerError)
	}
}
