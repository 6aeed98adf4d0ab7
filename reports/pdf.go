package reports

import (
	"fmt"
	"io"
	"time"

	"celustock-backend/models"
	"celustock-backend/services"

	"github.com/go-pdf/fpdf"
)

const (
	margen    = 12.0
	altoFila  = 6.0
	altoBanda = 22.0
)

type documento struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	w   float64
}

func nuevoDocumento(titulo string, negocio models.Configuracion) *documento {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margen, margen, margen)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")

	d := &documento{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pageW, _ := pdf.GetPageSize()
	d.w = pageW - 2*margen

	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(33, 37, 41)
		pdf.Rect(0, 0, pageW, altoBanda, "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetXY(margen, 6)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(d.w/2, 6, d.tr(negocio.NombreNegocio), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(d.w/2, 6, d.tr(titulo), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		linea := negocio.Direccion
		if negocio.Telefono != "" {
			linea += "  Tel: " + negocio.Telefono
		}
		if negocio.Cuit != "" {
			linea += "  CUIT: " + negocio.Cuit
		}
		pdf.SetX(margen)
		pdf.CellFormat(d.w, 5, d.tr(linea), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.SetY(altoBanda + 4)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, d.tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return d
}

func (d *documento) bloqueCliente(c models.Cliente, fecha time.Time) {
	p := d.pdf
	p.SetFont("Helvetica", "B", 10)
	p.CellFormat(d.w, altoFila, d.tr("Cliente: "+c.Nombre), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 9)
	if c.Telefono != "" || c.DNI != "" {
		p.CellFormat(d.w, 5, d.tr(fmt.Sprintf("Tel: %s   DNI: %s", c.Telefono, c.DNI)), "", 1, "L", false, 0, "")
	}
	if c.Direccion != "" {
		p.CellFormat(d.w, 5, d.tr(c.Direccion), "", 1, "L", false, 0, "")
	}
	p.CellFormat(d.w, 5, "Fecha: "+services.FormatoFecha(fecha), "", 1, "L", false, 0, "")
	p.Ln(3)
}

func (d *documento) encabezado(cols []string, anchos []float64) {
	p := d.pdf
	p.SetFont("Helvetica", "B", 8)
	p.SetFillColor(230, 230, 230)
	for i, c := range cols {
		p.CellFormat(anchos[i], altoFila, d.tr(c), "1", 0, "C", true, 0, "")
	}
	p.Ln(-1)
	p.SetFont("Helvetica", "", 8)
}

func importe(m models.Moneda, v float64) string {
	if m == models.USD {
		return fmt.Sprintf("US$ %.2f", v)
	}
	return fmt.Sprintf("$ %.2f", v)
}

func recortar(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// EstadoCuentaPDF renders a client statement to w.
func EstadoCuentaPDF(w io.Writer, negocio models.Configuracion, cliente models.Cliente, estado services.EstadoCuenta, emitido time.Time) error {
	d := nuevoDocumento("Estado de cuenta", negocio)
	d.bloqueCliente(cliente, emitido)

	anchos := []float64{0.12, 0.34, 0.08, 0.12, 0.12, 0.11, 0.11}
	for i := range anchos {
		anchos[i] *= d.w
	}
	cols := []string{"Fecha", "Concepto", "Moneda", "Debe", "Haber", "Saldo ARS", "Saldo USD"}
	d.encabezado(cols, anchos)

	p := d.pdf
	_, pageH := p.GetPageSize()
	for _, m := range estado.Movimientos {
		if p.GetY()+altoFila > pageH-20 {
			p.AddPage()
			d.encabezado(cols, anchos)
		}
		debe, haber := "", ""
		if m.Tipo == services.Debe {
			debe = fmt.Sprintf("%.2f", m.Monto)
		} else {
			haber = fmt.Sprintf("%.2f", m.Monto)
		}
		p.CellFormat(anchos[0], altoFila, m.FechaTexto, "1", 0, "C", false, 0, "")
		p.CellFormat(anchos[1], altoFila, d.tr(recortar(m.Concepto, 40)), "1", 0, "L", false, 0, "")
		p.CellFormat(anchos[2], altoFila, string(m.Moneda), "1", 0, "C", false, 0, "")
		p.CellFormat(anchos[3], altoFila, debe, "1", 0, "R", false, 0, "")
		p.CellFormat(anchos[4], altoFila, haber, "1", 0, "R", false, 0, "")
		p.CellFormat(anchos[5], altoFila, fmt.Sprintf("%.2f", m.SaldoARS), "1", 0, "R", false, 0, "")
		p.CellFormat(anchos[6], altoFila, fmt.Sprintf("%.2f", m.SaldoUSD), "1", 1, "R", false, 0, "")
	}
	if len(estado.Movimientos) == 0 {
		p.CellFormat(d.w, altoFila, d.tr("Sin movimientos pendientes"), "1", 1, "C", false, 0, "")
	}

	p.Ln(4)
	p.SetFont("Helvetica", "B", 10)
	p.CellFormat(d.w*0.7, 7, "Saldo pendiente ARS:", "", 0, "R", false, 0, "")
	p.CellFormat(d.w*0.3, 7, importe(models.ARS, estado.SaldoARS), "", 1, "R", false, 0, "")
	p.CellFormat(d.w*0.7, 7, "Saldo pendiente USD:", "", 0, "R", false, 0, "")
	p.CellFormat(d.w*0.3, 7, importe(models.USD, estado.SaldoUSD), "", 1, "R", false, 0, "")

	return p.Output(w)
}

// RemitoPDF renders the printed receipt of a sale.
func RemitoPDF(w io.Writer, negocio models.Configuracion, cliente models.Cliente, venta models.Venta) error {
	d := nuevoDocumento(fmt.Sprintf("Remito N° %d", venta.NroVenta), negocio)
	fecha, err := services.ParseFecha(venta.Fecha)
	if err != nil {
		return err
	}
	if cliente.Nombre == "" {
		cliente.Nombre = venta.Cliente
	}
	d.bloqueCliente(cliente, fecha)

	anchos := []float64{0.44, 0.12, 0.1, 0.17, 0.17}
	for i := range anchos {
		anchos[i] *= d.w
	}
	d.encabezado([]string{"Producto", "Categoría", "Cant.", "P. Unitario", "Subtotal"}, anchos)

	p := d.pdf
	for _, it := range venta.Productos {
		nombre := it.Producto
		if nombre == "" {
			nombre = it.Descripcion
		}
		if it.Marca != "" || it.Modelo != "" {
			nombre = fmt.Sprintf("%s %s %s", nombre, it.Marca, it.Modelo)
		}
		moneda := it.Moneda
		if moneda == "" {
			moneda = venta.Moneda
		}
		p.CellFormat(anchos[0], altoFila, d.tr(recortar(nombre, 48)), "1", 0, "L", false, 0, "")
		p.CellFormat(anchos[1], altoFila, d.tr(string(it.Categoria)), "1", 0, "C", false, 0, "")
		p.CellFormat(anchos[2], altoFila, fmt.Sprintf("%d", it.Cantidad), "1", 0, "C", false, 0, "")
		p.CellFormat(anchos[3], altoFila, importe(moneda, it.PrecioUnitario), "1", 0, "R", false, 0, "")
		p.CellFormat(anchos[4], altoFila, importe(moneda, it.PrecioUnitario*float64(it.Cantidad)), "1", 1, "R", false, 0, "")
	}

	p.Ln(4)
	p.SetFont("Helvetica", "B", 11)
	if venta.Moneda == models.DUAL {
		p.CellFormat(d.w*0.7, 7, "TOTAL ARS:", "", 0, "R", false, 0, "")
		p.CellFormat(d.w*0.3, 7, importe(models.ARS, venta.TotalARS), "", 1, "R", false, 0, "")
		p.CellFormat(d.w*0.7, 7, "TOTAL USD:", "", 0, "R", false, 0, "")
		p.CellFormat(d.w*0.3, 7, importe(models.USD, venta.TotalUSD), "", 1, "R", false, 0, "")
	} else {
		p.CellFormat(d.w*0.7, 7, "TOTAL:", "", 0, "R", false, 0, "")
		p.CellFormat(d.w*0.3, 7, importe(venta.Moneda, venta.Total), "", 1, "R", false, 0, "")
	}
	p.SetFont("Helvetica", "", 9)
	p.CellFormat(d.w, 6, d.tr(fmt.Sprintf("Forma de pago: %s (%s)", venta.MetodoPago, venta.Estado)), "", 1, "R", false, 0, "")

	p.Ln(6)
	p.SetFont("Helvetica", "I", 8)
	p.CellFormat(d.w, 5, d.tr("¡Gracias por su compra!"), "", 1, "C", false, 0, "")

	return p.Output(w)
}
