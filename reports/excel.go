package reports

import (
	"io"

	"celustock-backend/services"

	"github.com/xuri/excelize/v2"
)

const hojaReposicion = "Reposicion"

// ReposicionXLSX writes the suggested restock report as a one sheet workbook.
func ReposicionXLSX(w io.Writer, items []services.Reposicion) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", hojaReposicion); err != nil {
		return err
	}

	headers := []interface{}{"Código", "Producto", "Marca", "Modelo", "Proveedor", "Stock", "Stock ideal", "Sugerido", "Costo", "Moneda", "Bajo"}
	if err := f.SetSheetRow(hojaReposicion, "A1", &headers); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(hojaReposicion, "A1", "K1", bold); err != nil {
		return err
	}

	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		bajo := ""
		if it.Bajo {
			bajo = "SI"
		}
		row := []interface{}{
			it.Codigo, it.Producto, it.Marca, it.Modelo, it.Proveedor,
			it.Cantidad, it.StockIdeal, it.Sugerido, it.PrecioCosto, string(it.Moneda), bajo,
		}
		if err := f.SetSheetRow(hojaReposicion, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(hojaReposicion, "B", "B", 32); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
