package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// Encabezados que el importador de entradas resuelve por coincidencia difusa.
var templateHeaders = []string{"SKU", "BIN LOCATION", "QUANTITY"}

// BuildInboundTemplate genera un libro con la fila de encabezado requerida por
// el importador, para que los clientes partan de un archivo válido.
func BuildInboundTemplate() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if err := writeHeaderRow(f, sheet); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

// BuildCorrectionFile genera un libro de reenvío a partir de las filas
// rechazadas de un lote: mismos encabezados, valores originales y una columna
// extra con la razón del rechazo para corregir a mano.
func BuildCorrectionFile(failed []dto.FailedEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if err := writeHeaderRow(f, sheet); err != nil {
		return nil, err
	}
	reasonCell, _ := excelize.CoordinatesToCellName(len(templateHeaders)+1, 1)
	if err := f.SetCellValue(sheet, reasonCell, "REASON"); err != nil {
		return nil, fmt.Errorf("escribir encabezado: %w", err)
	}

	for i, entry := range failed {
		rowNum := i + 2
		values := []any{entry.Sku, entry.Bin, entry.Quantity, entry.Reason}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("celda (%d,%d): %w", col+1, rowNum, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("escribir celda %s: %w", cell, err)
			}
		}
	}
	return f.WriteToBuffer()
}

func writeHeaderRow(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("crear estilo: %w", err)
	}
	for i, h := range templateHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("celda encabezado %d: %w", i, err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("escribir encabezado %s: %w", h, err)
		}
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}
	return nil
}
