package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadGrid abre el libro y devuelve la primera hoja como una grilla de strings
// (celdas vacías incluidas como ""). El parseo de celdas es caja negra: la
// interpretación de encabezados y filas ocurre en el motor de importación.
func ReadGrid(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir libro: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	return rows, nil
}
