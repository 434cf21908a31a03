package inbound

import (
	"fmt"
	"strings"
)

// HeaderMap índices de columna resueltos para los roles requeridos.
type HeaderMap struct {
	Sku      int
	Bin      int
	Quantity int
}

// MissingHeadersError el encabezado no resuelve todos los roles requeridos.
// Es fatal: ninguna fila se procesa sin un mapeo completo.
type MissingHeadersError struct {
	Missing []string
	Found   []string
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("faltan encabezados requeridos: %s (encontrados: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// ResolveHeaders mapea la fila de encabezado a roles por coincidencia difusa:
// "sku" → SKU, "bin" → ubicación, "quantity"/"qty"/"balance" → cantidad.
// La primera columna que coincide con cada rol gana.
func ResolveHeaders(headerRow []string) (HeaderMap, error) {
	hm := HeaderMap{Sku: -1, Bin: -1, Quantity: -1}
	var found []string

	for i, h := range headerRow {
		clean := strings.ToLower(strings.TrimSpace(h))
		if clean == "" {
			continue
		}
		found = append(found, strings.TrimSpace(h))
		switch {
		case strings.Contains(clean, "sku"):
			if hm.Sku < 0 {
				hm.Sku = i
			}
		case strings.Contains(clean, "bin"):
			if hm.Bin < 0 {
				hm.Bin = i
			}
		case strings.Contains(clean, "balance"), strings.Contains(clean, "qty"), strings.Contains(clean, "quantity"):
			if hm.Quantity < 0 {
				hm.Quantity = i
			}
		}
	}

	var missing []string
	if hm.Sku < 0 {
		missing = append(missing, "SKU")
	}
	if hm.Bin < 0 {
		missing = append(missing, "BIN NO./BIN LOCATION")
	}
	if hm.Quantity < 0 {
		missing = append(missing, "QUANTITY/BALANCE")
	}
	if len(missing) > 0 {
		return HeaderMap{}, &MissingHeadersError{Missing: missing, Found: found}
	}
	return hm, nil
}

// ErrEmptySheet la grilla no tiene encabezado más al menos una fila de datos.
var ErrEmptySheet = fmt.Errorf("el archivo debe contener una fila de encabezado y al menos una fila de datos")

// ParseGrid convierte la grilla cruda (primera fila = encabezado) en filas
// propuestas. Descarta filas totalmente vacías y conserva el número de fila
// del archivo original (los datos empiezan en la fila 2).
func ParseGrid(grid [][]string) ([]RowInput, error) {
	if len(grid) < 2 {
		return nil, ErrEmptySheet
	}
	hm, err := ResolveHeaders(grid[0])
	if err != nil {
		return nil, err
	}

	rows := make([]RowInput, 0, len(grid)-1)
	for i, raw := range grid[1:] {
		if emptyRow(raw) {
			continue
		}
		rows = append(rows, RowInput{
			Row:      i + 2, // +2: encabezado en fila 1, datos desde fila 2
			Sku:      cell(raw, hm.Sku),
			Bin:      cell(raw, hm.Bin),
			Quantity: cell(raw, hm.Quantity),
		})
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
