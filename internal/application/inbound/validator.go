package inbound

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Tipos de error de fila. Una fila rechazada no detiene el resto del lote.
const (
	RowErrMissingField    = "MISSING_FIELD"
	RowErrInvalidQuantity = "INVALID_QUANTITY"
	RowErrUnknownBin      = "UNKNOWN_BIN"
	RowErrCritical        = "CRITICAL"
)

// RowInput una fila propuesta tal como llegó (valores crudos de celda).
// Row es el número de fila en el archivo origen (el encabezado es la fila 1).
type RowInput struct {
	Row      int
	Sku      string
	Bin      string
	Quantity string
}

// NormalizedRow fila aceptada con campos normalizados, lista para aplicar.
type NormalizedRow struct {
	Row      int
	SkuID    string
	Bin      string
	Quantity int64
}

// RowError rechazo tipado de una fila. Conserva los valores originales para que
// el caller construya failedEntries sin re-derivarlos.
type RowError struct {
	Row      int
	Type     string
	Message  string
	Sku      string
	Bin      string
	Quantity string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("fila %d [%s]: %s", e.Row, e.Type, e.Message)
}

// BinSet snapshot inmutable de nombres de ubicaciones activas, normalizados.
// Se carga una sola vez por lote y se comparte entre validaciones concurrentes.
type BinSet map[string]struct{}

// NewBinSet construye el set normalizando cada nombre.
func NewBinSet(names []string) BinSet {
	set := make(BinSet, len(names))
	for _, n := range names {
		n = Normalize(n)
		if n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Has espera un nombre ya normalizado.
func (s BinSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Normalize recorta espacios y pasa a mayúsculas (SKUs y bins se comparan así).
func Normalize(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

var quantityJunk = regexp.MustCompile(`[^\d.\-]`)

// ParseQuantity limpia caracteres no numéricos, interpreta el resto como decimal
// y trunca hacia abajo. ok es false si no queda un número interpretable.
func ParseQuantity(raw string) (int64, bool) {
	cleaned := quantityJunk.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	return d.Floor().IntPart(), true
}

// ValidateRow decide aceptar o rechazar una fila contra el snapshot de bins.
// Reglas en orden: campos presentes, cantidad entera positiva, bin existente.
// El SKU solo se normaliza: un SKU desconocido es válido (el inventario se crea
// con el primer movimiento). Las entradas JAMÁS crean bins.
func ValidateRow(in RowInput, bins BinSet) (NormalizedRow, *RowError) {
	reject := func(typ, msg string) (NormalizedRow, *RowError) {
		return NormalizedRow{}, &RowError{
			Row:      in.Row,
			Type:     typ,
			Message:  msg,
			Sku:      strings.TrimSpace(in.Sku),
			Bin:      strings.TrimSpace(in.Bin),
			Quantity: strings.TrimSpace(in.Quantity),
		}
	}

	if strings.TrimSpace(in.Sku) == "" {
		return reject(RowErrMissingField, "SKU es requerido")
	}
	if strings.TrimSpace(in.Bin) == "" {
		return reject(RowErrMissingField, "la ubicación (bin) es requerida")
	}
	if strings.TrimSpace(in.Quantity) == "" {
		return reject(RowErrMissingField, "la cantidad es requerida")
	}

	qty, ok := ParseQuantity(in.Quantity)
	if !ok || qty <= 0 {
		return reject(RowErrInvalidQuantity, fmt.Sprintf("cantidad inválida: %q", strings.TrimSpace(in.Quantity)))
	}

	bin := Normalize(in.Bin)
	if !bins.Has(bin) {
		return reject(RowErrUnknownBin, fmt.Sprintf("la ubicación %q no existe; créela antes de importar", bin))
	}

	return NormalizedRow{
		Row:      in.Row,
		SkuID:    Normalize(in.Sku),
		Bin:      bin,
		Quantity: qty,
	}, nil
}
