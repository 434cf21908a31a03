package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrBinNotFound   = errors.New("la ubicación (bin) no existe o está inactiva")
	ErrLedgerMissing = errors.New("no hay registro de inventario para ese SKU+bin")
)

// NegativeStockError indica que una reversión o ajuste dejaría el inventario
// por debajo de cero. No se aplica ninguna mutación cuando ocurre.
type NegativeStockError struct {
	SkuID     string
	Bin       string
	Current   int64 // stock actual
	Requested int64 // cantidad que se intentó restar
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("la reversión dejaría stock negativo para %s en %s: actual %d, solicitado %d",
		e.SkuID, e.Bin, e.Current, e.Requested)
}

// Deficit devuelve cuántas unidades faltan para poder aplicar la resta.
func (e *NegativeStockError) Deficit() int64 {
	return e.Requested - e.Current
}

// IsNegativeStock extrae el NegativeStockError de una cadena de errores, si existe.
func IsNegativeStock(err error) (*NegativeStockError, bool) {
	var nse *NegativeStockError
	if errors.As(err, &nse) {
		return nse, true
	}
	return nil, false
}
