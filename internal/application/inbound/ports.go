package inbound

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de entradas:
// o se aplican todos los ajustes de stock y registros del lote, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		insetRepo repository.InsetRepository,
		invRepo repository.InventoryRepository,
	) error) error
}

// Actor identidad del usuario que origina la operación (viene del token).
type Actor struct {
	ID   string
	Name string
}
