package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InsetRepository define el puerto de persistencia para entradas de mercancía (DIP).
// Es el log de movimientos: fuente de verdad para reconciliación y reversión.
type InsetRepository interface {
	Create(ctx context.Context, inset *entity.Inset) error
	GetByID(ctx context.Context, id string) (*entity.Inset, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Inset, error)
	Update(ctx context.Context, inset *entity.Inset) error
	Delete(ctx context.Context, id string) error
}
