package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// BinRepository define el puerto de solo lectura sobre el registro de ubicaciones.
// El CRUD de bins es un colaborador externo; este servicio jamás crea bins.
type BinRepository interface {
	// ListActive devuelve todas las ubicaciones activas.
	ListActive(ctx context.Context) ([]*entity.Bin, error)
	// ExistsActive indica si existe una ubicación activa con ese nombre normalizado.
	ExistsActive(ctx context.Context, name string) (bool, error)
}
