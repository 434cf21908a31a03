package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InventoryRepository define el puerto para consultar/ajustar el stock agregado
// por SKU+bin. Toda mutación pasa por AdjustStock; nunca se escribe la cantidad
// directamente. Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	// Get devuelve la fila de inventario o nil si no existe.
	Get(ctx context.Context, skuID, bin string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar por clave.
	GetForUpdate(ctx context.Context, skuID, bin string) (*entity.Inventory, error)
	// AdjustStock aplica un incremento atómico (positivo o negativo) sobre la clave.
	// Un delta positivo crea la fila si no existe; uno negativo devuelve
	// domain.ErrLedgerMissing cuando la fila no existe.
	AdjustStock(ctx context.Context, skuID, bin string, delta int64) (*entity.Inventory, error)
	// ListBySku devuelve el stock del SKU en todas sus ubicaciones.
	ListBySku(ctx context.Context, skuID string) ([]*entity.Inventory, error)
}
