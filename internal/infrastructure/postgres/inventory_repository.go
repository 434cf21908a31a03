package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx). La tabla inventory tiene clave única (sku_id, bin)
// y un CHECK quantity >= 0 que respalda el invariante de no-negatividad.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la fila de inventario o nil si no existe.
func (r *InventoryRepo) Get(ctx context.Context, skuID, bin string) (*entity.Inventory, error) {
	query := `
		SELECT sku_id, bin, quantity, updated_at
		FROM inventory WHERE sku_id = $1 AND bin = $2`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, skuID, bin).Scan(&inv.SkuID, &inv.Bin, &inv.Quantity, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) para
// serializar las mutaciones sobre la misma clave. Claves distintas no se
// bloquean entre sí. Devuelve nil si la fila no existe.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, skuID, bin string) (*entity.Inventory, error) {
	query := `
		SELECT sku_id, bin, quantity, updated_at
		FROM inventory WHERE sku_id = $1 AND bin = $2
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, skuID, bin).Scan(&inv.SkuID, &inv.Bin, &inv.Quantity, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// AdjustStock aplica un incremento atómico sobre la clave (sku_id, bin).
// Delta positivo: upsert que suma sobre la fila existente o la crea.
// Delta negativo: update puro; jamás crea la fila (implica una entrada previa)
// y devuelve ErrLedgerMissing si no existe.
func (r *InventoryRepo) AdjustStock(ctx context.Context, skuID, bin string, delta int64) (*entity.Inventory, error) {
	var inv entity.Inventory
	if delta >= 0 {
		query := `
			INSERT INTO inventory (sku_id, bin, quantity, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (sku_id, bin)
			DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity, updated_at = now()
			RETURNING sku_id, bin, quantity, updated_at`
		err := r.q.QueryRow(ctx, query, skuID, bin, delta).Scan(&inv.SkuID, &inv.Bin, &inv.Quantity, &inv.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("adjust stock (+%d) %s/%s: %w", delta, skuID, bin, err)
		}
		return &inv, nil
	}

	query := `
		UPDATE inventory
		SET quantity = quantity + $3, updated_at = now()
		WHERE sku_id = $1 AND bin = $2
		RETURNING sku_id, bin, quantity, updated_at`
	err := r.q.QueryRow(ctx, query, skuID, bin, delta).Scan(&inv.SkuID, &inv.Bin, &inv.Quantity, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("adjust stock (%d) %s/%s: %w", delta, skuID, bin, domain.ErrLedgerMissing)
		}
		// Respaldo del invariante: el CHECK quantity >= 0 dispara si el caller
		// no pasó por la guardia de reversión.
		if isCheckViolation(err) {
			current, getErr := r.Get(ctx, skuID, bin)
			if getErr == nil && current != nil {
				return nil, &domain.NegativeStockError{SkuID: skuID, Bin: bin, Current: current.Quantity, Requested: -delta}
			}
			return nil, &domain.NegativeStockError{SkuID: skuID, Bin: bin, Requested: -delta}
		}
		return nil, fmt.Errorf("adjust stock (%d) %s/%s: %w", delta, skuID, bin, err)
	}
	return &inv, nil
}

// ListBySku devuelve el stock del SKU en todas sus ubicaciones.
func (r *InventoryRepo) ListBySku(ctx context.Context, skuID string) ([]*entity.Inventory, error) {
	query := `
		SELECT sku_id, bin, quantity, updated_at
		FROM inventory WHERE sku_id = $1
		ORDER BY bin`
	rows, err := r.q.Query(ctx, query, skuID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by sku: %w", err)
	}
	defer rows.Close()

	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.SkuID, &inv.Bin, &inv.Quantity, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
