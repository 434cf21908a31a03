package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.BinRepository = (*BinRepo)(nil)

// BinRepo lectura del registro de ubicaciones. El CRUD de bins pertenece a
// otro servicio; aquí solo se consulta existencia y estado activo.
type BinRepo struct {
	q Querier
}

// NewBinRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBinRepository(q Querier) *BinRepo {
	return &BinRepo{q: q}
}

// ListActive devuelve todas las ubicaciones activas.
func (r *BinRepo) ListActive(ctx context.Context) ([]*entity.Bin, error) {
	query := `
		SELECT id, name, is_active, created_at
		FROM bins WHERE is_active = true
		ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active bins: %w", err)
	}
	defer rows.Close()

	var list []*entity.Bin
	for rows.Next() {
		var b entity.Bin
		if err := rows.Scan(&b.ID, &b.Name, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bin: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ExistsActive indica si existe una ubicación activa con ese nombre (ya normalizado).
func (r *BinRepo) ExistsActive(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bins WHERE name = $1 AND is_active = true)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists active bin: %w", err)
	}
	return exists, nil
}
