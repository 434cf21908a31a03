package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InsetRepository = (*InsetRepo)(nil)

// InsetRepo implementación de InsetRepository sobre PostgreSQL (usable con pool o tx).
// La tabla insets es el log de movimientos de entrada, fuente de verdad para
// reconciliación y reversión.
type InsetRepo struct {
	q Querier
}

// NewInsetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInsetRepository(q Querier) *InsetRepo {
	return &InsetRepo{q: q}
}

// Create persiste una entrada de mercancía.
func (r *InsetRepo) Create(ctx context.Context, inset *entity.Inset) error {
	if inset.ID == "" {
		inset.ID = uuid.New().String()
	}
	query := `
		INSERT INTO insets (id, sku_id, bin, quantity, user_id, user_name, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	batchID := (*string)(nil)
	if inset.BatchID != "" {
		batchID = &inset.BatchID
	}
	_, err := r.q.Exec(ctx, query,
		inset.ID, inset.SkuID, inset.Bin, inset.Quantity,
		inset.UserID, inset.UserName, batchID, inset.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create inset: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("create inset: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID, nil si no existe.
func (r *InsetRepo) GetByID(ctx context.Context, id string) (*entity.Inset, error) {
	query := `
		SELECT id, sku_id, bin, quantity, user_id, user_name, batch_id, created_at
		FROM insets WHERE id = $1`
	inset, err := scanInset(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inset: %w", err)
	}
	return inset, nil
}

// List devuelve entradas ordenadas por fecha, más recientes primero.
func (r *InsetRepo) List(ctx context.Context, limit, offset int) ([]*entity.Inset, error) {
	query := `
		SELECT id, sku_id, bin, quantity, user_id, user_name, batch_id, created_at
		FROM insets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list insets: %w", err)
	}
	defer rows.Close()

	var list []*entity.Inset
	for rows.Next() {
		inset, err := scanInset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inset: %w", err)
		}
		list = append(list, inset)
	}
	return list, rows.Err()
}

// Update reescribe los campos corregibles de la entrada.
func (r *InsetRepo) Update(ctx context.Context, inset *entity.Inset) error {
	query := `
		UPDATE insets
		SET sku_id = $2, bin = $3, quantity = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, inset.ID, inset.SkuID, inset.Bin, inset.Quantity)
	if err != nil {
		return fmt.Errorf("update inset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la entrada. El caller es responsable de la reversión de inventario.
func (r *InsetRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM insets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInset(row pgx.Row) (*entity.Inset, error) {
	var inset entity.Inset
	var batchID *string
	err := row.Scan(&inset.ID, &inset.SkuID, &inset.Bin, &inset.Quantity,
		&inset.UserID, &inset.UserName, &batchID, &inset.CreatedAt)
	if err != nil {
		return nil, err
	}
	if batchID != nil {
		inset.BatchID = *batchID
	}
	return &inset, nil
}
