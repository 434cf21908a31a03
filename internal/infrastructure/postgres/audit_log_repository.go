package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo sink de auditoría append-only sobre PostgreSQL.
// Los callers tratan sus fallos como no fatales.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Record inserta la entrada de auditoría. Changes se serializa como JSONB.
func (r *AuditLogRepo) Record(ctx context.Context, log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	changes, err := json.Marshal(log.Changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}
	query := `
		INSERT INTO audit_logs (id, action_type, collection_name, document_id, changes, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		log.ID, log.ActionType, log.CollectionName, log.DocumentID,
		changes, log.UserID, log.UserName, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record audit log: %w", err)
	}
	return nil
}
