package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AuditLogRepository define el sink de auditoría, append-only y best-effort:
// el caller registra y sigue; un fallo aquí nunca escala a la operación principal.
type AuditLogRepository interface {
	Record(ctx context.Context, log *entity.AuditLog) error
}
