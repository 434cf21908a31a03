package entity

import "time"

// Tipos de acción auditadas.
const (
	AuditInsetCreated  = "INSET_CREATED"
	AuditInsetUpdated  = "INSET_UPDATED"
	AuditInsetDeleted  = "INSET_DELETED"
	AuditInboundImport = "INBOUND_IMPORTED"
)

// AuditLog es un hecho append-only sobre una acción que cambió estado.
// Es diagnóstico, no autoritativo: si su escritura falla, la operación
// principal no se ve afectada.
type AuditLog struct {
	ID             string
	ActionType     string
	CollectionName string
	DocumentID     string
	Changes        map[string]any
	UserID         string
	UserName       string
	CreatedAt      time.Time
}
