package dto

// BatchSubmitRequest body para POST /api/insets/batch: envío programático de
// filas ya tabuladas, sin pasar por Excel. Usa el mismo motor de reconciliación.
type BatchSubmitRequest struct {
	Rows []BatchRow `json:"rows"`
}

// BatchRow una fila propuesta (valores crudos, se validan igual que en Excel).
type BatchRow struct {
	SkuID    string `json:"skuId"`
	Bin      string `json:"bin"`
	Quantity string `json:"quantity"`
}

// ImportResult es el reporte de una reconciliación por lotes. Contrato estable
// con los clientes existentes: se serializa plano, con errores y failedEntries
// en orden de fila original para que el usuario pueda reconstruir un archivo
// corregido.
type ImportResult struct {
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	TotalRows     int           `json:"totalRows"`
	ProcessedRows int           `json:"processedRows"`
	SuccessCount  int           `json:"successCount"`
	ErrorCount    int           `json:"errorCount"`
	Warnings      []RowWarning  `json:"warnings"`
	Errors        []RowError    `json:"errors"`
	FailedEntries []FailedEntry `json:"failedEntries"`
	CreatedBins   []string      `json:"createdBins"` // siempre vacío: las entradas nunca crean bins
	Summary       []RowSummary  `json:"summary"`
	Stats         ImportStats   `json:"stats"`
}

// RowError error diagnóstico de una fila (o fila 0 para errores fatales del lote).
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
	Type    string `json:"type"` // MISSING_FIELD, INVALID_QUANTITY, UNKNOWN_BIN, CRITICAL
}

// RowWarning aviso no bloqueante asociado a una fila.
type RowWarning struct {
	Row     int    `json:"row"`
	Sku     string `json:"sku,omitempty"`
	Bin     string `json:"bin,omitempty"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// FailedEntry fila rechazada con sus valores originales y la razón,
// suficiente para regenerar un archivo de reenvío.
type FailedEntry struct {
	Row      int    `json:"row"`
	Sku      string `json:"sku"`
	Bin      string `json:"bin"`
	Quantity string `json:"quantity"`
	Reason   string `json:"reason"`
}

// RowSummary estado final de una fila procesada.
type RowSummary struct {
	Row      int    `json:"row"`
	Sku      string `json:"sku"`
	Bin      string `json:"bin"`
	Quantity int64  `json:"quantity"`
	Status   string `json:"status"` // SUCCESS | FAILED
}

// ImportStats métricas agregadas del lote.
type ImportStats struct {
	SuccessRate        string `json:"successRate"` // porcentaje con un decimal, ej. "33.3%"
	WarningCount       int    `json:"warningCount"`
	FailedEntriesCount int    `json:"failedEntriesCount"`
}
