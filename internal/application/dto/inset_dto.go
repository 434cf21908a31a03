package dto

import "time"

// CreateInsetRequest body para POST /api/insets (alta individual).
type CreateInsetRequest struct {
	SkuID    string `json:"skuId"`
	Bin      string `json:"bin"`
	Quantity int64  `json:"quantity"`
}

// UpdateInsetRequest body para PUT /api/insets/:id.
type UpdateInsetRequest struct {
	SkuID    string `json:"skuId"`
	Bin      string `json:"bin"`
	Quantity int64  `json:"quantity"`
}

// InsetResponse representación HTTP de una entrada registrada.
type InsetResponse struct {
	ID        string    `json:"id"`
	SkuID     string    `json:"skuId"`
	Bin       string    `json:"bin"`
	Quantity  int64     `json:"quantity"`
	UserID    string    `json:"userId,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	BatchID   string    `json:"batchId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// InventoryResponse fila del libro de stock por SKU+bin.
type InventoryResponse struct {
	SkuID     string    `json:"skuId"`
	Bin       string    `json:"bin"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"lastUpdated"`
}

// BinResponse ubicación activa visible para los clientes del importador.
type BinResponse struct {
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// DeleteInsetResponse resultado del borrado con reversión de inventario.
type DeleteInsetResponse struct {
	Message      string           `json:"message"`
	DeletedInset InsetResponse    `json:"deletedInset"`
	Inventory    InventoryUpdate  `json:"inventoryUpdate"`
}

// InventoryUpdate detalle antes/después de la reversión.
type InventoryUpdate struct {
	SkuID       string `json:"skuId"`
	Bin         string `json:"bin"`
	OldQuantity int64  `json:"oldQuantity"`
	NewQuantity int64  `json:"newQuantity"`
	Reversed    int64  `json:"reversed"`
}
