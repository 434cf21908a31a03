package entity

import "time"

// Inventory representa el stock agregado de un SKU en un bin (clave única SKU+bin).
// Invariante: en reposo, Quantity es la suma de todas las entradas registradas
// menos las salidas para esa pareja, y nunca es negativa. Solo se muta a través
// del ajuste aditivo del repositorio, nunca por escritura directa.
type Inventory struct {
	SkuID     string
	Bin       string
	Quantity  int64
	UpdatedAt time.Time
}
