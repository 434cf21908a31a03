package entity

import "time"

// Inset representa una entrada de mercancía: un evento discreto de ingreso
// de un SKU a una ubicación (bin). Inmutable salvo por los flujos explícitos
// de actualización y borrado; el borrado exige la reversión del inventario.
type Inset struct {
	ID        string
	SkuID     string // normalizado: trim + mayúsculas
	Bin       string // normalizado: trim + mayúsculas
	Quantity  int64  // siempre > 0
	UserID    string
	UserName  string
	BatchID   string // vacío para altas individuales; agrupa filas de una importación
	CreatedAt time.Time
}
