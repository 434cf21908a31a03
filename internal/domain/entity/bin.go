package entity

import "time"

// Bin es una ubicación física de almacenamiento. Su registro (CRUD) vive fuera
// de este servicio; aquí solo se consumen el nombre normalizado y el flag activo.
type Bin struct {
	ID        string
	Name      string // único, mayúsculas
	IsActive  bool
	CreatedAt time.Time
}
