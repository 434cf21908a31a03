//go:build tools

package main

// Dependencias de herramientas (no se compilan con la aplicación).
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
