package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/inbound"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InsetUC       *inbound.InsetUseCase
	ImportService *inbound.ImportService
	MaxUploadMB   int
	ImportTimeout int // segundos
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Entradas individuales
	insets := protected.Group("/insets")
	insetHandler := NewInsetHandler(deps.InsetUC)
	insets.Post("/", insetHandler.Create)
	insets.Get("/", insetHandler.List)

	// Importación masiva (antes de /:id para que no capture "import"/"batch")
	importHandler := NewImportHandler(deps.ImportService, deps.MaxUploadMB, deps.ImportTimeout)
	insets.Post("/import", importHandler.ImportExcel)
	insets.Get("/import/template", importHandler.DownloadTemplate)
	insets.Post("/import/corrections", importHandler.ExportCorrections)
	insets.Post("/batch", importHandler.SubmitBatch)

	insets.Get("/:id", insetHandler.GetByID)
	insets.Put("/:id", insetHandler.Update)
	// El borrado revierte inventario: solo admin
	insets.Delete("/:id", RequireRole("admin"), insetHandler.Delete)

	// Lecturas de inventario y ubicaciones
	inventoryHandler := NewInventoryHandler(deps.InsetUC)
	protected.Get("/inventory/:skuId", inventoryHandler.GetBySku)
	protected.Get("/bins", inventoryHandler.ListBins)
}
