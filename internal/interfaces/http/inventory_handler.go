package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inbound"
)

// InventoryHandler lecturas del libro de stock y del registro de ubicaciones (protegido).
type InventoryHandler struct {
	uc *inbound.InsetUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inbound.InsetUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetBySku godoc
// @Summary      Stock actual de un SKU en todas sus ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        skuId  path  string  true  "SKU"
// @Success      200    {array}  dto.InventoryResponse
// @Router       /api/inventory/{skuId} [get]
func (h *InventoryHandler) GetBySku(c *fiber.Ctx) error {
	list, err := h.uc.InventoryBySku(c.Context(), c.Params("skuId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.InventoryResponse{
			SkuID:     inv.SkuID,
			Bin:       inv.Bin,
			Quantity:  inv.Quantity,
			UpdatedAt: inv.UpdatedAt,
		})
	}
	return c.JSON(out)
}

// ListBins godoc
// @Summary      Listar ubicaciones activas
// @Tags         bins
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BinResponse
// @Router       /api/bins [get]
func (h *InventoryHandler) ListBins(c *fiber.Ctx) error {
	bins, err := h.uc.ListBins(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BinResponse, 0, len(bins))
	for _, b := range bins {
		out = append(out, dto.BinResponse{Name: b.Name, IsActive: b.IsActive})
	}
	return c.JSON(out)
}
