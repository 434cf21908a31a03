package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inbound"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// InsetHandler maneja las peticiones HTTP de entradas individuales (protegido).
type InsetHandler struct {
	uc *inbound.InsetUseCase
}

// NewInsetHandler construye el handler.
func NewInsetHandler(uc *inbound.InsetUseCase) *InsetHandler {
	return &InsetHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una entrada de mercancía
// @Tags         insets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInsetRequest  true  "skuId, bin, quantity"
// @Success      201   {object}  dto.InsetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/insets [post]
func (h *InsetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInsetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actor := inbound.Actor{ID: GetUserID(c), Name: GetUsername(c)}
	inset, err := h.uc.Create(c.Context(), in, actor)
	if err != nil {
		return insetError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "entrada registrada",
		"inset":   toInsetResponse(inset),
	})
}

// List godoc
// @Summary      Listar entradas (más recientes primero)
// @Tags         insets
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.InsetResponse
// @Router       /api/insets [get]
func (h *InsetHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	insets, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.InsetResponse, 0, len(insets))
	for _, inset := range insets {
		out = append(out, toInsetResponse(inset))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener entrada por ID
// @Tags         insets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.InsetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insets/{id} [get]
func (h *InsetHandler) GetByID(c *fiber.Ctx) error {
	inset, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if inset == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	}
	return c.JSON(toInsetResponse(inset))
}

// Update godoc
// @Summary      Corregir una entrada (ajusta el inventario con deltas compensatorios)
// @Tags         insets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la entrada"
// @Param        body  body  dto.UpdateInsetRequest  true  "skuId, bin, quantity"
// @Success      200   {object}  dto.InsetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/insets/{id} [put]
func (h *InsetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInsetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inset, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return insetError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "entrada actualizada",
		"inset":   toInsetResponse(inset),
	})
}

// Delete godoc
// @Summary      Eliminar una entrada revirtiendo el inventario (solo admin)
// @Tags         insets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.DeleteInsetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/insets/{id} [delete]
func (h *InsetHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return insetError(c, err)
	}
	return c.JSON(out)
}

// insetError mapea errores de dominio a códigos HTTP.
func insetError(c *fiber.Ctx, err error) error {
	if nse, ok := domain.IsNegativeStock(err); ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":           "WOULD_GO_NEGATIVE",
			"message":        nse.Error(),
			"currentStock":   nse.Current,
			"requested":      nse.Requested,
			"resultingStock": nse.Current - nse.Requested,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "skuId, bin y quantity (> 0) son requeridos"})
	case errors.Is(err, domain.ErrBinNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_BIN", Message: "la ubicación no existe; créela primero"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrada no encontrada"})
	case errors.Is(err, domain.ErrLedgerMissing):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LEDGER_MISSING", Message: "no hay inventario registrado para ese SKU+bin"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el registro ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toInsetResponse(inset *entity.Inset) dto.InsetResponse {
	return dto.InsetResponse{
		ID:        inset.ID,
		SkuID:     inset.SkuID,
		Bin:       inset.Bin,
		Quantity:  inset.Quantity,
		UserID:    inset.UserID,
		UserName:  inset.UserName,
		BatchID:   inset.BatchID,
		CreatedAt: inset.CreatedAt,
	}
}
