package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inbound"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/excel"
)

// Tipos MIME aceptados para la carga de archivos de entradas.
var allowedMimeTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-excel":                                          true,
}

// ImportHandler maneja la importación masiva de entradas (protegido).
type ImportHandler struct {
	svc         *inbound.ImportService
	maxUploadMB int
	timeout     time.Duration
}

// NewImportHandler construye el handler. timeoutSeconds acota la reconciliación completa.
func NewImportHandler(svc *inbound.ImportService, maxUploadMB, timeoutSeconds int) *ImportHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 120
	}
	return &ImportHandler{
		svc:         svc,
		maxUploadMB: maxUploadMB,
		timeout:     time.Duration(timeoutSeconds) * time.Second,
	}
}

// ImportExcel godoc
// @Summary      Importar entradas desde un archivo Excel
// @Description  Valida cada fila contra las ubicaciones activas y aplica las
// @Description  aceptadas en una sola transacción. Soporta éxito parcial:
// @Description  200 todo ok, 207 mixto, 400 rechazo total o error fatal.
// @Tags         import
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .xlsx con columnas SKU, BIN, QUANTITY"
// @Success      200   {object}  dto.ImportResult
// @Success      207   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ImportResult
// @Router       /api/insets/import [post]
func (h *ImportHandler) ImportExcel(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "no se recibió archivo; seleccione un Excel"})
	}
	if !allowedMimeTypes[fileHeader.Header.Get("Content-Type")] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE_TYPE", Message: "tipo de archivo inválido; suba un Excel (.xlsx o .xls)"})
	}
	if fileHeader.Size > int64(h.maxUploadMB)*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "archivo demasiado grande"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo abrir el archivo"})
	}
	defer func() { _ = file.Close() }()

	grid, err := excel.ReadGrid(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el Excel: " + err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	actor := inbound.Actor{ID: GetUserID(c), Name: GetUsername(c)}
	res := h.svc.ImportGrid(ctx, grid, actor)
	return respondBatch(c, res)
}

// SubmitBatch godoc
// @Summary      Enviar un lote de entradas ya tabulado (sin Excel)
// @Description  Mismo motor de reconciliación que la importación por archivo.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchSubmitRequest  true  "Filas propuestas en orden"
// @Success      200   {object}  dto.ImportResult
// @Success      207   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ImportResult
// @Router       /api/insets/batch [post]
func (h *ImportHandler) SubmitBatch(c *fiber.Ctx) error {
	var in dto.BatchSubmitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	rows := make([]inbound.RowInput, 0, len(in.Rows))
	for i, r := range in.Rows {
		rows = append(rows, inbound.RowInput{
			Row:      i + 1, // sin encabezado: la primera fila del lote es la 1
			Sku:      r.SkuID,
			Bin:      r.Bin,
			Quantity: r.Quantity,
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	actor := inbound.Actor{ID: GetUserID(c), Name: GetUsername(c)}
	res := h.svc.Reconcile(ctx, rows, actor)
	return respondBatch(c, res)
}

// DownloadTemplate godoc
// @Summary      Descargar la plantilla Excel de importación
// @Tags         import
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/insets/import/template [get]
func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	buf, err := excel.BuildInboundTemplate()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="plantilla_entradas.xlsx"`)
	return c.Send(buf.Bytes())
}

// ExportCorrections godoc
// @Summary      Generar un archivo de reenvío desde las filas rechazadas
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  []dto.FailedEntry  true  "failedEntries del reporte de importación"
// @Success      200   {file}  binary
// @Router       /api/insets/import/corrections [post]
func (h *ImportHandler) ExportCorrections(c *fiber.Ctx) error {
	var failed []dto.FailedEntry
	if err := c.BodyParser(&failed); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	buf, err := excel.BuildCorrectionFile(failed)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="entradas_corregir.xlsx"`)
	return c.Send(buf.Bytes())
}

// respondBatch aplica el contrato de tres salidas: todo ok → 200,
// fallo total → 400, éxito parcial → 207 (multi-status).
func respondBatch(c *fiber.Ctx, res *dto.ImportResult) error {
	status := fiber.StatusOK
	res.Success = true
	res.Message = "importación completada"

	switch {
	case res.ErrorCount > 0 && res.SuccessCount == 0:
		status = fiber.StatusBadRequest
		res.Success = false
		res.Message = "la importación falló; revise los errores y reintente"
	case res.ErrorCount > 0:
		status = fiber.StatusMultiStatus
		res.Message = "importación completada con errores parciales"
	}
	return c.Status(status).JSON(res)
}
