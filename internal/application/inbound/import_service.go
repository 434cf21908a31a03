package inbound

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ImportService es el motor de reconciliación por lotes: valida cada fila
// propuesta contra el snapshot de bins, aplica las aceptadas en UNA transacción
// (ajuste de stock + registro de entrada por fila) y produce un reporte con
// éxito parcial: las filas rechazadas no revierten a las aceptadas.
type ImportService struct {
	tx      TxRunner
	binRepo repository.BinRepository
	audit   repository.AuditLogRepository
	log     *logger.Logger
	workers int
}

// NewImportService construye el motor. workers acota la validación concurrente.
func NewImportService(
	tx TxRunner,
	binRepo repository.BinRepository,
	audit repository.AuditLogRepository,
	log *logger.Logger,
	workers int,
) *ImportService {
	if workers <= 0 {
		workers = 8
	}
	return &ImportService{tx: tx, binRepo: binRepo, audit: audit, log: log, workers: workers}
}

// ImportGrid procesa una grilla de celdas (encabezado + datos) ya extraída del
// archivo. Los errores de encabezado o grilla vacía son fatales: ninguna fila
// se procesa y el reporte lo refleja con un error de nivel superior.
func (s *ImportService) ImportGrid(ctx context.Context, grid [][]string, actor Actor) *dto.ImportResult {
	rows, err := ParseGrid(grid)
	if err != nil {
		res := newResult(0)
		fatal(res, err.Error())
		finalize(res)
		return res
	}
	return s.Reconcile(ctx, rows, actor)
}

// Reconcile ejecuta el pipeline completo sobre filas ya tabuladas:
// snapshot de bins → validación concurrente → partición → aplicación atómica
// del subconjunto válido → auditoría best-effort → reporte.
func (s *ImportService) Reconcile(ctx context.Context, rows []RowInput, actor Actor) *dto.ImportResult {
	res := newResult(len(rows))
	if len(rows) == 0 {
		fatal(res, "el lote no contiene filas de datos")
		finalize(res)
		return res
	}

	s.log.Info().Int("total_rows", len(rows)).Str("user", actor.Name).Msg("iniciando reconciliación de entradas")

	// Snapshot único de bins para todo el lote. Sin él no se procesa nada.
	binSet, err := s.loadBinSet(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("no se pudo cargar el registro de ubicaciones")
		res.ErrorCount = res.TotalRows
		fatal(res, "no se pudieron cargar las ubicaciones válidas: "+err.Error())
		finalize(res)
		return res
	}

	// Fase 1 (pura): validar todas las filas en paralelo acotado. El resultado
	// se indexa por posición para preservar el orden original en el reporte.
	accepted := make([]*NormalizedRow, len(rows))
	rejected := make([]*RowError, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			norm, rerr := ValidateRow(rows[i], binSet)
			if rerr != nil {
				rejected[i] = rerr
				return nil
			}
			accepted[i] = &norm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		res.ErrorCount = res.TotalRows
		fatal(res, "lote cancelado durante la validación: "+err.Error())
		finalize(res)
		return res
	}

	var toApply []*NormalizedRow
	for i := range rows {
		if rerr := rejected[i]; rerr != nil {
			recordRejection(res, rerr)
			continue
		}
		toApply = append(toApply, accepted[i])
	}

	// Rechazo total: el lote entero es un no-op sobre el libro de stock.
	if len(toApply) == 0 {
		res.ProcessedRows = res.TotalRows
		finalize(res)
		s.log.Warn().Int("rejected", res.ErrorCount).Msg("lote rechazado por completo; inventario intacto")
		return res
	}

	// Fase 2 (atómica): aplicar el subconjunto válido en una sola transacción.
	batchID := uuid.New().String()
	now := time.Now()
	applied := make([]*entity.Inset, 0, len(toApply))

	txErr := s.tx.Run(ctx, func(insetRepo repository.InsetRepository, invRepo repository.InventoryRepository) error {
		for _, row := range toApply {
			if _, err := invRepo.AdjustStock(ctx, row.SkuID, row.Bin, row.Quantity); err != nil {
				return fmt.Errorf("fila %d: ajustar stock %s/%s: %w", row.Row, row.SkuID, row.Bin, err)
			}
			inset := &entity.Inset{
				ID:        uuid.New().String(),
				SkuID:     row.SkuID,
				Bin:       row.Bin,
				Quantity:  row.Quantity,
				UserID:    actor.ID,
				UserName:  actorName(actor),
				BatchID:   batchID,
				CreatedAt: now,
			}
			if err := insetRepo.Create(ctx, inset); err != nil {
				return fmt.Errorf("fila %d: registrar entrada: %w", row.Row, err)
			}
			applied = append(applied, inset)
		}
		return nil
	})
	if txErr != nil {
		// Rollback total: el libro no queda a medias. Las filas válidas se
		// reportan como fallidas por persistencia para permitir el reenvío.
		s.log.Error().Err(txErr).Str("batch_id", batchID).Msg("fallo el commit del lote; sin cambios aplicados")
		res.SuccessCount = 0
		res.ProcessedRows = 0
		res.ErrorCount = res.TotalRows
		res.Errors = append(res.Errors, dto.RowError{Row: 0, Message: "no se pudo aplicar el lote: " + txErr.Error(), Type: RowErrCritical})
		for _, row := range toApply {
			res.FailedEntries = append(res.FailedEntries, dto.FailedEntry{
				Row:      row.Row,
				Sku:      row.SkuID,
				Bin:      row.Bin,
				Quantity: fmt.Sprintf("%d", row.Quantity),
				Reason:   "error de persistencia: el lote no se aplicó",
			})
		}
		finalize(res)
		return res
	}

	for _, row := range toApply {
		res.SuccessCount++
		res.Summary = append(res.Summary, dto.RowSummary{
			Row:      row.Row,
			Sku:      row.SkuID,
			Bin:      row.Bin,
			Quantity: row.Quantity,
			Status:   "SUCCESS",
		})
	}
	res.ProcessedRows = res.TotalRows

	// Auditoría best-effort, fuera de la transacción: sus fallos se registran
	// en el log y jamás escalan a fallo de fila.
	if failures := s.auditBatch(ctx, applied, actor, batchID); failures > 0 {
		s.log.Warn().Int("audit_failures", failures).Str("batch_id", batchID).Msg("entradas de auditoría perdidas")
	}

	finalize(res)
	s.log.Info().
		Int("success", res.SuccessCount).
		Int("errors", res.ErrorCount).
		Str("rate", res.Stats.SuccessRate).
		Str("batch_id", batchID).
		Msg("reconciliación completada")
	return res
}

// loadBinSet carga el snapshot de ubicaciones activas, normalizado, una vez por lote.
func (s *ImportService) loadBinSet(ctx context.Context) (BinSet, error) {
	bins, err := s.binRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(bins))
	for _, b := range bins {
		names = append(names, b.Name)
	}
	return NewBinSet(names), nil
}

func (s *ImportService) auditBatch(ctx context.Context, applied []*entity.Inset, actor Actor, batchID string) int {
	failures := 0
	for _, inset := range applied {
		entry := &entity.AuditLog{
			ID:             uuid.New().String(),
			ActionType:     entity.AuditInsetCreated,
			CollectionName: "insets",
			DocumentID:     inset.ID,
			Changes: map[string]any{
				"sku":      inset.SkuID,
				"bin":      inset.Bin,
				"quantity": inset.Quantity,
				"source":   "Excel Import",
				"batchId":  batchID,
			},
			UserID:    actor.ID,
			UserName:  actorName(actor),
			CreatedAt: time.Now(),
		}
		if err := s.audit.Record(ctx, entry); err != nil {
			failures++
		}
	}
	return failures
}

func actorName(a Actor) string {
	if a.Name == "" {
		return "Excel Import"
	}
	return a.Name
}

func newResult(totalRows int) *dto.ImportResult {
	return &dto.ImportResult{
		TotalRows:     totalRows,
		Warnings:      []dto.RowWarning{},
		Errors:        []dto.RowError{},
		FailedEntries: []dto.FailedEntry{},
		CreatedBins:   []string{},
		Summary:       []dto.RowSummary{},
	}
}

// fatal registra un error de nivel superior (fila 0) que aborta el lote.
func fatal(res *dto.ImportResult, msg string) {
	res.Errors = append(res.Errors, dto.RowError{Row: 0, Message: msg, Type: RowErrCritical})
	if res.ErrorCount == 0 {
		res.ErrorCount = 1
	}
	res.SuccessCount = 0
	res.ProcessedRows = 0
}

func recordRejection(res *dto.ImportResult, rerr *RowError) {
	res.ErrorCount++
	res.Errors = append(res.Errors, dto.RowError{Row: rerr.Row, Message: rerr.Message, Type: rerr.Type})
	res.FailedEntries = append(res.FailedEntries, dto.FailedEntry{
		Row:      rerr.Row,
		Sku:      rerr.Sku,
		Bin:      rerr.Bin,
		Quantity: rerr.Quantity,
		Reason:   rerr.Message,
	})
}

// finalize calcula las métricas agregadas del reporte.
func finalize(res *dto.ImportResult) {
	rate := "0%"
	if res.TotalRows > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(res.SuccessCount)/float64(res.TotalRows)*100)
	}
	res.Stats = dto.ImportStats{
		SuccessRate:        rate,
		WarningCount:       len(res.Warnings),
		FailedEntriesCount: len(res.FailedEntries),
	}
}
