package inbound

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// InsetUseCase gestiona el ciclo de vida de una entrada individual: alta,
// consulta, corrección y borrado con reversión de inventario. Comparte la
// política de validación del importador (mismas reglas, mismo no-autocrear bins).
type InsetUseCase struct {
	tx        TxRunner
	insetRepo repository.InsetRepository
	invRepo   repository.InventoryRepository
	binRepo   repository.BinRepository
	audit     repository.AuditLogRepository
	log       *logger.Logger
}

// NewInsetUseCase construye el caso de uso. insetRepo/invRepo van atados al pool
// para lecturas; las mutaciones usan los repos atados a la tx que entrega TxRunner.
func NewInsetUseCase(
	tx TxRunner,
	insetRepo repository.InsetRepository,
	invRepo repository.InventoryRepository,
	binRepo repository.BinRepository,
	audit repository.AuditLogRepository,
	log *logger.Logger,
) *InsetUseCase {
	return &InsetUseCase{tx: tx, insetRepo: insetRepo, invRepo: invRepo, binRepo: binRepo, audit: audit, log: log}
}

// Create registra una entrada individual: mismas reglas que una fila del lote
// (bin existente, cantidad positiva, normalización) y misma unidad atómica
// ajuste-de-stock + registro.
func (uc *InsetUseCase) Create(ctx context.Context, in dto.CreateInsetRequest, actor Actor) (*entity.Inset, error) {
	if strings.TrimSpace(in.SkuID) == "" || strings.TrimSpace(in.Bin) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	bin := Normalize(in.Bin)
	ok, err := uc.binRepo.ExistsActive(ctx, bin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrBinNotFound
	}

	name := actor.Name
	if name == "" {
		name = "System"
	}
	inset := &entity.Inset{
		ID:        uuid.New().String(),
		SkuID:     Normalize(in.SkuID),
		Bin:       bin,
		Quantity:  in.Quantity,
		UserID:    actor.ID,
		UserName:  name,
		CreatedAt: time.Now(),
	}

	err = uc.tx.Run(ctx, func(insetRepo repository.InsetRepository, invRepo repository.InventoryRepository) error {
		if _, err := invRepo.AdjustStock(ctx, inset.SkuID, inset.Bin, inset.Quantity); err != nil {
			return err
		}
		return insetRepo.Create(ctx, inset)
	})
	if err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, entity.AuditInsetCreated, inset.ID, map[string]any{
		"sku": inset.SkuID, "bin": inset.Bin, "quantity": inset.Quantity,
	}, actor)
	return inset, nil
}

// GetByID devuelve la entrada o nil si no existe.
func (uc *InsetUseCase) GetByID(ctx context.Context, id string) (*entity.Inset, error) {
	return uc.insetRepo.GetByID(ctx, id)
}

// List devuelve entradas, más recientes primero.
func (uc *InsetUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Inset, error) {
	return uc.insetRepo.List(ctx, limit, offset)
}

// Update corrige una entrada aplicando deltas compensatorios sobre el libro:
// el agregado siempre queda igual a la suma de los movimientos registrados.
// Misma clave: delta = nueva - vieja (con guardia de negativo al restar).
// Clave distinta: revierte la clave vieja y aplica la nueva (el bin debe existir).
func (uc *InsetUseCase) Update(ctx context.Context, id string, in dto.UpdateInsetRequest) (*entity.Inset, error) {
	if strings.TrimSpace(in.SkuID) == "" || strings.TrimSpace(in.Bin) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	newSku := Normalize(in.SkuID)
	newBin := Normalize(in.Bin)

	ok, err := uc.binRepo.ExistsActive(ctx, newBin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrBinNotFound
	}

	var updated *entity.Inset
	err = uc.tx.Run(ctx, func(insetRepo repository.InsetRepository, invRepo repository.InventoryRepository) error {
		old, err := insetRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}

		sameKey := old.SkuID == newSku && old.Bin == newBin
		if sameKey {
			delta := in.Quantity - old.Quantity
			if delta < 0 {
				if err := uc.guardReversal(ctx, invRepo, old.SkuID, old.Bin, -delta); err != nil {
					return err
				}
			}
			if delta != 0 {
				if _, err := invRepo.AdjustStock(ctx, old.SkuID, old.Bin, delta); err != nil {
					return err
				}
			}
		} else {
			if err := uc.guardReversal(ctx, invRepo, old.SkuID, old.Bin, old.Quantity); err != nil {
				return err
			}
			if _, err := invRepo.AdjustStock(ctx, old.SkuID, old.Bin, -old.Quantity); err != nil {
				return err
			}
			if _, err := invRepo.AdjustStock(ctx, newSku, newBin, in.Quantity); err != nil {
				return err
			}
		}

		updated = &entity.Inset{
			ID:        old.ID,
			SkuID:     newSku,
			Bin:       newBin,
			Quantity:  in.Quantity,
			UserID:    old.UserID,
			UserName:  old.UserName,
			BatchID:   old.BatchID,
			CreatedAt: old.CreatedAt,
		}
		return insetRepo.Update(ctx, updated)
	})
	if err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, entity.AuditInsetUpdated, id, map[string]any{
		"sku": newSku, "bin": newBin, "quantity": in.Quantity,
	}, Actor{ID: updated.UserID, Name: updated.UserName})
	return updated, nil
}

// Delete borra la entrada y revierte el inventario como unidad atómica.
// Rechaza con NegativeStockError si la reversión dejaría stock negativo,
// sin mutar nada: el libro jamás baja de cero por una reversión.
func (uc *InsetUseCase) Delete(ctx context.Context, id string) (*dto.DeleteInsetResponse, error) {
	var out *dto.DeleteInsetResponse
	err := uc.tx.Run(ctx, func(insetRepo repository.InsetRepository, invRepo repository.InventoryRepository) error {
		inset, err := insetRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inset == nil {
			return domain.ErrNotFound
		}

		inv, err := invRepo.GetForUpdate(ctx, inset.SkuID, inset.Bin)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrLedgerMissing
		}

		projected := inv.Quantity - inset.Quantity
		if projected < 0 {
			return &domain.NegativeStockError{
				SkuID:     inset.SkuID,
				Bin:       inset.Bin,
				Current:   inv.Quantity,
				Requested: inset.Quantity,
			}
		}

		updated, err := invRepo.AdjustStock(ctx, inset.SkuID, inset.Bin, -inset.Quantity)
		if err != nil {
			return err
		}
		if err := insetRepo.Delete(ctx, inset.ID); err != nil {
			return err
		}

		out = &dto.DeleteInsetResponse{
			Message: "entrada eliminada e inventario revertido",
			DeletedInset: dto.InsetResponse{
				ID: inset.ID, SkuID: inset.SkuID, Bin: inset.Bin,
				Quantity: inset.Quantity, CreatedAt: inset.CreatedAt,
			},
			Inventory: dto.InventoryUpdate{
				SkuID:       inset.SkuID,
				Bin:         inset.Bin,
				OldQuantity: inv.Quantity,
				NewQuantity: updated.Quantity,
				Reversed:    inset.Quantity,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recordAudit(ctx, entity.AuditInsetDeleted, id, map[string]any{
		"sku":      out.DeletedInset.SkuID,
		"bin":      out.DeletedInset.Bin,
		"reversed": out.Inventory.Reversed,
	}, Actor{})
	return out, nil
}

// InventoryBySku lista el stock del SKU en todas sus ubicaciones.
func (uc *InsetUseCase) InventoryBySku(ctx context.Context, skuID string) ([]*entity.Inventory, error) {
	return uc.invRepo.ListBySku(ctx, Normalize(skuID))
}

// ListBins expone las ubicaciones activas (lectura del colaborador externo).
func (uc *InsetUseCase) ListBins(ctx context.Context) ([]*entity.Bin, error) {
	return uc.binRepo.ListActive(ctx)
}

// guardReversal verifica, con la fila bloqueada, que restar qty no deja la
// clave en negativo. No muta nada.
func (uc *InsetUseCase) guardReversal(ctx context.Context, invRepo repository.InventoryRepository, skuID, bin string, qty int64) error {
	inv, err := invRepo.GetForUpdate(ctx, skuID, bin)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrLedgerMissing
	}
	if inv.Quantity-qty < 0 {
		return &domain.NegativeStockError{SkuID: skuID, Bin: bin, Current: inv.Quantity, Requested: qty}
	}
	return nil
}

// recordAudit escribe la entrada de auditoría y traga el error: es un canal
// lateral diagnóstico, nunca afecta el flujo principal.
func (uc *InsetUseCase) recordAudit(ctx context.Context, action, docID string, changes map[string]any, actor Actor) {
	entry := &entity.AuditLog{
		ID:             uuid.New().String(),
		ActionType:     action,
		CollectionName: "insets",
		DocumentID:     docID,
		Changes:        changes,
		UserID:         actor.ID,
		UserName:       actor.Name,
		CreatedAt:      time.Now(),
	}
	if err := uc.audit.Record(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("action", action).Str("document_id", docID).Msg("auditoría perdida")
	}
}
