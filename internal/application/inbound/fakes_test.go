package inbound_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: un almacén compartido con repos que implementan los
// puertos de dominio y un TxRunner que simula Commit/Rollback por snapshot.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	insets    map[string]*entity.Inset
	inventory map[string]int64 // clave "SKU|BIN"
	bins      []string
	audits    []*entity.AuditLog

	binErr       error  // fuerza fallo al cargar el registro de bins
	auditErr     error  // fuerza fallo del sink de auditoría
	failAdjustOn string // SKU cuyo ajuste de stock falla (simula error de persistencia)
}

func newMemStore(bins ...string) *memStore {
	return &memStore{
		insets:    make(map[string]*entity.Inset),
		inventory: make(map[string]int64),
		bins:      bins,
	}
}

func invKey(skuID, bin string) string { return skuID + "|" + bin }

// quantity devuelve el stock actual de la clave (0 si no existe).
func (s *memStore) quantity(skuID, bin string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory[invKey(skuID, bin)]
}

// seedInventory fija stock inicial sin pasar por el ajuste.
func (s *memStore) seedInventory(skuID, bin string, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory[invKey(skuID, bin)] = qty
}

// snapshot copia el estado mutable para simular rollback.
func (s *memStore) snapshot() (map[string]*entity.Inset, map[string]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	insets := make(map[string]*entity.Inset, len(s.insets))
	for k, v := range s.insets {
		cp := *v
		insets[k] = &cp
	}
	inv := make(map[string]int64, len(s.inventory))
	for k, v := range s.inventory {
		inv[k] = v
	}
	return insets, inv
}

func (s *memStore) restore(insets map[string]*entity.Inset, inv map[string]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insets = insets
	s.inventory = inv
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeInsetRepo struct{ s *memStore }

func (r *fakeInsetRepo) Create(_ context.Context, inset *entity.Inset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *inset
	r.s.insets[inset.ID] = &cp
	return nil
}

func (r *fakeInsetRepo) GetByID(_ context.Context, id string) (*entity.Inset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inset, ok := r.s.insets[id]
	if !ok {
		return nil, nil
	}
	cp := *inset
	return &cp, nil
}

func (r *fakeInsetRepo) List(_ context.Context, limit, offset int) ([]*entity.Inset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Inset
	for _, inset := range r.s.insets {
		cp := *inset
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeInsetRepo) Update(_ context.Context, inset *entity.Inset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.insets[inset.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inset
	r.s.insets[inset.ID] = &cp
	return nil
}

func (r *fakeInsetRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.insets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.insets, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct{ s *memStore }

func (r *fakeInventoryRepo) Get(_ context.Context, skuID, bin string) (*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	qty, ok := r.s.inventory[invKey(skuID, bin)]
	if !ok {
		return nil, nil
	}
	return &entity.Inventory{SkuID: skuID, Bin: bin, Quantity: qty, UpdatedAt: time.Now()}, nil
}

func (r *fakeInventoryRepo) GetForUpdate(ctx context.Context, skuID, bin string) (*entity.Inventory, error) {
	return r.Get(ctx, skuID, bin)
}

func (r *fakeInventoryRepo) AdjustStock(_ context.Context, skuID, bin string, delta int64) (*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failAdjustOn != "" && r.s.failAdjustOn == skuID {
		return nil, fmt.Errorf("error de persistencia simulado")
	}
	key := invKey(skuID, bin)
	current, exists := r.s.inventory[key]
	if delta < 0 && !exists {
		return nil, domain.ErrLedgerMissing
	}
	next := current + delta
	if next < 0 {
		return nil, &domain.NegativeStockError{SkuID: skuID, Bin: bin, Current: current, Requested: -delta}
	}
	r.s.inventory[key] = next
	return &entity.Inventory{SkuID: skuID, Bin: bin, Quantity: next, UpdatedAt: time.Now()}, nil
}

func (r *fakeInventoryRepo) ListBySku(_ context.Context, skuID string) ([]*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Inventory
	for key, qty := range r.s.inventory {
		var sku, bin string
		for i := range key {
			if key[i] == '|' {
				sku, bin = key[:i], key[i+1:]
				break
			}
		}
		if sku == skuID {
			list = append(list, &entity.Inventory{SkuID: sku, Bin: bin, Quantity: qty})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Bin < list[j].Bin })
	return list, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeBinRepo struct{ s *memStore }

func (r *fakeBinRepo) ListActive(_ context.Context) ([]*entity.Bin, error) {
	if r.s.binErr != nil {
		return nil, r.s.binErr
	}
	var list []*entity.Bin
	for _, name := range r.s.bins {
		list = append(list, &entity.Bin{Name: name, IsActive: true})
	}
	return list, nil
}

func (r *fakeBinRepo) ExistsActive(_ context.Context, name string) (bool, error) {
	if r.s.binErr != nil {
		return false, r.s.binErr
	}
	for _, b := range r.s.bins {
		if b == name {
			return true, nil
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeAuditRepo struct{ s *memStore }

func (r *fakeAuditRepo) Record(_ context.Context, log *entity.AuditLog) error {
	if r.s.auditErr != nil {
		return r.s.auditErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audits = append(r.s.audits, log)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner simula la frontera transaccional: toma un snapshot antes de fn
// y lo restaura si fn falla, de modo que nunca se observa estado parcial.
type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	insetRepo repository.InsetRepository,
	invRepo repository.InventoryRepository,
) error) error {
	insets, inv := t.s.snapshot()
	if err := fn(&fakeInsetRepo{s: t.s}, &fakeInventoryRepo{s: t.s}); err != nil {
		t.s.restore(insets, inv)
		return err
	}
	return nil
}
