//go:build unit

// Package memstore is an in-memory UnitOfWork for usecase tests.
// Transactions run one at a time and are discarded when fn fails.
package memstore

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"

	"serial-inventory/internal/domain/catalog"
	"serial-inventory/internal/domain/order"
	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/infra"
	"serial-inventory/internal/usecase/shared"

	"github.com/google/uuid"
)

type state struct {
	serials  map[uuid.UUID]serial.Snapshot
	products map[string]catalog.Product
	variants map[string]catalog.Variant
	tasks    []shared.ReconciliationTask
	orders   map[string]order.Lifecycle
}

func (s *state) clone() *state {
	return &state{
		serials:  maps.Clone(s.serials),
		products: maps.Clone(s.products),
		variants: maps.Clone(s.variants),
		tasks:    slices.Clone(s.tasks),
		orders:   maps.Clone(s.orders),
	}
}

type Store struct {
	mu      sync.Mutex
	current *state
	// FailNextUpdate makes the next Serials().Update call fail with this error.
	FailNextUpdate error
	Commits        int
	// VariantLocks records every shop/variant pair locked, committed or not.
	VariantLocks []string
}

func New() *Store {
	return &Store{current: &state{
		serials:  map[uuid.UUID]serial.Snapshot{},
		products: map[string]catalog.Product{},
		variants: map[string]catalog.Variant{},
		orders:   map[string]order.Lifecycle{},
	}}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.current.clone()
	if err := fn(ctx, &tx{store: s, st: work}); err != nil {
		return err
	}
	s.current = work
	s.Commits++
	return nil
}

// Seed stores serials directly, bypassing transactions.
func (s *Store) Seed(ss ...*serial.Serial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range ss {
		s.current.serials[x.ID()] = x.Snapshot()
	}
}

func (s *Store) SeedVariant(p catalog.Product, v catalog.Variant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.products[key(p.Shop, p.ID)] = p
	s.current.variants[key(v.Shop, v.ID)] = v
}

func (s *Store) Get(id uuid.UUID) serial.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.serials[id]
}

func (s *Store) ByNumber(number string) (serial.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snap := range s.current.serials {
		if snap.SerialNumber == number {
			return snap, true
		}
	}
	return serial.Snapshot{}, false
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.current.serials)
}

func (s *Store) Tasks() []shared.ReconciliationTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.current.tasks)
}

func (s *Store) Variant(shop, id string) (catalog.Variant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.current.variants[key(shop, id)]
	return v, ok
}

func key(shop, id string) string { return shop + "/" + id }

type tx struct {
	store *Store
	st    *state
}

func (t *tx) Serials() shared.SerialRepository                { return &serialRepo{t} }
func (t *tx) Catalog() shared.CatalogRepository               { return &catalogRepo{t} }
func (t *tx) Reconciliation() shared.ReconciliationRepository { return &reconRepo{t} }
func (t *tx) Orders() shared.OrderRepository                  { return &orderRepo{t} }

type serialRepo struct{ *tx }

func (r *serialRepo) Insert(_ context.Context, s *serial.Serial) error {
	for _, snap := range r.st.serials {
		if snap.SerialNumber == s.SerialNumber().String() {
			return infra.WrapRepoErr("failed to insert serial", nil, infra.KindDuplicateKey)
		}
	}
	r.st.serials[s.ID()] = s.Snapshot()
	return nil
}

func (r *serialRepo) InsertMissing(ctx context.Context, ss []*serial.Serial) ([]*serial.Serial, error) {
	var out []*serial.Serial
	for _, s := range ss {
		if exists, _ := r.ExistsByNumber(ctx, s.SerialNumber().String()); exists {
			continue
		}
		r.st.serials[s.ID()] = s.Snapshot()
		out = append(out, s)
	}
	return out, nil
}

func (r *serialRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	for _, snap := range r.st.serials {
		if snap.SerialNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *serialRepo) LockByIDs(_ context.Context, shop string, ids []uuid.UUID) ([]*serial.Serial, error) {
	return r.filter(func(s serial.Snapshot) bool {
		return s.Shop == shop && slices.Contains(ids, s.ID)
	}), nil
}

func (r *serialRepo) LockByNumbers(_ context.Context, shop string, numbers []string) ([]*serial.Serial, error) {
	return r.filter(func(s serial.Snapshot) bool {
		return s.Shop == shop && slices.Contains(numbers, s.SerialNumber)
	}), nil
}

func (r *serialRepo) LockPendingForVariant(_ context.Context, shop, variantID string, limit int) ([]*serial.Serial, error) {
	rows := r.filter(func(s serial.Snapshot) bool {
		return s.Shop == shop && s.Status == serial.StatusReserved && s.OrderID == nil &&
			s.VariantID != nil && *s.VariantID == variantID
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ReservedAt().After(*rows[j].ReservedAt())
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *serialRepo) LockByOrder(_ context.Context, shop, orderID string, statuses ...serial.Status) ([]*serial.Serial, error) {
	return r.filter(func(s serial.Snapshot) bool {
		return s.Shop == shop && s.OrderID != nil && *s.OrderID == orderID && slices.Contains(statuses, s.Status)
	}), nil
}

func (r *serialRepo) LockVariant(_ context.Context, shop, variantID string) error {
	r.store.VariantLocks = append(r.store.VariantLocks, shop+"/"+variantID)
	return nil
}

func (r *serialRepo) CountOccupiedForVariant(_ context.Context, shop, variantID string) (int, error) {
	return len(r.filter(func(s serial.Snapshot) bool {
		return s.Shop == shop && s.VariantID != nil && *s.VariantID == variantID && s.Status.Occupied()
	})), nil
}

func (r *serialRepo) CountLinkedByVariant(_ context.Context, shop, orderID string) (map[string]int, error) {
	out := map[string]int{}
	for _, s := range r.st.serials {
		if s.Shop != shop || s.OrderID == nil || *s.OrderID != orderID || s.VariantID == nil {
			continue
		}
		if s.Status == serial.StatusReserved || s.Status == serial.StatusSold {
			out[*s.VariantID]++
		}
	}
	return out, nil
}

func (r *serialRepo) Update(_ context.Context, ss ...*serial.Serial) error {
	if err := r.store.FailNextUpdate; err != nil {
		r.store.FailNextUpdate = nil
		return err
	}
	for _, s := range ss {
		if _, ok := r.st.serials[s.ID()]; !ok {
			return infra.WrapRepoErr("failed to update serial", nil, infra.KindNotFound)
		}
		r.st.serials[s.ID()] = s.Snapshot()
	}
	return nil
}

func (r *serialRepo) Delete(_ context.Context, shop string, id uuid.UUID) error {
	s, ok := r.st.serials[id]
	if !ok || s.Shop != shop {
		return infra.WrapRepoErr("serial not found", nil, infra.KindNotFound)
	}
	delete(r.st.serials, id)
	return nil
}

func (r *serialRepo) filter(keep func(serial.Snapshot) bool) []*serial.Serial {
	var out []*serial.Serial
	for _, s := range r.st.serials {
		if keep(s) {
			out = append(out, serial.Reconstruct(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Compare(out[i].ID().String(), out[j].ID().String()) < 0
	})
	return out
}

type catalogRepo struct{ *tx }

func (r *catalogRepo) UpsertProduct(_ context.Context, p *catalog.Product) error {
	r.st.products[key(p.Shop, p.ID)] = *p
	return nil
}

func (r *catalogRepo) UpsertVariant(_ context.Context, v *catalog.Variant) error {
	if _, ok := r.st.products[key(v.Shop, v.ProductID)]; !ok {
		return infra.WrapRepoErr("failed to upsert variant", nil, infra.KindForeignKeyViolated)
	}
	r.st.variants[key(v.Shop, v.ID)] = *v
	return nil
}

func (r *catalogRepo) FindVariant(_ context.Context, shop, variantID string) (*catalog.Variant, *catalog.Product, error) {
	v, ok := r.st.variants[key(shop, variantID)]
	if !ok {
		return nil, nil, infra.WrapRepoErr("failed to find variant", nil, infra.KindNotFound)
	}
	var product *catalog.Product
	if p, ok := r.st.products[key(shop, v.ProductID)]; ok {
		product = &p
	}
	return &v, product, nil
}

func (r *catalogRepo) SetProductRequireSerial(_ context.Context, shop, productID string, required bool) error {
	p, ok := r.st.products[key(shop, productID)]
	if !ok {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	p.RequireSerial = required
	r.st.products[key(shop, productID)] = p
	return nil
}

func (r *catalogRepo) SetVariantRequireSerial(_ context.Context, shop, variantID string, required bool) error {
	v, ok := r.st.variants[key(shop, variantID)]
	if !ok {
		return infra.WrapRepoErr("variant not found", nil, infra.KindNotFound)
	}
	v.RequireSerial = required
	r.st.variants[key(shop, variantID)] = v
	return nil
}

type reconRepo struct{ *tx }

func (r *reconRepo) Record(_ context.Context, task shared.ReconciliationTask) error {
	r.st.tasks = append(r.st.tasks, task)
	return nil
}

type orderRepo struct{ *tx }

func (r *orderRepo) Lock(_ context.Context, shop, orderID string) (order.Lifecycle, error) {
	return r.st.orders[key(shop, orderID)], nil
}

func (r *orderRepo) Save(_ context.Context, shop, orderID string, lc order.Lifecycle) error {
	r.st.orders[key(shop, orderID)] = lc
	return nil
}

// Order returns the committed lifecycle of an order.
func (s *Store) Order(shop, orderID string) order.Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.orders[key(shop, orderID)]
}
