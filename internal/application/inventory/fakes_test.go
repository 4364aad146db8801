package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// ── Estado en memoria ─────────────────────────────────────────────────────────

type state struct {
	products  map[string]*entity.Product
	movements map[string]*entity.StockMovement
	order     []string // ids de movimientos en orden de inserción
}

func newState() *state {
	return &state{products: map[string]*entity.Product{}, movements: map[string]*entity.StockMovement{}}
}

func (s *state) clone() *state {
	c := newState()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, m := range s.movements {
		cm := *m
		c.movements[id] = &cm
	}
	c.order = append([]string(nil), s.order...)
	return c
}

// memStore implementa inventory.TxRunner: serializa transacciones (equivale al bloqueo de fila)
// y trabaja sobre una copia que solo se publica en el commit; un error descarta la copia.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *state

	failApply  error // error inyectado en ApplyDelta
	failCommit error
	commits    int
}

func newMemStore() *memStore {
	return &memStore{st: newState()}
}

func (m *memStore) seedProduct(id string, stock int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id, IsActive: true}
	p.HydrateStock(stock)
	m.st.products[id] = p
}

func (m *memStore) Run(ctx context.Context, fn func(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.BalanceRepository,
	productRepo repository.ProductRepository,
) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	work := m.st.clone()
	failApply, failCommit := m.failApply, m.failCommit
	m.mu.Unlock()

	if err := fn(ctx, &memMovements{st: work}, &memBalances{st: work, failApply: failApply}, &memProducts{st: work}); err != nil {
		return err
	}
	if failCommit != nil {
		return fmt.Errorf("commit transaction: %w", failCommit)
	}

	m.mu.Lock()
	m.st = work
	m.commits++
	m.mu.Unlock()
	return nil
}

// snapshot devuelve una copia del estado confirmado.
func (m *memStore) snapshot() *state {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.clone()
}

func (m *memStore) balance(id string) int64 {
	return m.snapshot().products[id].CurrentStock()
}

// committed repositorios de lectura sobre el estado confirmado.
func (m *memStore) committedBalances() repository.BalanceRepository {
	return &committedBalances{m: m}
}

func (m *memStore) committedMovements() repository.StockMovementRepository {
	return &memMovements{st: m.snapshot()}
}

func (m *memStore) committedProducts() repository.ProductRepository {
	return &memProducts{st: m.snapshot()}
}

// ── BalanceRepository ─────────────────────────────────────────────────────────

type memBalances struct {
	st        *state
	failApply error
}

func (b *memBalances) LockBalance(_ context.Context, productID string) (int64, error) {
	p, ok := b.st.products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return p.CurrentStock(), nil
}

func (b *memBalances) ApplyDelta(_ context.Context, productID string, delta int64) (int64, error) {
	if b.failApply != nil {
		return 0, b.failApply
	}
	p, ok := b.st.products[productID]
	if !ok {
		return 0, fmt.Errorf("apply delta: producto %s no existe", productID)
	}
	p.HydrateStock(p.CurrentStock() + delta)
	return p.CurrentStock(), nil
}

func (b *memBalances) GetBalance(ctx context.Context, productID string) (int64, error) {
	return b.LockBalance(ctx, productID)
}

type committedBalances struct{ m *memStore }

func (b *committedBalances) LockBalance(context.Context, string) (int64, error) {
	return 0, fmt.Errorf("lock fuera de transacción")
}

func (b *committedBalances) ApplyDelta(context.Context, string, int64) (int64, error) {
	return 0, fmt.Errorf("escritura fuera de transacción")
}

func (b *committedBalances) GetBalance(_ context.Context, productID string) (int64, error) {
	p, ok := b.m.snapshot().products[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return p.CurrentStock(), nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type memMovements struct{ st *state }

func (r *memMovements) Create(_ context.Context, m *entity.StockMovement) error {
	if m.Quantity <= 0 {
		return fmt.Errorf("check constraint: quantity > 0")
	}
	cm := *m
	r.st.movements[m.ID] = &cm
	r.st.order = append(r.st.order, m.ID)
	return nil
}

func (r *memMovements) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.st.movements[id]
	if !ok {
		return nil, nil
	}
	cm := *m
	return &cm, nil
}

func (r *memMovements) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *memMovements) Delete(_ context.Context, id string) error {
	delete(r.st.movements, id)
	for i, mid := range r.st.order {
		if mid == id {
			r.st.order = append(r.st.order[:i], r.st.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memMovements) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	var n int64
	for _, id := range append([]string(nil), r.st.order...) {
		if r.st.movements[id].ProductID == productID {
			_ = r.Delete(ctx, id)
			n++
		}
	}
	return n, nil
}

func (r *memMovements) filtered(f repository.MovementFilter) []*entity.StockMovementDetail {
	var out []*entity.StockMovementDetail
	for i := len(r.st.order) - 1; i >= 0; i-- {
		m := r.st.movements[r.st.order[i]]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.MovementType != "" && m.Type != f.MovementType {
			continue
		}
		d := &entity.StockMovementDetail{StockMovement: *m}
		if p, ok := r.st.products[m.ProductID]; ok {
			name, sku := p.Name, p.SKU
			d.ProductName, d.ProductSKU = &name, &sku
		}
		out = append(out, d)
	}
	return out
}

func (r *memMovements) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovementDetail, error) {
	all := r.filtered(f)
	if f.Offset >= len(all) {
		return []*entity.StockMovementDetail{}, nil
	}
	end := len(all)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return all[f.Offset:end], nil
}

func (r *memMovements) Count(_ context.Context, f repository.MovementFilter) (int, error) {
	return len(r.filtered(f)), nil
}

// ── ProductRepository (solo lo necesario para estos tests) ────────────────────

type memProducts struct{ st *state }

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.st.products[p.ID] = &cp
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProducts) GetDetail(ctx context.Context, id string) (*entity.ProductDetail, error) {
	p, _ := r.GetByID(ctx, id)
	if p == nil {
		return nil, nil
	}
	return &entity.ProductDetail{Product: *p}, nil
}

func (r *memProducts) ListDetails(context.Context) ([]*entity.ProductDetail, error) {
	out := make([]*entity.ProductDetail, 0, len(r.st.products))
	for _, p := range r.st.products {
		out = append(out, &entity.ProductDetail{Product: *p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (r *memProducts) Update(context.Context, *entity.Product) error { return nil }

func (r *memProducts) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.st.products[id]
	delete(r.st.products, id)
	return ok, nil
}

func (r *memProducts) CountByLocation(context.Context, string) (int, error) { return 0, nil }
func (r *memProducts) CountByArea(context.Context, string) (int, error)     { return 0, nil }
