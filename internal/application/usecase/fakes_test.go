package usecase_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// memDB base en memoria para los casos de uso. Las transacciones trabajan sobre una copia
// que se publica en el commit.
type memDB struct {
	mu         sync.Mutex
	products   map[string]*entity.Product
	categories map[string]*entity.Category
	areas      map[string]*entity.WarehouseArea
	locations  map[string]*entity.WarehouseLocation
	users      map[string]*entity.User
	movements  map[string]*entity.StockMovement
}

func newMemDB() *memDB {
	return &memDB{
		products:   map[string]*entity.Product{},
		categories: map[string]*entity.Category{},
		areas:      map[string]*entity.WarehouseArea{},
		locations:  map[string]*entity.WarehouseLocation{},
		users:      map[string]*entity.User{},
		movements:  map[string]*entity.StockMovement{},
	}
}

func cloneMap[T any](m map[string]*T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

func (db *memDB) clone() *memDB {
	return &memDB{
		products:   cloneMap(db.products),
		categories: cloneMap(db.categories),
		areas:      cloneMap(db.areas),
		locations:  cloneMap(db.locations),
		users:      cloneMap(db.users),
		movements:  cloneMap(db.movements),
	}
}

func (db *memDB) adopt(o *memDB) {
	db.products, db.categories, db.areas = o.products, o.categories, o.areas
	db.locations, db.users, db.movements = o.locations, o.users, o.movements
}

// ── TxRunners ─────────────────────────────────────────────────────────────────

func (db *memDB) Run(ctx context.Context, fn func(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.BalanceRepository,
	productRepo repository.ProductRepository,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	work := db.clone()
	if err := fn(ctx, &movementRepo{db: work}, nil, &productRepo{db: work}); err != nil {
		return err
	}
	db.adopt(work)
	return nil
}

func (db *memDB) RunLayout(ctx context.Context, fn func(
	ctx context.Context,
	areaRepo repository.WarehouseAreaRepository,
	locationRepo repository.WarehouseLocationRepository,
	productRepo repository.ProductRepository,
) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	work := db.clone()
	if err := fn(ctx, &areaRepo{db: work}, &locationRepo{db: work}, &productRepo{db: work}); err != nil {
		return err
	}
	db.adopt(work)
	return nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productRepo struct{ db *memDB }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	for _, x := range r.db.products {
		if x.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	c := *p
	r.db.products[p.ID] = &c
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.db.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *productRepo) detail(p *entity.Product) *entity.ProductDetail {
	d := &entity.ProductDetail{Product: *p}
	if p.CategoryID != nil {
		if c, ok := r.db.categories[*p.CategoryID]; ok {
			name := c.Name
			d.CategoryName = &name
		}
	}
	if p.LocationID != nil {
		if l, ok := r.db.locations[*p.LocationID]; ok {
			code, areaID := l.LocationCode, l.AreaID
			d.LocationCode, d.AreaID = &code, &areaID
			if a, ok := r.db.areas[l.AreaID]; ok {
				name := a.Name
				d.AreaName = &name
			}
		}
	}
	return d
}

func (r *productRepo) GetDetail(_ context.Context, id string) (*entity.ProductDetail, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	return r.detail(p), nil
}

func (r *productRepo) ListDetails(context.Context) ([]*entity.ProductDetail, error) {
	out := make([]*entity.ProductDetail, 0, len(r.db.products))
	for _, p := range r.db.products {
		out = append(out, r.detail(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	old, ok := r.db.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *p
	c.HydrateStock(old.CurrentStock()) // el UPDATE no toca current_stock
	r.db.products[p.ID] = &c
	return nil
}

func (r *productRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.db.products[id]
	delete(r.db.products, id)
	return ok, nil
}

func (r *productRepo) CountByLocation(_ context.Context, locationID string) (int, error) {
	n := 0
	for _, p := range r.db.products {
		if p.LocationID != nil && *p.LocationID == locationID {
			n++
		}
	}
	return n, nil
}

func (r *productRepo) CountByArea(_ context.Context, areaID string) (int, error) {
	n := 0
	for _, p := range r.db.products {
		if p.LocationID == nil {
			continue
		}
		if l, ok := r.db.locations[*p.LocationID]; ok && l.AreaID == areaID {
			n++
		}
	}
	return n, nil
}

// ── Movimientos (solo lo que usa el borrado en cascada) ───────────────────────

type movementRepo struct{ db *memDB }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	c := *m
	r.db.movements[m.ID] = &c
	return nil
}
func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.db.movements[id]
	if !ok {
		return nil, nil
	}
	return m, nil
}
func (r *movementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}
func (r *movementRepo) Delete(_ context.Context, id string) error {
	delete(r.db.movements, id)
	return nil
}
func (r *movementRepo) DeleteByProduct(_ context.Context, productID string) (int64, error) {
	var n int64
	for id, m := range r.db.movements {
		if m.ProductID == productID {
			delete(r.db.movements, id)
			n++
		}
	}
	return n, nil
}
func (r *movementRepo) List(context.Context, repository.MovementFilter) ([]*entity.StockMovementDetail, error) {
	return nil, nil
}
func (r *movementRepo) Count(context.Context, repository.MovementFilter) (int, error) {
	return len(r.db.movements), nil
}

// ── Categorías ────────────────────────────────────────────────────────────────

type categoryRepo struct{ db *memDB }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, x := range r.db.categories {
		if x.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.db.categories[c.ID] = &cp
	return nil
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.db.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *categoryRepo) List(context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Áreas y ubicaciones ───────────────────────────────────────────────────────

type areaRepo struct{ db *memDB }

func (r *areaRepo) Create(_ context.Context, a *entity.WarehouseArea) error {
	c := *a
	r.db.areas[a.ID] = &c
	return nil
}

func (r *areaRepo) GetByID(_ context.Context, id string) (*entity.WarehouseArea, error) {
	a, ok := r.db.areas[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *areaRepo) Update(_ context.Context, a *entity.WarehouseArea) (bool, error) {
	if _, ok := r.db.areas[a.ID]; !ok {
		return false, nil
	}
	c := *a
	r.db.areas[a.ID] = &c
	return true, nil
}

func (r *areaRepo) List(_ context.Context, activeOnly bool) ([]*entity.WarehouseArea, error) {
	var out []*entity.WarehouseArea
	for _, a := range r.db.areas {
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *areaRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.db.areas[id]
	delete(r.db.areas, id)
	return ok, nil
}

type locationRepo struct{ db *memDB }

func (r *locationRepo) Create(_ context.Context, l *entity.WarehouseLocation) error {
	for _, x := range r.db.locations {
		if x.LocationCode == l.LocationCode {
			return domain.ErrDuplicate
		}
	}
	c := *l
	r.db.locations[l.ID] = &c
	return nil
}

func (r *locationRepo) GetByID(_ context.Context, id string) (*entity.WarehouseLocation, error) {
	l, ok := r.db.locations[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *locationRepo) Update(_ context.Context, l *entity.WarehouseLocation) (bool, error) {
	if _, ok := r.db.locations[l.ID]; !ok {
		return false, nil
	}
	c := *l
	r.db.locations[l.ID] = &c
	return true, nil
}

func (r *locationRepo) ListDetails(context.Context) ([]*entity.WarehouseLocationDetail, error) {
	var out []*entity.WarehouseLocationDetail
	for _, l := range r.db.locations {
		out = append(out, &entity.WarehouseLocationDetail{WarehouseLocation: *l})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationCode < out[j].LocationCode })
	return out, nil
}

func (r *locationRepo) CountByArea(_ context.Context, areaID string) (int, error) {
	n := 0
	for _, l := range r.db.locations {
		if l.AreaID == areaID {
			n++
		}
	}
	return n, nil
}

func (r *locationRepo) DeleteByArea(_ context.Context, areaID string) (int64, error) {
	var n int64
	for id, l := range r.db.locations {
		if l.AreaID == areaID {
			delete(r.db.locations, id)
			n++
		}
	}
	return n, nil
}

func (r *locationRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.db.locations[id]
	delete(r.db.locations, id)
	return ok, nil
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type userRepo struct{ db *memDB }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	c := *u
	r.db.users[u.ID] = &c
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.db.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *userRepo) ExistsUsernameOrEmail(_ context.Context, username, email, excludeID string) (bool, error) {
	for _, u := range r.db.users {
		if u.ID != excludeID && (u.Username == username || u.Email == email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) (bool, error) {
	if _, ok := r.db.users[u.ID]; !ok {
		return false, nil
	}
	c := *u
	r.db.users[u.ID] = &c
	return true, nil
}

func (r *userRepo) TouchLastLogin(context.Context, string) error { return nil }

func (r *userRepo) List(context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *userRepo) Count(context.Context) (int, error) { return len(r.db.users), nil }

func (r *userRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.db.users[id]
	delete(r.db.users, id)
	return ok, nil
}
