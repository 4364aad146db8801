package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	apphttp "github.com/jhoicas/warehouse-api/internal/interfaces/http"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria: cada transacción trabaja sobre una copia y la publica al confirmar.
// ──────────────────────────────────────────────────────────────────────────────

type stockState struct {
	balances  map[string]int64
	movements map[string]*entity.StockMovement
	seq       int
}

func (s *stockState) clone() *stockState {
	c := &stockState{balances: map[string]int64{}, movements: map[string]*entity.StockMovement{}, seq: s.seq}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.movements {
		m := *v
		c.movements[k] = &m
	}
	return c
}

type stockStore struct {
	mu       sync.Mutex
	st       *stockState
	failWith error // si no es nil, Run falla sin ejecutar fn
}

func newStockStore(products ...string) *stockStore {
	st := &stockState{balances: map[string]int64{}, movements: map[string]*entity.StockMovement{}}
	for _, p := range products {
		st.balances[p] = 0
	}
	return &stockStore{st: st}
}

func (s *stockStore) Run(ctx context.Context, fn func(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.BalanceRepository,
	productRepo repository.ProductRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	work := s.st.clone()
	if err := fn(ctx, &stockMovements{st: work}, &stockBalances{st: work}, &stockProducts{st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *stockStore) committed() *stockState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

type stockBalances struct{ st *stockState }

func (b *stockBalances) LockBalance(_ context.Context, id string) (int64, error) {
	v, ok := b.st.balances[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return v, nil
}

func (b *stockBalances) ApplyDelta(_ context.Context, id string, delta int64) (int64, error) {
	b.st.balances[id] += delta
	return b.st.balances[id], nil
}

func (b *stockBalances) GetBalance(ctx context.Context, id string) (int64, error) {
	return b.LockBalance(ctx, id)
}

// committedBalances lee el estado confirmado para GetBalance fuera de transacción.
type committedBalances struct{ store *stockStore }

func (c committedBalances) LockBalance(ctx context.Context, id string) (int64, error) {
	return (&stockBalances{st: c.store.committed()}).LockBalance(ctx, id)
}
func (c committedBalances) ApplyDelta(context.Context, string, int64) (int64, error) {
	return 0, errors.New("fuera de transacción")
}
func (c committedBalances) GetBalance(ctx context.Context, id string) (int64, error) {
	return c.LockBalance(ctx, id)
}

type stockMovements struct{ st *stockState }

func (r *stockMovements) Create(_ context.Context, m *entity.StockMovement) error {
	r.st.seq++
	cp := *m
	cp.CreatedAt = time.Date(2026, 1, 1, 0, 0, r.st.seq, 0, time.UTC)
	r.st.movements[m.ID] = &cp
	return nil
}
func (r *stockMovements) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.st.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}
func (r *stockMovements) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}
func (r *stockMovements) Delete(_ context.Context, id string) error {
	delete(r.st.movements, id)
	return nil
}
func (r *stockMovements) DeleteByProduct(_ context.Context, productID string) (int64, error) {
	var n int64
	for id, m := range r.st.movements {
		if m.ProductID == productID {
			delete(r.st.movements, id)
			n++
		}
	}
	return n, nil
}
func (r *stockMovements) filtered(f repository.MovementFilter) []*entity.StockMovementDetail {
	var out []*entity.StockMovementDetail
	for _, m := range r.st.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.MovementType != "" && m.Type != f.MovementType {
			continue
		}
		out = append(out, &entity.StockMovementDetail{StockMovement: *m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
func (r *stockMovements) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovementDetail, error) {
	out := r.filtered(f)
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
func (r *stockMovements) Count(_ context.Context, f repository.MovementFilter) (int, error) {
	return len(r.filtered(f)), nil
}

// stockProducts solo responde GetByID; el resto del puerto no se usa en estas rutas.
type stockProducts struct {
	repository.ProductRepository
	st *stockState
}

func (r *stockProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	v, ok := r.st.balances[id]
	if !ok {
		return nil, nil
	}
	p := &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id, IsActive: true}
	p.HydrateStock(v)
	return p, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers HTTP
// ──────────────────────────────────────────────────────────────────────────────

const testProduct = "11111111-1111-1111-1111-111111111111"

func newStockApp(store *stockStore) *fiber.App {
	ledger := inventory.NewStockLedger(store, committedBalances{store: store}, logger.Nop())
	queries := inventory.NewMovementQueryUseCase(
		&committedMovements{store: store},
		&committedProducts{store: store},
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:          ledger,
		MovementQueries: queries,
		JWTSecret:       testJWTSecret,
		ServiceName:     "warehouse-api-test",
	})
	return app
}

type committedMovements struct {
	store *stockStore
}

func (c *committedMovements) repo() *stockMovements { return &stockMovements{st: c.store.committed()} }

func (c *committedMovements) Create(ctx context.Context, m *entity.StockMovement) error {
	return errors.New("fuera de transacción")
}
func (c *committedMovements) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return c.repo().GetByID(ctx, id)
}
func (c *committedMovements) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return c.repo().GetByID(ctx, id)
}
func (c *committedMovements) Delete(context.Context, string) error {
	return errors.New("fuera de transacción")
}
func (c *committedMovements) DeleteByProduct(context.Context, string) (int64, error) {
	return 0, errors.New("fuera de transacción")
}
func (c *committedMovements) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovementDetail, error) {
	return c.repo().List(ctx, f)
}
func (c *committedMovements) Count(ctx context.Context, f repository.MovementFilter) (int, error) {
	return c.repo().Count(ctx, f)
}

type committedProducts struct {
	repository.ProductRepository
	store *stockStore
}

func (c *committedProducts) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return (&stockProducts{st: c.store.committed()}).GetByID(ctx, id)
}

func call(t *testing.T, app *fiber.App, method, path, role string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func move(typ string, qty int64) dto.RecordMovementRequest {
	return dto.RecordMovementRequest{ProductID: testProduct, MovementType: typ, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestStockHTTP_EntradaSalidaAjusteYSaldo(t *testing.T) {
	store := newStockStore(testProduct)
	app := newStockApp(store)

	resp, body := call(t, app, http.MethodPost, "/api/products/"+testProduct+"/stock", "staff",
		dto.RecordMovementRequest{MovementType: "in", Quantity: 100})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 100, body["new_balance"])
	assert.NotEmpty(t, body["id"])

	resp, body = call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("out", 30))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 70, body["new_balance"])

	resp, body = call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("adjustment", 50))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 50, body["new_balance"])

	resp, body = call(t, app, http.MethodGet, "/api/products/"+testProduct+"/balance", "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 50, body["current_stock"])
}

// El id de la ruta debe sobrevivir a las peticiones siguientes, que reutilizan el buffer de fasthttp.
func TestStockHTTP_IDDeRutaSobreviveALaPeticion(t *testing.T) {
	store := newStockStore(testProduct)
	app := newStockApp(store)
	other := "33333333-3333-3333-3333-333333333333"

	for i := 0; i < 2; i++ {
		resp, _ := call(t, app, http.MethodPost, "/api/products/"+testProduct+"/stock", "staff",
			dto.RecordMovementRequest{MovementType: "in", Quantity: 5})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp, _ := call(t, app, http.MethodGet, "/api/products/"+other+"/balance", "staff", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	st := store.committed()
	assert.EqualValues(t, 10, st.balances[testProduct])
	assert.NotContains(t, st.balances, other)
	require.Len(t, st.movements, 2)
	for _, m := range st.movements {
		assert.Equal(t, testProduct, m.ProductID)
	}
}

func TestStockHTTP_SalidaSinStockEs409(t *testing.T) {
	store := newStockStore(testProduct)
	app := newStockApp(store)

	resp, body := call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("out", 1))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Empty(t, store.committed().movements, "un rechazo no debe escribir movimientos")
}

func TestStockHTTP_ValidacionYNoEncontrado(t *testing.T) {
	app := newStockApp(newStockStore(testProduct))

	resp, body := call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("transfer", 5))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	resp, _ = call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("in", 0))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("in", 3_000_000_000))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	resp, body = call(t, app, http.MethodPost, "/api/stock-movements", "staff", dto.RecordMovementRequest{
		ProductID: "22222222-2222-2222-2222-222222222222", MovementType: "in", Quantity: 5,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestStockHTTP_SinToken(t *testing.T) {
	app := newStockApp(newStockStore(testProduct))
	resp, _ := call(t, app, http.MethodPost, "/api/stock-movements", "", move("in", 5))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStockHTTP_FalloDeAlmacenamientoEs503(t *testing.T) {
	store := newStockStore(testProduct)
	store.failWith = errors.New("conexión rechazada")
	app := newStockApp(store)

	resp, body := call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("in", 5))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "STORE_FAILURE", body["code"])
}

func TestStockHTTP_ReversionSoloAdmin(t *testing.T) {
	store := newStockStore(testProduct)
	app := newStockApp(store)

	_, body := call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("in", 10))
	movementID := fmt.Sprint(body["id"])

	resp, _ := call(t, app, http.MethodDelete, "/api/stock-movements/"+movementID, "staff", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.EqualValues(t, 10, store.committed().balances[testProduct])

	resp, body = call(t, app, http.MethodDelete, "/api/stock-movements/"+movementID, "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["new_balance"])
	assert.Equal(t, testProduct, body["product_id"])
	assert.Empty(t, store.committed().movements)

	resp, _ = call(t, app, http.MethodDelete, "/api/stock-movements/"+movementID, "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStockHTTP_ReversionDeAjusteEs422(t *testing.T) {
	app := newStockApp(newStockStore(testProduct))

	_, body := call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("adjustment", 7))
	resp, out := call(t, app, http.MethodDelete, "/api/stock-movements/"+fmt.Sprint(body["id"]), "admin", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_OPERATION", out["code"])
}

func TestStockHTTP_ListadoPaginado(t *testing.T) {
	app := newStockApp(newStockStore(testProduct))
	for i := 0; i < 3; i++ {
		call(t, app, http.MethodPost, "/api/stock-movements", "staff", move("in", 1))
	}

	resp, body := call(t, app, http.MethodGet, "/api/stock-movements?limit=2&page=1", "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["movements"], 2)
	pagination, ok := body["pagination"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, pagination["total"])
	assert.EqualValues(t, 2, pagination["total_pages"])

	resp, _ = call(t, app, http.MethodGet, "/api/stock-movements?movement_type=bogus", "staff", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/api/stock-movements/product/"+testProduct, "staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["movements"], 3)
}

func TestHealth(t *testing.T) {
	app := newStockApp(newStockStore())
	resp, body := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "warehouse-api-test", body["service"])
}
