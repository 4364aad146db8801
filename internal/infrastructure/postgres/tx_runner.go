package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and usecase.LayoutTxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ usecase.LayoutTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. lockTimeout limita la espera por bloqueos de fila
// (SET LOCAL lock_timeout); 0 deja el valor del servidor.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos de stock atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	balanceRepo repository.BalanceRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewStockMovementRepository(tx), NewBalanceRepository(tx), NewProductRepository(tx))
	})
}

// RunLayout inicia una transacción con repos del plano del almacén (borrado de áreas).
func (r *TxRunner) RunLayout(ctx context.Context, fn func(
	ctx context.Context,
	areaRepo repository.WarehouseAreaRepository,
	locationRepo repository.WarehouseLocationRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewWarehouseAreaRepository(tx), NewWarehouseLocationRepository(tx), NewProductRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Iniciada la transacción, la cancelación del llamador ya no la interrumpe:
	// siempre termina en commit o rollback.
	ctx = context.WithoutCancel(ctx)
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
