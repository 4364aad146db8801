package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos. Fechas inclusivas por día.
type MovementFilter struct {
	ProductID    string
	MovementType string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

// StockMovementRepository define el puerto de persistencia para movimientos de stock (DIP).
// Los movimientos son append-only; Delete solo lo usa la reversión del libro.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// GetForUpdate bloquea la fila del movimiento (evita revertirlo dos veces en paralelo).
	GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error)
	Delete(ctx context.Context, id string) error
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovementDetail, error)
	Count(ctx context.Context, f MovementFilter) (int, error)
}
