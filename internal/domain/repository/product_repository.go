package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Ningún método escribe current_stock: el saldo solo cambia vía BalanceRepository.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	GetDetail(ctx context.Context, id string) (*entity.ProductDetail, error)
	ListDetails(ctx context.Context) ([]*entity.ProductDetail, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete devuelve false si el producto no existía.
	Delete(ctx context.Context, id string) (bool, error)
	CountByLocation(ctx context.Context, locationID string) (int, error)
	CountByArea(ctx context.Context, areaID string) (int, error)
}

// BalanceRepository acceso al saldo cacheado (products.current_stock).
// Solo se obtiene dentro de una transacción del libro de stock.
type BalanceRepository interface {
	// LockBalance bloquea la fila del producto (SELECT ... FOR UPDATE) y devuelve su saldo.
	// Devuelve domain.ErrNotFound si el producto no existe.
	LockBalance(ctx context.Context, productID string) (int64, error)
	// ApplyDelta suma delta al saldo y devuelve el saldo resultante.
	ApplyDelta(ctx context.Context, productID string, delta int64) (int64, error)
	// GetBalance lectura O(1) del saldo, sin bloqueo.
	GetBalance(ctx context.Context, productID string) (int64, error)
}
