package usecase

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// LayoutTxRunner ejecuta cambios del plano del almacén (área + ubicaciones) en una sola transacción.
type LayoutTxRunner interface {
	RunLayout(ctx context.Context, fn func(
		ctx context.Context,
		areaRepo repository.WarehouseAreaRepository,
		locationRepo repository.WarehouseLocationRepository,
		productRepo repository.ProductRepository,
	) error) error
}
