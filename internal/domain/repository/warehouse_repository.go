package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// WarehouseAreaRepository define el puerto de persistencia para áreas del almacén (DIP).
type WarehouseAreaRepository interface {
	Create(ctx context.Context, area *entity.WarehouseArea) error
	GetByID(ctx context.Context, id string) (*entity.WarehouseArea, error)
	Update(ctx context.Context, area *entity.WarehouseArea) (bool, error)
	List(ctx context.Context, activeOnly bool) ([]*entity.WarehouseArea, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// WarehouseLocationRepository define el puerto de persistencia para ubicaciones.
type WarehouseLocationRepository interface {
	Create(ctx context.Context, location *entity.WarehouseLocation) error
	GetByID(ctx context.Context, id string) (*entity.WarehouseLocation, error)
	Update(ctx context.Context, location *entity.WarehouseLocation) (bool, error)
	ListDetails(ctx context.Context) ([]*entity.WarehouseLocationDetail, error)
	CountByArea(ctx context.Context, areaID string) (int, error)
	DeleteByArea(ctx context.Context, areaID string) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
}
