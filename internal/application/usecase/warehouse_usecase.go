package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

const defaultAreaColor = "#3B82F6"

// WarehouseUseCase casos de uso del plano del almacén: áreas y ubicaciones.
type WarehouseUseCase struct {
	areaRepo        repository.WarehouseAreaRepository
	locationRepo    repository.WarehouseLocationRepository
	productRepo     repository.ProductRepository
	txRunner        LayoutTxRunner
	defaultCapacity int
	log             *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso. defaultCapacity se usa cuando una ubicación llega sin capacidad.
func NewWarehouseUseCase(
	areaRepo repository.WarehouseAreaRepository,
	locationRepo repository.WarehouseLocationRepository,
	productRepo repository.ProductRepository,
	txRunner LayoutTxRunner,
	defaultCapacity int,
	log *logger.Logger,
) *WarehouseUseCase {
	return &WarehouseUseCase{
		areaRepo:        areaRepo,
		locationRepo:    locationRepo,
		productRepo:     productRepo,
		txRunner:        txRunner,
		defaultCapacity: defaultCapacity,
		log:             log.Component("warehouse"),
	}
}

// ── Áreas ─────────────────────────────────────────────────────────────────────

// ListAreas lista áreas; activeOnly filtra las inactivas.
func (uc *WarehouseUseCase) ListAreas(ctx context.Context, activeOnly bool) ([]dto.AreaResponse, error) {
	list, err := uc.areaRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToAreaResponse(a))
	}
	return out, nil
}

// CreateArea crea un área del almacén.
func (uc *WarehouseUseCase) CreateArea(ctx context.Context, in dto.AreaRequest) (*dto.AreaResponse, error) {
	area := &entity.WarehouseArea{
		ID:        uuid.New().String(),
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := applyArea(area, in); err != nil {
		return nil, err
	}
	if err := uc.areaRepo.Create(ctx, area); err != nil {
		return nil, err
	}
	res := ToAreaResponse(area)
	return &res, nil
}

// UpdateArea reemplaza los datos de un área.
func (uc *WarehouseUseCase) UpdateArea(ctx context.Context, id string, in dto.AreaRequest) (*dto.AreaResponse, error) {
	area, err := uc.areaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyArea(area, in); err != nil {
		return nil, err
	}
	ok, err := uc.areaRepo.Update(ctx, area)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	res := ToAreaResponse(area)
	return &res, nil
}

// DeleteArea elimina un área y sus ubicaciones en una transacción. Si algún producto está
// ubicado en el área devuelve domain.ErrConflict y no borra nada.
func (uc *WarehouseUseCase) DeleteArea(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := uc.txRunner.RunLayout(ctx, func(
		ctx context.Context,
		areaRepo repository.WarehouseAreaRepository,
		locationRepo repository.WarehouseLocationRepository,
		productRepo repository.ProductRepository,
	) error {
		area, err := areaRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if area == nil {
			return domain.ErrNotFound
		}
		inUse, err := productRepo.CountByArea(ctx, id)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return domain.ErrConflict
		}
		if deleted, err = locationRepo.DeleteByArea(ctx, id); err != nil {
			return err
		}
		ok, err := areaRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.log.Info().Str("area_id", id).Int64("locations_deleted", deleted).Msg("área eliminada")
	return deleted, nil
}

func applyArea(area *entity.WarehouseArea, in dto.AreaRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidAreaType(in.Type) {
		return domain.ErrInvalidInput
	}
	if in.Width < 0 || in.Height < 0 {
		return domain.ErrInvalidInput
	}
	area.Name = name
	area.Type = in.Type
	area.X, area.Y = in.X, in.Y
	area.Width, area.Height = in.Width, in.Height
	area.Color = strings.TrimSpace(in.Color)
	if area.Color == "" {
		area.Color = defaultAreaColor
	}
	if in.IsActive != nil {
		area.IsActive = *in.IsActive
	}
	return nil
}

// ── Ubicaciones ───────────────────────────────────────────────────────────────

// ListLocations lista ubicaciones con su área y el producto ubicado.
func (uc *WarehouseUseCase) ListLocations(ctx context.Context) ([]dto.LocationResponse, error) {
	list, err := uc.locationRepo.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, ToLocationResponse(l))
	}
	return out, nil
}

// CreateLocation crea una ubicación dentro de un área existente.
func (uc *WarehouseUseCase) CreateLocation(ctx context.Context, in dto.LocationRequest) (*dto.LocationResponse, error) {
	loc := &entity.WarehouseLocation{ID: uuid.New().String(), CreatedAt: time.Now()}
	if err := uc.applyLocation(ctx, loc, in); err != nil {
		return nil, err
	}
	if err := uc.locationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}
	res := ToLocationResponse(&entity.WarehouseLocationDetail{WarehouseLocation: *loc})
	return &res, nil
}

// UpdateLocation reemplaza los datos de una ubicación.
func (uc *WarehouseUseCase) UpdateLocation(ctx context.Context, id string, in dto.LocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.applyLocation(ctx, loc, in); err != nil {
		return nil, err
	}
	ok, err := uc.locationRepo.Update(ctx, loc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	res := ToLocationResponse(&entity.WarehouseLocationDetail{WarehouseLocation: *loc})
	return &res, nil
}

// DeleteLocation elimina una ubicación; domain.ErrConflict si algún producto la usa.
func (uc *WarehouseUseCase) DeleteLocation(ctx context.Context, id string) error {
	inUse, err := uc.productRepo.CountByLocation(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ErrConflict
	}
	ok, err := uc.locationRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *WarehouseUseCase) applyLocation(ctx context.Context, loc *entity.WarehouseLocation, in dto.LocationRequest) error {
	code := normalizeCode(in.LocationCode)
	if code == "" || in.RowNumber <= 0 || in.ColumnNumber <= 0 || in.Capacity < 0 {
		return domain.ErrInvalidInput
	}
	area, err := uc.areaRepo.GetByID(ctx, in.AreaID)
	if err != nil {
		return err
	}
	if area == nil {
		return domain.ErrInvalidInput
	}
	loc.AreaID = in.AreaID
	loc.RowNumber = in.RowNumber
	loc.ColumnNumber = in.ColumnNumber
	loc.LocationCode = code
	loc.Capacity = in.Capacity
	if loc.Capacity == 0 {
		loc.Capacity = uc.defaultCapacity
	}
	return nil
}

// ToAreaResponse mapea un área al DTO de salida.
func ToAreaResponse(a *entity.WarehouseArea) dto.AreaResponse {
	return dto.AreaResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      a.Type,
		X:         a.X,
		Y:         a.Y,
		Width:     a.Width,
		Height:    a.Height,
		Color:     a.Color,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// ToLocationResponse mapea una ubicación (con datos de área y producto) al DTO de salida.
func ToLocationResponse(l *entity.WarehouseLocationDetail) dto.LocationResponse {
	return dto.LocationResponse{
		ID:           l.ID,
		AreaID:       l.AreaID,
		RowNumber:    l.RowNumber,
		ColumnNumber: l.ColumnNumber,
		LocationCode: l.LocationCode,
		Capacity:     l.Capacity,
		IsOccupied:   l.IsOccupied,
		CreatedAt:    l.CreatedAt,
		AreaName:     l.AreaName,
		AreaColor:    l.AreaColor,
		ProductName:  l.ProductName,
		SKU:          l.ProductSKU,
		CurrentStock: l.CurrentStock,
	}
}
