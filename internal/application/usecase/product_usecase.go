package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja solo vía StockLedger.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.WarehouseLocationRepository
	txRunner     inventory.TxRunner
	log          *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.WarehouseLocationRepository,
	txRunner inventory.TxRunner,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		txRunner:     txRunner,
		log:          log.Component("products"),
	}
}

// Create crea un nuevo producto. El stock inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := normalizeCode(in.SKU)
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateLevels(in.MinStock, in.MaxStock, in.UnitPrice); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	expiration, err := parseOptionalDate(in.ExpirationDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            sku,
		Name:           name,
		Description:    in.Description,
		CategoryID:     trimPtr(in.CategoryID),
		MinStock:       in.MinStock,
		MaxStock:       in.MaxStock,
		UnitPrice:      in.UnitPrice,
		ExpirationDate: expiration,
		LocationID:     trimPtr(in.LocationID),
		ManualRow:      in.ManualRow,
		ManualColumn:   in.ManualColumn,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.checkReferences(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// GetByID obtiene un producto con categoría y ubicación.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	d, err := uc.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(d), nil
}

// List lista todos los productos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toProductResponse(d))
	}
	return items, nil
}

// Update actualiza un producto. No permite modificar el SKU ni el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = trimPtr(in.CategoryID)
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		product.MaxStock = *in.MaxStock
	}
	if in.UnitPrice != nil {
		product.UnitPrice = *in.UnitPrice
	}
	if in.ExpirationDate != nil {
		// "" borra la fecha
		if product.ExpirationDate, err = parseOptionalDate(in.ExpirationDate); err != nil {
			return nil, err
		}
	}
	if in.LocationID != nil {
		product.LocationID = trimPtr(in.LocationID)
	}
	if in.ManualRow != nil {
		product.ManualRow = in.ManualRow
	}
	if in.ManualColumn != nil {
		product.ManualColumn = in.ManualColumn
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := validateLevels(product.MinStock, product.MaxStock, product.UnitPrice); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina el producto y todo su historial de movimientos en una sola transacción.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	var removed int64
	err := uc.txRunner.Run(ctx, func(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		_ repository.BalanceRepository,
		productRepo repository.ProductRepository,
	) error {
		p, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if removed, err = movRepo.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		ok, err := productRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Int64("movements_deleted", removed).Msg("producto eliminado")
	return nil
}

func (uc *ProductUseCase) checkReferences(ctx context.Context, p *entity.Product) error {
	if p.CategoryID != nil {
		c, err := uc.categoryRepo.GetByID(ctx, *p.CategoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrInvalidInput
		}
	}
	if p.LocationID != nil {
		l, err := uc.locationRepo.GetByID(ctx, *p.LocationID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func validateLevels(minStock, maxStock int64, price decimal.Decimal) error {
	if minStock < 0 || maxStock < 0 || price.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	return inventory.ParseDate(*s)
}

func toProductResponse(d *entity.ProductDetail) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             d.ID,
		SKU:            d.SKU,
		Name:           d.Name,
		Description:    d.Description,
		CategoryID:     d.CategoryID,
		CategoryName:   d.CategoryName,
		CurrentStock:   d.CurrentStock(),
		MinStock:       d.MinStock,
		MaxStock:       d.MaxStock,
		UnitPrice:      d.UnitPrice,
		ExpirationDate: d.ExpirationDate,
		LocationID:     d.LocationID,
		LocationCode:   d.LocationCode,
		AreaName:       d.AreaName,
		AreaID:         d.AreaID,
		ManualRow:      d.ManualRow,
		ManualColumn:   d.ManualColumn,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
