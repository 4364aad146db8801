package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

const (
	defaultMovementPageSize = 50
	productMovementPageSize = 20
	dateLayout              = "2006-01-02"
)

// MovementQueryUseCase consultas de solo lectura sobre el historial de movimientos.
type MovementQueryUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, productRepo: productRepo}
}

// List devuelve movimientos filtrados, del más reciente al más antiguo, con paginación.
func (uc *MovementQueryUseCase) List(ctx context.Context, req dto.MovementListRequest) (*dto.MovementListResponse, error) {
	page := req.PageRequest
	page.DefaultPage(defaultMovementPageSize)

	filter := repository.MovementFilter{
		ProductID:    strings.TrimSpace(req.ProductID),
		MovementType: strings.TrimSpace(req.MovementType),
		Limit:        page.Limit,
		Offset:       page.Offset(),
	}
	if filter.MovementType != "" && !entity.ValidMovementType(filter.MovementType) {
		return nil, domain.ErrInvalidInput
	}
	var err error
	if filter.StartDate, err = ParseDate(req.StartDate); err != nil {
		return nil, err
	}
	if filter.EndDate, err = ParseDate(req.EndDate); err != nil {
		return nil, err
	}
	return uc.page(ctx, filter, page)
}

// ListByProduct devuelve el historial de un producto (20 por página por defecto).
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage(productMovementPageSize)
	filter := repository.MovementFilter{ProductID: productID, Limit: page.Limit, Offset: page.Offset()}
	return uc.page(ctx, filter, page)
}

func (uc *MovementQueryUseCase) page(ctx context.Context, filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{Movements: out, Pagination: dto.NewPagination(page, total)}, nil
}

// ParseDate interpreta una fecha YYYY-MM-DD; vacío = sin filtro.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

// ToMovementResponse mapea un movimiento con datos de producto al DTO de salida.
func ToMovementResponse(m *entity.StockMovementDetail) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		MovementType:    m.Type,
		Quantity:        m.Quantity,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		ProductName:     m.ProductName,
		ProductSKU:      m.ProductSKU,
		CategoryName:    m.CategoryName,
	}
}
