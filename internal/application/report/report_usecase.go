// Package report arma los reportes del almacén como datos. El formato de archivo
// (Excel/PDF) queda a cargo del cliente.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// Identificadores del catálogo de reportes.
const (
	TypeStock           = "stock"
	TypeNearExpiry      = "near-expiry"
	TypeWarehouseLayout = "warehouse-layout"
)

var catalogue = []dto.ReportTypeDTO{
	{ID: TypeStock, Name: "Stock Report", Description: "Current stock levels, stock and expiry status, stock value"},
	{ID: TypeNearExpiry, Name: "Near Expiry Report", Description: "Products expiring within the selected number of months"},
	{ID: TypeWarehouseLayout, Name: "Warehouse Layout Report", Description: "Areas, locations and occupancy"},
}

// ReportUseCase genera los reportes a partir de los repositorios de productos y del plano.
type ReportUseCase struct {
	productRepo      repository.ProductRepository
	areaRepo         repository.WarehouseAreaRepository
	locationRepo     repository.WarehouseLocationRepository
	nearExpiryMonths int
	now              func() time.Time
}

// NewReportUseCase construye el caso de uso. nearExpiryMonths es la ventana por defecto.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	areaRepo repository.WarehouseAreaRepository,
	locationRepo repository.WarehouseLocationRepository,
	nearExpiryMonths int,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo:      productRepo,
		areaRepo:         areaRepo,
		locationRepo:     locationRepo,
		nearExpiryMonths: nearExpiryMonths,
		now:              time.Now,
	}
}

// Types devuelve el catálogo de reportes disponibles.
func (uc *ReportUseCase) Types() []dto.ReportTypeDTO {
	out := make([]dto.ReportTypeDTO, len(catalogue))
	copy(out, catalogue)
	return out
}

// Stock reporte de stock de productos activos, opcionalmente por categoría o solo bajo mínimo.
func (uc *ReportUseCase) Stock(ctx context.Context, req dto.StockReportRequest) (*dto.StockReportDTO, error) {
	products, err := uc.productRepo.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	window := now.AddDate(0, uc.nearExpiryMonths, 0).Sub(now)

	out := &dto.StockReportDTO{GeneratedAt: now, Rows: []dto.StockReportRow{}}
	out.Summary.TotalValue = decimal.Zero
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if req.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != req.CategoryID) {
			continue
		}
		current := p.CurrentStock()
		if req.LowStockOnly && current > p.MinStock {
			continue
		}
		row := dto.StockReportRow{
			ProductID:      p.ID,
			SKU:            p.SKU,
			Name:           p.Name,
			CategoryName:   p.CategoryName,
			CurrentStock:   current,
			MinStock:       p.MinStock,
			MaxStock:       p.MaxStock,
			UnitPrice:      p.UnitPrice,
			StockValue:     p.StockValue(),
			ExpirationDate: p.ExpirationDate,
			LocationCode:   p.LocationCode,
			AreaName:       p.AreaName,
			StockStatus:    inventory.StockStatus(current, p.MinStock),
			ExpiryStatus:   inventory.ExpiryStatus(p.ExpirationDate, now, window),
		}
		out.Rows = append(out.Rows, row)

		s := &out.Summary
		s.TotalProducts++
		s.TotalValue = s.TotalValue.Add(row.StockValue)
		switch row.StockStatus {
		case inventory.StockStatusOut:
			s.OutOfStock++
		case inventory.StockStatusLow:
			s.LowStock++
		default:
			s.InStock++
		}
		switch row.ExpiryStatus {
		case inventory.ExpiryStatusExpired:
			s.Expired++
		case inventory.ExpiryStatusNear:
			s.NearExpiry++
		}
	}
	return out, nil
}

// NearExpiry productos activos que vencen dentro de months meses (0 = valor por defecto),
// incluidos los ya vencidos, ordenados por fecha de vencimiento.
func (uc *ReportUseCase) NearExpiry(ctx context.Context, req dto.NearExpiryRequest) (*dto.NearExpiryReportDTO, error) {
	months := req.Months
	if months == 0 {
		months = uc.nearExpiryMonths
	}
	if months < 0 || months > 120 {
		return nil, domain.ErrInvalidInput
	}
	products, err := uc.productRepo.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	limit := now.AddDate(0, months, 0)

	out := &dto.NearExpiryReportDTO{GeneratedAt: now, Months: months, Rows: []dto.NearExpiryRow{}}
	for _, p := range products {
		if !p.IsActive || p.ExpirationDate == nil || p.ExpirationDate.After(limit) {
			continue
		}
		days := inventory.DaysUntil(*p.ExpirationDate, now)
		out.Rows = append(out.Rows, dto.NearExpiryRow{
			ProductID:       p.ID,
			SKU:             p.SKU,
			Name:            p.Name,
			CategoryName:    p.CategoryName,
			CurrentStock:    p.CurrentStock(),
			StockValue:      p.StockValue(),
			ExpirationDate:  *p.ExpirationDate,
			DaysUntilExpiry: days,
			Urgency:         inventory.ExpiryUrgency(days),
			LocationCode:    p.LocationCode,
		})
	}
	sort.SliceStable(out.Rows, func(i, j int) bool {
		return out.Rows[i].ExpirationDate.Before(out.Rows[j].ExpirationDate)
	})
	return out, nil
}

// WarehouseLayout áreas activas con sus ubicaciones y ocupación.
func (uc *ReportUseCase) WarehouseLayout(ctx context.Context) (*dto.LayoutReportDTO, error) {
	areas, err := uc.areaRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	locations, err := uc.locationRepo.ListDetails(ctx)
	if err != nil {
		return nil, err
	}
	byArea := make(map[string][]*entity.WarehouseLocationDetail, len(areas))
	for _, l := range locations {
		byArea[l.AreaID] = append(byArea[l.AreaID], l)
	}

	out := &dto.LayoutReportDTO{GeneratedAt: uc.now(), Areas: make([]dto.LayoutAreaDTO, 0, len(areas))}
	for _, a := range areas {
		item := dto.LayoutAreaDTO{Area: usecase.ToAreaResponse(a), Locations: []dto.LocationResponse{}}
		for _, l := range byArea[a.ID] {
			item.Locations = append(item.Locations, usecase.ToLocationResponse(l))
			item.TotalLocations++
			if l.IsOccupied || l.ProductName != nil {
				item.UsedLocations++
			}
		}
		out.Areas = append(out.Areas, item)
	}
	return out, nil
}
