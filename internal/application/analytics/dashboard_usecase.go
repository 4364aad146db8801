// Package analytics contiene los casos de uso de lectura agregada: dashboard y
// estadísticas de movimientos.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

const dashboardRecentMovements = 10 // movimientos en el widget del dashboard

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStats construye el DashboardStatsDTO.
//
// Cuatro llamadas en paralelo:
//  1. GetInventoryTotals      → totales, valor, bajo mínimo, sin stock
//  2. GetRecentMovements(10)  → últimos movimientos
//  3. GetStockByCategory      → stock por categoría
//  4. GetAreaUtilization      → ocupación por área
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	type totalsResult struct {
		totals repository.InventoryTotals
		err    error
	}
	type recentResult struct {
		movements []*entity.StockMovementDetail
		err       error
	}
	type categoryResult struct {
		rows []repository.CategoryStock
		err  error
	}
	type utilizationResult struct {
		rows []repository.AreaUtilization
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	recentCh := make(chan recentResult, 1)
	categoryCh := make(chan categoryResult, 1)
	utilizationCh := make(chan utilizationResult, 1)

	go func() {
		t, err := uc.analyticsRepo.GetInventoryTotals(ctx)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetRecentMovements(ctx, dashboardRecentMovements)
		recentCh <- recentResult{m, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetStockByCategory(ctx)
		categoryCh <- categoryResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetAreaUtilization(ctx)
		utilizationCh <- utilizationResult{rows, err}
	}()

	totals := <-totalsCh
	recent := <-recentCh
	categories := <-categoryCh
	utilization := <-utilizationCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", totals.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", recent.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("dashboard: stock por categoría: %w", categories.err)
	}
	if utilization.err != nil {
		return nil, fmt.Errorf("dashboard: ocupación: %w", utilization.err)
	}

	out := &dto.DashboardStatsDTO{
		TotalProducts:        totals.totals.TotalProducts,
		TotalValue:           totals.totals.TotalValue.Round(2),
		LowStockItems:        totals.totals.LowStock,
		OutOfStockItems:      totals.totals.OutOfStock,
		RecentMovements:      make([]dto.StockMovementResponse, 0, len(recent.movements)),
		StockByCategory:      make([]dto.CategoryStockDTO, 0, len(categories.rows)),
		WarehouseUtilization: make([]dto.AreaUtilizationDTO, 0, len(utilization.rows)),
	}
	for _, m := range recent.movements {
		out.RecentMovements = append(out.RecentMovements, inventory.ToMovementResponse(m))
	}
	for _, c := range categories.rows {
		out.StockByCategory = append(out.StockByCategory, dto.CategoryStockDTO{
			Category:     c.CategoryName,
			ProductCount: c.ProductCount,
			TotalStock:   c.TotalStock,
			TotalValue:   c.TotalValue.Round(2),
		})
	}
	for _, a := range utilization.rows {
		out.WarehouseUtilization = append(out.WarehouseUtilization, dto.AreaUtilizationDTO{
			AreaName:              a.AreaName,
			TotalLocations:        a.TotalLocations,
			UsedLocations:         a.UsedLocations,
			UtilizationPercentage: a.UtilizationPercentage.Round(2),
		})
	}
	return out, nil
}
