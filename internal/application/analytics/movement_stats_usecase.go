package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

const (
	trendDays       = 30
	topProductLimit = 10
)

// MovementStatsUseCase estadísticas del historial de movimientos.
type MovementStatsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewMovementStatsUseCase construye el caso de uso.
func NewMovementStatsUseCase(analyticsRepo repository.AnalyticsRepository) *MovementStatsUseCase {
	return &MovementStatsUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetStats devuelve conteos por tipo y top de productos en el rango pedido (opcional)
// y la tendencia diaria de los últimos 30 días.
func (uc *MovementStatsUseCase) GetStats(ctx context.Context, req dto.MovementStatsRequest) (*dto.MovementStatsDTO, error) {
	from, err := inventory.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := inventory.ParseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidInput
	}
	since := uc.now().AddDate(0, 0, -trendDays)

	type typeResult struct {
		rows []repository.MovementTypeStat
		err  error
	}
	type trendResult struct {
		rows []repository.MovementTrend
		err  error
	}
	type topResult struct {
		rows []repository.ProductActivity
		err  error
	}
	typeCh := make(chan typeResult, 1)
	trendCh := make(chan trendResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetMovementTypeStats(ctx, from, to)
		typeCh <- typeResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetMovementTrends(ctx, since)
		trendCh <- trendResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopMovedProducts(ctx, from, to, topProductLimit)
		topCh <- topResult{rows, err}
	}()

	types, trends, top := <-typeCh, <-trendCh, <-topCh
	if types.err != nil {
		return nil, fmt.Errorf("movement stats: por tipo: %w", types.err)
	}
	if trends.err != nil {
		return nil, fmt.Errorf("movement stats: tendencias: %w", trends.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("movement stats: top productos: %w", top.err)
	}

	out := &dto.MovementStatsDTO{
		MovementStats: make([]dto.MovementTypeStatDTO, 0, len(types.rows)),
		DailyTrends:   make([]dto.MovementTrendDTO, 0, len(trends.rows)),
		TopProducts:   make([]dto.ProductActivityDTO, 0, len(top.rows)),
	}
	for _, s := range types.rows {
		out.MovementStats = append(out.MovementStats, dto.MovementTypeStatDTO{
			MovementType: s.MovementType, Count: s.Count, TotalQuantity: s.TotalQuantity,
		})
	}
	for _, t := range trends.rows {
		out.DailyTrends = append(out.DailyTrends, dto.MovementTrendDTO{
			Date: t.Date, MovementType: t.MovementType, Count: t.Count, TotalQuantity: t.TotalQuantity,
		})
	}
	for _, p := range top.rows {
		out.TopProducts = append(out.TopProducts, dto.ProductActivityDTO{
			ProductID: p.ProductID, Name: p.Name, SKU: p.SKU,
			MovementCount: p.MovementCount, TotalIn: p.TotalIn, TotalOut: p.TotalOut,
		})
	}
	return out, nil
}
