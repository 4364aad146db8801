package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts        int                     `json:"totalProducts"`
	TotalValue           decimal.Decimal         `json:"totalValue"` // Σ current_stock × unit_price
	LowStockItems        int                     `json:"lowStockItems"`
	OutOfStockItems      int                     `json:"outOfStockItems"`
	RecentMovements      []StockMovementResponse `json:"recentMovements"`
	StockByCategory      []CategoryStockDTO      `json:"stockByCategory"`
	WarehouseUtilization []AreaUtilizationDTO    `json:"warehouseUtilization"`
}

// CategoryStockDTO stock agregado por categoría.
type CategoryStockDTO struct {
	Category     string          `json:"category"`
	ProductCount int             `json:"product_count"`
	TotalStock   int64           `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// AreaUtilizationDTO ocupación de ubicaciones por área.
type AreaUtilizationDTO struct {
	AreaName              string          `json:"area_name"`
	TotalLocations        int             `json:"total_locations"`
	UsedLocations         int             `json:"used_locations"`
	UtilizationPercentage decimal.Decimal `json:"utilization_percentage"`
}

// MovementStatsRequest rango opcional (YYYY-MM-DD) para GET /api/stock-movements/stats.
type MovementStatsRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// MovementStatsDTO estadísticas de movimientos.
type MovementStatsDTO struct {
	MovementStats []MovementTypeStatDTO `json:"movementStats"`
	DailyTrends   []MovementTrendDTO    `json:"dailyTrends"`
	TopProducts   []ProductActivityDTO  `json:"topProducts"`
}

// MovementTypeStatDTO conteo y cantidad total por tipo.
type MovementTypeStatDTO struct {
	MovementType  string `json:"movement_type"`
	Count         int    `json:"count"`
	TotalQuantity int64  `json:"total_quantity"`
}

// MovementTrendDTO cantidad movida por día y tipo.
type MovementTrendDTO struct {
	Date          time.Time `json:"date"`
	MovementType  string    `json:"movement_type"`
	Count         int       `json:"count"`
	TotalQuantity int64     `json:"total_quantity"`
}

// ProductActivityDTO producto con más movimientos.
type ProductActivityDTO struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	MovementCount int    `json:"movement_count"`
	TotalIn       int64  `json:"total_in"`
	TotalOut      int64  `json:"total_out"`
}
