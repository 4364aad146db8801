package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryTotals agregados globales del inventario.
type InventoryTotals struct {
	TotalProducts int
	TotalValue    decimal.Decimal // Σ current_stock * unit_price
	LowStock      int             // current_stock <= min_stock
	OutOfStock    int             // current_stock = 0
}

// CategoryStock stock agregado por categoría.
type CategoryStock struct {
	CategoryName string
	ProductCount int
	TotalStock   int64
	TotalValue   decimal.Decimal
}

// AreaUtilization ocupación de ubicaciones por área.
type AreaUtilization struct {
	AreaName              string
	TotalLocations        int
	UsedLocations         int
	UtilizationPercentage decimal.Decimal
}

// MovementTypeStat conteo y cantidad total por tipo de movimiento.
type MovementTypeStat struct {
	MovementType  string
	Count         int
	TotalQuantity int64
}

// MovementTrend conteo diario por tipo.
type MovementTrend struct {
	Date          time.Time
	MovementType  string
	Count         int
	TotalQuantity int64
}

// ProductActivity productos con más movimientos.
type ProductActivity struct {
	ProductID     string
	Name          string
	SKU           string
	MovementCount int
	TotalIn       int64
	TotalOut      int64
}

// LowStockItem producto en o bajo su mínimo (para reposición).
type LowStockItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	CurrentStock int64
	MinStock     int64
	MaxStock     int64
	UnitPrice    decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para dashboard, estadísticas y reposición.
type AnalyticsRepository interface {
	GetInventoryTotals(ctx context.Context) (InventoryTotals, error)
	GetRecentMovements(ctx context.Context, limit int) ([]*entity.StockMovementDetail, error)
	GetStockByCategory(ctx context.Context) ([]CategoryStock, error)
	GetAreaUtilization(ctx context.Context) ([]AreaUtilization, error)

	// from/to opcionales (nil = sin límite), inclusivos por día.
	GetMovementTypeStats(ctx context.Context, from, to *time.Time) ([]MovementTypeStat, error)
	GetMovementTrends(ctx context.Context, since time.Time) ([]MovementTrend, error)
	GetTopMovedProducts(ctx context.Context, from, to *time.Time, limit int) ([]ProductActivity, error)

	GetLowStockProducts(ctx context.Context) ([]LowStockItem, error)
}
