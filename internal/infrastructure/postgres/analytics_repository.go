package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard, estadísticas de movimientos y reposición.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetInventoryTotals total de productos, valor del stock y conteos de stock bajo / agotado.
func (r *AnalyticsRepo) GetInventoryTotals(ctx context.Context) (repository.InventoryTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                                  AS total_products,
	    COALESCE(SUM(current_stock * unit_price), 0)              AS total_value,
	    COUNT(*) FILTER (WHERE current_stock <= min_stock)        AS low_stock,
	    COUNT(*) FILTER (WHERE current_stock = 0)                 AS out_of_stock
	FROM products`

	var t repository.InventoryTotals
	if err := r.pool.QueryRow(ctx, query).Scan(&t.TotalProducts, &t.TotalValue, &t.LowStock, &t.OutOfStock); err != nil {
		return repository.InventoryTotals{}, fmt.Errorf("analytics.GetInventoryTotals: %w", err)
	}
	return t, nil
}

// GetRecentMovements últimos `limit` movimientos con nombre y SKU del producto.
func (r *AnalyticsRepo) GetRecentMovements(ctx context.Context, limit int) ([]*entity.StockMovementDetail, error) {
	return NewStockMovementRepository(r.pool).List(ctx, repository.MovementFilter{Limit: limit})
}

// GetStockByCategory unidades y valor por categoría; los productos sin categoría van a "Sin categoría".
func (r *AnalyticsRepo) GetStockByCategory(ctx context.Context) ([]repository.CategoryStock, error) {
	const query = `
	SELECT
	    COALESCE(c.name, 'Sin categoría')                 AS category_name,
	    COUNT(p.id)                                       AS product_count,
	    COALESCE(SUM(p.current_stock), 0)                 AS total_stock,
	    COALESCE(SUM(p.current_stock * p.unit_price), 0)  AS total_value
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	GROUP BY c.name
	ORDER BY total_stock DESC, category_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStockByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryStock
	for rows.Next() {
		var row repository.CategoryStock
		if err := rows.Scan(&row.CategoryName, &row.ProductCount, &row.TotalStock, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("analytics.GetStockByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetAreaUtilization ubicaciones totales y ocupadas por área activa.
// El porcentaje se protege contra división por cero y se redondea a 2 decimales.
func (r *AnalyticsRepo) GetAreaUtilization(ctx context.Context) ([]repository.AreaUtilization, error) {
	const query = `
	SELECT
	    wa.name                                                        AS area_name,
	    COUNT(wl.id)                                                   AS total_locations,
	    COUNT(wl.id) FILTER (WHERE occ.used)                           AS used_locations,
	    COALESCE(ROUND(
	        COUNT(wl.id) FILTER (WHERE occ.used) * 100.0 / NULLIF(COUNT(wl.id), 0)
	    , 2), 0)                                                       AS utilization_percentage
	FROM warehouse_areas wa
	LEFT JOIN warehouse_locations wl ON wl.area_id = wa.id
	LEFT JOIN LATERAL (
	    SELECT EXISTS (SELECT 1 FROM products p WHERE p.location_id = wl.id) AS used
	) occ ON true
	WHERE wa.is_active = true
	GROUP BY wa.id, wa.name
	ORDER BY wa.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetAreaUtilization: %w", err)
	}
	defer rows.Close()

	var results []repository.AreaUtilization
	for rows.Next() {
		var row repository.AreaUtilization
		if err := rows.Scan(&row.AreaName, &row.TotalLocations, &row.UsedLocations, &row.UtilizationPercentage); err != nil {
			return nil, fmt.Errorf("analytics.GetAreaUtilization scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMovementTypeStats conteo y cantidad total por tipo. from/to nil = sin límite; to es inclusivo.
func (r *AnalyticsRepo) GetMovementTypeStats(ctx context.Context, from, to *time.Time) ([]repository.MovementTypeStat, error) {
	const query = `
	SELECT
	    movement_type,
	    COUNT(*)                    AS count,
	    COALESCE(SUM(quantity), 0)  AS total_quantity
	FROM stock_movements
	WHERE ($1::timestamptz IS NULL OR created_at >= $1)
	  AND ($2::timestamptz IS NULL OR created_at <  $2)
	GROUP BY movement_type
	ORDER BY movement_type`

	start, end := dayRange(from, to)
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMovementTypeStats: %w", err)
	}
	defer rows.Close()

	var results []repository.MovementTypeStat
	for rows.Next() {
		var row repository.MovementTypeStat
		if err := rows.Scan(&row.MovementType, &row.Count, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("analytics.GetMovementTypeStats scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMovementTrends conteo diario por tipo desde `since`.
func (r *AnalyticsRepo) GetMovementTrends(ctx context.Context, since time.Time) ([]repository.MovementTrend, error) {
	const query = `
	SELECT
	    DATE(created_at)            AS day,
	    movement_type,
	    COUNT(*)                    AS count,
	    COALESCE(SUM(quantity), 0)  AS total_quantity
	FROM stock_movements
	WHERE created_at >= $1
	GROUP BY day, movement_type
	ORDER BY day, movement_type`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMovementTrends: %w", err)
	}
	defer rows.Close()

	var results []repository.MovementTrend
	for rows.Next() {
		var row repository.MovementTrend
		if err := rows.Scan(&row.Date, &row.MovementType, &row.Count, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("analytics.GetMovementTrends scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopMovedProducts los `limit` productos con más movimientos, con total de entradas y salidas.
func (r *AnalyticsRepo) GetTopMovedProducts(ctx context.Context, from, to *time.Time, limit int) ([]repository.ProductActivity, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    p.sku,
	    COUNT(sm.id)                                                         AS movement_count,
	    COALESCE(SUM(sm.quantity) FILTER (WHERE sm.movement_type = 'in'), 0)  AS total_in,
	    COALESCE(SUM(sm.quantity) FILTER (WHERE sm.movement_type = 'out'), 0) AS total_out
	FROM stock_movements sm
	JOIN products p ON p.id = sm.product_id
	WHERE ($1::timestamptz IS NULL OR sm.created_at >= $1)
	  AND ($2::timestamptz IS NULL OR sm.created_at <  $2)
	GROUP BY p.id, p.name, p.sku
	ORDER BY movement_count DESC, p.name
	LIMIT $3`

	start, end := dayRange(from, to)
	rows, err := r.pool.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopMovedProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductActivity
	for rows.Next() {
		var row repository.ProductActivity
		if err := rows.Scan(&row.ProductID, &row.Name, &row.SKU, &row.MovementCount, &row.TotalIn, &row.TotalOut); err != nil {
			return nil, fmt.Errorf("analytics.GetTopMovedProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetLowStockProducts productos activos con current_stock <= min_stock.
func (r *AnalyticsRepo) GetLowStockProducts(ctx context.Context) ([]repository.LowStockItem, error) {
	const query = `
	SELECT id, sku, name, current_stock, min_stock, max_stock, unit_price
	FROM products
	WHERE is_active = true
	  AND current_stock <= min_stock
	ORDER BY (min_stock - current_stock) DESC, sku`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetLowStockProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockItem
	for rows.Next() {
		var row repository.LowStockItem
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.CurrentStock, &row.MinStock, &row.MaxStock, &row.UnitPrice); err != nil {
			return nil, fmt.Errorf("analytics.GetLowStockProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// dayRange convierte fechas inclusivas por día en el intervalo semiabierto [start, end).
func dayRange(from, to *time.Time) (start, end *time.Time) {
	if from != nil {
		s := *from
		start = &s
	}
	if to != nil {
		e := to.AddDate(0, 0, 1)
		end = &e
	}
	return start, end
}
