package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.sku, p.name, p.description, p.category_id, p.min_stock, p.max_stock, p.unit_price,
	p.expiration_date, p.location_id, p.manual_row, p.manual_column, p.is_active, p.current_stock, p.created_at, p.updated_at`

const productDetailSelect = `
	SELECT ` + productColumns + `, c.name, wl.location_code, wa.name, wa.id
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN warehouse_locations wl ON wl.id = p.location_id
	LEFT JOIN warehouse_areas wa ON wa.id = wl.area_id`

// productDest devuelve los destinos de Scan en el orden de productColumns.
func productDest(p *entity.Product, stock *int64) []any {
	return []any{
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.CategoryID, &p.MinStock, &p.MaxStock, &p.UnitPrice,
		&p.ExpirationDate, &p.LocationID, &p.ManualRow, &p.ManualColumn, &p.IsActive, stock, &p.CreatedAt, &p.UpdatedAt,
	}
}

func scanProductDetail(row pgx.Row) (*entity.ProductDetail, error) {
	var d entity.ProductDetail
	var stock int64
	dest := append(productDest(&d.Product, &stock), &d.CategoryName, &d.LocationCode, &d.AreaName, &d.AreaID)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	d.HydrateStock(stock)
	return &d, nil
}

// Create persiste un nuevo producto. El saldo inicia en 0 (valor por defecto de la columna).
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, category_id, min_stock, max_stock, unit_price,
			expiration_date, location_id, manual_row, manual_column, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Name, product.Description, product.CategoryID,
		product.MinStock, product.MaxStock, product.UnitPrice, product.ExpirationDate, product.LocationID,
		product.ManualRow, product.ManualColumn, product.IsActive, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`
	var p entity.Product
	var stock int64
	err := r.q.QueryRow(ctx, query, id).Scan(productDest(&p, &stock)...)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.HydrateStock(stock)
	return &p, nil
}

// GetBySKU obtiene un producto por SKU (ya normalizado).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.sku = $1`
	var p entity.Product
	var stock int64
	err := r.q.QueryRow(ctx, query, sku).Scan(productDest(&p, &stock)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	p.HydrateStock(stock)
	return &p, nil
}

// GetDetail obtiene un producto con su categoría, ubicación y área.
func (r *ProductRepo) GetDetail(ctx context.Context, id string) (*entity.ProductDetail, error) {
	d, err := scanProductDetail(r.q.QueryRow(ctx, productDetailSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product detail: %w", err)
	}
	return d, nil
}

// ListDetails lista todos los productos ordenados por nombre.
func (r *ProductRepo) ListDetails(ctx context.Context) ([]*entity.ProductDetail, error) {
	rows, err := r.q.Query(ctx, productDetailSelect+` ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductDetail
	for rows.Next() {
		d, err := scanProductDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update actualiza los datos maestros. No toca sku ni current_stock (el saldo cambia solo vía el libro).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category_id = $4, min_stock = $5, max_stock = $6,
			unit_price = $7, expiration_date = $8, location_id = $9, manual_row = $10, manual_column = $11,
			is_active = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.CategoryID, product.MinStock, product.MaxStock,
		product.UnitPrice, product.ExpirationDate, product.LocationID, product.ManualRow, product.ManualColumn,
		product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// CountByLocation cuenta los productos ubicados en una ubicación.
func (r *ProductRepo) CountByLocation(ctx context.Context, locationID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE location_id = $1`, locationID).Scan(&n)
	if err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count products by location: %w", err)
	}
	return n, nil
}

// CountByArea cuenta los productos ubicados en cualquier ubicación del área.
func (r *ProductRepo) CountByArea(ctx context.Context, areaID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM products p
		JOIN warehouse_locations wl ON wl.id = p.location_id
		WHERE wl.area_id = $1`
	var n int
	err := r.q.QueryRow(ctx, query, areaID).Scan(&n)
	if err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count products by area: %w", err)
	}
	return n, nil
}

// BalanceRepo acceso al saldo cacheado de products.current_stock.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador del saldo. Para LockBalance, q debe ser una tx.
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// LockBalance bloquea la fila del producto hasta el fin de la transacción y devuelve su saldo.
func (r *BalanceRepo) LockBalance(ctx context.Context, productID string) (int64, error) {
	var stock int64
	err := r.q.QueryRow(ctx, `SELECT current_stock FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&stock)
	if err != nil {
		if isNotFound(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("lock balance: %w", err)
	}
	return stock, nil
}

// ApplyDelta suma delta al saldo. El CHECK (current_stock >= 0) rechaza saldos negativos.
func (r *BalanceRepo) ApplyDelta(ctx context.Context, productID string, delta int64) (int64, error) {
	var stock int64
	err := r.q.QueryRow(ctx,
		`UPDATE products SET current_stock = current_stock + $2, updated_at = now() WHERE id = $1 RETURNING current_stock`,
		productID, delta,
	).Scan(&stock)
	if err != nil {
		if isNotFound(err) {
			return 0, domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, fmt.Errorf("apply balance delta: %w", err)
	}
	return stock, nil
}

// GetBalance lee el saldo sin bloqueo.
func (r *BalanceRepo) GetBalance(ctx context.Context, productID string) (int64, error) {
	var stock int64
	err := r.q.QueryRow(ctx, `SELECT current_stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if err != nil {
		if isNotFound(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return stock, nil
}
