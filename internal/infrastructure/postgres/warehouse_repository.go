package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.WarehouseAreaRepository = (*WarehouseAreaRepo)(nil)
var _ repository.WarehouseLocationRepository = (*WarehouseLocationRepo)(nil)

// WarehouseAreaRepo implementación del puerto WarehouseAreaRepository sobre PostgreSQL.
type WarehouseAreaRepo struct {
	q Querier
}

// NewWarehouseAreaRepository construye el adaptador de persistencia para áreas del almacén.
func NewWarehouseAreaRepository(q Querier) *WarehouseAreaRepo {
	return &WarehouseAreaRepo{q: q}
}

const areaColumns = `id, name, area_type, x_coordinate, y_coordinate, width, height, color, is_active, created_at`

// Create persiste una nueva área.
func (r *WarehouseAreaRepo) Create(ctx context.Context, a *entity.WarehouseArea) error {
	query := `
		INSERT INTO warehouse_areas (` + areaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.Name, a.Type, a.X, a.Y, a.Width, a.Height, a.Color, a.IsActive, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warehouse area: %w", err)
	}
	return nil
}

// GetByID obtiene un área por ID.
func (r *WarehouseAreaRepo) GetByID(ctx context.Context, id string) (*entity.WarehouseArea, error) {
	var a entity.WarehouseArea
	err := r.q.QueryRow(ctx, `SELECT `+areaColumns+` FROM warehouse_areas WHERE id = $1`, id).Scan(
		&a.ID, &a.Name, &a.Type, &a.X, &a.Y, &a.Width, &a.Height, &a.Color, &a.IsActive, &a.CreatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse area: %w", err)
	}
	return &a, nil
}

// Update actualiza un área. Devuelve false si no existía.
func (r *WarehouseAreaRepo) Update(ctx context.Context, a *entity.WarehouseArea) (bool, error) {
	query := `
		UPDATE warehouse_areas SET name = $2, area_type = $3, x_coordinate = $4, y_coordinate = $5,
			width = $6, height = $7, color = $8, is_active = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, a.ID, a.Name, a.Type, a.X, a.Y, a.Width, a.Height, a.Color, a.IsActive)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("update warehouse area: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List devuelve las áreas por nombre; activeOnly filtra las inactivas.
func (r *WarehouseAreaRepo) List(ctx context.Context, activeOnly bool) ([]*entity.WarehouseArea, error) {
	query := `SELECT ` + areaColumns + ` FROM warehouse_areas`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouse areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseArea
	for rows.Next() {
		var a entity.WarehouseArea
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.X, &a.Y, &a.Width, &a.Height, &a.Color, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete elimina un área. Devuelve false si no existía.
func (r *WarehouseAreaRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM warehouse_areas WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		if isForeignKeyViolation(err) {
			return false, domain.ErrConflict
		}
		return false, fmt.Errorf("delete warehouse area: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// WarehouseLocationRepo implementación del puerto WarehouseLocationRepository sobre PostgreSQL.
type WarehouseLocationRepo struct {
	q Querier
}

// NewWarehouseLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewWarehouseLocationRepository(q Querier) *WarehouseLocationRepo {
	return &WarehouseLocationRepo{q: q}
}

// is_occupied se deriva de los productos ubicados, no de la columna guardada.
const locationColumns = `wl.id, wl.area_id, wl.row_number, wl.column_number, wl.location_code, wl.capacity,
	EXISTS (SELECT 1 FROM products p WHERE p.location_id = wl.id), wl.created_at`

// Create persiste una ubicación. Código repetido → ErrDuplicate; área inexistente → ErrInvalidInput.
func (r *WarehouseLocationRepo) Create(ctx context.Context, l *entity.WarehouseLocation) error {
	query := `
		INSERT INTO warehouse_locations (id, area_id, row_number, column_number, location_code, capacity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.AreaID, l.RowNumber, l.ColumnNumber, l.LocationCode, l.Capacity, l.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert warehouse location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *WarehouseLocationRepo) GetByID(ctx context.Context, id string) (*entity.WarehouseLocation, error) {
	var l entity.WarehouseLocation
	err := r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM warehouse_locations wl WHERE wl.id = $1`, id).Scan(
		&l.ID, &l.AreaID, &l.RowNumber, &l.ColumnNumber, &l.LocationCode, &l.Capacity, &l.IsOccupied, &l.CreatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse location: %w", err)
	}
	return &l, nil
}

// Update actualiza una ubicación. Devuelve false si no existía.
func (r *WarehouseLocationRepo) Update(ctx context.Context, l *entity.WarehouseLocation) (bool, error) {
	query := `
		UPDATE warehouse_locations SET area_id = $2, row_number = $3, column_number = $4,
			location_code = $5, capacity = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, l.ID, l.AreaID, l.RowNumber, l.ColumnNumber, l.LocationCode, l.Capacity)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		if isUniqueViolation(err) {
			return false, domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return false, domain.ErrInvalidInput
		}
		return false, fmt.Errorf("update warehouse location: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ListDetails lista ubicaciones con su área y el producto ubicado (si hay varios, el de menor nombre).
func (r *WarehouseLocationRepo) ListDetails(ctx context.Context) ([]*entity.WarehouseLocationDetail, error) {
	query := `
		SELECT ` + locationColumns + `, wa.name, wa.color, pr.name, pr.sku, pr.current_stock
		FROM warehouse_locations wl
		LEFT JOIN warehouse_areas wa ON wa.id = wl.area_id
		LEFT JOIN LATERAL (
			SELECT p.name, p.sku, p.current_stock::bigint AS current_stock
			FROM products p WHERE p.location_id = wl.id
			ORDER BY p.name LIMIT 1
		) pr ON true
		ORDER BY wa.name, wl.row_number, wl.column_number`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouse locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseLocationDetail
	for rows.Next() {
		var d entity.WarehouseLocationDetail
		if err := rows.Scan(
			&d.ID, &d.AreaID, &d.RowNumber, &d.ColumnNumber, &d.LocationCode, &d.Capacity, &d.IsOccupied, &d.CreatedAt,
			&d.AreaName, &d.AreaColor, &d.ProductName, &d.ProductSKU, &d.CurrentStock,
		); err != nil {
			return nil, fmt.Errorf("scan warehouse location: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CountByArea cuenta las ubicaciones de un área.
func (r *WarehouseLocationRepo) CountByArea(ctx context.Context, areaID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM warehouse_locations WHERE area_id = $1`, areaID).Scan(&n); err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count warehouse locations: %w", err)
	}
	return n, nil
}

// DeleteByArea elimina todas las ubicaciones del área y devuelve cuántas borró.
func (r *WarehouseLocationRepo) DeleteByArea(ctx context.Context, areaID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM warehouse_locations WHERE area_id = $1`, areaID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrConflict
		}
		return 0, fmt.Errorf("delete warehouse locations by area: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// Delete elimina una ubicación. Si un producto la referencia → ErrConflict.
func (r *WarehouseLocationRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM warehouse_locations WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		if isForeignKeyViolation(err) {
			return false, domain.ErrConflict
		}
		return false, fmt.Errorf("delete warehouse location: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
