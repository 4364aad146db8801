package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `sm.id, sm.product_id, sm.movement_type, sm.quantity, sm.reference_number, sm.notes,
	sm.created_by, sm.created_at`

// Create inserta una entrada del libro.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, movement_type, quantity, reference_number, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Type, m.Quantity, m.ReferenceNumber, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements sm WHERE sm.id = $1`, id)
}

// GetForUpdate obtiene y bloquea el movimiento hasta el fin de la transacción.
func (r *StockMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements sm WHERE sm.id = $1 FOR UPDATE`, id)
}

func (r *StockMovementRepo) get(ctx context.Context, query, id string) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.ReferenceNumber, &m.Notes, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// Delete elimina un movimiento (solo desde la reversión).
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	return nil
}

// DeleteByProduct elimina todos los movimientos de un producto y devuelve cuántos borró.
func (r *StockMovementRepo) DeleteByProduct(ctx context.Context, productID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE product_id = $1`, productID)
	if err != nil {
		return 0, fmt.Errorf("delete stock movements by product: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// movementWhere arma la cláusula WHERE y sus argumentos a partir del filtro.
// EndDate es inclusivo: se compara contra el inicio del día siguiente.
func movementWhere(f repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("sm.product_id = $%d", f.ProductID)
	}
	if f.MovementType != "" {
		add("sm.movement_type = $%d", f.MovementType)
	}
	if f.StartDate != nil {
		add("sm.created_at >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("sm.created_at < $%d", f.EndDate.AddDate(0, 0, 1))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List devuelve movimientos con datos del producto, más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovementDetail, error) {
	where, args := movementWhere(f)
	query := `
		SELECT ` + movementColumns + `, p.name, p.sku, c.name
		FROM stock_movements sm
		LEFT JOIN products p ON p.id = sm.product_id
		LEFT JOIN categories c ON c.id = p.category_id` + where + ` ORDER BY sm.created_at DESC, sm.id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovementDetail
	for rows.Next() {
		var d entity.StockMovementDetail
		if err := rows.Scan(
			&d.ID, &d.ProductID, &d.Type, &d.Quantity, &d.ReferenceNumber, &d.Notes, &d.CreatedBy, &d.CreatedAt,
			&d.ProductName, &d.ProductSKU, &d.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Count cuenta los movimientos que cumplen el filtro (ignora Limit y Offset).
func (r *StockMovementRepo) Count(ctx context.Context, f repository.MovementFilter) (int, error) {
	where, args := movementWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements sm`+where, args...).Scan(&n); err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}
