// Package inventory contiene la aritmética pura del libro de stock (servicio de dominio, sin E/S).
package inventory

import (
	"math"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// MaxStock es el mayor saldo o cantidad que cabe en las columnas INT de stock.
const MaxStock int64 = math.MaxInt32

// Effect es el resultado de aplicar un movimiento sobre un saldo.
type Effect struct {
	Delta          int64 // cambio con signo aplicado al saldo
	StoredQuantity int64 // magnitud que se guarda en stock_movements.quantity
	NewBalance     int64
}

// ApplyMovement calcula el efecto de un movimiento sobre el saldo actual.
//
//	in:         saldo + cantidad
//	out:        saldo - cantidad (ErrInsufficientStock si saldo < cantidad)
//	adjustment: cantidad es el saldo objetivo; delta = cantidad - saldo y se guarda |delta|
//
// Cantidades o saldos resultantes mayores a MaxStock devuelven ErrInvalidInput.
func ApplyMovement(balance int64, movementType string, quantity int64) (Effect, error) {
	if quantity <= 0 || quantity > MaxStock {
		return Effect{}, domain.ErrInvalidInput
	}
	switch movementType {
	case entity.MovementTypeIn:
		if err := CheckBalance(balance + quantity); err != nil {
			return Effect{}, err
		}
		return Effect{Delta: quantity, StoredQuantity: quantity, NewBalance: balance + quantity}, nil
	case entity.MovementTypeOut:
		if balance < quantity {
			return Effect{}, domain.ErrInsufficientStock
		}
		return Effect{Delta: -quantity, StoredQuantity: quantity, NewBalance: balance - quantity}, nil
	case entity.MovementTypeAdjustment:
		delta := quantity - balance
		if delta == 0 {
			// stock_movements.quantity debe ser > 0: un ajuste sin cambio no genera asiento.
			return Effect{}, domain.ErrInvalidInput
		}
		return Effect{Delta: delta, StoredQuantity: abs(delta), NewBalance: quantity}, nil
	}
	return Effect{}, domain.ErrInvalidInput
}

// CheckBalance valida un saldo resultante: negativo es ErrInsufficientStock,
// mayor a MaxStock es ErrInvalidInput.
func CheckBalance(balance int64) error {
	switch {
	case balance < 0:
		return domain.ErrInsufficientStock
	case balance > MaxStock:
		return domain.ErrInvalidInput
	}
	return nil
}

// ReversalDelta devuelve el cambio de saldo que deshace un movimiento in/out.
// Los ajustes no se revierten: el saldo previo no queda registrado.
func ReversalDelta(m *entity.StockMovement) (int64, error) {
	switch m.Type {
	case entity.MovementTypeIn:
		return -m.Quantity, nil
	case entity.MovementTypeOut:
		return m.Quantity, nil
	case entity.MovementTypeAdjustment:
		return 0, domain.ErrUnsupportedOperation
	}
	return 0, domain.ErrInvalidInput
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
