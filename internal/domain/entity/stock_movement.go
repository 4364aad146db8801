package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // fija el saldo a un valor absoluto
)

// ValidMovementType informa si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement es una entrada del libro de stock (append-only).
// Quantity es siempre una magnitud positiva; en un ajuste es |delta| aplicado, no el saldo objetivo.
type StockMovement struct {
	ID              string
	ProductID       string
	Type            string // in, out, adjustment
	Quantity        int64
	ReferenceNumber *string
	Notes           *string
	CreatedBy       string
	CreatedAt       time.Time
}

// StockMovementDetail movimiento con datos del producto para listados.
type StockMovementDetail struct {
	StockMovement
	ProductName  *string
	ProductSKU   *string
	CategoryName *string
}
