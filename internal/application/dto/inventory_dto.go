package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/stock-movements y POST /api/products/:id/stock.
// En un ajuste, quantity es el saldo objetivo, no la variación.
type RecordMovementRequest struct {
	ProductID       string  `json:"product_id"`
	MovementType    string  `json:"movement_type"`
	Quantity        int64   `json:"quantity"`
	ReferenceNumber *string `json:"reference_number,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// RecordMovementResponse resultado de registrar un movimiento.
type RecordMovementResponse struct {
	Message    string `json:"message"`
	ID         string `json:"id"`
	NewBalance int64  `json:"new_balance"`
}

// ReverseMovementResponse resultado de revertir (eliminar) un movimiento.
type ReverseMovementResponse struct {
	Message    string `json:"message"`
	ProductID  string `json:"product_id"`
	NewBalance int64  `json:"new_balance"`
}

// MovementListRequest filtros de GET /api/stock-movements (fechas YYYY-MM-DD).
type MovementListRequest struct {
	PageRequest
	ProductID    string `query:"product_id"`
	MovementType string `query:"movement_type"`
	StartDate    string `query:"start_date"`
	EndDate      string `query:"end_date"`
}

// StockMovementResponse movimiento con datos del producto.
type StockMovementResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	MovementType    string    `json:"movement_type"`
	Quantity        int64     `json:"quantity"`
	ReferenceNumber *string   `json:"reference_number"`
	Notes           *string   `json:"notes"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	ProductName     *string   `json:"product_name,omitempty"`
	ProductSKU      *string   `json:"product_sku,omitempty"`
	CategoryName    *string   `json:"category_name,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Movements  []StockMovementResponse `json:"movements"`
	Pagination Pagination              `json:"pagination"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un SKU en o bajo su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int64           `json:"current_stock"`
	MinStock           int64           `json:"min_stock"`
	MaxStock           int64           `json:"max_stock"`
	SuggestedOrderQty  int64           `json:"suggested_order_qty"` // MaxStock - CurrentStock
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitPrice
	Priority           int             `json:"priority"`             // 1 = más urgente
}
