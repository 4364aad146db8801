package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicial siempre es 0.
type CreateProductRequest struct {
	SKU            string          `json:"sku" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Description    string          `json:"description"`
	CategoryID     *string         `json:"category_id"`
	MinStock       int64           `json:"min_stock"`
	MaxStock       int64           `json:"max_stock"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ExpirationDate *string         `json:"expiration_date"` // YYYY-MM-DD
	LocationID     *string         `json:"location_id"`
	ManualRow      *int            `json:"manual_row"`
	ManualColumn   *int            `json:"manual_column"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock: se maneja vía movimientos).
// El SKU no se puede cambiar.
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	CategoryID     *string          `json:"category_id"`
	MinStock       *int64           `json:"min_stock"`
	MaxStock       *int64           `json:"max_stock"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	ExpirationDate *string          `json:"expiration_date"`
	LocationID     *string          `json:"location_id"`
	ManualRow      *int             `json:"manual_row"`
	ManualColumn   *int             `json:"manual_column"`
	IsActive       *bool            `json:"is_active"`
}

// ProductResponse salida de un producto con datos de categoría y ubicación.
type ProductResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CategoryID     *string         `json:"category_id"`
	CategoryName   *string         `json:"category_name"`
	CurrentStock   int64           `json:"current_stock"`
	MinStock       int64           `json:"min_stock"`
	MaxStock       int64           `json:"max_stock"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	LocationID     *string         `json:"location_id"`
	LocationCode   *string         `json:"location_code"`
	AreaName       *string         `json:"area_name"`
	AreaID         *string         `json:"area_id"`
	ManualRow      *int            `json:"manual_row"`
	ManualColumn   *int            `json:"manual_column"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// BalanceResponse saldo actual de un producto.
type BalanceResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int64  `json:"current_stock"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
