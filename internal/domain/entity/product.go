package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del almacén.
// El stock actual es una caché del libro de movimientos: solo se lee mediante CurrentStock()
// y solo el libro de stock (StockLedger) lo modifica en la base de datos.
type Product struct {
	ID             string
	SKU            string // clave de negocio única e inmutable
	Name           string
	Description    string
	CategoryID     *string
	MinStock       int64
	MaxStock       int64
	UnitPrice      decimal.Decimal
	ExpirationDate *time.Time
	LocationID     *string
	ManualRow      *int
	ManualColumn   *int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	currentStock int64
}

// CurrentStock devuelve el saldo en caché (suma con signo de sus movimientos).
func (p *Product) CurrentStock() int64 {
	return p.currentStock
}

// HydrateStock carga el saldo leído del almacenamiento. Lo usan los adaptadores de persistencia
// al escanear filas; no persiste nada.
func (p *Product) HydrateStock(stock int64) {
	p.currentStock = stock
}

// StockValue devuelve current_stock * unit_price.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(p.currentStock))
}

// ProductDetail producto con los datos de categoría y ubicación (joins de lectura).
type ProductDetail struct {
	Product
	CategoryName *string
	LocationCode *string
	AreaName     *string
	AreaID       *string
}
