package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportTypeDTO entrada del catálogo de reportes.
type ReportTypeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StockReportRequest filtros de GET /api/reports/stock.
type StockReportRequest struct {
	CategoryID   string `query:"category_id"`
	LowStockOnly bool   `query:"low_stock_only"`
}

// StockReportRow fila del reporte de stock.
type StockReportRow struct {
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	CategoryName   *string         `json:"category_name"`
	CurrentStock   int64           `json:"current_stock"`
	MinStock       int64           `json:"min_stock"`
	MaxStock       int64           `json:"max_stock"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	StockValue     decimal.Decimal `json:"stock_value"`
	ExpirationDate *time.Time      `json:"expiration_date"`
	LocationCode   *string         `json:"location_code"`
	AreaName       *string         `json:"area_name"`
	StockStatus    string          `json:"stock_status"`
	ExpiryStatus   string          `json:"expiry_status"`
}

// StockReportSummary totales del reporte de stock.
type StockReportSummary struct {
	TotalProducts int             `json:"total_products"`
	TotalValue    decimal.Decimal `json:"total_value"`
	OutOfStock    int             `json:"out_of_stock"`
	LowStock      int             `json:"low_stock"`
	InStock       int             `json:"in_stock"`
	Expired       int             `json:"expired"`
	NearExpiry    int             `json:"near_expiry"`
}

// StockReportDTO reporte de stock completo.
type StockReportDTO struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Rows        []StockReportRow   `json:"rows"`
	Summary     StockReportSummary `json:"summary"`
}

// NearExpiryRequest filtro de GET /api/reports/near-expiry. Months 0 = valor por defecto.
type NearExpiryRequest struct {
	Months int `query:"months"`
}

// NearExpiryRow producto próximo a vencer.
type NearExpiryRow struct {
	ProductID       string          `json:"product_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	CategoryName    *string         `json:"category_name"`
	CurrentStock    int64           `json:"current_stock"`
	StockValue      decimal.Decimal `json:"stock_value"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
	Urgency         string          `json:"urgency"`
	LocationCode    *string         `json:"location_code"`
}

// NearExpiryReportDTO reporte de próximos a vencer.
type NearExpiryReportDTO struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Months      int             `json:"months"`
	Rows        []NearExpiryRow `json:"rows"`
}

// LayoutAreaDTO área con sus ubicaciones para el reporte de layout.
type LayoutAreaDTO struct {
	Area           AreaResponse       `json:"area"`
	Locations      []LocationResponse `json:"locations"`
	TotalLocations int                `json:"total_locations"`
	UsedLocations  int                `json:"used_locations"`
}

// LayoutReportDTO reporte de distribución del almacén.
type LayoutReportDTO struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Areas       []LayoutAreaDTO `json:"areas"`
}
