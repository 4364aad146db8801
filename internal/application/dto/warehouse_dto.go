package dto

import "time"

// AreaRequest entrada para crear o reemplazar un área del almacén.
type AreaRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Color    string `json:"color"`
	IsActive *bool  `json:"is_active"`
}

// AreaResponse salida de un área.
type AreaResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Color     string    `json:"color"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// DeleteAreaResponse resultado de eliminar un área junto con sus ubicaciones.
type DeleteAreaResponse struct {
	Message          string `json:"message"`
	DeletedLocations int64  `json:"deletedLocations"`
}

// LocationRequest entrada para crear o reemplazar una ubicación. Capacity 0 = valor por defecto.
type LocationRequest struct {
	AreaID       string `json:"area_id"`
	RowNumber    int    `json:"row_number"`
	ColumnNumber int    `json:"column_number"`
	LocationCode string `json:"location_code"`
	Capacity     int    `json:"capacity"`
}

// LocationResponse ubicación con área y producto ubicado.
type LocationResponse struct {
	ID           string    `json:"id"`
	AreaID       string    `json:"area_id"`
	RowNumber    int       `json:"row_number"`
	ColumnNumber int       `json:"column_number"`
	LocationCode string    `json:"location_code"`
	Capacity     int       `json:"capacity"`
	IsOccupied   bool      `json:"is_occupied"`
	CreatedAt    time.Time `json:"created_at"`
	AreaName     *string   `json:"area_name,omitempty"`
	AreaColor    *string   `json:"area_color,omitempty"`
	ProductName  *string   `json:"product_name,omitempty"`
	SKU          *string   `json:"sku,omitempty"`
	CurrentStock *int64    `json:"current_stock,omitempty"`
}
