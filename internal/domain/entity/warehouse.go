package entity

import "time"

// Tipos de área del almacén.
const (
	AreaTypeStorage   = "storage"
	AreaTypeReceiving = "receiving"
	AreaTypeShipping  = "shipping"
	AreaTypeOffice    = "office"
)

// ValidAreaType informa si t es un tipo de área conocido.
func ValidAreaType(t string) bool {
	switch t {
	case AreaTypeStorage, AreaTypeReceiving, AreaTypeShipping, AreaTypeOffice:
		return true
	}
	return false
}

// WarehouseArea zona rectangular del plano del almacén. X, Y, Width y Height son
// coordenadas del lienzo del cliente; el backend solo las guarda.
type WarehouseArea struct {
	ID        string
	Name      string
	Type      string
	X         int
	Y         int
	Width     int
	Height    int
	Color     string
	IsActive  bool
	CreatedAt time.Time
}

// WarehouseLocation posición (fila/columna) dentro de un área donde se ubica un producto.
type WarehouseLocation struct {
	ID           string
	AreaID       string
	RowNumber    int
	ColumnNumber int
	LocationCode string
	Capacity     int
	IsOccupied   bool
	CreatedAt    time.Time
}

// WarehouseLocationDetail ubicación con datos del área y del producto ubicado.
type WarehouseLocationDetail struct {
	WarehouseLocation
	AreaName     *string
	AreaColor    *string
	ProductName  *string
	ProductSKU   *string
	CurrentStock *int64
}
