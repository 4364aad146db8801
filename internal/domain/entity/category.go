package entity

import "time"

// Category agrupa productos (ej. "Bebidas", "Repuestos").
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
