package inventory

import (
	"math"
	"time"
)

// Estados de stock para reportes.
const (
	StockStatusOut = "Out of Stock"
	StockStatusLow = "Low Stock"
	StockStatusIn  = "In Stock"
)

// Estados de vencimiento.
const (
	ExpiryStatusExpired   = "Expired"
	ExpiryStatusNear      = "Near Expiry"
	ExpiryStatusGood      = "Good"
	ExpiryUrgencyCritical = "Critical (< 1 month)"
	ExpiryUrgencyHigh     = "High (< 3 months)"
	ExpiryUrgencyMedium   = "Medium (< 6 months)"
)

// StockStatus clasifica un producto según su saldo y su mínimo.
func StockStatus(current, minStock int64) string {
	switch {
	case current == 0:
		return StockStatusOut
	case current <= minStock:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// ExpiryStatus clasifica una fecha de vencimiento respecto a now; window es el horizonte de "próximo a vencer".
func ExpiryStatus(expiration *time.Time, now time.Time, window time.Duration) string {
	if expiration == nil {
		return ExpiryStatusGood
	}
	if !expiration.After(now) {
		return ExpiryStatusExpired
	}
	if !expiration.After(now.Add(window)) {
		return ExpiryStatusNear
	}
	return ExpiryStatusGood
}

// DaysUntil devuelve los días (redondeados hacia arriba) hasta t.
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// ExpiryUrgency clasifica los días restantes de un producto próximo a vencer.
func ExpiryUrgency(days int) string {
	switch {
	case days < 0:
		return ExpiryStatusExpired
	case days <= 30:
		return ExpiryUrgencyCritical
	case days <= 90:
		return ExpiryUrgencyHigh
	default:
		return ExpiryUrgencyMedium
	}
}
