package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/inventory"
)

func TestApplyMovement(t *testing.T) {
	cases := []struct {
		name        string
		balance     int64
		typ         string
		qty         int64
		wantDelta   int64
		wantStored  int64
		wantBalance int64
		wantErr     error
	}{
		{"entrada suma", 10, entity.MovementTypeIn, 30, 30, 30, 40, nil},
		{"salida resta", 100, entity.MovementTypeOut, 30, -30, 30, 70, nil},
		{"salida exacta deja cero", 5, entity.MovementTypeOut, 5, -5, 5, 0, nil},
		{"salida mayor al saldo", 5, entity.MovementTypeOut, 10, 0, 0, 0, domain.ErrInsufficientStock},
		{"ajuste hacia abajo guarda |delta|", 20, entity.MovementTypeAdjustment, 15, -5, 5, 15, nil},
		{"ajuste hacia arriba", 70, entity.MovementTypeAdjustment, 90, 20, 20, 90, nil},
		{"ajuste al mismo saldo no genera asiento", 50, entity.MovementTypeAdjustment, 50, 0, 0, 0, domain.ErrInvalidInput},
		{"cantidad cero", 5, entity.MovementTypeIn, 0, 0, 0, 0, domain.ErrInvalidInput},
		{"cantidad negativa", 5, entity.MovementTypeOut, -1, 0, 0, 0, domain.ErrInvalidInput},
		{"tipo desconocido", 5, "transfer", 1, 0, 0, 0, domain.ErrInvalidInput},
		{"cantidad fuera del rango INT", 0, entity.MovementTypeIn, 3_000_000_000, 0, 0, 0, domain.ErrInvalidInput},
		{"entrada que desborda el saldo", inventory.MaxStock, entity.MovementTypeIn, 1, 0, 0, 0, domain.ErrInvalidInput},
		{"ajuste fuera del rango INT", 10, entity.MovementTypeAdjustment, inventory.MaxStock + 1, 0, 0, 0, domain.ErrInvalidInput},
		{"ajuste al máximo permitido", 0, entity.MovementTypeAdjustment, inventory.MaxStock, inventory.MaxStock, inventory.MaxStock, inventory.MaxStock, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eff, err := inventory.ApplyMovement(tc.balance, tc.typ, tc.qty)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDelta, eff.Delta)
			assert.Equal(t, tc.wantStored, eff.StoredQuantity)
			assert.Equal(t, tc.wantBalance, eff.NewBalance)
		})
	}
}

func TestReversalDelta(t *testing.T) {
	d, err := inventory.ReversalDelta(&entity.StockMovement{Type: entity.MovementTypeIn, Quantity: 30})
	require.NoError(t, err)
	assert.Equal(t, int64(-30), d)

	d, err = inventory.ReversalDelta(&entity.StockMovement{Type: entity.MovementTypeOut, Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), d)

	_, err = inventory.ReversalDelta(&entity.StockMovement{Type: entity.MovementTypeAdjustment, Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestCheckBalance(t *testing.T) {
	assert.NoError(t, inventory.CheckBalance(0))
	assert.NoError(t, inventory.CheckBalance(inventory.MaxStock))
	assert.ErrorIs(t, inventory.CheckBalance(-1), domain.ErrInsufficientStock)
	assert.ErrorIs(t, inventory.CheckBalance(inventory.MaxStock+1), domain.ErrInvalidInput)
}

func TestStockStatus(t *testing.T) {
	assert.Equal(t, inventory.StockStatusOut, inventory.StockStatus(0, 10))
	assert.Equal(t, inventory.StockStatusLow, inventory.StockStatus(10, 10))
	assert.Equal(t, inventory.StockStatusIn, inventory.StockStatus(11, 10))
}

func TestExpiryStatusYUrgencia(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 180 * 24 * time.Hour

	past := now.AddDate(0, 0, -1)
	soon := now.AddDate(0, 2, 0)
	later := now.AddDate(1, 0, 0)

	assert.Equal(t, inventory.ExpiryStatusGood, inventory.ExpiryStatus(nil, now, window))
	assert.Equal(t, inventory.ExpiryStatusExpired, inventory.ExpiryStatus(&past, now, window))
	assert.Equal(t, inventory.ExpiryStatusNear, inventory.ExpiryStatus(&soon, now, window))
	assert.Equal(t, inventory.ExpiryStatusGood, inventory.ExpiryStatus(&later, now, window))

	assert.Equal(t, 10, inventory.DaysUntil(now.Add(9*24*time.Hour+time.Hour), now))
	assert.Equal(t, inventory.ExpiryStatusExpired, inventory.ExpiryUrgency(-1))
	assert.Equal(t, inventory.ExpiryUrgencyCritical, inventory.ExpiryUrgency(30))
	assert.Equal(t, inventory.ExpiryUrgencyHigh, inventory.ExpiryUrgency(90))
	assert.Equal(t, inventory.ExpiryUrgencyMedium, inventory.ExpiryUrgency(91))
}
