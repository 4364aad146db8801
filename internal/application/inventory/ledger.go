package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// StockLedger es el único punto de escritura del stock: cada cambio de saldo va acompañado
// de exactamente un movimiento (alta o baja) dentro de la misma transacción.
//
// La secuencia leer-validar-escribir de un producto se serializa con el bloqueo de fila
// de BalanceRepository.LockBalance, así dos salidas concurrentes nunca dejan el saldo negativo.
type StockLedger struct {
	txRunner TxRunner
	balances repository.BalanceRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(txRunner TxRunner, balances repository.BalanceRepository, log *logger.Logger) *StockLedger {
	return &StockLedger{
		txRunner: txRunner,
		balances: balances,
		log:      log.Component("stock_ledger"),
		now:      time.Now,
	}
}

// RecordMovementInput entrada de RecordMovement.
// En un ajuste, Quantity es el saldo objetivo.
type RecordMovementInput struct {
	ProductID       string
	Type            string
	Quantity        int64
	ReferenceNumber *string
	Notes           *string
	Actor           string // id del usuario autenticado
}

// MovementResult resultado de registrar un movimiento.
type MovementResult struct {
	MovementID string
	NewBalance int64
}

// ReversalResult resultado de revertir un movimiento.
type ReversalResult struct {
	ProductID  string
	NewBalance int64
}

// ReversalGrant es la decisión de autorización que la capa de transporte entrega al libro.
// El libro no conoce roles; solo exige que la reversión venga autorizada.
type ReversalGrant struct {
	Actor     string
	Permitted bool
}

// GrantReversal calcula el permiso de reversión para un usuario: solo administradores.
func GrantReversal(actor, role string) ReversalGrant {
	return ReversalGrant{Actor: actor, Permitted: role == entity.RoleAdmin}
}

// RecordMovement valida, bloquea el saldo del producto, agrega el movimiento y actualiza el saldo.
//
// Errores: domain.ErrInvalidInput (tipo o cantidad), domain.ErrNotFound (producto),
// domain.ErrInsufficientStock (salida mayor al saldo), domain.ErrStoreFailure (almacenamiento).
func (l *StockLedger) RecordMovement(ctx context.Context, in RecordMovementInput) (*MovementResult, error) {
	if strings.TrimSpace(in.ProductID) == "" || in.Actor == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var result MovementResult
	err := l.txRunner.Run(ctx, func(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.ProductRepository,
	) error {
		balance, err := balanceRepo.LockBalance(ctx, in.ProductID)
		if err != nil {
			return err
		}

		effect, err := inventory.ApplyMovement(balance, in.Type, in.Quantity)
		if err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:              uuid.New().String(),
			ProductID:       in.ProductID,
			Type:            in.Type,
			Quantity:        effect.StoredQuantity,
			ReferenceNumber: in.ReferenceNumber,
			Notes:           in.Notes,
			CreatedBy:       in.Actor,
			CreatedAt:       l.now(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		newBalance, err := balanceRepo.ApplyDelta(ctx, in.ProductID, effect.Delta)
		if err != nil {
			return err
		}

		result = MovementResult{MovementID: mov.ID, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, l.classify(err, "record movement", in.ProductID)
	}

	l.log.Info().
		Str("product_id", in.ProductID).
		Str("movement_id", result.MovementID).
		Str("type", in.Type).
		Int64("balance", result.NewBalance).
		Str("actor", in.Actor).
		Msg("movimiento registrado")
	return &result, nil
}

// ReverseMovement elimina un movimiento in/out y deshace su efecto en el saldo.
// Los ajustes devuelven domain.ErrUnsupportedOperation; sin permiso, domain.ErrForbidden.
// Una reversión que dejaría el saldo negativo devuelve domain.ErrInsufficientStock; una que lo
// sacaría del rango INT, domain.ErrInvalidInput.
func (l *StockLedger) ReverseMovement(ctx context.Context, movementID string, grant ReversalGrant) (*ReversalResult, error) {
	if !grant.Permitted {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(movementID) == "" {
		return nil, domain.ErrInvalidInput
	}

	var result ReversalResult
	err := l.txRunner.Run(ctx, func(
		ctx context.Context,
		movRepo repository.StockMovementRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.ProductRepository,
	) error {
		mov, err := movRepo.GetForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}

		delta, err := inventory.ReversalDelta(mov)
		if err != nil {
			return err
		}

		balance, err := balanceRepo.LockBalance(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if err := inventory.CheckBalance(balance + delta); err != nil {
			return err
		}

		if err := movRepo.Delete(ctx, mov.ID); err != nil {
			return err
		}
		newBalance, err := balanceRepo.ApplyDelta(ctx, mov.ProductID, delta)
		if err != nil {
			return err
		}

		result = ReversalResult{ProductID: mov.ProductID, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, l.classify(err, "reverse movement", movementID)
	}

	l.log.Info().
		Str("product_id", result.ProductID).
		Str("movement_id", movementID).
		Int64("balance", result.NewBalance).
		Str("actor", grant.Actor).
		Msg("movimiento revertido")
	return &result, nil
}

// GetBalance devuelve el saldo actual del producto sin recorrer el historial.
func (l *StockLedger) GetBalance(ctx context.Context, productID string) (int64, error) {
	if strings.TrimSpace(productID) == "" {
		return 0, domain.ErrInvalidInput
	}
	balance, err := l.balances.GetBalance(ctx, productID)
	if err != nil {
		return 0, l.classify(err, "get balance", productID)
	}
	return balance, nil
}

// classify deja pasar los errores de dominio y marca el resto como fallo de almacenamiento.
func (l *StockLedger) classify(err error, op, id string) error {
	if isDomainError(err) {
		return err
	}
	l.log.Error().Err(err).Str("op", op).Str("id", id).Msg("fallo de almacenamiento")
	return domain.StoreFailure(err)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrInsufficientStock,
		domain.ErrUnsupportedOperation,
		domain.ErrForbidden,
		domain.ErrStoreFailure,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
