package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el usuario o email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrUnsupportedOperation: la operación no se puede aplicar de forma automática
	// (p. ej. revertir un ajuste, cuyo saldo previo no queda registrado).
	ErrUnsupportedOperation = errors.New("operación no soportada")

	// ErrStoreFailure envuelve fallos de la base de datos (transacción, bloqueo, conexión).
	// La cadena conserva el error original.
	ErrStoreFailure = errors.New("fallo del almacenamiento")
)

// StoreFailure envuelve err como ErrStoreFailure manteniendo el error original en la cadena.
func StoreFailure(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrStoreFailure, err)
}
