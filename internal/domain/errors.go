package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Validaciones específicas del ledger; todas envuelven ErrInvalidInput.
	ErrDealerRequired  = fmt.Errorf("%w: concesionario requerido", ErrInvalidInput)
	ErrUnsupportedType = fmt.Errorf("%w: tipo de transacción no soportado", ErrInvalidInput)
	ErrInvalidQuantity = fmt.Errorf("%w: la cantidad debe ser un entero positivo", ErrInvalidInput)

	// ErrAllocationNotFound no existe asignación (variante, concesionario) al fijar su punto de reorden.
	ErrAllocationNotFound = fmt.Errorf("%w: asignación de concesionario no encontrada", ErrNotFound)

	// ErrConcurrencyConflict conflicto transitorio (serialización/deadlock) tras agotar los reintentos.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente")

	// ErrCatalogUnavailable el servicio de catálogo falló (timeout, 5xx). Distinto de "sin resultados".
	ErrCatalogUnavailable = errors.New("servicio de catálogo no disponible")
)
