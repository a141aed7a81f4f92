package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOverReturn         = errors.New("la devolución supera la cantidad pendiente de la asignación")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrLastUser           = errors.New("no se puede eliminar el último usuario")
)

// ErrEventClosed se devuelve al asignar contra un evento completado o cancelado.
// Es un error de validación: errors.Is(ErrEventClosed, ErrInvalidInput) == true.
var ErrEventClosed = fmt.Errorf("%w: el evento no admite nuevas asignaciones", ErrInvalidInput)
