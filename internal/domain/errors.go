package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrSessionNotFound  = errors.New("sesión de conteo no encontrada")
	ErrItemNotFound     = errors.New("ítem no encontrado en la sesión")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidCode      = errors.New("código de ítem inválido")
	ErrInvalidQuantity  = errors.New("cantidad inválida")
	ErrDuplicateItem    = errors.New("el código ya existe en la sesión")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnknownMode      = errors.New("modo de resolución desconocido")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrSessionClosed    = errors.New("la sesión está cerrada y no acepta conteos")
	ErrSchedulerStopped = errors.New("el planificador de sincronización está detenido")
)

// ErrPartialFailure indica que el conteo quedó aplicado pero el registro del
// movimiento de auditoría falló. El valor contado es autoritativo; el
// historial puede quedar incompleto para ese evento.
var ErrPartialFailure = errors.New("conteo aplicado, registro de historial fallido")

// ErrStoreTimeout indica que una operación contra el almacén excedió su
// tiempo límite configurado.
var ErrStoreTimeout = errors.New("tiempo de espera agotado en el almacén")
