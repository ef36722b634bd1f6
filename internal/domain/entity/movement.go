package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones registradas en el historial de movimientos.
const (
	ActionNew     = "NUEVO"     // primer conteo de un ítem pendiente
	ActionSum     = "SUMA"      // conteo duplicado resuelto sumando
	ActionReplace = "REEMPLAZO" // conteo duplicado resuelto reemplazando
)

// Movement es una entrada del historial de auditoría de conteos. Solo se
// agrega, nunca se modifica; el orden entre ítems distintos lo da CreatedAt.
type Movement struct {
	ID        string
	SessionID string
	ItemCode  string
	TeamID    string
	Action    string
	QtyBefore decimal.Decimal
	QtyAfter  decimal.Decimal
	CreatedAt time.Time
}
