package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item es una línea del corte: código único dentro de la sesión, stock de
// sistema congelado y cantidad contada acumulada.
//
// CountedAt distingue "sin contar" (nil) de "contado en cero" (no nil con
// CountedQty cero): un conteo de cero unidades es un estado legítimo y no
// vuelve el ítem a pendiente.
type Item struct {
	SessionID   string
	Code        string
	Product     string
	Line        string
	SystemStock decimal.Decimal
	CountedQty  decimal.Decimal
	Note        string
	CountedAt   *time.Time
	LastTeamID  *string
}

// Counted indica si el ítem ya recibió al menos un conteo.
func (i *Item) Counted() bool {
	return i.CountedAt != nil
}

// Difference devuelve contado menos stock de sistema. Negativo = faltante,
// positivo = sobrante. Siempre derivado, nunca almacenado como verdad.
func (i *Item) Difference() decimal.Decimal {
	return i.CountedQty.Sub(i.SystemStock)
}

// Qualifies indica si el ítem participa en los KPIs: solo ítems con stock de
// sistema positivo; los agregados manualmente (stock cero) quedan fuera de
// los porcentajes pero sí aparecen en el conteo completo.
func (i *Item) Qualifies() bool {
	return i.SystemStock.GreaterThan(decimal.Zero)
}
