package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jose29di/sisinventario/internal/domain/entity"
)

// ItemRepository define el puerto para los ítems de una sesión de corte.
// Las escrituras de conteo son sentencias únicas y atómicas por fila: el
// último commit gana, sin bloqueo optimista.
type ItemRepository interface {
	// Get devuelve nil, nil si el código no existe en la sesión.
	Get(ctx context.Context, sessionID, code string) (*entity.Item, error)
	ListBySession(ctx context.Context, sessionID string) ([]entity.Item, error)
	Search(ctx context.Context, sessionID, text string, limit int) ([]entity.Item, error)

	// BulkInsert carga el catálogo congelado de la sesión (dentro de la tx de creación).
	BulkInsert(ctx context.Context, items []entity.Item) error
	// InsertExtra agrega un ítem manual; código duplicado -> domain.ErrDuplicateItem.
	InsertExtra(ctx context.Context, item *entity.Item) error

	// SetCount fija la cantidad contada (primer conteo o REEMPLAZO). La nota
	// acompaña cada escritura de conteo y reemplaza la anterior.
	SetCount(ctx context.Context, sessionID, code string, qty decimal.Decimal, note, teamID string, at time.Time) error
	// AddCount suma al contado actual (SUMA) y devuelve el total resultante.
	AddCount(ctx context.Context, sessionID, code string, qty decimal.Decimal, note, teamID string, at time.Time) (decimal.Decimal, error)

	// UpdateSystemStock refresca solo el stock de sistema de los códigos dados;
	// no toca cantidades contadas ni marcas de conteo. Devuelve filas afectadas.
	UpdateSystemStock(ctx context.Context, sessionID string, stocks map[string]decimal.Decimal) (int, error)
}
