package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con
// pool o tx). Las escrituras de conteo son sentencias únicas: la atomicidad
// por fila la da el motor, sin SELECT FOR UPDATE.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `session_id, code, product, line, system_stock, counted_qty, note, counted_at, last_team_id`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.SessionID, &it.Code, &it.Product, &it.Line,
		&it.SystemStock, &it.CountedQty, &it.Note, &it.CountedAt, &it.LastTeamID,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Get devuelve nil, nil si el código no existe en la sesión.
func (r *ItemRepo) Get(ctx context.Context, sessionID, code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE session_id = $1 AND code = $2`
	it, err := scanItem(r.q.QueryRow(ctx, query, sessionID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// ListBySession devuelve todos los ítems de la sesión ordenados por código.
func (r *ItemRepo) ListBySession(ctx context.Context, sessionID string) ([]entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE session_id = $1 ORDER BY code`
	return r.queryItems(ctx, query, sessionID)
}

// Search busca por código o descripción (ILIKE), hasta limit filas.
func (r *ItemRepo) Search(ctx context.Context, sessionID, text string, limit int) ([]entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE session_id = $1 AND (code ILIKE $2 OR product ILIKE $2)
		ORDER BY code
		LIMIT $3`
	return r.queryItems(ctx, query, sessionID, "%"+text+"%", limit)
}

// BulkInsert carga el catálogo congelado con COPY.
func (r *ItemRepo) BulkInsert(ctx context.Context, items []entity.Item) error {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{it.SessionID, it.Code, it.Product, it.Line, it.SystemStock, it.CountedQty, it.Note})
	}
	copier, ok := r.q.(interface {
		CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	})
	if !ok {
		return r.bulkInsertSlow(ctx, items)
	}
	_, err := copier.CopyFrom(ctx, pgx.Identifier{"items"},
		[]string{"session_id", "code", "product", "line", "system_stock", "counted_qty", "note"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("bulk insert items: %w", err)
	}
	return nil
}

func (r *ItemRepo) bulkInsertSlow(ctx context.Context, items []entity.Item) error {
	query := `
		INSERT INTO items (session_id, code, product, line, system_stock, counted_qty, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, it := range items {
		if _, err := r.q.Exec(ctx, query, it.SessionID, it.Code, it.Product, it.Line, it.SystemStock, it.CountedQty, it.Note); err != nil {
			return fmt.Errorf("bulk insert items: %w", err)
		}
	}
	return nil
}

// InsertExtra agrega un ítem manual; código duplicado -> ErrDuplicateItem.
func (r *ItemRepo) InsertExtra(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (session_id, code, product, line, system_stock, counted_qty, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.SessionID, item.Code, item.Product, item.Line, item.SystemStock, item.CountedQty, item.Note)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateItem
		}
		return fmt.Errorf("insert extra item: %w", err)
	}
	return nil
}

// SetCount fija la cantidad contada (primer conteo o REEMPLAZO). Sentencia
// única: ante escrituras concurrentes sobre la misma fila gana el último
// commit.
func (r *ItemRepo) SetCount(ctx context.Context, sessionID, code string, qty decimal.Decimal, note, teamID string, at time.Time) error {
	query := `
		UPDATE items
		SET counted_qty = $3, note = $4, counted_at = $5, last_team_id = $6
		WHERE session_id = $1 AND code = $2`
	tag, err := r.q.Exec(ctx, query, sessionID, code, qty, note, at, teamID)
	if err != nil {
		return fmt.Errorf("set count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// AddCount suma al contado actual de forma atómica y devuelve el total.
func (r *ItemRepo) AddCount(ctx context.Context, sessionID, code string, qty decimal.Decimal, note, teamID string, at time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE items
		SET counted_qty = counted_qty + $3, note = $4, counted_at = $5, last_team_id = $6
		WHERE session_id = $1 AND code = $2
		RETURNING counted_qty`
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, sessionID, code, qty, note, at, teamID).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrItemNotFound
		}
		return decimal.Zero, fmt.Errorf("add count: %w", err)
	}
	return total, nil
}

// UpdateSystemStock refresca solo system_stock de los códigos dados; no toca
// counted_qty, counted_at ni last_team_id.
func (r *ItemRepo) UpdateSystemStock(ctx context.Context, sessionID string, stocks map[string]decimal.Decimal) (int, error) {
	query := `UPDATE items SET system_stock = $3 WHERE session_id = $1 AND code = $2`
	updated := 0
	for code, stock := range stocks {
		tag, err := r.q.Exec(ctx, query, sessionID, code, stock)
		if err != nil {
			return updated, fmt.Errorf("update system stock %s: %w", code, err)
		}
		updated += int(tag.RowsAffected())
	}
	return updated, nil
}

func (r *ItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.SessionID, &it.Code, &it.Product, &it.Line,
			&it.SystemStock, &it.CountedQty, &it.Note, &it.CountedAt, &it.LastTeamID,
		); err != nil {
			return nil, fmt.Errorf("query items scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
