package postgres

import (
	"context"
	"fmt"

	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL. El
// historial solo se inserta y se lee; nunca hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create agrega una entrada al historial.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, session_id, item_code, team_id, action, qty_before, qty_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.SessionID, m.ItemCode, m.TeamID, m.Action, m.QtyBefore, m.QtyAfter, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// Recent devuelve las últimas entradas de la sesión, más recientes primero.
func (r *MovementRepo) Recent(ctx context.Context, sessionID string, limit int) ([]entity.Movement, error) {
	query := `
		SELECT id, session_id, item_code, team_id, action, qty_before, qty_after, created_at
		FROM movements
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	return r.queryMovements(ctx, query, sessionID, limit)
}

// ListBySession devuelve el historial completo en orden cronológico.
func (r *MovementRepo) ListBySession(ctx context.Context, sessionID string) ([]entity.Movement, error) {
	query := `
		SELECT id, session_id, item_code, team_id, action, qty_before, qty_after, created_at
		FROM movements
		WHERE session_id = $1
		ORDER BY created_at`
	return r.queryMovements(ctx, query, sessionID)
}

func (r *MovementRepo) queryMovements(ctx context.Context, query string, args ...any) ([]entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()

	var movements []entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.SessionID, &m.ItemCode, &m.TeamID, &m.Action,
			&m.QtyBefore, &m.QtyAfter, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("query movements scan: %w", err)
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
