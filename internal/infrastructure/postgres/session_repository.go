package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL (usable
// con pool o tx).
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create inserta la sesión.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	query := `
		INSERT INTO sessions (id, name, responsible, warehouse, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Responsible, s.Warehouse, s.Active, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si la sesión no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	query := `
		SELECT id, name, responsible, warehouse, active, created_at
		FROM sessions WHERE id = $1`
	var s entity.Session
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Responsible, &s.Warehouse, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// List devuelve las sesiones, más recientes primero.
func (r *SessionRepo) List(ctx context.Context, onlyActive bool) ([]entity.Session, error) {
	query := `
		SELECT id, name, responsible, warehouse, active, created_at
		FROM sessions
		WHERE ($1 = FALSE OR active)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []entity.Session
	for rows.Next() {
		var s entity.Session
		if err := rows.Scan(&s.ID, &s.Name, &s.Responsible, &s.Warehouse, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("list sessions scan: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// SetActive activa o desactiva la sesión (borrado lógico).
func (r *SessionRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE sessions SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set session active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set session active: sesión %s no existe", id)
	}
	return nil
}
