package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación de TeamRepository sobre PostgreSQL (usable con
// pool o tx).
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create inserta el equipo; nombre duplicado -> ErrDuplicate.
func (r *TeamRepo) Create(ctx context.Context, t *entity.Team) error {
	query := `
		INSERT INTO teams (id, name, members, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Members, t.Active, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si el equipo no existe.
func (r *TeamRepo) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	query := `SELECT id, name, members, active, created_at FROM teams WHERE id = $1`
	var t entity.Team
	err := r.q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Members, &t.Active, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// List devuelve los equipos por nombre.
func (r *TeamRepo) List(ctx context.Context, onlyActive bool) ([]entity.Team, error) {
	query := `
		SELECT id, name, members, active, created_at
		FROM teams
		WHERE ($1 = FALSE OR active)
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Members, &t.Active, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("list teams scan: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// SetActive activa o desactiva el equipo (borrado lógico).
func (r *TeamRepo) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE teams SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set team active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set team active: equipo %s no existe", id)
	}
	return nil
}
