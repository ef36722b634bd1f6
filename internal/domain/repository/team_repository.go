package repository

import (
	"context"

	"github.com/jose29di/sisinventario/internal/domain/entity"
)

// TeamRepository define el puerto para el registro de equipos de conteo.
type TeamRepository interface {
	// Create inserta un equipo; nombre duplicado -> domain.ErrDuplicate.
	Create(ctx context.Context, t *entity.Team) error
	// GetByID devuelve nil, nil si el equipo no existe.
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	List(ctx context.Context, onlyActive bool) ([]entity.Team, error)
	SetActive(ctx context.Context, id string, active bool) error
}
