package repository

import (
	"context"

	"github.com/jose29di/sisinventario/internal/domain/entity"
)

// SessionRepository define el puerto para sesiones de corte.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	// GetByID devuelve nil, nil si la sesión no existe.
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	List(ctx context.Context, onlyActive bool) ([]entity.Session, error)
	SetActive(ctx context.Context, id string, active bool) error
}
