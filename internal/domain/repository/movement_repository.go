package repository

import (
	"context"

	"github.com/jose29di/sisinventario/internal/domain/entity"
)

// MovementRepository define el puerto para el historial de movimientos.
// Solo inserciones y lecturas: el historial nunca se modifica.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	Recent(ctx context.Context, sessionID string, limit int) ([]entity.Movement, error)
	ListBySession(ctx context.Context, sessionID string) ([]entity.Movement, error)
}
