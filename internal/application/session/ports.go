package session

import (
	"context"

	"github.com/jose29di/sisinventario/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a
// ella. Commit si fn devuelve nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sessions repository.SessionRepository,
		items repository.ItemRepository,
		teams repository.TeamRepository,
	) error) error
}
