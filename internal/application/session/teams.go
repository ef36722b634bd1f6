package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/internal/domain/entity"
)

// TeamInput alta de un equipo de conteo.
type TeamInput struct {
	Name    string
	Members string
}

// ImportResult equipos creados frente a omitidos por nombre duplicado.
type ImportResult struct {
	Created int
	Skipped int
}

// CreateTeam registra un equipo. Nombre duplicado devuelve ErrDuplicate.
func (uc *UseCase) CreateTeam(ctx context.Context, in TeamInput) (*entity.Team, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.Team{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Members:   in.Members,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.teams.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ImportTeams carga equipos en lote (hoja EQUIPOS del colaborador de
// importación). Los nombres ya registrados se omiten sin error.
func (uc *UseCase) ImportTeams(ctx context.Context, inputs []TeamInput) (*ImportResult, error) {
	res := &ImportResult{}
	for _, in := range inputs {
		_, err := uc.CreateTeam(ctx, in)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInvalidInput):
			res.Skipped++
		default:
			return res, err
		}
	}
	return res, nil
}

// ListTeams lista equipos; onlyActive limita a los activos.
func (uc *UseCase) ListTeams(ctx context.Context, onlyActive bool) ([]entity.Team, error) {
	return uc.teams.List(ctx, onlyActive)
}

// DeactivateTeam retira un equipo del registro (borrado lógico).
func (uc *UseCase) DeactivateTeam(ctx context.Context, id string) error {
	t, err := uc.teams.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.ErrNotFound
	}
	return uc.teams.SetActive(ctx, id, false)
}
