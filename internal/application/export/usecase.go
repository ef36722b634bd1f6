// Package export arma el paquete de datos planos que consume el generador de
// reportes externo. El core no produce archivos: solo filas y totales.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jose29di/sisinventario/internal/application/report"
	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
)

// Data paquete completo de exportación de una sesión: equivalente a las
// cuatro hojas del reporte (conteo completo, diferencias, pendientes,
// historial) más los KPI.
type Data struct {
	Session       *entity.Session
	KPI           report.KPI
	Items         []Row
	Discrepancies []Row
	Pending       []Row
	History       []entity.Movement
	GeneratedAt   time.Time
}

// Row una fila de exportación con sus derivados ya resueltos.
type Row struct {
	Item     entity.Item
	Status   string
	TeamName string
}

// UseCase arma la exportación leyendo el estado completo de la sesión.
type UseCase struct {
	sessions  repository.SessionRepository
	items     repository.ItemRepository
	movements repository.MovementRepository
	teams     repository.TeamRepository
	reports   *report.UseCase
}

// NewUseCase construye el exportador.
func NewUseCase(
	sessions repository.SessionRepository,
	items repository.ItemRepository,
	movements repository.MovementRepository,
	teams repository.TeamRepository,
	reports *report.UseCase,
) *UseCase {
	return &UseCase{sessions: sessions, items: items, movements: movements, teams: teams, reports: reports}
}

// Export arma el paquete completo de la sesión. A diferencia de los
// conjuntos de trabajo del snapshot, aquí no hay cortes: van todos los ítems
// y todo el historial.
func (uc *UseCase) Export(ctx context.Context, sessionID string) (*Data, error) {
	s, err := uc.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}

	items, err := uc.items.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("export ítems: %w", err)
	}
	history, err := uc.movements.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("export historial: %w", err)
	}
	snap, err := uc.reports.Recompute(ctx, sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("export kpi: %w", err)
	}
	teamNames, err := uc.teamNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("export equipos: %w", err)
	}

	data := &Data{
		Session:     s,
		KPI:         snap.KPI,
		History:     history,
		GeneratedAt: time.Now(),
	}
	for _, it := range items {
		row := Row{Item: it, Status: report.StatusOf(&it)}
		if it.LastTeamID != nil {
			row.TeamName = teamNames[*it.LastTeamID]
		}
		data.Items = append(data.Items, row)
		switch row.Status {
		case report.StatusPending:
			data.Pending = append(data.Pending, row)
		case report.StatusDiscrepancy:
			data.Discrepancies = append(data.Discrepancies, row)
		}
	}
	return data, nil
}

func (uc *UseCase) teamNames(ctx context.Context) (map[string]string, error) {
	teams, err := uc.teams.List(ctx, false)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}
	return names, nil
}
