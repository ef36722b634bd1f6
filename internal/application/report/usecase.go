package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
)

// Cortes de los conjuntos de trabajo: listas acotadas para la UI de
// operación, no listados completos (eso es la exportación).
const (
	PendingLimit     = 100
	DiscrepancyLimit = 100
	RecentLimit      = 15
	SearchLimit      = 30
)

// Estados de un ítem en búsquedas y listados.
const (
	StatusPending     = "PENDIENTE"
	StatusExact       = "CUADRADO"
	StatusDiscrepancy = "DIFERENCIA"
)

// KPI indicadores derivados de una sesión. Los porcentajes se redondean a un
// decimal; denominador cero da cero, nunca error.
type KPI struct {
	Total     int64
	Counted   int64
	Exact     int64
	Shortages int64
	Overages  int64
	Progress  float64
	Accuracy  float64
}

// Snapshot instantánea completa de avance de una sesión.
type Snapshot struct {
	SessionID     string
	KPI           KPI
	Pending       []entity.Item
	Discrepancies []entity.Item
	Recent        []entity.Movement
	GeneratedAt   time.Time
}

// ItemStatus estado de conteo de un ítem para listados de búsqueda.
type ItemStatus struct {
	Item   entity.Item
	Status string
}

// UseCase agrega el estado de una sesión en KPIs y conjuntos de trabajo.
// Solo lecturas: nunca comparte transacciones ni bloqueos con los envíos de
// conteo, que siguen entrando mientras se agrega.
type UseCase struct {
	reports   repository.ReportRepository
	movements repository.MovementRepository
	sessions  repository.SessionRepository
	items     repository.ItemRepository
}

// NewUseCase construye el agregador.
func NewUseCase(
	reports repository.ReportRepository,
	movements repository.MovementRepository,
	sessions repository.SessionRepository,
	items repository.ItemRepository,
) *UseCase {
	return &UseCase{reports: reports, movements: movements, sessions: sessions, items: items}
}

// Recompute calcula la instantánea de la sesión: KPIs, pendientes,
// diferencias e historial reciente. lines filtra por líneas (vacío = todas).
func (uc *UseCase) Recompute(ctx context.Context, sessionID string, lines []string) (*Snapshot, error) {
	s, err := uc.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("report.Recompute: %w", err)
	}
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}

	counts, err := uc.reports.GetKPICounts(ctx, sessionID, lines)
	if err != nil {
		return nil, fmt.Errorf("report.Recompute kpi: %w", err)
	}
	pending, err := uc.reports.ListPending(ctx, sessionID, lines, PendingLimit)
	if err != nil {
		return nil, fmt.Errorf("report.Recompute pendientes: %w", err)
	}
	discrepancies, err := uc.reports.ListDiscrepancies(ctx, sessionID, lines, DiscrepancyLimit)
	if err != nil {
		return nil, fmt.Errorf("report.Recompute diferencias: %w", err)
	}
	recent, err := uc.movements.Recent(ctx, sessionID, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("report.Recompute historial: %w", err)
	}

	return &Snapshot{
		SessionID:     sessionID,
		KPI:           buildKPI(counts),
		Pending:       pending,
		Discrepancies: discrepancies,
		Recent:        recent,
		GeneratedAt:   time.Now(),
	}, nil
}

// Lines devuelve las líneas presentes en la sesión (para el filtro de la UI).
func (uc *UseCase) Lines(ctx context.Context, sessionID string) ([]string, error) {
	return uc.reports.ListLines(ctx, sessionID)
}

// Search busca por código o descripción y clasifica cada ítem según su
// estado de conteo.
func (uc *UseCase) Search(ctx context.Context, sessionID, text string) ([]ItemStatus, error) {
	items, err := uc.items.Search(ctx, sessionID, text, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("report.Search: %w", err)
	}
	results := make([]ItemStatus, 0, len(items))
	for _, it := range items {
		results = append(results, ItemStatus{Item: it, Status: StatusOf(&it)})
	}
	return results, nil
}

// StatusOf clasifica un ítem: pendiente, cuadrado (diferencia cero) o con
// diferencia.
func StatusOf(i *entity.Item) string {
	switch {
	case !i.Counted():
		return StatusPending
	case i.Difference().Equal(decimal.Zero):
		return StatusExact
	default:
		return StatusDiscrepancy
	}
}

// buildKPI deriva porcentajes de los conteos crudos.
func buildKPI(c repository.KPICounts) KPI {
	k := KPI{
		Total:     c.Total,
		Counted:   c.Counted,
		Exact:     c.Exact,
		Shortages: c.Shortages,
		Overages:  c.Overages,
	}
	if c.Total > 0 {
		k.Progress = round1(float64(c.Counted) / float64(c.Total) * 100)
	}
	if c.Counted > 0 {
		k.Accuracy = round1(float64(c.Exact) / float64(c.Counted) * 100)
	}
	return k
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
