package counting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jose29di/sisinventario/internal/domain"
	domaincounting "github.com/jose29di/sisinventario/internal/domain/counting"
	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
	"github.com/jose29di/sisinventario/pkg/metrics"
)

// Modos de resolución de un conteo duplicado.
const (
	ModeSum     = "SUMA"
	ModeReplace = "REEMPLAZO"
)

// extraNotePrefix marca en la novedad los ítems agregados a mano.
const extraNotePrefix = "(NUEVO)"

// UseCase resuelve envíos de conteo contra el estado vigente del ítem:
// primer conteo directo, duplicados con candidatos SUMA/REEMPLAZO y aviso de
// conflicto entre equipos. Las escrituras de ítem son sentencias atómicas por
// fila; el movimiento de auditoría se registra después del commit del ítem.
type UseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
	teams     repository.TeamRepository
	sessions  repository.SessionRepository
	opTimeout time.Duration
}

// NewUseCase construye el caso de uso. opTimeout acota cada operación contra
// el almacén; cero desactiva el límite.
func NewUseCase(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	teams repository.TeamRepository,
	sessions repository.SessionRepository,
	opTimeout time.Duration,
) *UseCase {
	return &UseCase{items: items, movements: movements, teams: teams, sessions: sessions, opTimeout: opTimeout}
}

// SubmitInput envío de conteo de un equipo (entradas crudas, sin normalizar).
// Note es la novedad libre del contador y viaja con cada conteo.
type SubmitInput struct {
	SessionID string
	Code      string
	Quantity  string
	TeamID    string
	Note      string
}

// ResolveInput resolución explícita de un duplicado.
type ResolveInput struct {
	SessionID string
	Code      string
	Quantity  string
	TeamID    string
	Mode      string
	Note      string
}

// ExtraItemInput alta manual de un ítem fuera del catálogo congelado.
type ExtraItemInput struct {
	SessionID string
	Code      string
	Product   string
	Line      string
	Note      string
}

// Conflict describe un conflicto entre equipos: quién contó por última vez el
// ítem, cuánto y cuándo. Es un aviso, nunca bloquea la resolución.
type Conflict struct {
	TeamID   string
	TeamName string
	Quantity decimal.Decimal
	At       time.Time
}

// Outcome resultado de un envío o resolución. Con Duplicate en true no hubo
// escritura: el cliente debe elegir modo y llamar a ResolveDuplicate.
type Outcome struct {
	Code             string
	Applied          bool
	Action           string
	Duplicate        bool
	CurrentQty       decimal.Decimal
	SubmittedQty     decimal.Decimal
	SumCandidate     decimal.Decimal
	ReplaceCandidate decimal.Decimal
	Conflict         *Conflict
}

// SubmitCount valida la entrada y clasifica el envío.
//
// Ítem pendiente: se aplica como primer conteo (acción NUEVO, cantidad previa
// cero) en una sola sentencia; ante envíos concurrentes del mismo ítem gana
// el último commit. Ítem ya contado: no se escribe nada y el Outcome trae los
// candidatos de suma y reemplazo más el aviso de conflicto si el último
// equipo difiere del que envía.
func (uc *UseCase) SubmitCount(ctx context.Context, in SubmitInput) (*Outcome, error) {
	code, err := domaincounting.NormalizeCode(in.Code)
	if err != nil {
		return nil, err
	}
	qty, err := domaincounting.NormalizeQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	if in.SessionID == "" || in.TeamID == "" {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if err := uc.requireActiveSession(ctx, in.SessionID); err != nil {
		return nil, err
	}
	item, err := uc.items.Get(ctx, in.SessionID, code)
	if err != nil {
		return nil, uc.storeErr(err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	if !item.Counted() {
		now := time.Now()
		if err := uc.items.SetCount(ctx, in.SessionID, code, qty, countNote(item, in.Note), in.TeamID, now); err != nil {
			return nil, uc.storeErr(err)
		}
		out := &Outcome{
			Code:         code,
			Applied:      true,
			Action:       entity.ActionNew,
			SubmittedQty: qty,
		}
		metrics.CountApplied(entity.ActionNew)
		return out, uc.appendMovement(ctx, in.SessionID, code, in.TeamID, entity.ActionNew, decimal.Zero, qty, now)
	}

	// Duplicado: solo clasificación, sin escritura.
	out := &Outcome{
		Code:             code,
		Duplicate:        true,
		CurrentQty:       item.CountedQty,
		SubmittedQty:     qty,
		SumCandidate:     item.CountedQty.Add(qty),
		ReplaceCandidate: qty,
	}
	if item.LastTeamID != nil && *item.LastTeamID != in.TeamID {
		out.Conflict = uc.buildConflict(ctx, item)
		metrics.ConflictDetected()
	}
	metrics.DuplicateDetected()
	return out, nil
}

// ResolveDuplicate aplica el modo elegido contra el valor contado vigente.
// SUMA se ejecuta como incremento atómico en el almacén; REEMPLAZO fija la
// cantidad enviada. Requiere que el ítem ya esté contado.
func (uc *UseCase) ResolveDuplicate(ctx context.Context, in ResolveInput) (*Outcome, error) {
	code, err := domaincounting.NormalizeCode(in.Code)
	if err != nil {
		return nil, err
	}
	qty, err := domaincounting.NormalizeQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	if in.SessionID == "" || in.TeamID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Mode != ModeSum && in.Mode != ModeReplace {
		return nil, domain.ErrUnknownMode
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if err := uc.requireActiveSession(ctx, in.SessionID); err != nil {
		return nil, err
	}
	item, err := uc.items.Get(ctx, in.SessionID, code)
	if err != nil {
		return nil, uc.storeErr(err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if !item.Counted() {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	note := countNote(item, in.Note)
	var before, after decimal.Decimal
	var action string

	switch in.Mode {
	case ModeSum:
		action = entity.ActionSum
		after, err = uc.items.AddCount(ctx, in.SessionID, code, qty, note, in.TeamID, now)
		if err != nil {
			return nil, uc.storeErr(err)
		}
		before = after.Sub(qty)
	case ModeReplace:
		action = entity.ActionReplace
		before = item.CountedQty
		after = qty
		if err := uc.items.SetCount(ctx, in.SessionID, code, qty, note, in.TeamID, now); err != nil {
			return nil, uc.storeErr(err)
		}
	}

	out := &Outcome{
		Code:         code,
		Applied:      true,
		Action:       action,
		CurrentQty:   after,
		SubmittedQty: qty,
	}
	metrics.CountApplied(action)
	return out, uc.appendMovement(ctx, in.SessionID, code, in.TeamID, action, before, after, now)
}

// CreateExtraItem agrega un ítem manual con stock de sistema cero. El código
// duplicado dentro de la sesión devuelve domain.ErrDuplicateItem.
func (uc *UseCase) CreateExtraItem(ctx context.Context, in ExtraItemInput) (*entity.Item, error) {
	code, err := domaincounting.NormalizeCode(in.Code)
	if err != nil {
		return nil, err
	}
	if in.SessionID == "" || in.Product == "" {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	if err := uc.requireActiveSession(ctx, in.SessionID); err != nil {
		return nil, err
	}
	note := extraNotePrefix
	if in.Note != "" {
		note = extraNotePrefix + " " + in.Note
	}
	item := &entity.Item{
		SessionID:   in.SessionID,
		Code:        code,
		Product:     in.Product,
		Line:        in.Line,
		SystemStock: decimal.Zero,
		CountedQty:  decimal.Zero,
		Note:        note,
	}
	if err := uc.items.InsertExtra(ctx, item); err != nil {
		return nil, uc.storeErr(err)
	}
	return item, nil
}

// appendMovement registra el movimiento de auditoría tras el commit del ítem.
// Si falla, el conteo ya quedó aplicado: se devuelve ErrPartialFailure con el
// contexto del ítem para que la capa HTTP lo distinga de un fallo total.
func (uc *UseCase) appendMovement(ctx context.Context, sessionID, code, teamID, action string, before, after decimal.Decimal, at time.Time) error {
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		ItemCode:  code,
		TeamID:    teamID,
		Action:    action,
		QtyBefore: before,
		QtyAfter:  after,
		CreatedAt: at,
	}
	if err := uc.movements.Create(ctx, mov); err != nil {
		metrics.PartialFailure()
		return fmt.Errorf("historial de %s/%s: %w (%v)", sessionID, code, domain.ErrPartialFailure, err)
	}
	return nil
}

// requireActiveSession rechaza conteos sobre sesiones inexistentes o
// cerradas.
func (uc *UseCase) requireActiveSession(ctx context.Context, sessionID string) error {
	s, err := uc.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return uc.storeErr(err)
	}
	if s == nil {
		return domain.ErrSessionNotFound
	}
	if !s.Active {
		return domain.ErrSessionClosed
	}
	return nil
}

// countNote normaliza la novedad que acompaña cada conteo. En ítems manuales
// conserva la marca (NUEVO) aunque el contador no la escriba.
func countNote(item *entity.Item, note string) string {
	note = strings.TrimSpace(note)
	if !strings.HasPrefix(item.Note, extraNotePrefix) || strings.HasPrefix(note, extraNotePrefix) {
		return note
	}
	if note == "" {
		return extraNotePrefix
	}
	return extraNotePrefix + " " + note
}

// buildConflict arma el aviso con el nombre del equipo anterior si se puede
// resolver; el nombre es informativo y su fallo no invalida el aviso.
func (uc *UseCase) buildConflict(ctx context.Context, item *entity.Item) *Conflict {
	c := &Conflict{
		TeamID:   *item.LastTeamID,
		Quantity: item.CountedQty,
		At:       *item.CountedAt,
	}
	if team, err := uc.teams.GetByID(ctx, c.TeamID); err == nil && team != nil {
		c.TeamName = team.Name
	}
	return c
}

func (uc *UseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.opTimeout)
}

// storeErr traduce la expiración del contexto a ErrStoreTimeout.
func (uc *UseCase) storeErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrStoreTimeout, err)
	}
	return err
}
