package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose29di/sisinventario/internal/application/counting"
	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/internal/domain/entity"
	apphttp "github.com/jose29di/sisinventario/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar el caso de uso detrás del handler
// ──────────────────────────────────────────────────────────────────────────────

const (
	countSession = "11111111-1111-1111-1111-111111111111"
	countTeamA   = "aaaaaaaa-0000-0000-0000-000000000001"
	countTeamB   = "bbbbbbbb-0000-0000-0000-000000000002"
)

type memItemRepo struct {
	items map[string]*entity.Item
}

func (r *memItemRepo) Get(_ context.Context, _, code string) (*entity.Item, error) {
	it, ok := r.items[code]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) ListBySession(context.Context, string) ([]entity.Item, error) {
	return nil, nil
}

func (r *memItemRepo) Search(context.Context, string, string, int) ([]entity.Item, error) {
	return nil, nil
}

func (r *memItemRepo) BulkInsert(context.Context, []entity.Item) error { return nil }

func (r *memItemRepo) InsertExtra(_ context.Context, item *entity.Item) error {
	if _, ok := r.items[item.Code]; ok {
		return domain.ErrDuplicateItem
	}
	cp := *item
	r.items[cp.Code] = &cp
	return nil
}

func (r *memItemRepo) SetCount(_ context.Context, _, code string, qty decimal.Decimal, note, teamID string, at time.Time) error {
	it, ok := r.items[code]
	if !ok {
		return domain.ErrItemNotFound
	}
	it.CountedQty = qty
	it.Note = note
	it.CountedAt = &at
	it.LastTeamID = &teamID
	return nil
}

func (r *memItemRepo) AddCount(_ context.Context, _, code string, qty decimal.Decimal, note, teamID string, at time.Time) (decimal.Decimal, error) {
	it, ok := r.items[code]
	if !ok {
		return decimal.Zero, domain.ErrItemNotFound
	}
	it.CountedQty = it.CountedQty.Add(qty)
	it.Note = note
	it.CountedAt = &at
	it.LastTeamID = &teamID
	return it.CountedQty, nil
}

func (r *memItemRepo) UpdateSystemStock(context.Context, string, map[string]decimal.Decimal) (int, error) {
	return 0, nil
}

type memMovementRepo struct {
	movements []entity.Movement
	fail      bool
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if r.fail {
		return errors.New("historial caído")
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memMovementRepo) Recent(context.Context, string, int) ([]entity.Movement, error) {
	return r.movements, nil
}

func (r *memMovementRepo) ListBySession(context.Context, string) ([]entity.Movement, error) {
	return r.movements, nil
}

type memSessionRepo struct {
	active bool
}

func (memSessionRepo) Create(context.Context, *entity.Session) error { return nil }

func (r memSessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	if id != countSession {
		return nil, nil
	}
	return &entity.Session{ID: countSession, Name: "Corte agosto", Active: r.active}, nil
}

func (memSessionRepo) List(context.Context, bool) ([]entity.Session, error) { return nil, nil }

func (memSessionRepo) SetActive(context.Context, string, bool) error { return nil }

type memTeamRepo struct{}

func (memTeamRepo) Create(context.Context, *entity.Team) error { return nil }

func (memTeamRepo) GetByID(_ context.Context, id string) (*entity.Team, error) {
	if id == countTeamA {
		return &entity.Team{ID: countTeamA, Name: "Equipo A", Active: true}, nil
	}
	return nil, nil
}

func (memTeamRepo) List(context.Context, bool) ([]entity.Team, error) { return nil, nil }

func (memTeamRepo) SetActive(context.Context, string, bool) error { return nil }

func countApp(items *memItemRepo, movs *memMovementRepo) *fiber.App {
	uc := counting.NewUseCase(items, movs, memTeamRepo{}, memSessionRepo{active: true}, 0)
	h := apphttp.NewCountHandler(uc)

	app := fiber.New()
	app.Post("/api/sessions/:session_id/counts", h.Submit)
	app.Post("/api/sessions/:session_id/counts/resolve", h.Resolve)
	app.Post("/api/sessions/:session_id/items", h.CreateExtraItem)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	resp.Body.Close()
	return resp, parsed
}

func countedA1() *memItemRepo {
	at := time.Now().Add(-time.Minute)
	team := countTeamA
	return &memItemRepo{items: map[string]*entity.Item{
		"A1": {
			SessionID:   countSession,
			Code:        "A1",
			Product:     "Tornillo",
			SystemStock: decimal.NewFromInt(10),
			CountedQty:  decimal.NewFromInt(7),
			CountedAt:   &at,
			LastTeamID:  &team,
		},
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /counts
// ──────────────────────────────────────────────────────────────────────────────

func TestCountSubmit_PrimerConteo(t *testing.T) {
	items := &memItemRepo{items: map[string]*entity.Item{
		"A1": {SessionID: countSession, Code: "A1", SystemStock: decimal.NewFromInt(10), CountedQty: decimal.Zero},
	}}
	app := countApp(items, &memMovementRepo{})

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/counts", fiber.Map{
		"code": "a1", "quantity": "8,5", "team_id": countTeamA,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["applied"])
	assert.Equal(t, "NUEVO", body["action"])
	assert.Equal(t, "8.5", body["submitted_qty"], "la coma decimal se normaliza a punto")
	assert.Empty(t, body["warning"])
}

func TestCountSubmit_LaNovedadSePersiste(t *testing.T) {
	items := &memItemRepo{items: map[string]*entity.Item{
		"A1": {SessionID: countSession, Code: "A1", SystemStock: decimal.NewFromInt(10), CountedQty: decimal.Zero},
	}}
	app := countApp(items, &memMovementRepo{})

	resp, _ := postJSON(t, app, "/api/sessions/"+countSession+"/counts", fiber.Map{
		"code": "A1", "quantity": "8", "team_id": countTeamA, "note": "caja rota",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "caja rota", items.items["A1"].Note, "la novedad del envío queda en el ítem")
}

func TestCountSubmit_SesionCerrada409(t *testing.T) {
	items := countedA1()
	uc := counting.NewUseCase(items, &memMovementRepo{}, memTeamRepo{}, memSessionRepo{active: false}, 0)
	h := apphttp.NewCountHandler(uc)
	app := fiber.New()
	app.Post("/api/sessions/:session_id/counts", h.Submit)

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/counts", fiber.Map{
		"code": "A1", "quantity": "5", "team_id": countTeamA,
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "SESSION_CLOSED", body["code"])
}

func TestCountSubmit_DuplicadoConConflicto(t *testing.T) {
	app := countApp(countedA1(), &memMovementRepo{})

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/counts", fiber.Map{
		"code": "A1", "quantity": "5", "team_id": countTeamB,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["duplicate"])
	assert.Equal(t, false, body["applied"])
	assert.Equal(t, "7", body["current_qty"])
	assert.Equal(t, "12", body["sum_candidate"])
	assert.Equal(t, "5", body["replace_candidate"])

	conflict, ok := body["conflict"].(map[string]any)
	require.True(t, ok, "equipo distinto debe traer el aviso de conflicto")
	assert.Equal(t, countTeamA, conflict["team_id"])
	assert.Equal(t, "Equipo A", conflict["team_name"])
}

func TestCountSubmit_CodigoInexistente404(t *testing.T) {
	app := countApp(&memItemRepo{items: map[string]*entity.Item{}}, &memMovementRepo{})

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/counts", fiber.Map{
		"code": "ZZZ", "quantity": "1", "team_id": countTeamA,
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ITEM_NOT_FOUND", body["code"])
}

func TestCountSubmit_CantidadInvalida400(t *testing.T) {
	app := countApp(countedA1(), &memMovementRepo{})

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/counts", fiber.Map{
		"code": "A1", "quantity": "abc", "team_id": countTeamA,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", body["code"])
}

func TestCountSubmit_FalloParcialDevuelve200ConAviso(t *testing.T) {
	items := &memItemRepo{items: map[string]*entity.Item{
		"A1": {SessionID: countSession, Code: "A1", SystemStock: decimal.NewFromInt(10), CountedQty: decimal.Zero},
	}}
	app := countApp(items, &memMovementRepo{fail: true})

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/counts", fiber.Map{
		"code": "A1", "quantity": "8", "team_id": countTeamA,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode, "el conteo quedó aplicado: no es un error para el cliente")
	assert.Equal(t, true, body["applied"])
	assert.Equal(t, "PARTIAL_FAILURE", body["warning"])
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /counts/resolve
// ──────────────────────────────────────────────────────────────────────────────

func TestCountResolve_Suma(t *testing.T) {
	app := countApp(countedA1(), &memMovementRepo{})

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/counts/resolve", fiber.Map{
		"code": "A1", "quantity": "5", "team_id": countTeamB, "mode": "SUMA",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["applied"])
	assert.Equal(t, "SUMA", body["action"])
	assert.Equal(t, "12", body["current_qty"])
}

func TestCountResolve_ModoDesconocido400(t *testing.T) {
	app := countApp(countedA1(), &memMovementRepo{})

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/counts/resolve", fiber.Map{
		"code": "A1", "quantity": "5", "team_id": countTeamA, "mode": "PROMEDIO",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_MODE", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /items
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateExtraItem_201(t *testing.T) {
	app := countApp(&memItemRepo{items: map[string]*entity.Item{}}, &memMovementRepo{})

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/items", fiber.Map{
		"code": "extra-1", "product": "Hallazgo de piso", "note": "pasillo 4",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "EXTRA-1", body["code"])
	assert.Equal(t, "0", body["system_stock"], "ítem manual entra con stock cero")
}

func TestCreateExtraItem_Duplicado409(t *testing.T) {
	app := countApp(countedA1(), &memMovementRepo{})

	resp, body := postJSON(t, app, "/api/sessions/"+countSession+"/items", fiber.Map{
		"code": "a1", "product": "Repetido",
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_ITEM", body["code"])
}
