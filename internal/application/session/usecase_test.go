package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose29di/sisinventario/internal/application/session"
	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	cp := *s
	r.sessions[cp.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*entity.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) List(_ context.Context, onlyActive bool) ([]entity.Session, error) {
	var out []entity.Session
	for _, s := range r.sessions {
		if onlyActive && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSessionRepo) SetActive(_ context.Context, id string, active bool) error {
	if s, ok := r.sessions[id]; ok {
		s.Active = active
		return nil
	}
	return domain.ErrSessionNotFound
}

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func (r *fakeItemRepo) Get(_ context.Context, _, code string) (*entity.Item, error) {
	it, ok := r.items[code]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) ListBySession(context.Context, string) ([]entity.Item, error) {
	var out []entity.Item
	for _, it := range r.items {
		out = append(out, *it)
	}
	return out, nil
}

func (r *fakeItemRepo) Search(context.Context, string, string, int) ([]entity.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) BulkInsert(_ context.Context, items []entity.Item) error {
	for i := range items {
		cp := items[i]
		r.items[cp.Code] = &cp
	}
	return nil
}

func (r *fakeItemRepo) InsertExtra(_ context.Context, item *entity.Item) error {
	if _, ok := r.items[item.Code]; ok {
		return domain.ErrDuplicateItem
	}
	cp := *item
	r.items[cp.Code] = &cp
	return nil
}

func (r *fakeItemRepo) SetCount(_ context.Context, _, code string, qty decimal.Decimal, note, teamID string, at time.Time) error {
	it := r.items[code]
	it.CountedQty = qty
	it.Note = note
	it.CountedAt = &at
	it.LastTeamID = &teamID
	return nil
}

func (r *fakeItemRepo) AddCount(context.Context, string, string, decimal.Decimal, string, string, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeItemRepo) UpdateSystemStock(_ context.Context, _ string, stocks map[string]decimal.Decimal) (int, error) {
	n := 0
	for code, stock := range stocks {
		if it, ok := r.items[code]; ok {
			it.SystemStock = stock
			n++
		}
	}
	return n, nil
}

type fakeTeamRepo struct {
	teams map[string]*entity.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*entity.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, t *entity.Team) error {
	for _, existing := range r.teams {
		if existing.Name == t.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *t
	r.teams[cp.ID] = &cp
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id string) (*entity.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTeamRepo) List(_ context.Context, onlyActive bool) ([]entity.Team, error) {
	var out []entity.Team
	for _, t := range r.teams {
		if onlyActive && !t.Active {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTeamRepo) SetActive(_ context.Context, id string, active bool) error {
	if t, ok := r.teams[id]; ok {
		t.Active = active
		return nil
	}
	return domain.ErrNotFound
}

// fakeTxRunner ejecuta fn directamente sobre los repositorios en memoria.
type fakeTxRunner struct {
	sessions *fakeSessionRepo
	items    *fakeItemRepo
	teams    *fakeTeamRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	sessions repository.SessionRepository,
	items repository.ItemRepository,
	teams repository.TeamRepository,
) error) error {
	return fn(r.sessions, r.items, r.teams)
}

type fixture struct {
	uc       *session.UseCase
	sessions *fakeSessionRepo
	items    *fakeItemRepo
	teams    *fakeTeamRepo
}

func newFixture() *fixture {
	sessions := newFakeSessionRepo()
	items := newFakeItemRepo()
	teams := newFakeTeamRepo()
	tx := &fakeTxRunner{sessions: sessions, items: items, teams: teams}
	return &fixture{
		uc:       session.NewUseCase(tx, sessions, teams),
		sessions: sessions,
		items:    items,
		teams:    teams,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — catálogo congelado
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CargaCatalogoNormalizado(t *testing.T) {
	f := newFixture()

	res, err := f.uc.Create(context.Background(), session.CreateInput{
		Name:        "Corte agosto",
		Responsible: "María",
		Catalog: []session.CatalogRow{
			{Code: " a1 ", Product: "Tornillo", Line: "FERRETERIA", Stock: "10"},
			{Code: "b2", Product: "Pintura", Line: "PINTURAS", Stock: "3,5"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Loaded)
	assert.Zero(t, res.Skipped)
	require.NotEmpty(t, res.SessionID)

	it, _ := f.items.Get(context.Background(), res.SessionID, "A1")
	require.NotNil(t, it, "el código se normaliza a mayúsculas sin espacios")
	assert.True(t, it.SystemStock.Equal(decimal.NewFromInt(10)))

	it2, _ := f.items.Get(context.Background(), res.SessionID, "B2")
	require.NotNil(t, it2)
	assert.True(t, it2.SystemStock.Equal(decimal.RequireFromString("3.5")), "la coma decimal se acepta")
}

func TestCreate_DuplicadosGanaLaPrimeraAparicion(t *testing.T) {
	f := newFixture()

	res, err := f.uc.Create(context.Background(), session.CreateInput{
		Name: "Corte",
		Catalog: []session.CatalogRow{
			{Code: "A1", Product: "Primero", Stock: "10"},
			{Code: "a1", Product: "Repetido", Stock: "99"},
			{Code: "   ", Product: "Sin código", Stock: "1"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Loaded)
	assert.Equal(t, 2, res.Skipped, "código repetido y código vacío se omiten")

	it, _ := f.items.Get(context.Background(), res.SessionID, "A1")
	assert.Equal(t, "Primero", it.Product)
	assert.True(t, it.SystemStock.Equal(decimal.NewFromInt(10)))
}

func TestCreate_FiltroDeLineas(t *testing.T) {
	f := newFixture()

	res, err := f.uc.Create(context.Background(), session.CreateInput{
		Name:  "Solo ferretería",
		Lines: []string{"FERRETERIA"},
		Catalog: []session.CatalogRow{
			{Code: "A1", Product: "Tornillo", Line: "FERRETERIA", Stock: "10"},
			{Code: "B2", Product: "Pintura", Line: "PINTURAS", Stock: "5"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Loaded)
	assert.Equal(t, 1, res.Skipped)
}

func TestCreate_StockIlegibleSeCongelaEnCero(t *testing.T) {
	f := newFixture()

	res, err := f.uc.Create(context.Background(), session.CreateInput{
		Name: "Corte",
		Catalog: []session.CatalogRow{
			{Code: "A1", Product: "Tornillo", Stock: "N/A"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Loaded)

	it, _ := f.items.Get(context.Background(), res.SessionID, "A1")
	assert.True(t, it.SystemStock.IsZero())
}

func TestCreate_SinNombre(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), session.CreateInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RefreshStock
// ──────────────────────────────────────────────────────────────────────────────

func TestRefreshStock_NoTocaConteos(t *testing.T) {
	f := newFixture()
	res, err := f.uc.Create(context.Background(), session.CreateInput{
		Name: "Corte",
		Catalog: []session.CatalogRow{
			{Code: "A1", Product: "Tornillo", Stock: "10"},
			{Code: "B2", Product: "Pintura", Stock: "5"},
		},
	})
	require.NoError(t, err)

	// A1 ya fue contado por un equipo.
	require.NoError(t, f.items.SetCount(context.Background(), res.SessionID, "A1",
		decimal.NewFromInt(8), "", "equipo-1", time.Now()))

	out, err := f.uc.RefreshStock(context.Background(), res.SessionID, []session.StockRow{
		{Code: "a1", Stock: "12"},
		{Code: "ZZ", Stock: "4"}, // sin correspondencia en la sesión
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Updated)
	assert.Equal(t, 1, out.Unmatched)

	it, _ := f.items.Get(context.Background(), res.SessionID, "A1")
	assert.True(t, it.SystemStock.Equal(decimal.NewFromInt(12)), "el stock de sistema se refresca")
	assert.True(t, it.CountedQty.Equal(decimal.NewFromInt(8)), "la cantidad contada queda intacta")
	assert.True(t, it.Counted(), "la marca de conteo queda intacta")
}

func TestRefreshStock_SesionInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RefreshStock(context.Background(), "no-existe", nil)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestDeactivate_CierraLaSesion(t *testing.T) {
	f := newFixture()
	res, err := f.uc.Create(context.Background(), session.CreateInput{Name: "Corte"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Deactivate(context.Background(), res.SessionID))

	active, err := f.uc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := f.uc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 1, "cierre es borrado lógico, la sesión sigue existiendo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Equipos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTeam_NombreDuplicado(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateTeam(context.Background(), session.TeamInput{Name: "Equipo A"})
	require.NoError(t, err)

	_, err = f.uc.CreateTeam(context.Background(), session.TeamInput{Name: "Equipo A"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestImportTeams_OmiteDuplicadosSinError(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateTeam(context.Background(), session.TeamInput{Name: "Equipo A"})
	require.NoError(t, err)

	res, err := f.uc.ImportTeams(context.Background(), []session.TeamInput{
		{Name: "Equipo A"}, // ya existe
		{Name: "Equipo B"},
		{Name: ""}, // inválido
		{Name: "Equipo C", Members: "Ana, Luis"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 2, res.Skipped)

	teams, err := f.uc.ListTeams(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, teams, 3)
}
