package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jose29di/sisinventario/internal/domain"
	"github.com/jose29di/sisinventario/internal/domain/counting"
	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
)

// UseCase administra el ciclo de vida de las sesiones de corte: creación con
// catálogo congelado, refresco de stock de sistema y registro de equipos.
type UseCase struct {
	txRunner TxRunner
	sessions repository.SessionRepository
	teams    repository.TeamRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, sessions repository.SessionRepository, teams repository.TeamRepository) *UseCase {
	return &UseCase{txRunner: txRunner, sessions: sessions, teams: teams}
}

// CatalogRow una fila del catálogo importado, ya parseada por el colaborador
// de importación.
type CatalogRow struct {
	Code    string
	Product string
	Line    string
	Stock   string
}

// CreateInput creación de sesión. Lines filtra qué líneas del catálogo se
// congelan en la sesión (vacío = todas).
type CreateInput struct {
	Name        string
	Responsible string
	Warehouse   string
	Lines       []string
	Catalog     []CatalogRow
}

// CreateResult resultado de la creación.
type CreateResult struct {
	SessionID string
	Loaded    int
	Skipped   int
}

// Create crea la sesión y carga su catálogo congelado en una sola
// transacción. Filas con código inválido o repetido se omiten (gana la
// primera aparición); el stock ilegible se congela en cero.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	lineFilter := make(map[string]bool, len(in.Lines))
	for _, l := range in.Lines {
		lineFilter[l] = true
	}

	s := &entity.Session{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Responsible: in.Responsible,
		Warehouse:   in.Warehouse,
		Active:      true,
		CreatedAt:   time.Now(),
	}

	seen := make(map[string]bool, len(in.Catalog))
	items := make([]entity.Item, 0, len(in.Catalog))
	skipped := 0
	for _, row := range in.Catalog {
		code, err := counting.NormalizeCode(row.Code)
		if err != nil || seen[code] {
			skipped++
			continue
		}
		if len(lineFilter) > 0 && !lineFilter[row.Line] {
			skipped++
			continue
		}
		stock, err := counting.NormalizeQuantity(row.Stock)
		if err != nil {
			stock = decimal.Zero
		}
		seen[code] = true
		items = append(items, entity.Item{
			SessionID:   s.ID,
			Code:        code,
			Product:     row.Product,
			Line:        row.Line,
			SystemStock: stock,
			CountedQty:  decimal.Zero,
		})
	}

	err := uc.txRunner.Run(ctx, func(
		sessions repository.SessionRepository,
		itemRepo repository.ItemRepository,
		_ repository.TeamRepository,
	) error {
		if err := sessions.Create(ctx, s); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return itemRepo.BulkInsert(ctx, items)
	})
	if err != nil {
		return nil, fmt.Errorf("crear sesión: %w", err)
	}
	return &CreateResult{SessionID: s.ID, Loaded: len(items), Skipped: skipped}, nil
}

// StockRow una fila de refresco de stock.
type StockRow struct {
	Code  string
	Stock string
}

// RefreshResult filas actualizadas frente a códigos sin correspondencia.
type RefreshResult struct {
	Updated   int
	Unmatched int
}

// RefreshStock actualiza solo el stock de sistema de los ítems existentes en
// la sesión; las cantidades contadas y las marcas de conteo no se tocan.
// Toda la corrida va en una transacción.
func (uc *UseCase) RefreshStock(ctx context.Context, sessionID string, rows []StockRow) (*RefreshResult, error) {
	s, err := uc.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}

	stocks := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		code, err := counting.NormalizeCode(row.Code)
		if err != nil {
			continue
		}
		qty, err := counting.NormalizeQuantity(row.Stock)
		if err != nil {
			continue
		}
		stocks[code] = qty
	}

	var updated int
	err = uc.txRunner.Run(ctx, func(
		_ repository.SessionRepository,
		itemRepo repository.ItemRepository,
		_ repository.TeamRepository,
	) error {
		n, err := itemRepo.UpdateSystemStock(ctx, sessionID, stocks)
		updated = n
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("refrescar stock: %w", err)
	}
	return &RefreshResult{Updated: updated, Unmatched: len(stocks) - updated}, nil
}

// Get devuelve la sesión o ErrSessionNotFound.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Session, error) {
	s, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// List lista sesiones; onlyActive limita a las activas.
func (uc *UseCase) List(ctx context.Context, onlyActive bool) ([]entity.Session, error) {
	return uc.sessions.List(ctx, onlyActive)
}

// Deactivate cierra una sesión (borrado lógico): deja de sincronizarse y de
// aceptar conteos.
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	s, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrSessionNotFound
	}
	return uc.sessions.SetActive(ctx, id, false)
}
