package repository

import (
	"context"

	"github.com/jose29di/sisinventario/internal/domain/entity"
)

// KPICounts conteos crudos para los indicadores de una sesión, calculados
// sobre ítems calificados (stock de sistema > 0, líneas filtradas si aplica).
type KPICounts struct {
	Total     int64 // ítems calificados
	Counted   int64 // con al menos un conteo
	Exact     int64 // contados con diferencia cero
	Shortages int64 // contados con diferencia negativa
	Overages  int64 // contados con diferencia positiva
}

// ReportRepository consultas de solo lectura para los tableros de avance.
// Nunca participa en transacciones de escritura.
type ReportRepository interface {
	GetKPICounts(ctx context.Context, sessionID string, lines []string) (KPICounts, error)
	// ListPending: ítems calificados sin contar, hasta limit.
	ListPending(ctx context.Context, sessionID string, lines []string, limit int) ([]entity.Item, error)
	// ListDiscrepancies: ítems contados con diferencia distinta de cero, hasta limit.
	ListDiscrepancies(ctx context.Context, sessionID string, lines []string, limit int) ([]entity.Item, error)
	// ListLines: líneas/categorías distintas presentes en la sesión.
	ListLines(ctx context.Context, sessionID string) ([]string, error)
}
