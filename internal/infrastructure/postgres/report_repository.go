package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jose29di/sisinventario/internal/domain/entity"
	"github.com/jose29di/sisinventario/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los tableros de avance. Siempre
// trabaja sobre el pool: nunca dentro de transacciones de escritura.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// GetKPICounts calcula en una sola pasada los conteos de la sesión sobre
// ítems calificados (stock de sistema > 0). "Contado" lo decide la marca
// counted_at, no la cantidad: un conteo en cero sigue siendo contado.
func (r *ReportRepo) GetKPICounts(ctx context.Context, sessionID string, lines []string) (repository.KPICounts, error) {
	const query = `
	SELECT
	    COUNT(*)                                                             AS total,
	    COUNT(*) FILTER (WHERE counted_at IS NOT NULL)                       AS counted,
	    COUNT(*) FILTER (WHERE counted_at IS NOT NULL AND difference = 0)    AS exact,
	    COUNT(*) FILTER (WHERE counted_at IS NOT NULL AND difference < 0)    AS shortages,
	    COUNT(*) FILTER (WHERE counted_at IS NOT NULL AND difference > 0)    AS overages
	FROM items
	WHERE session_id = $1
	  AND system_stock > 0
	  AND ($2::text[] IS NULL OR line = ANY($2))`

	var c repository.KPICounts
	err := r.pool.QueryRow(ctx, query, sessionID, linesParam(lines)).
		Scan(&c.Total, &c.Counted, &c.Exact, &c.Shortages, &c.Overages)
	if err != nil {
		return repository.KPICounts{}, fmt.Errorf("report.GetKPICounts: %w", err)
	}
	return c, nil
}

// ListPending devuelve ítems calificados sin contar, hasta limit.
func (r *ReportRepo) ListPending(ctx context.Context, sessionID string, lines []string, limit int) ([]entity.Item, error) {
	const query = `
	SELECT ` + itemColumns + `
	FROM items
	WHERE session_id = $1
	  AND system_stock > 0
	  AND counted_at IS NULL
	  AND ($2::text[] IS NULL OR line = ANY($2))
	ORDER BY code
	LIMIT $3`
	return r.queryItems(ctx, query, sessionID, linesParam(lines), limit)
}

// ListDiscrepancies devuelve ítems contados con diferencia distinta de cero,
// ordenados por magnitud de la diferencia, hasta limit.
func (r *ReportRepo) ListDiscrepancies(ctx context.Context, sessionID string, lines []string, limit int) ([]entity.Item, error) {
	const query = `
	SELECT ` + itemColumns + `
	FROM items
	WHERE session_id = $1
	  AND system_stock > 0
	  AND counted_at IS NOT NULL
	  AND difference <> 0
	  AND ($2::text[] IS NULL OR line = ANY($2))
	ORDER BY ABS(difference) DESC, code
	LIMIT $3`
	return r.queryItems(ctx, query, sessionID, linesParam(lines), limit)
}

// ListLines devuelve las líneas distintas presentes en la sesión.
func (r *ReportRepo) ListLines(ctx context.Context, sessionID string) ([]string, error) {
	const query = `
	SELECT DISTINCT line FROM items
	WHERE session_id = $1 AND line <> ''
	ORDER BY line`
	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("report.ListLines: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("report.ListLines scan: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *ReportRepo) queryItems(ctx context.Context, query string, args ...any) ([]entity.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report query items: %w", err)
	}
	defer rows.Close()

	var items []entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(
			&it.SessionID, &it.Code, &it.Product, &it.Line,
			&it.SystemStock, &it.CountedQty, &it.Note, &it.CountedAt, &it.LastTeamID,
		); err != nil {
			return nil, fmt.Errorf("report query items scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// linesParam convierte el filtro vacío en NULL para la cláusula ANY.
func linesParam(lines []string) any {
	if len(lines) == 0 {
		return nil
	}
	return lines
}
