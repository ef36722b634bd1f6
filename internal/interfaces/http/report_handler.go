package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jose29di/sisinventario/internal/application/dto"
	"github.com/jose29di/sisinventario/internal/application/report"
	appsync "github.com/jose29di/sisinventario/internal/application/sync"
)

// ReportHandler expone las instantáneas del planificador y las consultas de
// avance de una sesión.
type ReportHandler struct {
	reports   *report.UseCase
	scheduler *appsync.Scheduler
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *report.UseCase, scheduler *appsync.Scheduler) *ReportHandler {
	return &ReportHandler{reports: reports, scheduler: scheduler}
}

// Snapshot godoc
// @Summary      Instantánea de avance de la sesión
// @Description  Devuelve el último snapshot publicado por el planificador;
//
//	si aún no existe, lo computa en el momento. stale=true indica
//	que la última recomputación falló y se sirve el último bueno.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id}/snapshot [get]
func (h *ReportHandler) Snapshot(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	if cached, ok := h.scheduler.Snapshot(sessionID); ok {
		return c.JSON(presentSnapshot(cached))
	}
	cached, err := h.scheduler.RefreshNow(c.Context(), sessionID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(presentSnapshot(cached))
}

// Refresh godoc
// @Summary      Refresco manual de la instantánea
// @Description  A diferencia de los ticks periódicos, nunca se descarta:
//
//	espera a la pasada en curso.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SnapshotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id}/refresh [post]
func (h *ReportHandler) Refresh(c *fiber.Ctx) error {
	cached, err := h.scheduler.RefreshNow(c.Context(), c.Params("session_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(presentSnapshot(cached))
}

// KPI godoc
// @Summary      KPIs con filtro de líneas (cálculo directo, sin caché)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        session_id  path   string    true   "ID de la sesión"
// @Param        line        query  []string  false  "líneas a incluir (repetible)"
// @Success      200  {object}  dto.KPIResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id}/kpi [get]
func (h *ReportHandler) KPI(c *fiber.Ctx) error {
	var lines []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("line") {
		if len(raw) > 0 {
			lines = append(lines, string(raw))
		}
	}
	snap, err := h.reports.Recompute(c.Context(), c.Params("session_id"), lines)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(presentKPI(snap.KPI))
}

// Lines godoc
// @Summary      Líneas presentes en la sesión
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Success      200  {array}  string
// @Router       /api/sessions/{session_id}/lines [get]
func (h *ReportHandler) Lines(c *fiber.Ctx) error {
	lines, err := h.reports.Lines(c.Context(), c.Params("session_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(lines)
}

// Search godoc
// @Summary      Buscar ítems por código o descripción
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        session_id  path   string  true   "ID de la sesión"
// @Param        q           query  string  true   "texto de búsqueda"
// @Success      200  {array}  dto.ItemSummaryResponse
// @Router       /api/sessions/{session_id}/items/search [get]
func (h *ReportHandler) Search(c *fiber.Ctx) error {
	results, err := h.reports.Search(c.Context(), c.Params("session_id"), c.Query("q"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.ItemSummaryResponse, 0, len(results))
	for i := range results {
		out = append(out, presentItem(&results[i].Item, results[i].Status))
	}
	return c.JSON(out)
}
