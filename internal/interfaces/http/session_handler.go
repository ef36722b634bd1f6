package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jose29di/sisinventario/internal/application/dto"
	"github.com/jose29di/sisinventario/internal/application/session"
)

// SessionHandler maneja el ciclo de vida de las sesiones de corte.
type SessionHandler struct {
	uc *session.UseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *session.UseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sesión de corte con catálogo congelado
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSessionRequest  true  "nombre, responsable, bodega, catálogo y filtro de líneas"
// @Success      201   {object}  dto.CreateSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	catalog := make([]session.CatalogRow, 0, len(in.Catalog))
	for _, row := range in.Catalog {
		catalog = append(catalog, session.CatalogRow{
			Code: row.Code, Product: row.Product, Line: row.Line, Stock: row.Stock,
		})
	}
	res, err := h.uc.Create(c.Context(), session.CreateInput{
		Name:        in.Name,
		Responsible: in.Responsible,
		Warehouse:   in.Warehouse,
		Lines:       in.Lines,
		Catalog:     catalog,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateSessionResponse{
		SessionID: res.SessionID,
		Loaded:    res.Loaded,
		Skipped:   res.Skipped,
	})
}

// List godoc
// @Summary      Listar sesiones
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "solo activas"
// @Success      200  {array}  dto.SessionResponse
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c *fiber.Ctx) error {
	sessions, err := h.uc.List(c.Context(), c.QueryBool("active"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, presentSession(&sessions[i]))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Consultar una sesión
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.SessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id} [get]
func (h *SessionHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("session_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(presentSession(s))
}

// RefreshStock godoc
// @Summary      Refrescar stock de sistema a mitad de corte
// @Description  Solo actualiza system_stock de los códigos enviados; los
//
//	conteos ya hechos quedan intactos.
//
// @Tags         sessions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Param        body  body  dto.RefreshStockRequest  true  "filas código/stock"
// @Success      200   {object}  dto.RefreshStockResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id}/stock [put]
func (h *SessionHandler) RefreshStock(c *fiber.Ctx) error {
	var in dto.RefreshStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rows := make([]session.StockRow, 0, len(in.Rows))
	for _, row := range in.Rows {
		rows = append(rows, session.StockRow{Code: row.Code, Stock: row.Stock})
	}
	res, err := h.uc.RefreshStock(c.Context(), c.Params("session_id"), rows)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.RefreshStockResponse{Updated: res.Updated, Unmatched: res.Unmatched})
}

// Deactivate godoc
// @Summary      Cerrar una sesión (borrado lógico)
// @Tags         sessions
// @Security     Bearer
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id} [delete]
func (h *SessionHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("session_id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}
