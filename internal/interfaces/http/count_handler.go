package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jose29di/sisinventario/internal/application/counting"
	"github.com/jose29di/sisinventario/internal/application/dto"
	"github.com/jose29di/sisinventario/internal/domain"
)

// CountHandler maneja los envíos de conteo y las resoluciones de duplicados.
type CountHandler struct {
	uc *counting.UseCase
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *counting.UseCase) *CountHandler {
	return &CountHandler{uc: uc}
}

// Submit godoc
// @Summary      Enviar un conteo
// @Description  Primer conteo se aplica directo. Ítem ya contado devuelve los
//
//	candidatos SUMA/REEMPLAZO (sin escribir) y el aviso de conflicto
//	si el último conteo fue de otro equipo.
//
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Param        body  body  dto.SubmitCountRequest  true  "code, quantity (coma o punto), team_id, note"
// @Success      200   {object}  dto.CountOutcomeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id}/counts [post]
func (h *CountHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SubmitCount(c.Context(), counting.SubmitInput{
		SessionID: c.Params("session_id"),
		Code:      in.Code,
		Quantity:  in.Quantity,
		TeamID:    in.TeamID,
		Note:      in.Note,
	})
	return h.respond(c, out, err)
}

// Resolve godoc
// @Summary      Resolver un conteo duplicado
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Param        body  body  dto.ResolveCountRequest  true  "code, quantity, team_id, mode (SUMA|REEMPLAZO), note"
// @Success      200   {object}  dto.CountOutcomeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id}/counts/resolve [post]
func (h *CountHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ResolveDuplicate(c.Context(), counting.ResolveInput{
		SessionID: c.Params("session_id"),
		Code:      in.Code,
		Quantity:  in.Quantity,
		TeamID:    in.TeamID,
		Mode:      in.Mode,
		Note:      in.Note,
	})
	return h.respond(c, out, err)
}

// CreateExtraItem godoc
// @Summary      Agregar ítem manual a la sesión
// @Description  Ítems descubiertos en piso que no están en el catálogo
//
//	congelado; entran con stock de sistema cero.
//
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Param        body  body  dto.CreateExtraItemRequest  true  "code, product, line, note"
// @Success      201   {object}  dto.ItemSummaryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id}/items [post]
func (h *CountHandler) CreateExtraItem(c *fiber.Ctx) error {
	var in dto.CreateExtraItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateExtraItem(c.Context(), counting.ExtraItemInput{
		SessionID: c.Params("session_id"),
		Code:      in.Code,
		Product:   in.Product,
		Line:      in.Line,
		Note:      in.Note,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(presentItem(item, ""))
}

// respond distingue el fallo parcial (conteo aplicado, historial fallido) de
// un error total: el outcome viaja igual, con aviso, porque el valor contado
// es autoritativo y reintentar duplicaría.
func (h *CountHandler) respond(c *fiber.Ctx, out *counting.Outcome, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrPartialFailure) && out != nil {
			return c.JSON(presentOutcome(out, "PARTIAL_FAILURE"))
		}
		return domainError(c, err)
	}
	return c.JSON(presentOutcome(out, ""))
}
