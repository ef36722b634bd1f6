package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jose29di/sisinventario/internal/application/dto"
	"github.com/jose29di/sisinventario/internal/application/session"
)

// TeamHandler maneja el registro de equipos de conteo.
type TeamHandler struct {
	uc *session.UseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *session.UseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar un equipo
// @Tags         teams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTeamRequest  true  "nombre y miembros"
// @Success      201   {object}  dto.TeamResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/teams [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.CreateTeam(c.Context(), session.TeamInput{Name: in.Name, Members: in.Members})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(presentTeam(t))
}

// Import godoc
// @Summary      Importar equipos en lote
// @Description  Los nombres ya registrados se omiten sin error.
// @Tags         teams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportTeamsRequest  true  "equipos"
// @Success      200   {object}  dto.ImportTeamsResponse
// @Router       /api/teams/import [post]
func (h *TeamHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportTeamsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inputs := make([]session.TeamInput, 0, len(in.Teams))
	for _, t := range in.Teams {
		inputs = append(inputs, session.TeamInput{Name: t.Name, Members: t.Members})
	}
	res, err := h.uc.ImportTeams(c.Context(), inputs)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.ImportTeamsResponse{Created: res.Created, Skipped: res.Skipped})
}

// List godoc
// @Summary      Listar equipos
// @Tags         teams
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "solo activos"
// @Success      200  {array}  dto.TeamResponse
// @Router       /api/teams [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	teams, err := h.uc.ListTeams(c.Context(), c.QueryBool("active"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, presentTeam(&teams[i]))
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Retirar un equipo (borrado lógico)
// @Tags         teams
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del equipo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/teams/{id} [delete]
func (h *TeamHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.DeactivateTeam(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "equipo retirado"})
}
