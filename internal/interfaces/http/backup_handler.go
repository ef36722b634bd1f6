package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jose29di/sisinventario/internal/application/dto"
	"github.com/jose29di/sisinventario/internal/infrastructure/backup"
)

// BackupHandler administra los respaldos del corte. Solo rol admin: restaurar
// pisa la base actual.
type BackupHandler struct {
	manager *backup.Manager
}

// NewBackupHandler construye el handler.
func NewBackupHandler(manager *backup.Manager) *BackupHandler {
	return &BackupHandler{manager: manager}
}

// Create godoc
// @Summary      Crear un respaldo
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BackupResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/backups [post]
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	info, err := h.manager.Create(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(presentBackup(*info))
}

// List godoc
// @Summary      Listar respaldos
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BackupResponse
// @Router       /api/backups [get]
func (h *BackupHandler) List(c *fiber.Ctx) error {
	infos, err := h.manager.List(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.BackupResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, presentBackup(info))
	}
	return c.JSON(out)
}

// Restore godoc
// @Summary      Restaurar un respaldo sobre la base actual
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "nombre del respaldo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/backups/{name}/restore [post]
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	if err := h.manager.Restore(c.Context(), c.Params("name")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "respaldo restaurado"})
}

// Delete godoc
// @Summary      Eliminar un respaldo
// @Tags         backups
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "nombre del respaldo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/backups/{name} [delete]
func (h *BackupHandler) Delete(c *fiber.Ctx) error {
	if err := h.manager.Delete(c.Context(), c.Params("name")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "respaldo eliminado"})
}

func presentBackup(info backup.Info) dto.BackupResponse {
	return dto.BackupResponse{
		Name:      info.Name,
		SizeBytes: info.SizeBytes,
		CreatedAt: info.CreatedAt,
	}
}
