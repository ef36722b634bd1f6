package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jose29di/sisinventario/internal/application/export"
)

// ExportHandler entrega el paquete de datos planos para el generador de
// reportes externo.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar la sesión completa
// @Description  Conteo completo, diferencias, pendientes, historial y KPIs
//
//	como datos planos; el archivo final lo arma el colaborador externo.
//
// @Tags         export
// @Security     Bearer
// @Produce      json
// @Param        session_id  path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ExportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{session_id}/export [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.Export(c.Context(), c.Params("session_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(presentExport(data))
}
