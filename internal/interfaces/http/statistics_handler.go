package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-eventos/internal/application/analytics"
)

// StatisticsHandler expone el resumen del panel.
type StatisticsHandler struct {
	uc *analytics.StatisticsUseCase
}

// NewStatisticsHandler construye el handler.
func NewStatisticsHandler(uc *analytics.StatisticsUseCase) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

// Get godoc
// @Summary      Estadísticas del inventario
// @Tags         statistics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatisticsDTO
// @Router       /api/statistics [get]
func (h *StatisticsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
