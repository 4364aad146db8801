package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/warehouse-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los indicadores del almacén.
// GET /api/dashboard/stats
//
// Respuesta: DashboardStatsDTO (totalProducts, totalValue, lowStockItems, outOfStockItems,
// recentMovements[10], stockByCategory, warehouseUtilization).
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
