package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/report"
)

// ReportHandler expone los reportes (datos JSON).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Types godoc
// @Summary      Catálogo de reportes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReportTypeDTO
// @Router       /api/reports/types [get]
func (h *ReportHandler) Types(c *fiber.Ctx) error {
	return c.JSON(h.uc.Types())
}

// Stock godoc
// @Summary      Reporte de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category_id     query  string  false  "Filtrar por categoría"
// @Param        low_stock_only  query  bool    false  "Solo productos en o bajo el mínimo"
// @Success      200  {object}  dto.StockReportDTO
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.Stock(c.UserContext(), dto.StockReportRequest{
		CategoryID:   query(c, "category_id"),
		LowStockOnly: c.QueryBool("low_stock_only", false),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NearExpiry godoc
// @Summary      Productos próximos a vencer
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Ventana en meses"  default(6)
// @Success      200  {object}  dto.NearExpiryReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/near-expiry [get]
func (h *ReportHandler) NearExpiry(c *fiber.Ctx) error {
	out, err := h.uc.NearExpiry(c.UserContext(), dto.NearExpiryRequest{Months: c.QueryInt("months", 0)})
	if err != nil {
		return writeErrorMsg(c, err, "months debe estar entre 1 y 120")
	}
	return c.JSON(out)
}

// WarehouseLayout godoc
// @Summary      Ocupación del almacén por área
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LayoutReportDTO
// @Router       /api/reports/warehouse-layout [get]
func (h *ReportHandler) WarehouseLayout(c *fiber.Ctx) error {
	out, err := h.uc.WarehouseLayout(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
