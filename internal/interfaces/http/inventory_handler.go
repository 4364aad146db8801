package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/warehouse-api/internal/application/analytics"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de stock y reposición (protegido).
type InventoryHandler struct {
	ledger        *inventory.StockLedger
	queries       *inventory.MovementQueryUseCase
	stats         *appanalytics.MovementStatsUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.StockLedger,
	queries *inventory.MovementQueryUseCase,
	stats *appanalytics.MovementStatsUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, queries: queries, stats: stats, replenishment: replenishment}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  in suma, out resta, adjustment fija el saldo a quantity. Un movimiento y un saldo por operación, atómicamente.
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, movement_type, quantity, reference_number, notes"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse  "movement_type inválido, quantity <= 0 o mayor a 2147483647"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return recordMovement(c, h.ledger, in)
}

// recordMovement es compartido por POST /stock-movements y POST /products/:id/stock.
func recordMovement(c *fiber.Ctx, ledger *inventory.StockLedger, in dto.RecordMovementRequest) error {
	if in.ProductID == "" || in.MovementType == "" {
		return validation(c, "product_id, movement_type y quantity son requeridos")
	}
	res, err := ledger.RecordMovement(c.UserContext(), inventory.RecordMovementInput{
		ProductID:       in.ProductID,
		Type:            in.MovementType,
		Quantity:        in.Quantity,
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
		Actor:           GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return writeErrorMsg(c, err, "producto no encontrado")
		case errors.Is(err, domain.ErrInvalidInput):
			return writeErrorMsg(c, err, "movement_type debe ser in, out o adjustment y quantity mayor a 0")
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordMovementResponse{
		Message:    "Stock movement recorded successfully",
		ID:         res.MovementID,
		NewBalance: res.NewBalance,
	})
}

// ReverseMovement godoc
// @Summary      Revertir (eliminar) un movimiento (admin)
// @Description  Deshace el efecto de una entrada o salida sobre el saldo. Los ajustes no se pueden revertir.
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.ReverseMovementResponse
// @Failure      400  {object}  dto.ErrorResponse  "El saldo resultante excede el rango permitido"
// @Failure      403  {object}  dto.ErrorResponse  "Solo administradores"
// @Failure      404  {object}  dto.ErrorResponse  "Movimiento no encontrado"
// @Failure      409  {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK: la entrada ya fue consumida y el saldo quedaría negativo"
// @Failure      422  {object}  dto.ErrorResponse  "Los ajustes no se pueden revertir"
// @Router       /api/stock-movements/{id} [delete]
func (h *InventoryHandler) ReverseMovement(c *fiber.Ctx) error {
	grant := inventory.GrantReversal(GetUserID(c), GetRole(c))
	res, err := h.ledger.ReverseMovement(c.UserContext(), param(c, "id"), grant)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return writeErrorMsg(c, err, "movimiento no encontrado")
		case errors.Is(err, domain.ErrUnsupportedOperation):
			return writeErrorMsg(c, err, "los ajustes no se pueden revertir automáticamente")
		case errors.Is(err, domain.ErrInsufficientStock):
			return writeErrorMsg(c, err, "el stock ya fue consumido; la reversión dejaría saldo negativo")
		case errors.Is(err, domain.ErrInvalidInput):
			return writeErrorMsg(c, err, "la reversión dejaría el saldo fuera del rango permitido")
		}
		return writeError(c, err)
	}
	return c.JSON(dto.ReverseMovementResponse{
		Message:    "Stock movement deleted successfully",
		ProductID:  res.ProductID,
		NewBalance: res.NewBalance,
	})
}

// List godoc
// @Summary      Listar movimientos
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Filtrar por producto"
// @Param        movement_type  query  string  false  "in, out o adjustment"
// @Param        start_date     query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date       query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	req := dto.MovementListRequest{
		PageRequest:  pageFrom(c),
		ProductID:    query(c, "product_id"),
		MovementType: query(c, "movement_type"),
		StartDate:    query(c, "start_date"),
		EndDate:      query(c, "end_date"),
	}
	out, err := h.queries.List(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Movimientos de un producto
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/product/{productId} [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.queries.ListByProduct(c.UserContext(), param(c, "productId"), pageFrom(c))
	if err != nil {
		return writeErrorMsg(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas de movimientos
// @Description  Conteos por tipo en el rango, tendencia diaria de 30 días y los 10 productos con más movimientos.
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.MovementStatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/stats [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	out, err := h.stats.GetStats(c.UserContext(), dto.MovementStatsRequest{
		StartDate: query(c, "start_date"),
		EndDate:   query(c, "end_date"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su stock mínimo con la cantidad sugerida (max - actual), ordenados por déficit.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// pageFrom lee page y limit de la query; los valores por defecto los aplica el caso de uso.
func pageFrom(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page", 0), Limit: c.QueryInt("limit", 0)}
}
