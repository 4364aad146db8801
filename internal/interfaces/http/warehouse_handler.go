package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain"
)

// WarehouseHandler maneja el plano del almacén: áreas y ubicaciones (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// ListAreas godoc
// @Summary      Listar áreas
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo áreas activas"
// @Success      200  {array}  dto.AreaResponse
// @Router       /api/warehouse/areas [get]
func (h *WarehouseHandler) ListAreas(c *fiber.Ctx) error {
	out, err := h.uc.ListAreas(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateArea godoc
// @Summary      Crear área
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AreaRequest  true  "Datos del área"
// @Success      201   {object}  dto.AreaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouse/areas [post]
func (h *WarehouseHandler) CreateArea(c *fiber.Ctx) error {
	var in dto.AreaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.CreateArea(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateArea godoc
// @Summary      Actualizar área
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del área"
// @Param        body  body  dto.AreaRequest  true  "Datos del área"
// @Success      200   {object}  dto.AreaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouse/areas/{id} [put]
func (h *WarehouseHandler) UpdateArea(c *fiber.Ctx) error {
	var in dto.AreaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateArea(c.UserContext(), param(c, "id"), in)
	if err != nil {
		return writeErrorMsg(c, err, "área no encontrada")
	}
	return c.JSON(out)
}

// DeleteArea godoc
// @Summary      Eliminar área y sus ubicaciones
// @Description  Se rechaza si algún producto está ubicado en el área.
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del área"
// @Success      200  {object}  dto.DeleteAreaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/warehouse/areas/{id} [delete]
func (h *WarehouseHandler) DeleteArea(c *fiber.Ctx) error {
	deleted, err := h.uc.DeleteArea(c.UserContext(), param(c, "id"))
	if err != nil {
		if err == domain.ErrConflict {
			return writeErrorMsg(c, err, "hay productos ubicados en el área; reubíquelos antes de eliminarla")
		}
		return writeErrorMsg(c, err, "área no encontrada")
	}
	return c.JSON(dto.DeleteAreaResponse{Message: "Area deleted successfully", DeletedLocations: deleted})
}

// ListLocations godoc
// @Summary      Listar ubicaciones con su área y producto
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/warehouse/locations [get]
func (h *WarehouseHandler) ListLocations(c *fiber.Ctx) error {
	out, err := h.uc.ListLocations(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocationRequest  true  "area_id, row_number, column_number, location_code, capacity"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouse/locations [post]
func (h *WarehouseHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateLocation(c.UserContext(), in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return writeErrorMsg(c, err, "el código de ubicación ya existe")
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLocation godoc
// @Summary      Actualizar ubicación
// @Tags         warehouse
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la ubicación"
// @Param        body  body  dto.LocationRequest  true  "Datos de la ubicación"
// @Success      200   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouse/locations/{id} [put]
func (h *WarehouseHandler) UpdateLocation(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateLocation(c.UserContext(), param(c, "id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteLocation godoc
// @Summary      Eliminar ubicación
// @Description  Se rechaza si algún producto la referencia.
// @Tags         warehouse
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/warehouse/locations/{id} [delete]
func (h *WarehouseHandler) DeleteLocation(c *fiber.Ctx) error {
	id := param(c, "id")
	if err := h.uc.DeleteLocation(c.UserContext(), id); err != nil {
		if err == domain.ErrConflict {
			return writeErrorMsg(c, err, "hay productos en la ubicación")
		}
		return writeErrorMsg(c, err, "ubicación no encontrada")
	}
	return c.JSON(dto.MessageResponse{Message: "Location deleted successfully", ID: id})
}
