package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/application/inventory"
	"github.com/jhoicas/inventario-eventos/internal/application/usecase"
)

// InventoryHandler asignaciones, devoluciones, libro de movimientos y conciliación (protegido).
type InventoryHandler struct {
	engine      *inventory.AllocationUseCase
	allocations *usecase.AllocationUseCase
	products    *usecase.ProductUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *inventory.AllocationUseCase, allocations *usecase.AllocationUseCase, products *usecase.ProductUseCase) *InventoryHandler {
	return &InventoryHandler{engine: engine, allocations: allocations, products: products}
}

// Allocate godoc
// @Summary      Asignar producto a evento
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocateRequest  true  "event_id, product_id, quantity"
// @Success      201   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations [post]
func (h *InventoryHandler) Allocate(c *fiber.Ctx) error {
	var in dto.AllocateRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	a, err := h.engine.Allocate(c.Context(), inventory.AllocateInput{
		EventID:   in.EventID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.allocations.Describe(a)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asignaciones
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AllocationListResponse
// @Router       /api/allocations [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.allocations.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver al stock
// @Description  Devolución total o parcial; nunca más de lo pendiente.
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la asignación"
// @Param        body  body  dto.ReturnRequest  true  "quantity"
// @Success      200   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations/{id}/returns [post]
func (h *InventoryHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	a, err := h.engine.ReturnToStock(c.Context(), inventory.ReturnInput{
		AllocationID: c.Params("id"),
		Quantity:     in.Quantity,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.allocations.Describe(a)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.products.AllMovements(pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliación stock vs libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationResponse
// @Router       /api/inventory/reconciliation [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.engine.Reconcile(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
