package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/application/inventory"
	"github.com/jhoicas/inventario-eventos/internal/application/usecase"
)

// EventHandler maneja las peticiones HTTP para Event (protegido).
type EventHandler struct {
	uc     *usecase.EventUseCase
	engine *inventory.AllocationUseCase
	sheets *usecase.SheetUseCase
}

// NewEventHandler construye el handler.
func NewEventHandler(uc *usecase.EventUseCase, engine *inventory.AllocationUseCase, sheets *usecase.SheetUseCase) *EventHandler {
	return &EventHandler{uc: uc, engine: engine, sheets: sheets}
}

// Create godoc
// @Summary      Crear evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEventRequest  true  "name, date (YYYY-MM-DD), time (HH:MM), status"
// @Success      201   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEventRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	e, err := h.engine.AddEvent(c.Context(), in, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(e.ID)
	if err != nil || out == nil {
		out = usecase.ToEventResponse(e, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener evento por ID
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "evento no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar eventos
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EventListResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del evento"
// @Param        body  body  dto.UpdateEventStatusRequest  true  "nuevo estado"
// @Success      200  {object}  dto.EventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/events/{id}/status [patch]
func (h *EventHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateEventStatusRequest
	if e := bind(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.UpdateStatus(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Allocations godoc
// @Summary      Asignaciones de un evento
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.AllocationListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id}/allocations [get]
func (h *EventHandler) Allocations(c *fiber.Ctx) error {
	out, err := h.uc.Allocations(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AllocationSheet godoc
// @Summary      Hoja de asignaciones en PDF
// @Tags         events
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id}/allocation-sheet [get]
func (h *EventHandler) AllocationSheet(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.sheets.Download(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
