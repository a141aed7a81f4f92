package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-eventos/internal/application/analytics"
	"github.com/jhoicas/inventario-eventos/internal/application/auth"
	"github.com/jhoicas/inventario-eventos/internal/application/inventory"
	"github.com/jhoicas/inventario-eventos/internal/application/usecase"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine       *inventory.AllocationUseCase
	ProductUC    *usecase.ProductUseCase
	EventUC      *usecase.EventUseCase
	AllocationUC *usecase.AllocationUseCase
	UserUC       *usecase.UserUseCase
	SheetUC      *usecase.SheetUseCase
	StatisticsUC *analytics.StatisticsUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	productHandler := NewProductHandler(deps.ProductUC, deps.Engine)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", productHandler.Movements)
	products.Post("/:id/adjustments", productHandler.Adjust)

	eventHandler := NewEventHandler(deps.EventUC, deps.Engine, deps.SheetUC)
	events := protected.Group("/events")
	events.Get("/", eventHandler.List)
	events.Post("/", eventHandler.Create)
	events.Get("/:id", eventHandler.GetByID)
	events.Patch("/:id/status", eventHandler.UpdateStatus)
	events.Get("/:id/allocations", eventHandler.Allocations)
	events.Get("/:id/allocation-sheet", eventHandler.AllocationSheet)

	inventoryHandler := NewInventoryHandler(deps.Engine, deps.AllocationUC, deps.ProductUC)
	allocations := protected.Group("/allocations")
	allocations.Get("/", inventoryHandler.List)
	allocations.Post("/", inventoryHandler.Allocate)
	allocations.Post("/:id/returns", inventoryHandler.Return)
	protected.Get("/movements", inventoryHandler.Movements)
	protected.Get("/inventory/reconciliation", inventoryHandler.Reconcile)

	protected.Get("/statistics", NewStatisticsHandler(deps.StatisticsUC).Get)

	// Usuarios (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)
}
