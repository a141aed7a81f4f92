package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

// Operaciones del motor (etiqueta de métricas).
const (
	OpAllocate   = "allocate"
	OpReturn     = "return"
	OpAdjust     = "adjust"
	OpAddProduct = "add_product"
)

// AllocationUseCase motor de asignaciones: mueve stock entre el stock libre y las
// reservas por evento, y anexa cada cambio al libro de movimientos.
// Cada operación valida contra el estado de la transacción antes de la primera mutación;
// si algo falla no se persiste nada.
type AllocationUseCase struct {
	txRunner TxRunner
	metrics  Metrics
	now      func() time.Time
}

// NewAllocationUseCase construye el motor. metrics puede ser nil.
func NewAllocationUseCase(txRunner TxRunner, metrics Metrics) *AllocationUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &AllocationUseCase{txRunner: txRunner, metrics: metrics, now: time.Now}
}

// AllocateInput entrada para reservar stock de un producto para un evento.
// UserID puede venir vacío si no hay sesión.
type AllocateInput struct {
	EventID   string
	ProductID string
	Quantity  int
	UserID    string
}

// ReturnInput entrada para devolver al stock parte o toda una asignación.
type ReturnInput struct {
	AllocationID string
	Quantity     int
	UserID       string
}

// AdjustInput entrada para un ajuste manual de stock (Delta con signo).
type AdjustInput struct {
	ProductID string
	Delta     int
	Notes     *string
	UserID    string
}

// Allocate descuenta Quantity del stock libre, crea la asignación con ReturnedQuantity = 0
// y anexa un movimiento "allocation" con cantidad negativa.
func (uc *AllocationUseCase) Allocate(ctx context.Context, in AllocateInput) (*entity.EventAllocation, error) {
	if in.EventID == "" || in.ProductID == "" || in.Quantity <= 0 {
		return nil, uc.observe(OpAllocate, domain.ErrInvalidInput)
	}

	var allocation *entity.EventAllocation
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		eventRepo repository.EventRepository,
		allocationRepo repository.AllocationRepository,
		movementRepo repository.MovementRepository,
	) error {
		product, err := productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		event, err := eventRepo.GetByID(in.EventID)
		if err != nil {
			return err
		}
		if event == nil {
			return domain.ErrNotFound
		}
		if !event.AcceptsAllocations() {
			return domain.ErrEventClosed
		}
		if in.Quantity > product.CurrentStock {
			return domain.ErrInsufficientStock
		}

		now := uc.now()
		product.CurrentStock -= in.Quantity
		if err := productRepo.Update(product); err != nil {
			return err
		}
		allocation = &entity.EventAllocation{
			ID:                uuid.New().String(),
			EventID:           event.ID,
			ProductID:         product.ID,
			AllocatedQuantity: in.Quantity,
			ReturnedQuantity:  0,
			CreatedAt:         now,
			CreatedBy:         in.UserID,
		}
		if err := allocationRepo.Create(allocation); err != nil {
			return err
		}
		eventID := event.ID
		return movementRepo.Create(&entity.MovementHistory{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			EventID:   &eventID,
			Type:      entity.MovementTypeAllocation,
			Quantity:  -in.Quantity,
			Date:      now,
			UserID:    in.UserID,
		})
	})
	if err != nil {
		return nil, uc.observe(OpAllocate, err)
	}
	uc.observe(OpAllocate, nil)
	return allocation, nil
}

// ReturnToStock devuelve Quantity al stock libre. Admite devoluciones parciales que se
// acumulan; nunca más de lo pendiente (AllocatedQuantity - ReturnedQuantity).
func (uc *AllocationUseCase) ReturnToStock(ctx context.Context, in ReturnInput) (*entity.EventAllocation, error) {
	if in.AllocationID == "" || in.Quantity <= 0 {
		return nil, uc.observe(OpReturn, domain.ErrInvalidInput)
	}

	var allocation *entity.EventAllocation
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.EventRepository,
		allocationRepo repository.AllocationRepository,
		movementRepo repository.MovementRepository,
	) error {
		a, err := allocationRepo.GetByID(in.AllocationID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if in.Quantity > a.Outstanding() {
			return domain.ErrOverReturn
		}
		product, err := productRepo.GetByID(a.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		now := uc.now()
		product.CurrentStock += in.Quantity
		if err := productRepo.Update(product); err != nil {
			return err
		}
		a.ReturnedQuantity += in.Quantity
		if err := allocationRepo.Update(a); err != nil {
			return err
		}
		eventID := a.EventID
		if err := movementRepo.Create(&entity.MovementHistory{
			ID:        uuid.New().String(),
			ProductID: a.ProductID,
			EventID:   &eventID,
			Type:      entity.MovementTypeReturn,
			Quantity:  in.Quantity,
			Date:      now,
			UserID:    in.UserID,
		}); err != nil {
			return err
		}
		allocation = a
		return nil
	})
	if err != nil {
		return nil, uc.observe(OpReturn, err)
	}
	uc.observe(OpReturn, nil)
	return allocation, nil
}

// AdjustStock aplica un ajuste manual (inventario físico, mermas) y anexa un movimiento
// "adjustment". El stock resultante nunca queda negativo.
func (uc *AllocationUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*entity.MovementHistory, error) {
	if in.ProductID == "" || in.Delta == 0 {
		return nil, uc.observe(OpAdjust, domain.ErrInvalidInput)
	}

	var movement *entity.MovementHistory
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.EventRepository,
		_ repository.AllocationRepository,
		movementRepo repository.MovementRepository,
	) error {
		product, err := productRepo.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.CurrentStock+in.Delta < 0 {
			return domain.ErrInsufficientStock
		}

		product.CurrentStock += in.Delta
		if err := productRepo.Update(product); err != nil {
			return err
		}
		movement = &entity.MovementHistory{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Type:      entity.MovementTypeAdjustment,
			Quantity:  in.Delta,
			Date:      uc.now(),
			UserID:    in.UserID,
			Notes:     in.Notes,
		}
		return movementRepo.Create(movement)
	})
	if err != nil {
		return nil, uc.observe(OpAdjust, err)
	}
	uc.observe(OpAdjust, nil)
	return movement, nil
}

// AddProduct crea un producto con CurrentStock = InitialStock. El stock inicial es la
// línea base, no un movimiento: no se anexa nada al libro.
func (uc *AllocationUseCase) AddProduct(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" || unit == "" || in.InitialStock < 0 {
		return nil, uc.observe(OpAddProduct, domain.ErrInvalidInput)
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return nil, uc.observe(OpAddProduct, domain.ErrInvalidInput)
	}

	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		CurrentStock: in.InitialStock,
		Unit:         unit,
		MinStock:     in.MinStock,
		InitialStock: in.InitialStock,
		CreatedAt:    uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.EventRepository,
		_ repository.AllocationRepository,
		_ repository.MovementRepository,
	) error {
		return productRepo.Create(product)
	})
	if err != nil {
		return nil, uc.observe(OpAddProduct, err)
	}
	uc.observe(OpAddProduct, nil)
	return product, nil
}

// observe registra el resultado en métricas y devuelve err sin cambios.
func (uc *AllocationUseCase) observe(operation string, err error) error {
	uc.metrics.ObserveOperation(operation, ResultLabel(err))
	return err
}

// ResultLabel traduce un error del motor a una etiqueta estable ("ok" si err es nil).
func ResultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrEventClosed):
		return "event_closed"
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrOverReturn):
		return "over_return"
	default:
		return "error"
	}
}
