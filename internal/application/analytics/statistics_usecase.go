// Package analytics contiene los casos de uso de lectura para el panel de estadísticas.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/application/inventory"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

const topProductsLimit = 5 // productos en el ranking de rotación

// StatisticsUseCase resume el estado del inventario. No modifica nada: se recalcula en
// cada consulta sobre una vista consistente de las cuatro colecciones.
type StatisticsUseCase struct {
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(txRunner inventory.TxRunner) *StatisticsUseCase {
	return &StatisticsUseCase{txRunner: txRunner, now: time.Now}
}

// GetSummary calcula las estadísticas con la hora actual.
func (uc *StatisticsUseCase) GetSummary(ctx context.Context) (*dto.StatisticsDTO, error) {
	return uc.GetSummaryAt(ctx, uc.now())
}

// GetSummaryAt calcula las estadísticas tomando now como referencia para los eventos próximos.
//
//   - AverageProductsPerCompletedEvent: asignaciones / eventos completados, 1 decimal (0 sin completados).
//   - TopProducts: movimientos por producto en orden de catálogo, orden estable descendente, primeros 5.
//   - ScheduledUpcomingEvents: eventos planned con fecha posterior a now.
func (uc *StatisticsUseCase) GetSummaryAt(ctx context.Context, now time.Time) (*dto.StatisticsDTO, error) {
	var out *dto.StatisticsDTO
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		eventRepo repository.EventRepository,
		allocationRepo repository.AllocationRepository,
		movementRepo repository.MovementRepository,
	) error {
		products, err := productRepo.List()
		if err != nil {
			return err
		}
		events, err := eventRepo.List()
		if err != nil {
			return err
		}
		allocations, err := allocationRepo.List()
		if err != nil {
			return err
		}
		movements, err := movementRepo.List()
		if err != nil {
			return err
		}
		out = summarize(products, events, allocations, movements, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func summarize(
	products []*entity.Product,
	events []*entity.Event,
	allocations []*entity.EventAllocation,
	movements []*entity.MovementHistory,
	now time.Time,
) *dto.StatisticsDTO {
	out := &dto.StatisticsDTO{
		AverageProductsPerCompletedEvent: decimal.Zero,
		TopProducts:                      []dto.ProductRotationDTO{},
		LowStockProducts:                 []dto.LowStockProductDTO{},
		TotalMovements:                   len(movements),
		TotalProducts:                    len(products),
		TotalAllocations:                 len(allocations),
	}

	completed := 0
	for _, e := range events {
		switch e.Status {
		case entity.EventStatusCompleted:
			completed++
		case entity.EventStatusInProgress:
			out.ActiveEvents++
		case entity.EventStatusPlanned:
			if e.Date.After(now) {
				out.ScheduledUpcomingEvents++
			}
		}
	}
	if completed > 0 {
		out.AverageProductsPerCompletedEvent = decimal.NewFromInt(int64(len(allocations))).
			DivRound(decimal.NewFromInt(int64(completed)), 1)
	}

	counts := make(map[string]int, len(products))
	for _, m := range movements {
		counts[m.ProductID]++
	}
	rotation := make([]dto.ProductRotationDTO, 0, len(products))
	for _, p := range products {
		rotation = append(rotation, dto.ProductRotationDTO{ProductID: p.ID, Name: p.Name, Movements: counts[p.ID]})
		if p.IsLowStock() {
			out.LowStockProducts = append(out.LowStockProducts, dto.LowStockProductDTO{
				ProductID:    p.ID,
				Name:         p.Name,
				CurrentStock: p.CurrentStock,
				MinStock:     *p.MinStock,
				Unit:         p.Unit,
			})
		}
	}
	sort.SliceStable(rotation, func(i, j int) bool { return rotation[i].Movements > rotation[j].Movements })
	if len(rotation) > topProductsLimit {
		rotation = rotation[:topProductsLimit]
	}
	out.TopProducts = rotation
	if len(rotation) > 0 {
		first := rotation[0]
		out.MostUsedProduct = &first
	}
	return out
}
