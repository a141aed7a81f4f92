package usecase

import (
	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
)

// DateLayout formato de fecha de los eventos en la API.
const DateLayout = "2006-01-02"

// ToProductResponse convierte la entidad en DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		CurrentStock: p.CurrentStock,
		Unit:         p.Unit,
		MinStock:     p.MinStock,
		InitialStock: p.InitialStock,
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
	}
}

// ToEventResponse convierte la entidad en DTO de salida. creatorName puede ir vacío.
func ToEventResponse(e *entity.Event, creatorName string) *dto.EventResponse {
	if e == nil {
		return nil
	}
	return &dto.EventResponse{
		ID:                 e.ID,
		Name:               e.Name,
		Date:               e.Date.Format(DateLayout),
		Time:               e.Time,
		Status:             string(e.Status),
		AcceptsAllocations: e.AcceptsAllocations(),
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
		CreatorName:        creatorName,
	}
}

// ToAllocationResponse convierte la asignación; los nombres se resuelven con los
// mapas recibidos (cualquiera puede ser nil).
func ToAllocationResponse(a *entity.EventAllocation, events map[string]*entity.Event, products map[string]*entity.Product, users map[string]*entity.User) *dto.AllocationResponse {
	if a == nil {
		return nil
	}
	out := &dto.AllocationResponse{
		ID:                a.ID,
		EventID:           a.EventID,
		ProductID:         a.ProductID,
		AllocatedQuantity: a.AllocatedQuantity,
		ReturnedQuantity:  a.ReturnedQuantity,
		Outstanding:       a.Outstanding(),
		CanReturn:         !a.IsExhausted(),
		CreatedAt:         a.CreatedAt,
		CreatedBy:         a.CreatedBy,
	}
	if e, ok := events[a.EventID]; ok {
		out.EventName = e.Name
	}
	if p, ok := products[a.ProductID]; ok {
		out.ProductName = p.Name
		out.Unit = p.Unit
	}
	if u, ok := users[a.CreatedBy]; ok {
		out.CreatorName = u.Name
	}
	return out
}

// ToMovementResponse convierte un movimiento del libro.
func ToMovementResponse(m *entity.MovementHistory) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		EventID:   m.EventID,
		Type:      string(m.Type),
		Quantity:  m.Quantity,
		Date:      m.Date,
		UserID:    m.UserID,
		Notes:     m.Notes,
	}
}

// ToUserResponse convierte el usuario sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func indexByID[T any](list []*T, id func(*T) string) map[string]*T {
	out := make(map[string]*T, len(list))
	for _, v := range list {
		out[id(v)] = v
	}
	return out
}

func paginate[T any](list []T, page dto.PageRequest) []T {
	page.DefaultPage()
	if page.Offset >= len(list) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[page.Offset:end]
}
