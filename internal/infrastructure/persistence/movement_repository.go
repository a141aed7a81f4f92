package persistence

import (
	"github.com/google/uuid"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre el snapshot. Solo anexa.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create anexa un movimiento al libro. Genera el ID si viene vacío.
func (r *MovementRepo) Create(movement *entity.MovementHistory) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	return r.q.write(KeyMovements, func(s *Snapshot) error {
		s.Movements = append(s.Movements, *movement)
		return nil
	})
}

// List devuelve el libro completo en orden cronológico de registro.
func (r *MovementRepo) List() ([]*entity.MovementHistory, error) {
	return r.filter(func(*entity.MovementHistory) bool { return true })
}

// ListByProduct devuelve los movimientos de un producto.
func (r *MovementRepo) ListByProduct(productID string) ([]*entity.MovementHistory, error) {
	return r.filter(func(m *entity.MovementHistory) bool { return m.ProductID == productID })
}

func (r *MovementRepo) filter(match func(*entity.MovementHistory) bool) ([]*entity.MovementHistory, error) {
	var list []*entity.MovementHistory
	err := r.q.read(func(s *Snapshot) error {
		list = make([]*entity.MovementHistory, 0)
		for i := range s.Movements {
			if match(&s.Movements[i]) {
				m := s.Movements[i]
				list = append(list, &m)
			}
		}
		return nil
	})
	return list, err
}
