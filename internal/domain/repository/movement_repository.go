package repository

import "github.com/jhoicas/inventario-eventos/internal/domain/entity"

// MovementRepository puerto del libro de movimientos. Solo admite anexar: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.MovementHistory) error
	List() ([]*entity.MovementHistory, error)
	ListByProduct(productID string) ([]*entity.MovementHistory, error)
}
