package persistence

import (
	"github.com/google/uuid"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre el snapshot (usable con Database o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar la Database o el Querier de una tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create agrega un producto al final de la colección. Genera el ID si viene vacío.
func (r *ProductRepo) Create(product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return r.q.write(KeyProducts, func(s *Snapshot) error {
		if indexOf(s.Products, func(p *entity.Product) bool { return p.ID == product.ID }) >= 0 {
			return domain.ErrDuplicate
		}
		s.Products = append(s.Products, *product)
		return nil
	})
}

// GetByID obtiene una copia del producto; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.q.read(func(s *Snapshot) error {
		if i := indexOf(s.Products, func(p *entity.Product) bool { return p.ID == id }); i >= 0 {
			p := s.Products[i]
			out = &p
		}
		return nil
	})
	return out, err
}

// Update reemplaza el producto con el mismo ID.
func (r *ProductRepo) Update(product *entity.Product) error {
	return r.q.write(KeyProducts, func(s *Snapshot) error {
		i := indexOf(s.Products, func(p *entity.Product) bool { return p.ID == product.ID })
		if i < 0 {
			return domain.ErrNotFound
		}
		s.Products[i] = *product
		return nil
	})
}

// List devuelve los productos en orden de inserción.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.q.read(func(s *Snapshot) error {
		list = make([]*entity.Product, 0, len(s.Products))
		for i := range s.Products {
			p := s.Products[i]
			list = append(list, &p)
		}
		return nil
	})
	return list, err
}
