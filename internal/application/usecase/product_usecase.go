package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
)

// ProductUseCase consultas de catálogo. El alta y los cambios de stock pasan por el motor de asignaciones.
type ProductUseCase struct {
	repo         repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movementRepo repository.MovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, movementRepo: movementRepo}
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// List lista el catálogo en orden de alta. q filtra por nombre sin distinguir
// mayúsculas ni tildes ("cafe" encuentra "Café").
func (uc *ProductUseCase) List(q string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	needle := foldText(strings.TrimSpace(q))
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if needle != "" && !strings.Contains(foldText(p.Name), needle) {
			continue
		}
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Movements devuelve el libro de un producto, paginado, en orden de registro.
func (uc *ProductUseCase) Movements(productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	return movementPage(list, page), nil
}

// AllMovements devuelve el libro completo, paginado.
func (uc *ProductUseCase) AllMovements(page dto.PageRequest) (*dto.MovementListResponse, error) {
	list, err := uc.movementRepo.List()
	if err != nil {
		return nil, err
	}
	return movementPage(list, page), nil
}

func movementPage(list []*entity.MovementHistory, page dto.PageRequest) *dto.MovementListResponse {
	page.DefaultPage()
	items := make([]dto.MovementResponse, 0, page.Limit)
	for _, m := range paginate(list, page) {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(list)},
	}
}

// foldText pasa a minúsculas y quita marcas diacríticas (NFD + remove Mn).
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
