package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/domain/entity"
	"github.com/jhoicas/inventario-eventos/internal/domain/repository"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/kv"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/persistence"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// failingStore rechaza las escrituras mientras fail sea true.
type failingStore struct {
	*kv.MemoryStore
	fail bool
}

func (s *failingStore) SetMany(ctx context.Context, entries []kv.Entry) error {
	if s.fail {
		return errors.New("disco lleno")
	}
	return s.MemoryStore.SetMany(ctx, entries)
}

var errAbort = errors.New("abortar")

func newProduct(name string, stock int) *entity.Product {
	return &entity.Product{Name: name, CurrentStock: stock, InitialStock: stock, Unit: "pcs", CreatedAt: time.Now()}
}

// ──────────────────────────────────────────────────────────────────────────────
// Database / TxRunner
// ──────────────────────────────────────────────────────────────────────────────

func TestDatabase_RecargaDesdeElAlmacen(t *testing.T) {
	store := kv.NewMemoryStore()
	db := persistence.NewDatabase(store, nil)
	p := newProduct("Mantel", 8)
	require.NoError(t, persistence.NewProductRepository(db).Create(p))
	require.NoError(t, persistence.NewSessionRepository(db).SetCurrentUserID("u1"))

	reloaded := persistence.NewDatabase(store, nil)
	got, err := persistence.NewProductRepository(reloaded).GetByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Mantel", got.Name)
	assert.Equal(t, 8, got.CurrentStock)

	id, err := persistence.NewSessionRepository(reloaded).GetCurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestTxRunner_ErrorDescartaTodasLasEscrituras(t *testing.T) {
	store := kv.NewMemoryStore()
	db := persistence.NewDatabase(store, nil)
	runner := persistence.NewTxRunner(db)

	err := runner.Run(context.Background(), func(products repository.ProductRepository, _ repository.EventRepository, _ repository.AllocationRepository, movements repository.MovementRepository) error {
		require.NoError(t, products.Create(newProduct("Vaso", 10)))
		require.NoError(t, movements.Create(&entity.MovementHistory{Type: entity.MovementTypeAdjustment, Quantity: 1}))
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	list, err := persistence.NewProductRepository(db).List()
	require.NoError(t, err)
	assert.Empty(t, list)
	_, ok, err := store.Get(context.Background(), persistence.KeyProducts)
	require.NoError(t, err)
	assert.False(t, ok, "nada llega al almacén")
}

func TestTxRunner_CommitNotificaSoloLasClavesTocadas(t *testing.T) {
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)
	var keys []string
	db.Subscribe("*", func(key string, _ []byte) { keys = append(keys, key) })

	err := persistence.NewTxRunner(db).Run(context.Background(), func(products repository.ProductRepository, _ repository.EventRepository, _ repository.AllocationRepository, movements repository.MovementRepository) error {
		if err := products.Create(newProduct("Silla", 4)); err != nil {
			return err
		}
		return movements.Create(&entity.MovementHistory{Type: entity.MovementTypeAdjustment, Quantity: 2})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{persistence.KeyProducts, persistence.KeyMovements}, keys)
}

func TestTxRunner_SoloLecturaNoEscribe(t *testing.T) {
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)
	require.NoError(t, persistence.NewProductRepository(db).Create(newProduct("Copa", 3)))

	writes := 0
	db.Subscribe("*", func(string, []byte) { writes++ })
	err := persistence.NewTxRunner(db).Run(context.Background(), func(products repository.ProductRepository, _ repository.EventRepository, _ repository.AllocationRepository, _ repository.MovementRepository) error {
		list, err := products.List()
		assert.Len(t, list, 1)
		return err
	})
	require.NoError(t, err)
	assert.Zero(t, writes)
}

func TestDatabase_FalloDelAlmacenConservaElEstadoAnterior(t *testing.T) {
	store := &failingStore{MemoryStore: kv.NewMemoryStore()}
	db := persistence.NewDatabase(store, nil)
	repo := persistence.NewProductRepository(db)
	p := newProduct("Mesa", 5)
	require.NoError(t, repo.Create(p))

	store.fail = true
	p.CurrentStock = 1
	require.Error(t, repo.Update(p))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.CurrentStock, "el estado en memoria no avanza si el almacén falla")
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestRepositorios_IDInexistenteDevuelveNil(t *testing.T) {
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)

	p, err := persistence.NewProductRepository(db).GetByID("x")
	require.NoError(t, err)
	assert.Nil(t, p)
	e, err := persistence.NewEventRepository(db).GetByID("x")
	require.NoError(t, err)
	assert.Nil(t, e)
	a, err := persistence.NewAllocationRepository(db).GetByID("x")
	require.NoError(t, err)
	assert.Nil(t, a)
	u, err := persistence.NewUserRepository(db).GetByEmail("nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRepositorios_IDDuplicadoYUpdateInexistente(t *testing.T) {
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)
	repo := persistence.NewProductRepository(db)
	p := newProduct("Plato", 2)
	require.NoError(t, repo.Create(p))

	dup := newProduct("Otro", 1)
	dup.ID = p.ID
	assert.ErrorIs(t, repo.Create(dup), domain.ErrDuplicate)
	assert.ErrorIs(t, repo.Update(&entity.Product{ID: "no-existe"}), domain.ErrNotFound)
}

func TestRepositorios_GetDevuelveCopia(t *testing.T) {
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)
	repo := persistence.NewProductRepository(db)
	p := newProduct("Cubierto", 9)
	require.NoError(t, repo.Create(p))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	got.CurrentStock = 0

	again, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, again.CurrentStock, "solo Update modifica el estado")
}

func TestAllocationRepo_ListByEvent(t *testing.T) {
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)
	repo := persistence.NewAllocationRepository(db)
	require.NoError(t, repo.Create(&entity.EventAllocation{EventID: "e1", ProductID: "p1", AllocatedQuantity: 1}))
	require.NoError(t, repo.Create(&entity.EventAllocation{EventID: "e2", ProductID: "p1", AllocatedQuantity: 2}))
	require.NoError(t, repo.Create(&entity.EventAllocation{EventID: "e1", ProductID: "p2", AllocatedQuantity: 3}))

	list, err := repo.ListByEvent("e1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].AllocatedQuantity)
	assert.Equal(t, 3, list[1].AllocatedQuantity)
}

func TestMovementRepo_OrdenDeInsercionPorProducto(t *testing.T) {
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)
	repo := persistence.NewMovementRepository(db)
	for _, q := range []int{-3, 5, 1} {
		require.NoError(t, repo.Create(&entity.MovementHistory{ProductID: "p1", Type: entity.MovementTypeAdjustment, Quantity: q}))
	}
	require.NoError(t, repo.Create(&entity.MovementHistory{ProductID: "p2", Type: entity.MovementTypeAdjustment, Quantity: 7}))

	list, err := repo.ListByProduct("p1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{-3, 5, 1}, []int{list[0].Quantity, list[1].Quantity, list[2].Quantity})
	for _, m := range list {
		assert.NotEmpty(t, m.ID)
	}
}

func TestUserRepo_CountYDelete(t *testing.T) {
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)
	repo := persistence.NewUserRepository(db)
	u1 := &entity.User{Email: "a@example.com", Role: entity.RoleAdmin}
	u2 := &entity.User{Email: "b@example.com", Role: entity.RoleUser}
	require.NoError(t, repo.Create(u1))
	require.NoError(t, repo.Create(u2))

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, repo.Delete(u1.ID))
	assert.ErrorIs(t, repo.Delete(u1.ID), domain.ErrNotFound)
	got, err := repo.GetByID(u2.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b@example.com", got.Email)
}

func TestSessionRepo_SetYClear(t *testing.T) {
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)
	repo := persistence.NewSessionRepository(db)

	id, err := repo.GetCurrentUserID()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, repo.SetCurrentUserID("u1"))
	id, _ = repo.GetCurrentUserID()
	assert.Equal(t, "u1", id)

	require.NoError(t, repo.Clear())
	id, _ = repo.GetCurrentUserID()
	assert.Empty(t, id)
}
