package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-eventos/internal/application/dto"
	"github.com/jhoicas/inventario-eventos/internal/application/inventory"
	"github.com/jhoicas/inventario-eventos/internal/application/usecase"
	"github.com/jhoicas/inventario-eventos/internal/domain"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/kv"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/persistence"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type env struct {
	ctx         context.Context
	engine      *inventory.AllocationUseCase
	products    *usecase.ProductUseCase
	events      *usecase.EventUseCase
	allocations *usecase.AllocationUseCase
	users       *usecase.UserUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)
	productRepo := persistence.NewProductRepository(db)
	eventRepo := persistence.NewEventRepository(db)
	allocationRepo := persistence.NewAllocationRepository(db)
	movementRepo := persistence.NewMovementRepository(db)
	userRepo := persistence.NewUserRepository(db)
	return &env{
		ctx:         context.Background(),
		engine:      inventory.NewAllocationUseCase(persistence.NewTxRunner(db), nil),
		products:    usecase.NewProductUseCase(productRepo, movementRepo),
		events:      usecase.NewEventUseCase(eventRepo, allocationRepo, productRepo, userRepo),
		allocations: usecase.NewAllocationUseCase(allocationRepo, eventRepo, productRepo, userRepo),
		users:       usecase.NewUserUseCase(userRepo),
	}
}

func (e *env) product(t *testing.T, name string, stock int) string {
	t.Helper()
	p, err := e.engine.AddProduct(e.ctx, dto.CreateProductRequest{Name: name, InitialStock: stock, Unit: "pcs"})
	require.NoError(t, err)
	return p.ID
}

func (e *env) event(t *testing.T, name, creator string) string {
	t.Helper()
	ev, err := e.engine.AddEvent(e.ctx, dto.CreateEventRequest{Name: name, Date: "2026-10-30"}, creator)
	require.NoError(t, err)
	return ev.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductList_BusquedaSinTildesNiMayusculas(t *testing.T) {
	e := newEnv(t)
	e.product(t, "Máquina de Café", 2)
	e.product(t, "Mesa redonda", 10)
	e.product(t, "CAFETERA industrial", 1)

	out, err := e.products.List("cafe")
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Máquina de Café", out.Items[0].Name)
	assert.Equal(t, "CAFETERA industrial", out.Items[1].Name)

	all, err := e.products.List("  ")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
}

func TestProductGet_Inexistente_RetornaNil(t *testing.T) {
	e := newEnv(t)
	p, err := e.products.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductMovements_PaginaYFiltraPorProducto(t *testing.T) {
	e := newEnv(t)
	p1 := e.product(t, "Sillas", 10)
	p2 := e.product(t, "Mesas", 10)
	for i := 0; i < 3; i++ {
		_, err := e.engine.AdjustStock(e.ctx, inventory.AdjustInput{ProductID: p1, Delta: 1})
		require.NoError(t, err)
	}
	_, err := e.engine.AdjustStock(e.ctx, inventory.AdjustInput{ProductID: p2, Delta: -1})
	require.NoError(t, err)

	page, err := e.products.Movements(p1, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Page.Total)

	rest, err := e.products.Movements(p1, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rest.Items, 1)

	all, err := e.products.AllMovements(dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Page.Total)
	assert.Equal(t, 20, all.Page.Limit)

	_, err = e.products.Movements("no-existe", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eventos
// ──────────────────────────────────────────────────────────────────────────────

func TestEventUpdateStatus_MaquinaDeEstados(t *testing.T) {
	e := newEnv(t)
	id := e.event(t, "Concierto", "")

	out, err := e.events.UpdateStatus(id, dto.UpdateEventStatusRequest{Status: "in-progress"})
	require.NoError(t, err)
	assert.Equal(t, "in-progress", out.Status)

	_, err = e.events.UpdateStatus(id, dto.UpdateEventStatusRequest{Status: "planned"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se vuelve a planned")

	out, err = e.events.UpdateStatus(id, dto.UpdateEventStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.False(t, out.AcceptsAllocations)

	_, err = e.events.UpdateStatus(id, dto.UpdateEventStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "completed es terminal")

	_, err = e.events.UpdateStatus(id, dto.UpdateEventStatusRequest{Status: "borrador"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.events.UpdateStatus("no-existe", dto.UpdateEventStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventUpdateStatus_MismoEstado_NoEsError(t *testing.T) {
	e := newEnv(t)
	id := e.event(t, "Expo", "")
	out, err := e.events.UpdateStatus(id, dto.UpdateEventStatusRequest{Status: "planned"})
	require.NoError(t, err)
	assert.Equal(t, "planned", out.Status)
}

func TestEventList_ResuelveNombreDelCreador(t *testing.T) {
	e := newEnv(t)
	u, err := e.users.Create(dto.CreateUserRequest{Email: "ana@example.com", Password: "secreta", Name: "Ana"})
	require.NoError(t, err)
	e.event(t, "Gala", u.ID)
	e.event(t, "Sin autor", "")

	out, err := e.events.List()
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Ana", out.Items[0].CreatorName)
	assert.Equal(t, "2026-10-30", out.Items[0].Date)
	assert.Empty(t, out.Items[1].CreatorName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocations_NombresYCreadorDirecto(t *testing.T) {
	e := newEnv(t)
	u, err := e.users.Create(dto.CreateUserRequest{Email: "luis@example.com", Password: "x", Name: "Luis"})
	require.NoError(t, err)
	pID := e.product(t, "Proyector", 4)
	evID := e.event(t, "Charla", u.ID)
	otherEv := e.event(t, "Otra", u.ID)

	a, err := e.engine.Allocate(e.ctx, inventory.AllocateInput{EventID: evID, ProductID: pID, Quantity: 3, UserID: u.ID})
	require.NoError(t, err)
	_, err = e.engine.Allocate(e.ctx, inventory.AllocateInput{EventID: otherEv, ProductID: pID, Quantity: 1, UserID: u.ID})
	require.NoError(t, err)

	byEvent, err := e.events.Allocations(evID)
	require.NoError(t, err)
	require.Len(t, byEvent.Items, 1)
	item := byEvent.Items[0]
	assert.Equal(t, "Charla", item.EventName)
	assert.Equal(t, "Proyector", item.ProductName)
	assert.Equal(t, "pcs", item.Unit)
	assert.Equal(t, "Luis", item.CreatorName)
	assert.Equal(t, 3, item.Outstanding)
	assert.True(t, item.CanReturn)

	_, err = e.engine.ReturnToStock(e.ctx, inventory.ReturnInput{AllocationID: a.ID, Quantity: 3})
	require.NoError(t, err)
	all, err := e.allocations.List()
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.False(t, all.Items[0].CanReturn)

	desc, err := e.allocations.Describe(a)
	require.NoError(t, err)
	assert.Equal(t, "Charla", desc.EventName)

	_, err = e.events.Allocations("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserCreate_EmailDuplicado(t *testing.T) {
	e := newEnv(t)
	_, err := e.users.Create(dto.CreateUserRequest{Email: "a@example.com", Password: "p", Name: "A"})
	require.NoError(t, err)
	_, err = e.users.Create(dto.CreateUserRequest{Email: " A@Example.com ", Password: "p", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserCreate_CamposObligatorios(t *testing.T) {
	e := newEnv(t)
	cases := []dto.CreateUserRequest{
		{Email: "", Password: "p", Name: "A"},
		{Email: "a@example.com", Password: "", Name: "A"},
		{Email: "a@example.com", Password: "p", Name: " "},
		{Email: "a@example.com", Password: "p", Name: "A", Role: "root"},
	}
	for _, in := range cases {
		_, err := e.users.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestUserDelete_NoEliminaElUltimo(t *testing.T) {
	e := newEnv(t)
	a, err := e.users.Create(dto.CreateUserRequest{Email: "a@example.com", Password: "p", Name: "A"})
	require.NoError(t, err)
	b, err := e.users.Create(dto.CreateUserRequest{Email: "b@example.com", Password: "p", Name: "B"})
	require.NoError(t, err)

	require.NoError(t, e.users.Delete(a.ID))
	assert.ErrorIs(t, e.users.Delete(b.ID), domain.ErrLastUser)
	assert.ErrorIs(t, e.users.Delete("no-existe"), domain.ErrNotFound)

	list, err := e.users.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b@example.com", list[0].Email)
}

func TestEnsureDefaultAdmin_SoloConAlmacenVacio(t *testing.T) {
	e := newEnv(t)
	created, err := e.users.EnsureDefaultAdmin("admin@system.com", "admin123", "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = e.users.EnsureDefaultAdmin("otro@system.com", "x", "Otro")
	require.NoError(t, err)
	assert.False(t, created)

	list, err := e.users.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "admin", list[0].Role)
	assert.Equal(t, "Administrador", list[0].Name)
	assert.WithinDuration(t, time.Now(), list[0].CreatedAt, time.Minute)
}
