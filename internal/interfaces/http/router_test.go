package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-eventos/internal/application/analytics"
	"github.com/jhoicas/inventario-eventos/internal/application/auth"
	"github.com/jhoicas/inventario-eventos/internal/application/inventory"
	"github.com/jhoicas/inventario-eventos/internal/application/usecase"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/kv"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/persistence"
	apphttp "github.com/jhoicas/inventario-eventos/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

// newTestServer arma la API completa sobre un almacén en memoria con un admin sembrado.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	db := persistence.NewDatabase(kv.NewMemoryStore(), nil)

	productRepo := persistence.NewProductRepository(db)
	eventRepo := persistence.NewEventRepository(db)
	allocationRepo := persistence.NewAllocationRepository(db)
	movementRepo := persistence.NewMovementRepository(db)
	userRepo := persistence.NewUserRepository(db)
	sessionRepo := persistence.NewSessionRepository(db)
	txRunner := persistence.NewTxRunner(db)

	userUC := usecase.NewUserUseCase(userRepo)
	created, err := userUC.EnsureDefaultAdmin(adminEmail, adminPassword, "")
	require.NoError(t, err)
	require.True(t, created)

	eventUC := usecase.NewEventUseCase(eventRepo, allocationRepo, productRepo, userRepo)
	deps := apphttp.RouterDeps{
		Engine:       inventory.NewAllocationUseCase(txRunner, nil),
		ProductUC:    usecase.NewProductUseCase(productRepo, movementRepo),
		EventUC:      eventUC,
		AllocationUC: usecase.NewAllocationUseCase(allocationRepo, eventRepo, productRepo, userRepo),
		UserUC:       userUC,
		SheetUC:      usecase.NewSheetUseCase(eventUC, userRepo, pdf.NewMarotoPDFGenerator("Inventario Eventos")),
		StatisticsUC: analytics.NewStatisticsUseCase(txRunner),
		AuthUC: auth.NewAuthUseCase(userRepo, sessionRepo, auth.JWTConfig{
			Secret:     testJWTSecret,
			ExpMinutes: testExpMin,
			Issuer:     testIssuer,
		}),
		JWTSecret: testJWTSecret,
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

// call lanza la petición con cuerpo JSON opcional y devuelve status y cuerpo.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, string(raw))
	token, _ := decode(t, raw)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createProduct(t *testing.T, app *fiber.App, token string, stock int) string {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Mesa redonda", "initial_stock": stock, "unit": "pcs",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode(t, raw)["id"].(string)
}

func createEvent(t *testing.T, app *fiber.App, token string) string {
	t.Helper()
	status, raw := call(t, app, http.MethodPost, "/api/events", token, map[string]any{
		"name": "Boda García", "date": "2030-03-14", "time": "18:30",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode(t, raw)["id"].(string)
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	code, _ := decode(t, raw)["code"].(string)
	return code
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas_RetornaTokenYUsuario(t *testing.T) {
	app := newTestServer(t)
	status, raw := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ADMIN@example.com", "password": adminPassword})
	require.Equal(t, http.StatusOK, status, string(raw))

	body := decode(t, raw)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, adminEmail, user["email"])
	assert.Equal(t, "admin", user["role"])
	assert.NotContains(t, string(raw), "password")
}

func TestLogin_PasswordIncorrecto_Retorna401(t *testing.T) {
	app := newTestServer(t)
	status, raw := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail, "password": "otra"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, raw))
}

func TestLogin_SinPassword_Retorna400(t *testing.T) {
	app := newTestServer(t)
	status, raw := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"email": adminEmail})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))
}

func TestMe_DevuelveUsuarioDelToken(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app, adminEmail, adminPassword)

	status, raw := call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, adminEmail, decode(t, raw)["email"])
}

func TestRutasProtegidas_SinToken_Retorna401(t *testing.T) {
	app := newTestServer(t)
	status, raw := call(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujo_AsignarDevolverYConciliar(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app, adminEmail, adminPassword)
	productID := createProduct(t, app, token, 10)
	eventID := createEvent(t, app, token)

	status, raw := call(t, app, http.MethodPost, "/api/allocations", token, map[string]any{
		"event_id": eventID, "product_id": productID, "quantity": 4,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	alloc := decode(t, raw)
	assert.Equal(t, "Mesa redonda", alloc["product_name"])
	assert.Equal(t, "Boda García", alloc["event_name"])
	assert.EqualValues(t, 4, alloc["outstanding"])
	assert.Equal(t, true, alloc["can_return"])
	allocationID := alloc["id"].(string)

	status, raw = call(t, app, http.MethodPost, "/api/allocations", token, map[string]any{
		"event_id": eventID, "product_id": productID, "quantity": 20,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, raw))

	status, raw = call(t, app, http.MethodPost, "/api/allocations/"+allocationID+"/returns", token, map[string]any{"quantity": 5})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "OVER_RETURN", errorCode(t, raw))

	status, raw = call(t, app, http.MethodPost, "/api/allocations/"+allocationID+"/returns", token, map[string]any{"quantity": 4})
	require.Equal(t, http.StatusOK, status, string(raw))
	returned := decode(t, raw)
	assert.EqualValues(t, 0, returned["outstanding"])
	assert.Equal(t, false, returned["can_return"])

	status, raw = call(t, app, http.MethodGet, "/api/products/"+productID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 10, decode(t, raw)["current_stock"])

	status, raw = call(t, app, http.MethodGet, "/api/products/"+productID+"/movements", token, nil)
	require.Equal(t, http.StatusOK, status)
	items := decode(t, raw)["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "allocation", items[0].(map[string]any)["type"])
	assert.Equal(t, "return", items[1].(map[string]any)["type"])

	status, raw = call(t, app, http.MethodGet, "/api/inventory/reconciliation", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, decode(t, raw)["consistent"])
}

func TestAsignar_CantidadCero_Retorna400(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app, adminEmail, adminPassword)
	productID := createProduct(t, app, token, 10)
	eventID := createEvent(t, app, token)

	status, raw := call(t, app, http.MethodPost, "/api/allocations", token, map[string]any{
		"event_id": eventID, "product_id": productID, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errorCode(t, raw))
}

func TestAsignar_EventoCompletado_Retorna400EventClosed(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app, adminEmail, adminPassword)
	productID := createProduct(t, app, token, 10)
	eventID := createEvent(t, app, token)

	status, raw := call(t, app, http.MethodPatch, "/api/events/"+eventID+"/status", token, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusConflict, status, "planned no pasa directo a completed")
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, raw))

	status, raw = call(t, app, http.MethodPatch, "/api/events/"+eventID+"/status", token, map[string]string{"status": "in-progress"})
	require.Equal(t, http.StatusOK, status, string(raw))
	status, raw = call(t, app, http.MethodPatch, "/api/events/"+eventID+"/status", token, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "completed", decode(t, raw)["status"])

	status, raw = call(t, app, http.MethodPost, "/api/allocations", token, map[string]any{
		"event_id": eventID, "product_id": productID, "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "EVENT_CLOSED", errorCode(t, raw))
}

func TestAjuste_NegativoMayorAlStock_Retorna409(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app, adminEmail, adminPassword)
	productID := createProduct(t, app, token, 3)

	status, raw := call(t, app, http.MethodPost, "/api/products/"+productID+"/adjustments", token, map[string]any{"delta": -5})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, raw))

	status, raw = call(t, app, http.MethodPost, "/api/products/"+productID+"/adjustments", token, map[string]any{"delta": 2, "notes": "conteo físico"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, "adjustment", decode(t, raw)["type"])
}

func TestProducto_Inexistente_Retorna404(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app, adminEmail, adminPassword)

	status, raw := call(t, app, http.MethodGet, "/api/products/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errorCode(t, raw))
}

func TestHojaDeAsignaciones_DevuelvePDF(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app, adminEmail, adminPassword)
	productID := createProduct(t, app, token, 10)
	eventID := createEvent(t, app, token)
	status, _ := call(t, app, http.MethodPost, "/api/allocations", token, map[string]any{
		"event_id": eventID, "product_id": productID, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, status)

	req := httptest.NewRequest(http.MethodGet, "/api/events/"+eventID+"/allocation-sheet", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "asignaciones-")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestEstadisticas_CuentaProductosYAsignaciones(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app, adminEmail, adminPassword)
	productID := createProduct(t, app, token, 10)
	eventID := createEvent(t, app, token)
	status, _ := call(t, app, http.MethodPost, "/api/allocations", token, map[string]any{
		"event_id": eventID, "product_id": productID, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, status)

	status, raw := call(t, app, http.MethodGet, "/api/statistics", token, nil)
	require.Equal(t, http.StatusOK, status)
	body := decode(t, raw)
	assert.EqualValues(t, 1, body["total_products"])
	assert.EqualValues(t, 1, body["total_allocations"])
	assert.EqualValues(t, 1, body["scheduled_upcoming_events"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios (solo admin)
// ──────────────────────────────────────────────────────────────────────────────

func TestUsuarios_AdminCreaYUserNoAccede(t *testing.T) {
	app := newTestServer(t)
	token := login(t, app, adminEmail, adminPassword)

	newUser := map[string]string{"email": "ana@example.com", "password": "secreta", "name": "Ana", "role": "user"}
	status, raw := call(t, app, http.MethodPost, "/api/users", token, newUser)
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = call(t, app, http.MethodPost, "/api/users", token, newUser)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, raw))

	userToken := login(t, app, "ana@example.com", "secreta")
	status, raw = call(t, app, http.MethodGet, "/api/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, raw))

	status, _ = call(t, app, http.MethodGet, "/api/products", userToken, nil)
	assert.Equal(t, http.StatusOK, status, "user opera el inventario")
}
