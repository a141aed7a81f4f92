package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-eventos/internal/application/analytics"
	"github.com/jhoicas/inventario-eventos/internal/application/auth"
	"github.com/jhoicas/inventario-eventos/internal/application/inventory"
	"github.com/jhoicas/inventario-eventos/internal/application/usecase"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/kv"
	kvpostgres "github.com/jhoicas/inventario-eventos/internal/infrastructure/kv/postgres"
	kvsqlite "github.com/jhoicas/inventario-eventos/internal/infrastructure/kv/sqlite"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-eventos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-eventos/internal/infrastructure/persistence"
	httpRouter "github.com/jhoicas/inventario-eventos/internal/interfaces/http"
	"github.com/jhoicas/inventario-eventos/pkg/config"
	"github.com/jhoicas/inventario-eventos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("abrir almacén")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	db := persistence.NewDatabase(store, log.Named("persistence"))
	productRepo := persistence.NewProductRepository(db)
	eventRepo := persistence.NewEventRepository(db)
	allocationRepo := persistence.NewAllocationRepository(db)
	movementRepo := persistence.NewMovementRepository(db)
	userRepo := persistence.NewUserRepository(db)
	sessionRepo := persistence.NewSessionRepository(db)
	txRunner := persistence.NewTxRunner(db)

	storeLog := log.Named("store")
	unsubscribe := db.Subscribe("*", func(key string, payload []byte) {
		storeLog.Debug().Str("key", key).Int("bytes", len(payload)).Msg("colección actualizada")
	})
	defer unsubscribe()

	m := metrics.New("inventario_eventos")
	unwatch := m.Watch(db, persistence.KeyCurrentUserID)
	defer unwatch()

	userUC := usecase.NewUserUseCase(userRepo)
	created, err := userUC.EnsureDefaultAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
		if cfg.Admin.UsesDefaultPassword() {
			log.Warn().Msg("el administrador usa la contraseña por defecto; definir ADMIN_PASSWORD")
		}
	}

	engine := inventory.NewAllocationUseCase(txRunner, m)
	productUC := usecase.NewProductUseCase(productRepo, movementRepo)
	eventUC := usecase.NewEventUseCase(eventRepo, allocationRepo, productRepo, userRepo)
	allocationUC := usecase.NewAllocationUseCase(allocationRepo, eventRepo, productRepo, userRepo)
	sheetUC := usecase.NewSheetUseCase(eventUC, userRepo, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))
	statisticsUC := analytics.NewStatisticsUseCase(txRunner)
	authUC := auth.NewAuthUseCase(userRepo, sessionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(m.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario Eventos API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})
	app.Get("/metrics", m.FiberHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:       engine,
		ProductUC:    productUC,
		EventUC:      eventUC,
		AllocationUC: allocationUC,
		UserUC:       userUC,
		SheetUC:      sheetUC,
		StatisticsUC: statisticsUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}
	log.Info().Msg("aplicación detenida")
}

// openStore abre el backend configurado en STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return kv.NewMemoryStore(), nil
	case config.StoreSQLite:
		return kvsqlite.NewStore(cfg.Store.SQLitePath)
	case config.StorePostgres:
		pool, err := kvpostgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		store, err := kvpostgres.NewStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("driver de almacén desconocido: %q", cfg.Store.Driver)
	}
}
