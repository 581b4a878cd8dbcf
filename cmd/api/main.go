package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/portal-asistencia/internal/application/usecase"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/memory"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/portal-asistencia/internal/interfaces/http"
	"github.com/jhoicas/portal-asistencia/pkg/config"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
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
		Str("store", cfg.Backend.Store).
		Msg("iniciando servidor API")

	loc, err := cfg.Portal.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	var store repository.Gateway
	switch cfg.Backend.Store {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
	case config.StoreSeed:
		gw, err := seed.NewGateway(cfg.Portal.SeedPath, memory.WithLocation(loc), memory.WithLogger(log))
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Portal.SeedPath).Msg("cargar datos semilla")
		}
		store = gw
	default:
		store = memory.NewGateway(memory.DefaultDataset(), memory.WithLocation(loc), memory.WithLogger(log))
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Portal de Asistencia API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		UserUC:       usecase.NewUserUseCase(store),
		AttendanceUC: usecase.NewAttendanceUseCase(store, domain.SystemClock{}, loc, log),
		InventoryUC:  usecase.NewInventoryUseCase(store),
		Log:          log,
		Service:      cfg.App.Name,
		Store:        cfg.Backend.Store,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
