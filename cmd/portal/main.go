package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/portal-asistencia/internal/application/attendance"
	"github.com/jhoicas/portal-asistencia/internal/application/portal"
	"github.com/jhoicas/portal-asistencia/internal/application/session"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/httpgateway"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/memory"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/seed"
	"github.com/jhoicas/portal-asistencia/internal/interfaces/cli"
	"github.com/jhoicas/portal-asistencia/pkg/config"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		return 1
	}

	// stdout es del shell; los logs van a stderr.
	log := logger.New(logger.Config{
		Env:    cfg.App.Env,
		Level:  cfg.App.LogLevel,
		Output: os.Stderr,
	})

	loc, err := cfg.Portal.Location()
	if err != nil {
		log.Error().Err(err).Str("timezone", cfg.Portal.Timezone).Msg("zona horaria inválida")
		return 1
	}

	gateway, err := newGateway(cfg, loc, log)
	if err != nil {
		log.Error().Err(err).Str("gateway", cfg.Portal.Gateway).Msg("no se pudo crear el gateway")
		return 1
	}
	log.Info().Str("gateway", cfg.Portal.Gateway).Msg("portal iniciado")

	sess := session.New(gateway, log)
	engine := attendance.NewEngine(sess, attendance.NewStore(), gateway,
		attendance.WithLocation(loc),
		attendance.WithLogger(log),
	)
	shell := cli.New(cli.Deps{
		Session:   sess,
		Engine:    engine,
		Employees: portal.NewEmployeeService(sess, gateway, log),
		Inventory: portal.NewInventoryService(sess, gateway, log),
		Dashboard: portal.NewDashboard(sess, engine, gateway, gateway, cfg.Portal.LowStockThreshold),
		Log:       log,
	}, os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := shell.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("shell finalizado con error")
		return 1
	}
	return 0
}

func newGateway(cfg *config.Config, loc *time.Location, log *logger.Logger) (repository.Gateway, error) {
	switch cfg.Portal.Gateway {
	case config.GatewayHTTP:
		return httpgateway.New(cfg.Portal.APIBaseURL, cfg.Portal.Timeout, log), nil
	case config.GatewaySeed:
		return seed.NewGateway(cfg.Portal.SeedPath, memory.WithLocation(loc), memory.WithLogger(log))
	default:
		return memory.NewGateway(memory.DefaultDataset(),
			memory.WithLocation(loc),
			memory.WithLatency(cfg.Portal.MockLatency),
			memory.WithLogger(log),
		), nil
	}
}
