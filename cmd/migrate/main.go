package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jhoicas/portal-asistencia/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/seed"
	"github.com/jhoicas/portal-asistencia/pkg/config"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

func main() {
	seedPath := flag.String("seed", "", "YAML de datos semilla para la acción seed (vacío = dataset embebido)")
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if action == "seed" {
		err = runSeed(context.Background(), cfg.DB, *seedPath)
	} else {
		err = runMigration(action, migrateURL(cfg.DB.ConnectionString()), log)
	}
	if err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("migración fallida")
	}
	log.Info().Str("action", action).Msg("migración completada")
}

// migrateURL adapta el DSN postgres:// al esquema del driver pgx/v5 de golang-migrate.
func migrateURL(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

func runMigration(action, dbURL string, log *logger.Logger) error {
	src, err := iofs.New(postgres.Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("abrir migraciones embebidas: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return fmt.Errorf("crear instancia de migrate: %w", err)
	}
	defer m.Close()

	switch action {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
		return nil
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info().Msg("sin migraciones aplicadas")
				return nil
			}
			return err
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión actual")
		return nil
	default:
		return fmt.Errorf("acción no soportada %q (up, down, drop, version, seed)", action)
	}
}

// runSeed carga el dataset semilla en PostgreSQL en una sola transacción.
func runSeed(ctx context.Context, db config.DBConfig, path string) error {
	data, err := seed.Load(path)
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, db)
	if err != nil {
		return err
	}
	defer pool.Close()
	return postgres.NewStore(pool).Import(ctx, data)
}
