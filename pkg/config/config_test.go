package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-asistencia/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoreMemory, cfg.Backend.Store)
	assert.Equal(t, config.GatewayMock, cfg.Portal.Gateway)
	assert.Equal(t, 10*time.Second, cfg.Portal.Timeout)
	assert.Equal(t, 5, cfg.Portal.LowStockThreshold)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("PORTAL_GATEWAY", "HTTP")
	t.Setenv("PORTAL_API_URL", "http://api.interna:9000")
	t.Setenv("PORTAL_TIMEOUT", "3s")
	t.Setenv("PORTAL_MOCK_LATENCY", "150ms")
	t.Setenv("PORTAL_TIMEZONE", "America/Bogota")
	t.Setenv("BACKEND_STORE", "postgres")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.GatewayHTTP, cfg.Portal.Gateway)
	assert.Equal(t, "http://api.interna:9000", cfg.Portal.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.Portal.Timeout)
	assert.Equal(t, 150*time.Millisecond, cfg.Portal.MockLatency)
	assert.Equal(t, config.StorePostgres, cfg.Backend.Store)
	assert.Equal(t, 9090, cfg.HTTP.Port)

	loc, err := cfg.Portal.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Bogota", loc.String())
}

func TestLoad_GatewayInvalido(t *testing.T) {
	t.Setenv("PORTAL_GATEWAY", "ftp")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_StoreInvalido(t *testing.T) {
	t.Setenv("BACKEND_STORE", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ZonaHorariaInvalida(t *testing.T) {
	t.Setenv("PORTAL_TIMEZONE", "Marte/Olympus")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "portal", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/portal?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
