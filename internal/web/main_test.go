package web

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/config"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Setting{},
		&models.UD{},
		&models.User{},
		&models.Transaksi{},
		&models.TransaksiItem{},
		&models.ActivityLog{},
	)
	require.NoError(t, err)

	cfg := &config.Config{
		Title: "Manajemen UD API Test",
		Webserver: config.Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		Auth: config.Auth{JWTSecret: "test-secret", TokenExpiryMinutes: 60},
	}

	return New(cfg, db)
}

func TestCheckAlive(t *testing.T) {
	s := newTestService(t)

	// before Start the service reports not alive, this is the LB drain state
	resp, err := s.App.Test(httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	s.alive.Store(true)

	resp, err = s.App.Test(httptest.NewRequest(fiber.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMetricsExposed(t *testing.T) {
	s := newTestService(t)

	resp, err := s.App.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoutesRegistered(t *testing.T) {
	s := newTestService(t)

	// a public route served by an initialized handler
	resp, err := s.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/setting", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)

	// protected routes refuse anonymous callers
	resp, err = s.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/user", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = s.App.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/transaksi", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestNewPanicsOnNilArgs(t *testing.T) {
	assert.Panics(t, func() { New(nil, nil) })
	assert.Panics(t, func() { New(&config.Config{}, nil) })
}
