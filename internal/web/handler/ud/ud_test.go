package ud

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/auth"
	"github.com/udrembiga/manajemen-ud/internal/config"
	udctl "github.com/udrembiga/manajemen-ud/internal/db/controller/ud"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
	"github.com/udrembiga/manajemen-ud/internal/web/handler"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *auth.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.UD{}, &models.User{}))

	cfg := &config.Config{
		Auth: config.Auth{JWTSecret: "test-secret", TokenExpiryMinutes: 60},
	}

	authService := auth.NewService(cfg)

	app := fiber.New()

	var svc Service
	svc.Init(app, cfg, db, authService)

	return app, db, authService
}

func issueToken(t *testing.T, db *gorm.DB, authService *auth.Service, role models.Role) string {
	t.Helper()

	u := models.User{
		Username: "caller-" + string(role),
		Email:    "caller-" + string(role) + "@example.com",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)

	token, err := authService.IssueToken(&u)
	require.NoError(t, err)

	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) handler.Envelope {
	t.Helper()

	var env handler.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	return env
}

func TestCreateRequiresManagementRole(t *testing.T) {
	app, db, authService := newTestApp(t)
	token := issueToken(t, db, authService, models.RoleUDOperator)

	resp := doJSON(t, app, fiber.MethodPost, Path, token, `{"nama":"UD Maju Jaya"}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCreate(t *testing.T) {
	app, db, authService := newTestApp(t)
	token := issueToken(t, db, authService, models.RoleUDAdmin)

	body := `{"nama":"UD Maju Jaya","alamat":"Jl. Merdeka 1","telepon":"0812345678"}`
	resp := doJSON(t, app, fiber.MethodPost, Path, token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, "UD created successfully", env.Message)

	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "UD Maju Jaya", data["nama"])
	assert.Equal(t, true, data["isActive"])
}

func TestCreateMissingNama(t *testing.T) {
	app, db, authService := newTestApp(t)
	token := issueToken(t, db, authService, models.RoleUDAdmin)

	resp := doJSON(t, app, fiber.MethodPost, Path, token, `{"alamat":"Jl. Merdeka 1"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "Nama is required", env.Message)
}

func TestCreateDuplicate(t *testing.T) {
	app, db, authService := newTestApp(t)
	token := issueToken(t, db, authService, models.RoleUDAdmin)

	resp := doJSON(t, app, fiber.MethodPost, Path, token, `{"nama":"UD Maju Jaya"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, Path, token, `{"nama":"UD Maju Jaya"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "Nama already exists", env.Message)
}

func TestUpdate(t *testing.T) {
	app, db, authService := newTestApp(t)
	token := issueToken(t, db, authService, models.RoleUDAdmin)

	unit := models.UD{Nama: "UD Maju Jaya"}
	require.NoError(t, udctl.Create(db, &unit))

	body := `{"alamat":"Jl. Baru 2","isActive":false}`
	resp := doJSON(t, app, fiber.MethodPut, fmt.Sprintf("%s/%d", Path, unit.ID), token, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "UD updated successfully", env.Message)

	fetched, err := udctl.Get(db, unit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jl. Baru 2", fetched.Alamat)
	assert.False(t, fetched.IsActive)
}

func TestDeleteNotFound(t *testing.T) {
	app, db, authService := newTestApp(t)
	token := issueToken(t, db, authService, models.RoleSuperuser)

	resp := doJSON(t, app, fiber.MethodDelete, Path+"/9999", token, "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "UD not found", env.Message)
}

func TestListSearch(t *testing.T) {
	app, db, authService := newTestApp(t)
	token := issueToken(t, db, authService, models.RoleUDOperator)

	require.NoError(t, udctl.Create(db, &models.UD{Nama: "UD Maju Jaya"}))
	require.NoError(t, udctl.Create(db, &models.UD{Nama: "UD Sumber Rejeki"}))

	resp := doJSON(t, app, fiber.MethodGet, Path+"/?search=sumber", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(1), env.Pagination.TotalDocs)
}
