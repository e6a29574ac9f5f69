package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.UD{}, &models.User{}))

	return db
}

func newProtectedApp(t *testing.T) (*fiber.App, *gorm.DB, *Service) {
	t.Helper()

	db := setupTestDB(t)
	s := newTestService(t)

	app := fiber.New()
	app.Get("/protected", s.RequireAuth(db), func(c *fiber.Ctx) error {
		identity, _ := IdentityFrom(c)
		return c.JSON(identity)
	})
	app.Get("/admin", s.RequireAuth(db), RequireRoles(models.RoleSuperuser, models.RoleUDAdmin),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

	return app, db, s
}

func createActiveUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	u := models.User{
		Username: "budi",
		Email:    "budi@example.com",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)

	return &u
}

func doRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestRequireAuthMissingToken(t *testing.T) {
	app, _, _ := newProtectedApp(t)

	resp := doRequest(t, app, "/protected", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	app, _, _ := newProtectedApp(t)

	resp := doRequest(t, app, "/protected", "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthDeletedUser(t *testing.T) {
	app, _, s := newProtectedApp(t)

	// valid token for a user that is not in the database
	token, err := s.IssueToken(&models.User{ID: 999, Username: "ghost"})
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthInactiveUser(t *testing.T) {
	app, db, s := newProtectedApp(t)

	u := createActiveUser(t, db, models.RoleUDOperator)
	require.NoError(t, db.Model(u).Update("is_active", false).Error)

	token, err := s.IssueToken(u)
	require.NoError(t, err)

	resp := doRequest(t, app, "/protected", token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAuthStoredRoleWins(t *testing.T) {
	app, db, s := newProtectedApp(t)

	u := createActiveUser(t, db, models.RoleUDOperator)

	token, err := s.IssueToken(u)
	require.NoError(t, err)

	// role changed after the token was issued
	require.NoError(t, db.Model(u).Update("role", models.RoleUDAdmin).Error)

	resp := doRequest(t, app, "/protected", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var identity Identity
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&identity))
	assert.Equal(t, models.RoleUDAdmin, identity.Role)
}

func TestRequireRoles(t *testing.T) {
	app, db, s := newProtectedApp(t)

	operator := createActiveUser(t, db, models.RoleUDOperator)
	opToken, err := s.IssueToken(operator)
	require.NoError(t, err)

	admin := models.User{
		Username: "siti",
		Email:    "siti@example.com",
		Password: "x",
		Role:     models.RoleUDAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)

	adminToken, err := s.IssueToken(&admin)
	require.NoError(t, err)

	resp := doRequest(t, app, "/admin", opToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "/admin", adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestExtractBearerToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		token, err := extractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString(err.Error())
		}

		return c.SendString(token)
	})

	testCases := []struct {
		name     string
		header   string
		expected int
	}{
		{name: "no header", header: "", expected: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", expected: fiber.StatusUnauthorized},
		{name: "empty token", header: "Bearer   ", expected: fiber.StatusUnauthorized},
		{name: "valid", header: "Bearer sometoken", expected: fiber.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, resp.StatusCode)
		})
	}
}
