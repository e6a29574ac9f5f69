// Package user provides the handlers for user account management (CRUD).
package user

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/auth"
	"github.com/udrembiga/manajemen-ud/internal/config"
	userctl "github.com/udrembiga/manajemen-ud/internal/db/controller/user"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
	"github.com/udrembiga/manajemen-ud/internal/web/handler"
)

// Path is the base path for user management.
const Path = handler.APIBasePath + "/user"

// Service provides CRUD operations for users.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. The whole group requires authentication; mutations
// additionally require a management role.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	manage := auth.RequireRoles(models.RoleSuperuser, models.RoleUDAdmin)

	group := app.Group(Path, authService.RequireAuth(db))
	group.Get("/", s.List)
	group.Get("/:id", s.Get)
	group.Post("/", manage, s.Create)
	group.Put("/:id", manage, s.Update)
	group.Delete("/:id", manage, s.Delete)
}

// List returns a page of users. Filters: search (username OR email,
// case-insensitive), role (exact), isActive ("true"/"false").
func (s *Service) List(c *fiber.Ctx) error {
	page, limit := handler.Paginate(c)

	filter := userctl.ListFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}

	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		filter.IsActive = &active
	}

	users, total, err := userctl.List(s.db, filter, page, limit)
	if err != nil {
		return handler.FailErr(c, "Failed to fetch user list", err)
	}

	return handler.List(c, users, handler.NewPagination(total, page, limit))
}

// Get returns a single user by id with the UD relation loaded.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid user id")
	}

	u, err := userctl.Get(s.db, id)
	if err != nil {
		if errors.Is(err, userctl.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "User not found")
		}

		return handler.FailErr(c, "Failed to fetch user", err)
	}

	return handler.OK(c, u)
}

type createInput struct {
	Username string  `json:"username" validate:"required,max=100"`
	Email    string  `json:"email"    validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required"`
	Role     string  `json:"role"`
	UDID     *uint64 `json:"ud_id"`
}

// Create inserts a new user. Role defaults to ud_operator.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createInput
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return handler.Fail(c, fiber.StatusBadRequest, "Username, email, and password are required")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid input")
	}

	u, err := userctl.Create(s.db, userctl.CreateInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     models.Role(in.Role),
		UDID:     in.UDID,
	})
	if err != nil {
		var dup *userctl.DuplicateError
		if errors.As(err, &dup) {
			return handler.Fail(c, fiber.StatusBadRequest, dup.Error())
		}

		if errors.Is(err, userctl.ErrInvalidRole) {
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid role")
		}

		return handler.FailErr(c, "Failed to create user", err)
	}

	return handler.Created(c, "User created successfully", u)
}

type updateInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	// UDID distinguishes absent (keep), null or "" (clear) and a value (set).
	UDID     json.RawMessage `json:"ud_id"`
	IsActive *bool           `json:"isActive"`
}

// Update applies a partial update to a user.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var in updateInput
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	upd := userctl.UpdateInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		IsActive: in.IsActive,
	}

	if in.Role != nil {
		role := models.Role(*in.Role)
		upd.Role = &role
	}

	udID, clear, ok := parseUDID(in.UDID)
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid ud_id")
	}

	upd.UDID = udID
	upd.ClearUD = clear

	u, err := userctl.Update(s.db, id, upd)
	if err != nil {
		var dup *userctl.DuplicateError

		switch {
		case errors.Is(err, userctl.ErrUserNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "User not found")
		case errors.As(err, &dup):
			return handler.Fail(c, fiber.StatusBadRequest, dup.Error())
		case errors.Is(err, userctl.ErrInvalidRole):
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid role")
		}

		return handler.FailErr(c, "Failed to update user", err)
	}

	return handler.OKMessage(c, "User updated successfully", u)
}

// Delete removes a user permanently.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid user id")
	}

	if err := userctl.Delete(s.db, id); err != nil {
		if errors.Is(err, userctl.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "User not found")
		}

		return handler.FailErr(c, "Failed to delete user", err)
	}

	return handler.OKMessage(c, "User deleted successfully", nil)
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

// parseUDID resolves the ud_id tri-state: absent keeps the relation, null or
// an empty string clears it, a number (or numeric string) sets it.
func parseUDID(raw json.RawMessage) (id *uint64, clear, ok bool) {
	if len(raw) == 0 {
		return nil, false, true
	}

	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		return nil, true, true
	}

	var n uint64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return &n, false, true
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return &n, false, true
		}
	}

	return nil, false, false
}
