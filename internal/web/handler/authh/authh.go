// Package authh provides the login and self registration endpoints.
package authh

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/auth"
	"github.com/udrembiga/manajemen-ud/internal/config"
	settingctl "github.com/udrembiga/manajemen-ud/internal/db/controller/setting"
	userctl "github.com/udrembiga/manajemen-ud/internal/db/controller/user"
	"github.com/udrembiga/manajemen-ud/internal/web/handler"
)

// Path is the base path for the auth endpoints.
const Path = handler.APIBasePath + "/auth"

// Service provides login and registration.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	auth      *auth.Service
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Both endpoints are public.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.auth = authService
	s.validator = validator.New()

	app.Post(Path+"/login", s.Login)
	app.Post(Path+"/register", s.Register)
}

type loginInput struct {
	Login    string `json:"login"    validate:"required"` // username or email
	Password string `json:"password" validate:"required"`
}

type loginData struct {
	Token              string      `json:"token"`
	User               interface{} `json:"user"`
	MustChangePassword bool        `json:"mustChangePassword"`
}

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(c *fiber.Ctx) error {
	var in loginInput
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Login and password are required")
	}

	u, err := userctl.FindByLogin(s.db, in.Login)
	if err != nil {
		if errors.Is(err, userctl.ErrUserNotFound) {
			return handler.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
		}

		return handler.FailErr(c, "Failed to log in", err)
	}

	if !u.VerifyPassword(in.Password) {
		return handler.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if !u.IsActive {
		return handler.Fail(c, fiber.StatusForbidden, "Account is deactivated")
	}

	token, err := s.auth.IssueToken(u)
	if err != nil {
		return handler.FailErr(c, "Failed to log in", err)
	}

	return handler.OKMessage(c, "Login successful", loginData{
		Token:              token,
		User:               u,
		MustChangePassword: u.MustChangePassword,
	})
}

type registerInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register creates a new operator account when self registration is open.
func (s *Service) Register(c *fiber.Ctx) error {
	setting, err := settingctl.Get(s.db)
	if err != nil {
		return handler.FailErr(c, "Failed to register", err)
	}

	if !setting.IsRegistrationAllowed {
		return handler.Fail(c, fiber.StatusForbidden, "Registration is closed")
	}

	var in registerInput
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
	})
	if err != nil {
		var dup *userctl.DuplicateError
		if errors.As(err, &dup) {
			return handler.Fail(c, fiber.StatusBadRequest, dup.Error())
		}

		return handler.FailErr(c, "Failed to register", err)
	}

	return handler.Created(c, "Registration successful", u)
}
