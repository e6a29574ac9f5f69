// Package setting provides the handlers for the global settings endpoint.
package setting

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/auth"
	"github.com/udrembiga/manajemen-ud/internal/config"
	settingctl "github.com/udrembiga/manajemen-ud/internal/db/controller/setting"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
	"github.com/udrembiga/manajemen-ud/internal/web/handler"
)

// Path is the base path for the settings endpoint.
const Path = handler.APIBasePath + "/setting"

// Service provides the settings endpoints.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. Reading is public, writing requires a superuser.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)
	app.Patch(Path,
		authService.RequireAuth(db),
		auth.RequireRoles(models.RoleSuperuser),
		s.Update,
	)
}

// Get returns the settings record, creating it with defaults on first read.
func (s *Service) Get(c *fiber.Ctx) error {
	setting, err := settingctl.Get(s.db)
	if err != nil {
		return handler.FailErr(c, "Failed to fetch settings", err)
	}

	return handler.OK(c, setting)
}

// Update changes the registration flag. The body may be a raw JSON boolean
// or an object carrying isRegistrationAllowed.
func (s *Service) Update(c *fiber.Ctx) error {
	value, ok := parseRegistrationAllowed(c.Body())
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, "isRegistrationAllowed value is required")
	}

	setting, err := settingctl.SetRegistrationAllowed(s.db, value)
	if err != nil {
		return handler.FailErr(c, "Failed to update settings", err)
	}

	return handler.OKMessage(c, "Settings updated successfully", setting)
}

// parseRegistrationAllowed accepts either `true` or `{"isRegistrationAllowed": true}`.
func parseRegistrationAllowed(body []byte) (bool, bool) {
	var raw bool
	if err := json.Unmarshal(body, &raw); err == nil {
		return raw, true
	}

	var wrapped struct {
		IsRegistrationAllowed *bool `json:"isRegistrationAllowed"`
	}

	if err := json.Unmarshal(body, &wrapped); err != nil || wrapped.IsRegistrationAllowed == nil {
		return false, false
	}

	return *wrapped.IsRegistrationAllowed, true
}
