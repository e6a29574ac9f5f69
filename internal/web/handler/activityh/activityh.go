// Package activityh exposes the audit trail to superusers.
package activityh

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/auth"
	"github.com/udrembiga/manajemen-ud/internal/config"
	"github.com/udrembiga/manajemen-ud/internal/db/controller/activitylog"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
	"github.com/udrembiga/manajemen-ud/internal/web/handler"
)

// Path is the base path for the activity endpoint.
const Path = handler.APIBasePath + "/activity"

// Service lists activity log entries.
type Service struct {
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path,
		authService.RequireAuth(db),
		auth.RequireRoles(models.RoleSuperuser),
		s.List,
	)
}

// List returns a page of activity entries, newest first. Filters:
// entityType (exact), userId.
func (s *Service) List(c *fiber.Ctx) error {
	page, limit := handler.Paginate(c)

	filter := activitylog.ListFilter{
		EntityType: c.Query("entityType"),
	}

	if v := c.Query("userId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid userId filter")
		}

		filter.UserID = &id
	}

	entries, total, err := activitylog.List(s.db, filter, page, limit)
	if err != nil {
		return handler.FailErr(c, "Failed to fetch activity log", err)
	}

	return handler.List(c, entries, handler.NewPagination(total, page, limit))
}
