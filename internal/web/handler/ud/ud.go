// Package ud provides the handlers for UD organizational unit management.
package ud

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/auth"
	"github.com/udrembiga/manajemen-ud/internal/config"
	udctl "github.com/udrembiga/manajemen-ud/internal/db/controller/ud"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
	"github.com/udrembiga/manajemen-ud/internal/web/handler"
)

// Path is the base path for UD management.
const Path = handler.APIBasePath + "/ud"

// Service provides CRUD operations for UDs.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
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
	s.validator = validator.New()

	manage := auth.RequireRoles(models.RoleSuperuser, models.RoleUDAdmin)

	group := app.Group(Path, authService.RequireAuth(db))
	group.Get("/", s.List)
	group.Get("/:id", s.Get)
	group.Post("/", manage, s.Create)
	group.Put("/:id", manage, s.Update)
	group.Delete("/:id", manage, s.Delete)
}

// List returns a page of UDs, optionally filtered by a search term over nama.
func (s *Service) List(c *fiber.Ctx) error {
	page, limit := handler.Paginate(c)

	uds, total, err := udctl.List(s.db, c.Query("search"), page, limit)
	if err != nil {
		return handler.FailErr(c, "Failed to fetch UD list", err)
	}

	return handler.List(c, uds, handler.NewPagination(total, page, limit))
}

// Get returns a single UD by id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid UD id")
	}

	unit, err := udctl.Get(s.db, id)
	if err != nil {
		if errors.Is(err, udctl.ErrUDNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "UD not found")
		}

		return handler.FailErr(c, "Failed to fetch UD", err)
	}

	return handler.OK(c, unit)
}

type createInput struct {
	Nama    string `json:"nama"    validate:"required,max=150"`
	Alamat  string `json:"alamat"  validate:"max=255"`
	Telepon string `json:"telepon" validate:"max=30"`
}

// Create inserts a new UD.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createInput
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Nama is required")
	}

	unit := models.UD{
		Nama:    in.Nama,
		Alamat:  in.Alamat,
		Telepon: in.Telepon,
	}

	if err := udctl.Create(s.db, &unit); err != nil {
		if errors.Is(err, udctl.ErrDuplicateNama) {
			return handler.Fail(c, fiber.StatusBadRequest, "Nama already exists")
		}

		return handler.FailErr(c, "Failed to create UD", err)
	}

	return handler.Created(c, "UD created successfully", unit)
}

type updateInput struct {
	Nama     *string `json:"nama"`
	Alamat   *string `json:"alamat"`
	Telepon  *string `json:"telepon"`
	IsActive *bool   `json:"isActive"`
}

// Update applies a partial update to a UD.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid UD id")
	}

	var in updateInput
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	unit, err := udctl.Update(s.db, id, udctl.UpdateInput{
		Nama:     in.Nama,
		Alamat:   in.Alamat,
		Telepon:  in.Telepon,
		IsActive: in.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, udctl.ErrUDNotFound):
			return handler.Fail(c, fiber.StatusNotFound, "UD not found")
		case errors.Is(err, udctl.ErrDuplicateNama):
			return handler.Fail(c, fiber.StatusBadRequest, "Nama already exists")
		}

		return handler.FailErr(c, "Failed to update UD", err)
	}

	return handler.OKMessage(c, "UD updated successfully", unit)
}

// Delete removes a UD permanently.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid UD id")
	}

	if err := udctl.Delete(s.db, id); err != nil {
		if errors.Is(err, udctl.ErrUDNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "UD not found")
		}

		return handler.FailErr(c, "Failed to delete UD", err)
	}

	return handler.OKMessage(c, "UD deleted successfully", nil)
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}
