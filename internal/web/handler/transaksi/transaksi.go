// Package transaksi provides the handlers for transaksi CRUD and lifecycle
// transitions. Every mutation is wrapped by the activity logger.
package transaksi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/auth"
	"github.com/udrembiga/manajemen-ud/internal/config"
	transaksictl "github.com/udrembiga/manajemen-ud/internal/db/controller/transaksi"
	"github.com/udrembiga/manajemen-ud/internal/db/models"
	"github.com/udrembiga/manajemen-ud/internal/web/handler"
	"github.com/udrembiga/manajemen-ud/internal/web/middleware/activity"
)

// Path is the base path for transaksi management.
const Path = handler.APIBasePath + "/transaksi"

// EntityType is the activity log entity name for transaksi.
const EntityType = "TRANSAKSI"

// Service provides CRUD and lifecycle operations for transaksi.
type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. All routes require authentication; mutations are
// recorded by the activity middleware.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()

	group := app.Group(Path, authService.RequireAuth(db))

	group.Get("/", s.List)
	group.Get("/:id", s.Get)
	group.Post("/", activity.Log(db, models.ActionCreate, EntityType), s.Create)
	group.Put("/:id", activity.Log(db, models.ActionUpdate, EntityType), s.Update)
	group.Post("/:id/complete", activity.Log(db, models.ActionUpdate, EntityType), s.Complete)
	group.Post("/:id/uncomplete", activity.Log(db, models.ActionUpdate, EntityType), s.Uncomplete)
	group.Delete("/:id", activity.Log(db, models.ActionDelete, EntityType), s.Cancel)
	group.Post("/:id/uncancel", activity.Log(db, models.ActionUpdate, EntityType), s.Uncancel)
	group.Delete("/:id/hard", activity.Log(db, models.ActionDelete, EntityType), s.HardDelete)
}

// List returns a page of transaksi. Filters: search (kode OR keterangan),
// status, ud_id.
func (s *Service) List(c *fiber.Ctx) error {
	page, limit := handler.Paginate(c)

	filter := transaksictl.ListFilter{
		Search: c.Query("search"),
		Status: models.TransaksiStatus(c.Query("status")),
	}

	if v := c.Query("ud_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid ud_id filter")
		}

		filter.UDID = &id
	}

	rows, total, err := transaksictl.List(s.db, filter, page, limit)
	if err != nil {
		return handler.FailErr(c, "Failed to fetch transaksi list", err)
	}

	return handler.List(c, rows, handler.NewPagination(total, page, limit))
}

// Get returns a single transaksi with its UD, creator and items.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid transaksi id")
	}

	row, err := transaksictl.Get(s.db, id)
	if err != nil {
		if errors.Is(err, transaksictl.ErrTransaksiNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Transaksi not found")
		}

		return handler.FailErr(c, "Failed to fetch transaksi", err)
	}

	return handler.OK(c, row)
}

type itemInput struct {
	NamaBarang  string `json:"namaBarang"  validate:"required,max=150"`
	Jumlah      int    `json:"jumlah"      validate:"required,gt=0"`
	HargaSatuan int64  `json:"hargaSatuan" validate:"gte=0"`
}

type createInput struct {
	UDID       *uint64     `json:"ud_id"`
	Tanggal    string      `json:"tanggal"`
	Keterangan string      `json:"keterangan" validate:"max=500"`
	Items      []itemInput `json:"items"      validate:"required,min=1,dive"`
}

// Create records a new active transaksi for the authenticated user.
func (s *Service) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return handler.Fail(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var in createInput
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Transaksi requires at least one valid item")
	}

	tanggal, err := parseTanggal(in.Tanggal)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid tanggal")
	}

	row, err := transaksictl.Create(s.db, transaksictl.CreateInput{
		UDID:        in.UDID,
		CreatedByID: identity.UserID,
		Tanggal:     tanggal,
		Keterangan:  in.Keterangan,
		Items:       toItemInputs(in.Items),
	})
	if err != nil {
		if errors.Is(err, transaksictl.ErrNoItems) {
			return handler.Fail(c, fiber.StatusBadRequest, "Transaksi requires at least one item")
		}

		return handler.FailErr(c, "Failed to create transaksi", err)
	}

	return handler.Created(c, "Transaksi created successfully", row)
}

type updateInput struct {
	// UDID distinguishes absent (keep), null or "" (clear) and a value (set).
	UDID       json.RawMessage `json:"ud_id"`
	Tanggal    *string         `json:"tanggal"`
	Keterangan *string         `json:"keterangan"`
	Items      []itemInput     `json:"items"`
}

// Update mutates an active transaksi.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid transaksi id")
	}

	var in updateInput
	if err := c.BodyParser(&in); err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	upd := transaksictl.UpdateInput{
		Keterangan: in.Keterangan,
	}

	if in.Tanggal != nil {
		tanggal, err := parseTanggal(*in.Tanggal)
		if err != nil {
			return handler.Fail(c, fiber.StatusBadRequest, "Invalid tanggal")
		}

		upd.Tanggal = &tanggal
	}

	udID, clear, ok := parseUDID(in.UDID)
	if !ok {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid ud_id")
	}

	upd.UDID = udID
	upd.ClearUD = clear

	if in.Items != nil {
		upd.Items = toItemInputs(in.Items)
	}

	row, err := transaksictl.Update(s.db, id, upd)
	if err != nil {
		return s.failTransition(c, err, "Failed to update transaksi")
	}

	return handler.OKMessage(c, "Transaksi updated successfully", row)
}

// Complete marks an active transaksi as completed.
func (s *Service) Complete(c *fiber.Ctx) error {
	return s.transition(c, transaksictl.Complete, "Transaksi completed successfully", "Failed to complete transaksi")
}

// Uncomplete reverts a completed transaksi to active.
func (s *Service) Uncomplete(c *fiber.Ctx) error {
	return s.transition(c, transaksictl.Uncomplete, "Transaksi reverted to active", "Failed to uncomplete transaksi")
}

// Cancel soft-deletes an active transaksi.
func (s *Service) Cancel(c *fiber.Ctx) error {
	return s.transition(c, transaksictl.Cancel, "Transaksi cancelled successfully", "Failed to cancel transaksi")
}

// Uncancel reverts a cancelled transaksi to active.
func (s *Service) Uncancel(c *fiber.Ctx) error {
	return s.transition(c, transaksictl.Uncancel, "Transaksi restored successfully", "Failed to uncancel transaksi")
}

// HardDelete removes a transaksi permanently, from any state.
func (s *Service) HardDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid transaksi id")
	}

	if err := transaksictl.HardDelete(s.db, id); err != nil {
		if errors.Is(err, transaksictl.ErrTransaksiNotFound) {
			return handler.Fail(c, fiber.StatusNotFound, "Transaksi not found")
		}

		return handler.FailErr(c, "Failed to delete transaksi", err)
	}

	return handler.OKMessage(c, "Transaksi deleted successfully", nil)
}

// transition runs a lifecycle operation shared by complete/uncomplete/
// cancel/uncancel.
func (s *Service) transition(
	c *fiber.Ctx,
	op func(*gorm.DB, uint64) (*models.Transaksi, error),
	okMsg, failMsg string,
) error {
	id, err := parseID(c)
	if err != nil {
		return handler.Fail(c, fiber.StatusBadRequest, "Invalid transaksi id")
	}

	row, err := op(s.db, id)
	if err != nil {
		return s.failTransition(c, err, failMsg)
	}

	return handler.OKMessage(c, okMsg, row)
}

// failTransition maps controller errors to API failures.
func (s *Service) failTransition(c *fiber.Ctx, err error, failMsg string) error {
	switch {
	case errors.Is(err, transaksictl.ErrTransaksiNotFound):
		return handler.Fail(c, fiber.StatusNotFound, "Transaksi not found")
	case errors.Is(err, transaksictl.ErrNotActive):
		return handler.Fail(c, fiber.StatusBadRequest, "Transaksi is not active")
	case errors.Is(err, transaksictl.ErrNotCompleted):
		return handler.Fail(c, fiber.StatusBadRequest, "Transaksi is not completed")
	case errors.Is(err, transaksictl.ErrNotCancelled):
		return handler.Fail(c, fiber.StatusBadRequest, "Transaksi is not cancelled")
	case errors.Is(err, transaksictl.ErrNoItems):
		return handler.Fail(c, fiber.StatusBadRequest, "Transaksi requires at least one item")
	}

	return handler.FailErr(c, failMsg, err)
}

func toItemInputs(in []itemInput) []transaksictl.ItemInput {
	items := make([]transaksictl.ItemInput, 0, len(in))
	for _, it := range in {
		items = append(items, transaksictl.ItemInput{
			NamaBarang:  it.NamaBarang,
			Jumlah:      it.Jumlah,
			HargaSatuan: it.HargaSatuan,
		})
	}

	return items
}

func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

// parseTanggal accepts RFC3339 or a plain date. Empty means "now" on create
// and is rejected on update by the caller passing nil instead.
func parseTanggal(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", v)
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
