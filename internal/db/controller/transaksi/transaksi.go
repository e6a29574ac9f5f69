// Package transaksi provides persistence operations and lifecycle
// transitions for business transactions.
package transaksi

import (
	"errors"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrTransaksiNotFound is returned when an id lookup misses.
	ErrTransaksiNotFound = errors.New("transaksi not found")
	// ErrNoItems is returned when a transaksi is written without items.
	ErrNoItems = errors.New("transaksi requires at least one item")
	// ErrNotActive is returned for mutations that require the active state.
	ErrNotActive = errors.New("transaksi is not active")
	// ErrNotCompleted is returned when uncompleting a transaksi that is not completed.
	ErrNotCompleted = errors.New("transaksi is not completed")
	// ErrNotCancelled is returned when uncancelling a transaksi that is not cancelled.
	ErrNotCancelled = errors.New("transaksi is not cancelled")
)

// kodeChars is the alphabet for generated transaction codes.
var kodeChars = []byte("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

const kodeLen = 8

// newKode generates a transaction code like TRX-7GQ2M4KP.
func newKode() string {
	return "TRX-" + uniuri.NewLenChars(kodeLen, kodeChars)
}

// ListFilter narrows the transaksi listing.
type ListFilter struct {
	Search string // case-insensitive substring over kode OR keterangan
	Status models.TransaksiStatus
	UDID   *uint64
}

// List returns a page of transaksi matching the filter, newest business
// date first, together with the total count.
func List(db *gorm.DB, filter ListFilter, page, limit int) ([]models.Transaksi, int64, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	tx := db.Model(&models.Transaksi{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(kode) LIKE ? OR LOWER(keterangan) LIKE ?", like, like)
	}

	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}

	if filter.UDID != nil {
		tx = tx.Where("ud_id = ?", *filter.UDID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err //nolint:wrapcheck
	}

	var rows []models.Transaksi

	offset := (page - 1) * limit
	err := tx.Preload("UD").Order("tanggal DESC, id DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, 0, err //nolint:wrapcheck
	}

	return rows, total, nil
}

// Get retrieves a transaksi by id with all details loaded.
func Get(db *gorm.DB, id uint64) (*models.Transaksi, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var row models.Transaksi

	err := db.Preload("UD").Preload("CreatedBy").Preload("Items").First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransaksiNotFound
		}

		return nil, err //nolint:wrapcheck
	}

	return &row, nil
}

// ItemInput is a single transaksi line supplied by the caller.
type ItemInput struct {
	NamaBarang  string
	Jumlah      int
	HargaSatuan int64
}

// buildItems computes subtotals and the grand total.
func buildItems(in []ItemInput) ([]models.TransaksiItem, int64) {
	items := make([]models.TransaksiItem, 0, len(in))

	var total int64

	for _, it := range in {
		subtotal := int64(it.Jumlah) * it.HargaSatuan
		total += subtotal
		items = append(items, models.TransaksiItem{
			NamaBarang:  strings.TrimSpace(it.NamaBarang),
			Jumlah:      it.Jumlah,
			HargaSatuan: it.HargaSatuan,
			Subtotal:    subtotal,
		})
	}

	return items, total
}

// CreateInput carries the fields for a new transaksi.
type CreateInput struct {
	UDID        *uint64
	CreatedByID uint64
	Tanggal     time.Time
	Keterangan  string
	Items       []ItemInput
}

// Create inserts a new active transaksi with a generated kode and computed
// totals.
func Create(db *gorm.DB, in CreateInput) (*models.Transaksi, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}

	items, total := buildItems(in.Items)

	if in.Tanggal.IsZero() {
		in.Tanggal = time.Now()
	}

	row := models.Transaksi{
		Kode:        newKode(),
		UDID:        in.UDID,
		CreatedByID: in.CreatedByID,
		Tanggal:     in.Tanggal,
		Keterangan:  strings.TrimSpace(in.Keterangan),
		Total:       total,
		Status:      models.TransaksiActive,
		Items:       items,
	}

	if err := db.Create(&row).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &row, nil
}

// UpdateInput carries the partial update fields for an active transaksi.
// Nil means "leave unchanged". ClearUD removes the UD relation and wins
// over UDID. A non-nil Items slice replaces all lines and recomputes totals.
type UpdateInput struct {
	Tanggal    *time.Time
	Keterangan *string
	UDID       *uint64
	ClearUD    bool
	Items      []ItemInput
}

// Update mutates an active transaksi.
func Update(db *gorm.DB, id uint64, in UpdateInput) (*models.Transaksi, error) {
	row, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if row.Status != models.TransaksiActive {
		return nil, ErrNotActive
	}

	if in.Tanggal != nil && !in.Tanggal.IsZero() {
		row.Tanggal = *in.Tanggal
	}

	if in.Keterangan != nil {
		row.Keterangan = strings.TrimSpace(*in.Keterangan)
	}

	switch {
	case in.ClearUD:
		row.UDID = nil
		row.UD = nil
	case in.UDID != nil:
		row.UDID = in.UDID
		row.UD = nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if in.Items != nil {
			if len(in.Items) == 0 {
				return ErrNoItems
			}

			items, total := buildItems(in.Items)

			err := tx.Where("transaksi_id = ?", row.ID).Delete(&models.TransaksiItem{}).Error
			if err != nil {
				return err //nolint:wrapcheck
			}

			for i := range items {
				items[i].TransaksiID = row.ID
			}

			if err := tx.Create(&items).Error; err != nil {
				return err //nolint:wrapcheck
			}

			row.Items = items
			row.Total = total
		}

		return tx.Omit("UD", "CreatedBy", "Items").Save(row).Error //nolint:wrapcheck
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return row, nil
}

// Complete transitions an active transaksi to completed.
func Complete(db *gorm.DB, id uint64) (*models.Transaksi, error) {
	return transition(db, id, models.TransaksiActive, models.TransaksiCompleted, ErrNotActive)
}

// Uncomplete transitions a completed transaksi back to active.
func Uncomplete(db *gorm.DB, id uint64) (*models.Transaksi, error) {
	return transition(db, id, models.TransaksiCompleted, models.TransaksiActive, ErrNotCompleted)
}

// Cancel transitions an active transaksi to cancelled (soft delete).
func Cancel(db *gorm.DB, id uint64) (*models.Transaksi, error) {
	return transition(db, id, models.TransaksiActive, models.TransaksiCancelled, ErrNotActive)
}

// Uncancel transitions a cancelled transaksi back to active.
func Uncancel(db *gorm.DB, id uint64) (*models.Transaksi, error) {
	return transition(db, id, models.TransaksiCancelled, models.TransaksiActive, ErrNotCancelled)
}

// transition moves a transaksi between lifecycle states, stamping or
// clearing the relevant timestamps.
func transition(
	db *gorm.DB,
	id uint64,
	from, to models.TransaksiStatus,
	wrongStateErr error,
) (*models.Transaksi, error) {
	row, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if row.Status != from {
		return nil, wrongStateErr
	}

	now := time.Now()
	row.Status = to

	switch to {
	case models.TransaksiCompleted:
		row.CompletedAt = &now
	case models.TransaksiCancelled:
		row.CancelledAt = &now
	case models.TransaksiActive:
		row.CompletedAt = nil
		row.CancelledAt = nil
	}

	err = db.Model(&models.Transaksi{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
		"status":       row.Status,
		"completed_at": row.CompletedAt,
		"cancelled_at": row.CancelledAt,
	}).Error
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return row, nil
}

// HardDelete removes a transaksi and its items permanently, from any state.
func HardDelete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaksi_id = ?", id).Delete(&models.TransaksiItem{}).Error; err != nil {
			return err //nolint:wrapcheck
		}

		result := tx.Delete(&models.Transaksi{}, id)
		if result.Error != nil {
			return result.Error //nolint:wrapcheck
		}

		if result.RowsAffected == 0 {
			return ErrTransaksiNotFound
		}

		return nil
	})
}
