// Package activitylog provides persistence operations for the audit trail.
package activitylog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Record appends an activity log entry.
func Record(db *gorm.DB, entry *models.ActivityLog) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(entry).Error //nolint:wrapcheck
}

// ListFilter narrows the activity listing.
type ListFilter struct {
	EntityType string
	UserID     *uint64
}

// List returns a page of activity entries, newest first, together with the
// total count.
func List(db *gorm.DB, filter ListFilter, page, limit int) ([]models.ActivityLog, int64, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	tx := db.Model(&models.ActivityLog{})

	if filter.EntityType != "" {
		tx = tx.Where("entity_type = ?", filter.EntityType)
	}

	if filter.UserID != nil {
		tx = tx.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err //nolint:wrapcheck
	}

	var entries []models.ActivityLog

	offset := (page - 1) * limit
	if err := tx.Order("id DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return nil, 0, err //nolint:wrapcheck
	}

	return entries, total, nil
}
