// Package setting provides persistence operations for the global settings row.
package setting

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// ensure inserts the singleton row if it is missing. The insert is keyed on
// the fixed well known ID with ON CONFLICT DO NOTHING, so two concurrent
// first reads can not create two rows.
func ensure(db *gorm.DB) error {
	row := models.Setting{
		ID:                    models.SettingSingletonID,
		IsRegistrationAllowed: true,
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error //nolint:wrapcheck
}

// Get retrieves the settings row, creating it with defaults if absent.
func Get(db *gorm.DB) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := ensure(db); err != nil {
		return nil, err
	}

	var setting models.Setting
	if err := db.First(&setting, models.SettingSingletonID).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &setting, nil
}

// SetRegistrationAllowed updates the single settings field and returns the
// updated row. The row is created first if absent.
func SetRegistrationAllowed(db *gorm.DB, allowed bool) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if err := ensure(db); err != nil {
		return nil, err
	}

	result := db.Model(&models.Setting{}).
		Where("id = ?", models.SettingSingletonID).
		Update("is_registration_allowed", allowed)
	if result.Error != nil {
		return nil, result.Error //nolint:wrapcheck
	}

	var setting models.Setting
	if err := db.First(&setting, models.SettingSingletonID).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &setting, nil
}
