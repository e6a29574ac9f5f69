// Package ud provides persistence operations for UD organizational units.
package ud

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUDNotFound is returned when an id lookup misses.
	ErrUDNotFound = errors.New("ud not found")
	// ErrDuplicateNama is returned when the unique nama is already taken.
	ErrDuplicateNama = errors.New("nama already exists")
)

// List returns a page of UDs matching the optional search term, newest
// first, together with the total count.
func List(db *gorm.DB, search string, page, limit int) ([]models.UD, int64, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	tx := db.Model(&models.UD{})

	if search != "" {
		tx = tx.Where("LOWER(nama) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err //nolint:wrapcheck
	}

	var uds []models.UD

	offset := (page - 1) * limit
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&uds).Error; err != nil {
		return nil, 0, err //nolint:wrapcheck
	}

	return uds, total, nil
}

// Get retrieves a UD by id.
func Get(db *gorm.DB, id uint64) (*models.UD, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var unit models.UD
	if err := db.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUDNotFound
		}

		return nil, err //nolint:wrapcheck
	}

	return &unit, nil
}

// Create inserts a new UD.
func Create(db *gorm.DB, unit *models.UD) error {
	if db == nil {
		return ErrDBNil
	}

	unit.Nama = strings.TrimSpace(unit.Nama)
	unit.IsActive = true

	if err := db.Create(unit).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateNama
		}

		return err //nolint:wrapcheck
	}

	return nil
}

// UpdateInput carries the partial update fields for a UD.
type UpdateInput struct {
	Nama     *string
	Alamat   *string
	Telepon  *string
	IsActive *bool
}

// Update fetches the UD and applies the supplied fields.
func Update(db *gorm.DB, id uint64, in UpdateInput) (*models.UD, error) {
	unit, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if in.Nama != nil {
		if v := strings.TrimSpace(*in.Nama); v != "" {
			unit.Nama = v
		}
	}

	if in.Alamat != nil {
		unit.Alamat = *in.Alamat
	}

	if in.Telepon != nil {
		unit.Telepon = *in.Telepon
	}

	if in.IsActive != nil {
		unit.IsActive = *in.IsActive
	}

	if err := db.Save(unit).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateNama
		}

		return nil, err //nolint:wrapcheck
	}

	return unit, nil
}

// Delete removes a UD permanently. Users and transaksi referencing it fall
// back to a null relation.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.UD{}, id)
	if result.Error != nil {
		return result.Error //nolint:wrapcheck
	}

	if result.RowsAffected == 0 {
		return ErrUDNotFound
	}

	return nil
}
