// Package user provides persistence operations for user accounts.
package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/udrembiga/manajemen-ud/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrUserNotFound is returned when an id lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole is returned when a role outside the known set is supplied.
	ErrInvalidRole = errors.New("invalid role")
)

// DuplicateError reports a unique constraint violation naming the field.
type DuplicateError struct {
	Field string // username or email
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return e.Label() + " already exists"
}

// Label returns the capitalized field name for user facing messages.
func (e *DuplicateError) Label() string {
	if e.Field == "" {
		return "Field"
	}

	return strings.ToUpper(e.Field[:1]) + e.Field[1:]
}

// ListFilter narrows the user listing.
type ListFilter struct {
	Search   string // case-insensitive substring over username OR email
	Role     string // exact match
	IsActive *bool
}

// List returns a page of users matching the filter, newest first, together
// with the total count of matching rows.
func List(db *gorm.DB, filter ListFilter, page, limit int) ([]models.User, int64, error) {
	if db == nil {
		return nil, 0, ErrDBNil
	}

	tx := db.Model(&models.User{})

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	if filter.Role != "" {
		tx = tx.Where("role = ?", filter.Role)
	}

	if filter.IsActive != nil {
		tx = tx.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err //nolint:wrapcheck
	}

	var users []models.User

	offset := (page - 1) * limit
	err := tx.Preload("UD").Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err //nolint:wrapcheck
	}

	return users, total, nil
}

// Get retrieves a user by id with the UD relation loaded.
func Get(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	if err := db.Preload("UD").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err //nolint:wrapcheck
	}

	return &user, nil
}

// CreateInput carries the fields for a new user account.
type CreateInput struct {
	Username string
	Email    string
	Password string // plaintext, hashed here
	Role     models.Role
	UDID     *uint64
}

// Create inserts a new user. The role defaults to ud_operator when empty.
// Uniqueness of username and email is enforced solely by the storage level
// constraint; a violation is resolved to a DuplicateError naming the field.
func Create(db *gorm.DB, in CreateInput) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if in.Role == "" {
		in.Role = models.RoleUDOperator
	}

	if !in.Role.Valid() {
		return nil, ErrInvalidRole
	}

	user := models.User{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Password: models.HashPassword(in.Password),
		Role:     in.Role,
		UDID:     in.UDID,
		IsActive: true,
	}

	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, resolveDuplicate(db, user.Username, user.Email, 0)
		}

		return nil, err //nolint:wrapcheck
	}

	return &user, nil
}

// UpdateInput carries the partial update fields for a user.
// Nil pointers mean "leave unchanged". Username, email and password are only
// applied when non-blank after trimming. ClearUD removes the UD relation and
// wins over UDID.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string // plaintext, hashed here
	Role     *models.Role
	UDID     *uint64
	ClearUD  bool
	IsActive *bool
}

// Update fetches the user and applies the supplied fields.
func Update(db *gorm.DB, id uint64, in UpdateInput) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	user, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if v := strings.TrimSpace(*in.Username); v != "" {
			user.Username = v
		}
	}

	if in.Email != nil {
		if v := strings.TrimSpace(*in.Email); v != "" {
			user.Email = v
		}
	}

	// never reset a password to empty
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		user.Password = models.HashPassword(*in.Password)
	}

	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, ErrInvalidRole
		}

		user.Role = *in.Role
	}

	switch {
	case in.ClearUD:
		user.UDID = nil
		user.UD = nil
	case in.UDID != nil:
		user.UDID = in.UDID
		user.UD = nil
	}

	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := db.Omit("UD").Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, resolveDuplicate(db, user.Username, user.Email, user.ID)
		}

		return nil, err //nolint:wrapcheck
	}

	return user, nil
}

// Delete removes a user permanently.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error //nolint:wrapcheck
	}

	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// FindByEmail retrieves a user by exact email.
func FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err //nolint:wrapcheck
	}

	return &user, nil
}

// FindByLogin retrieves a user by username or email.
func FindByLogin(db *gorm.DB, login string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	if err := db.Where("username = ? OR email = ?", login, login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err //nolint:wrapcheck
	}

	return &user, nil
}

// resolveDuplicate figures out which unique field collided after the storage
// layer rejected a write.
func resolveDuplicate(db *gorm.DB, username, email string, excludeID uint64) *DuplicateError {
	var count int64

	db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count)
	if count > 0 {
		return &DuplicateError{Field: "username"}
	}

	db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count)
	if count > 0 {
		return &DuplicateError{Field: "email"}
	}

	return &DuplicateError{Field: "username"}
}
