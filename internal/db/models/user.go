package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// Role represents the access level of a user account.
type Role string

const (
	// RoleSuperuser is the highest privilege role. It is required to alter
	// global settings and is bootstrapped by the seeder.
	RoleSuperuser Role = "superuser"
	// RoleUDAdmin manages users and UD master data.
	RoleUDAdmin Role = "ud_admin"
	// RoleUDOperator is the default role for regular accounts.
	RoleUDOperator Role = "ud_operator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperuser, RoleUDAdmin, RoleUDOperator:
		return true
	}

	return false
}

// User represents a user account in the system.
// A user may be attached to a UD (organizational unit) via UDID.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Username is the unique username for login.
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	// Email is the unique email address for login.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	// Password is the Argon2id hashed password. Never serialized.
	Password string `gorm:"size:255;not null" json:"-"`
	// Role is the access level, defaults to ud_operator.
	Role Role `gorm:"type:varchar(20);not null;default:'ud_operator'" json:"role"`
	// UDID is the optional reference to the UD the user belongs to.
	UDID *uint64 `gorm:"column:ud_id" json:"ud_id"`
	// UD is the associated organizational unit.
	UD *UD `gorm:"foreignKey:UDID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE" json:"ud,omitempty"`
	// IsActive indicates whether the account can log in.
	IsActive bool `gorm:"not null;default:true" json:"isActive"`
	// MustChangePassword is set when the account was created with a
	// generated password, forcing a rotation on first login.
	MustChangePassword bool      `gorm:"not null;default:false" json:"mustChangePassword"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating user passwords.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored
// hashed password. Returns true if the password matches.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
