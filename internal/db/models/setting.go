// Package models contains database model definitions.
package models

import (
	"time"
)

// SettingSingletonID is the fixed primary key of the single settings row.
// Keying the row on a well known identifier makes the lazy creation an
// atomic upsert instead of a racy check-then-create.
const SettingSingletonID uint64 = 1

// Setting represents the global application settings. Exactly one row exists.
type Setting struct {
	ID uint64 `gorm:"primaryKey" json:"id"`
	// IsRegistrationAllowed controls whether self registration is open.
	IsRegistrationAllowed bool      `gorm:"not null;default:true" json:"isRegistrationAllowed"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}
