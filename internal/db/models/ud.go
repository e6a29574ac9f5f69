package models

import (
	"time"
)

// UD represents a Usaha Dagang, the organizational unit users and
// transaksi belong to.
type UD struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	Nama    string `gorm:"uniqueIndex;size:150;not null" json:"nama"`
	Alamat  string `gorm:"size:255" json:"alamat"`
	Telepon string `gorm:"size:30" json:"telepon"`
	// IsActive marks whether the unit is still operating.
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
