package models

import (
	"time"
)

// TransaksiStatus is the lifecycle state of a transaksi.
type TransaksiStatus string

const (
	// TransaksiActive is the initial state of a transaksi.
	TransaksiActive TransaksiStatus = "active"
	// TransaksiCompleted marks a finished transaksi. Reversible.
	TransaksiCompleted TransaksiStatus = "completed"
	// TransaksiCancelled marks a cancelled transaksi (soft delete). Reversible.
	TransaksiCancelled TransaksiStatus = "cancelled"
)

// Transaksi represents a business transaction of a UD.
// Lifecycle: active -> completed and active -> cancelled, both reversible.
// Hard delete is terminal from any state.
type Transaksi struct {
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Kode is the generated unique transaction code (TRX-XXXXXXXX).
	Kode string `gorm:"uniqueIndex;size:20;not null" json:"kode"`
	// UDID is the optional UD the transaksi belongs to.
	UDID *uint64 `gorm:"column:ud_id" json:"ud_id"`
	UD   *UD     `gorm:"foreignKey:UDID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE" json:"ud,omitempty"`
	// CreatedByID is the user who recorded the transaksi.
	CreatedByID uint64 `gorm:"not null" json:"createdById"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"createdBy,omitempty"`
	// Tanggal is the business date of the transaksi.
	Tanggal    time.Time `gorm:"not null" json:"tanggal"`
	Keterangan string    `gorm:"size:500" json:"keterangan"`
	// Total is the sum of the item subtotals, in rupiah.
	Total       int64           `gorm:"not null" json:"total"`
	Status      TransaksiStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	CancelledAt *time.Time      `json:"cancelledAt,omitempty"`
	Items       []TransaksiItem `gorm:"foreignKey:TransaksiID" json:"items,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TransaksiItem is a single line of a transaksi.
type TransaksiItem struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	TransaksiID uint64 `gorm:"index;not null" json:"transaksiId"`
	NamaBarang  string `gorm:"size:150;not null" json:"namaBarang"`
	Jumlah      int    `gorm:"not null" json:"jumlah"`
	// HargaSatuan is the unit price in rupiah.
	HargaSatuan int64 `gorm:"not null" json:"hargaSatuan"`
	// Subtotal is Jumlah * HargaSatuan, computed at write time.
	Subtotal int64 `gorm:"not null" json:"subtotal"`
}
