package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityAction is the kind of mutation an activity log entry records.
type ActivityAction string

const (
	// ActionCreate records a resource creation.
	ActionCreate ActivityAction = "CREATE"
	// ActionUpdate records a resource mutation or state transition.
	ActionUpdate ActivityAction = "UPDATE"
	// ActionDelete records a resource removal, soft or hard.
	ActionDelete ActivityAction = "DELETE"
)

// ActivityLog records who did what to which entity.
type ActivityLog struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	UserID   uint64 `gorm:"index;not null" json:"userId"`
	Username string `gorm:"size:100;not null" json:"username"`
	// Action is CREATE, UPDATE or DELETE.
	Action ActivityAction `gorm:"type:varchar(10);not null" json:"action"`
	// EntityType names the affected resource kind, e.g. TRANSAKSI.
	EntityType string `gorm:"size:50;not null" json:"entityType"`
	// EntityID is the affected resource id, 0 for creations whose id is
	// not known at request time.
	EntityID   uint64 `gorm:"index" json:"entityId"`
	Method     string `gorm:"size:10;not null" json:"method"`
	Path       string `gorm:"size:255;not null" json:"path"`
	StatusCode int    `gorm:"not null" json:"statusCode"`
	// Payload keeps the request body so the change can be reconstructed.
	Payload   datatypes.JSON `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
