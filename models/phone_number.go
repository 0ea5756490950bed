package models

import "time"

// Pool number statuses
const (
	PhoneNumberAvailable = "available"
	PhoneNumberAssigned  = "assigned"
)

// PhoneNumber is one entry of the shared provisioning pool. Numbers are
// bulk-imported by an operator and flip from available to assigned exactly
// once; only a full administrative pool reset ever flips them back.
type PhoneNumber struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Number           string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"number"`
	Status           string     `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	AssignedTenantID *uint      `gorm:"index" json:"assigned_tenant_id,omitempty"`
	AssignedAt       *time.Time `json:"assigned_at,omitempty"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
}
