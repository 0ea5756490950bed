package models

import "time"

// Tenant is a business account. AssignedPhoneNumber is unique across tenants
// so the store itself rejects a number ending up on two tenants.
type Tenant struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"type:varchar(255);not null" json:"name"`
	Email               string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Locale              string    `gorm:"type:varchar(10);not null;default:'en-IE'" json:"locale"`
	AssignedPhoneNumber *string   `gorm:"type:varchar(20);uniqueIndex" json:"assigned_phone_number,omitempty"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}
