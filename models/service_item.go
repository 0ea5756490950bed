package models

import "time"

// ServiceItem is a bookable service type. DefaultDurationMinutes feeds the
// assignment duration when the booking has no explicit end time.
type ServiceItem struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	TenantID               uint      `gorm:"index;not null" json:"tenant_id"`
	Name                   string    `gorm:"type:varchar(255);not null" json:"name"`
	Price                  float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"price"`
	DefaultDurationMinutes int       `gorm:"not null;default:60" json:"default_duration_minutes"`
	CreatedAt              time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time `gorm:"not null" json:"updated_at"`
}
