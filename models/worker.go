package models

import "time"

type Worker struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	TenantID            uint      `gorm:"index;not null" json:"tenant_id"`
	Tenant              Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	Name                string    `gorm:"type:varchar(255);not null" json:"name"`
	Email               string    `gorm:"type:varchar(255)" json:"email"`
	Role                string    `gorm:"type:varchar(50)" json:"role"`
	ExpectedWeeklyHours float64   `gorm:"type:decimal(5,2);not null;default:0" json:"expected_weekly_hours"`
	Active              bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}
