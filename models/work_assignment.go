package models

import "time"

// Assignment statuses. Completed and cancelled are terminal; they stay in the
// table for history but drop out of the overlap invariant.
const (
	AssignmentPending    = "pending"
	AssignmentScheduled  = "scheduled"
	AssignmentInProgress = "in_progress"
	AssignmentCompleted  = "completed"
	AssignmentCancelled  = "cancelled"
)

// WorkAssignment is a booked job. WorkerID is nullable: an unassigned job has
// no conflict constraint until a worker is attached.
type WorkAssignment struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Reference       string       `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"`
	TenantID        uint         `gorm:"index;not null" json:"tenant_id"`
	Tenant          Tenant       `gorm:"foreignKey:TenantID" json:"-"`
	CustomerID      *uint        `gorm:"index" json:"customer_id,omitempty"`
	Customer        *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ServiceItemID   *uint        `gorm:"index" json:"service_item_id,omitempty"`
	ServiceItem     *ServiceItem `gorm:"foreignKey:ServiceItemID" json:"service_item,omitempty"`
	WorkerID        *uint        `gorm:"index" json:"worker_id,omitempty"`
	Worker          *Worker      `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	StartTime       time.Time    `gorm:"index;not null" json:"start_time"`
	DurationMinutes int          `gorm:"not null" json:"duration_minutes"`
	Status          string       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes           string       `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null" json:"updated_at"`
}

// EndTime is the exclusive end of the booked slot.
func (a *WorkAssignment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// ActiveStatuses are the statuses that participate in overlap checks.
func ActiveStatuses() []string {
	return []string{AssignmentPending, AssignmentScheduled, AssignmentInProgress}
}
