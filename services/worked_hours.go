package services

import (
	"time"

	"github.com/aoifenolan/bookhive-app/models"
	"gorm.io/gorm"
)

// HoursAggregator computes committed time per worker for "hours this week"
// style displays, shown next to the worker's expected weekly hours.
type HoursAggregator struct {
	db *gorm.DB
}

func NewHoursAggregator(db *gorm.DB) *HoursAggregator {
	return &HoursAggregator{db: db}
}

// HoursWorked sums the durations of the worker's scheduled, in-progress and
// completed assignments whose window intersects [periodStart, periodEnd).
// Pending is not yet committed and cancelled never happened, so both are
// excluded. An assignment that only partially falls inside the period still
// contributes its full duration; this deliberate approximation avoids
// clipping math and downstream displays rely on it.
func (a *HoursAggregator) HoursWorked(workerID uint, periodStart, periodEnd time.Time) (time.Duration, error) {
	if !periodEnd.After(periodStart) {
		return 0, ErrInvalidTimeWindow
	}

	countedStatuses := []string{
		models.AssignmentScheduled,
		models.AssignmentInProgress,
		models.AssignmentCompleted,
	}

	var assignments []models.WorkAssignment
	err := a.db.Where("worker_id = ? AND status IN ?", workerID, countedStatuses).
		Where("start_time < ?", periodEnd).
		Find(&assignments).Error
	if err != nil {
		return 0, err
	}

	var totalMinutes int
	for _, assignment := range assignments {
		if assignment.EndTime().After(periodStart) {
			totalMinutes += assignment.DurationMinutes
		}
	}
	return time.Duration(totalMinutes) * time.Minute, nil
}
