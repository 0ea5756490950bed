package services

import (
	"time"

	"github.com/aoifenolan/bookhive-app/models"
	"gorm.io/gorm"
)

// ConflictResult is the outcome of an overlap check. ConflictingAssignmentIDs
// carries every overlapping assignment, not just the first.
type ConflictResult struct {
	HasConflict              bool   `json:"has_conflict"`
	ConflictingAssignmentIDs []uint `json:"conflicting_assignment_ids,omitempty"`
}

// ConflictDetector decides whether a worker can take a job in a given time
// window. It is a pure read: the mutating flows in AssignmentService run the
// same check inside their own transaction.
type ConflictDetector struct {
	db *gorm.DB
}

func NewConflictDetector(db *gorm.DB) *ConflictDetector {
	return &ConflictDetector{db: db}
}

// CheckConflict compares the candidate window [start, start+duration) against
// every non-terminal assignment of the worker. Touching endpoints do not
// conflict. excludeID lets a reschedule skip its own current slot.
func (d *ConflictDetector) CheckConflict(workerID uint, start time.Time, durationMinutes int, excludeID *uint) (*ConflictResult, error) {
	return checkConflict(d.db, workerID, start, durationMinutes, excludeID)
}

func checkConflict(tx *gorm.DB, workerID uint, start time.Time, durationMinutes int, excludeID *uint) (*ConflictResult, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	candidateEnd := start.Add(time.Duration(durationMinutes) * time.Minute)

	query := tx.Where("worker_id = ? AND status IN ?", workerID, models.ActiveStatuses()).
		Where("start_time < ?", candidateEnd)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var existing []models.WorkAssignment
	if err := query.Find(&existing).Error; err != nil {
		return nil, err
	}

	result := &ConflictResult{}
	for _, a := range existing {
		// Half-open intervals: [start, end) overlap iff each starts before
		// the other ends. Past assignments are still counted; the detector
		// has no notion of "now".
		if start.Before(a.EndTime()) && a.StartTime.Before(candidateEnd) {
			result.HasConflict = true
			result.ConflictingAssignmentIDs = append(result.ConflictingAssignmentIDs, a.ID)
		}
	}
	return result, nil
}
