package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/aoifenolan/bookhive-app/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignmentService owns every write that can put a worker into a time slot.
// The conflict check and the write run in one transaction, serialized per
// worker by a row lock, so two concurrent attach requests cannot both pass
// the check and commit.
type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// lockWorker takes the per-worker serialization point. SQLite has a single
// writer and no FOR UPDATE syntax, so the clause is only added on MySQL.
func (s *AssignmentService) lockWorker(tx *gorm.DB, workerID uint) (*models.Worker, error) {
	q := tx
	if tx.Dialector.Name() == "mysql" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var worker models.Worker
	if err := q.First(&worker, workerID).Error; err != nil {
		return nil, fmt.Errorf("failed to find worker: %w", err)
	}
	return &worker, nil
}

// Create persists a new assignment. When a worker is attached on creation the
// overlap check runs in the same transaction as the insert.
func (s *AssignmentService) Create(assignment *models.WorkAssignment) error {
	if assignment.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if assignment.Reference == "" {
		assignment.Reference = uuid.New().String()
	}
	if assignment.Status == "" {
		assignment.Status = models.AssignmentScheduled
	}

	if assignment.WorkerID == nil {
		return s.db.Create(assignment).Error
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.lockWorker(tx, *assignment.WorkerID); err != nil {
			return err
		}
		result, err := checkConflict(tx, *assignment.WorkerID, assignment.StartTime, assignment.DurationMinutes, nil)
		if err != nil {
			return err
		}
		if result.HasConflict {
			return &ConflictError{ConflictingIDs: result.ConflictingAssignmentIDs}
		}
		return tx.Create(assignment).Error
	})
}

// AttachWorker books the worker into the assignment's slot, failing with a
// ConflictError when the slot overlaps any of the worker's active jobs.
func (s *AssignmentService) AttachWorker(assignmentID, workerID uint) (*models.WorkAssignment, error) {
	var assignment models.WorkAssignment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.lockWorker(tx, workerID); err != nil {
			return err
		}
		if err := tx.First(&assignment, assignmentID).Error; err != nil {
			return fmt.Errorf("failed to find assignment: %w", err)
		}
		if assignment.Status == models.AssignmentCompleted || assignment.Status == models.AssignmentCancelled {
			return fmt.Errorf("cannot attach a worker to a %s assignment", assignment.Status)
		}

		result, err := checkConflict(tx, workerID, assignment.StartTime, assignment.DurationMinutes, &assignment.ID)
		if err != nil {
			return err
		}
		if result.HasConflict {
			return &ConflictError{ConflictingIDs: result.ConflictingAssignmentIDs}
		}

		assignment.WorkerID = &workerID
		return tx.Save(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// DetachWorker removes the worker from an assignment. Detaching is always
// legal; the slot simply stops constraining the worker's schedule.
func (s *AssignmentService) DetachWorker(assignmentID uint) (*models.WorkAssignment, error) {
	var assignment models.WorkAssignment
	if err := s.db.First(&assignment, assignmentID).Error; err != nil {
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	if err := s.db.Model(&assignment).Update("worker_id", nil).Error; err != nil {
		return nil, err
	}
	assignment.WorkerID = nil
	return &assignment, nil
}

// Reschedule moves an assignment to a new window. The assignment excludes
// itself from the overlap comparison, so shifting within or into its own old
// slot never reports a self-conflict.
func (s *AssignmentService) Reschedule(assignmentID uint, newStart time.Time, newDurationMinutes int) (*models.WorkAssignment, error) {
	if newDurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	var assignment models.WorkAssignment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, assignmentID).Error; err != nil {
			return fmt.Errorf("failed to find assignment: %w", err)
		}

		if assignment.WorkerID != nil {
			if _, err := s.lockWorker(tx, *assignment.WorkerID); err != nil {
				return err
			}
			result, err := checkConflict(tx, *assignment.WorkerID, newStart, newDurationMinutes, &assignment.ID)
			if err != nil {
				return err
			}
			if result.HasConflict {
				return &ConflictError{ConflictingIDs: result.ConflictingAssignmentIDs}
			}
		}

		assignment.StartTime = newStart
		assignment.DurationMinutes = newDurationMinutes
		return tx.Save(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UpdateStatus applies a lifecycle transition. Terminal states stay terminal.
func (s *AssignmentService) UpdateStatus(assignmentID uint, status string) (*models.WorkAssignment, error) {
	switch status {
	case models.AssignmentPending, models.AssignmentScheduled, models.AssignmentInProgress,
		models.AssignmentCompleted, models.AssignmentCancelled:
	default:
		return nil, fmt.Errorf("unknown assignment status: %s", status)
	}

	var assignment models.WorkAssignment
	if err := s.db.First(&assignment, assignmentID).Error; err != nil {
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	if assignment.Status == models.AssignmentCompleted || assignment.Status == models.AssignmentCancelled {
		return nil, errors.New("assignment is already in a terminal state")
	}

	assignment.Status = status
	if err := s.db.Save(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}
