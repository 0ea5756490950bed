package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aoifenolan/bookhive-app/models"
)

func setupScheduleDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Tenant{}, &models.Worker{}, &models.Customer{},
		&models.ServiceItem{}, &models.WorkAssignment{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedWorker(t *testing.T, db *gorm.DB, name string) models.Worker {
	tenant := models.Tenant{Name: name + "-tenant", Email: name + "@example.com", Locale: "en-IE"}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}
	worker := models.Worker{TenantID: tenant.ID, Name: name, Active: true}
	if err := db.Create(&worker).Error; err != nil {
		t.Fatalf("failed to seed worker: %v", err)
	}
	return worker
}

func seedAssignment(t *testing.T, db *gorm.DB, workerID *uint, start time.Time, minutes int, status string) models.WorkAssignment {
	var tenantID uint = 1
	assignment := models.WorkAssignment{
		Reference:       fmt.Sprintf("ref-%s-%d", t.Name(), time.Now().UnixNano()),
		TenantID:        tenantID,
		WorkerID:        workerID,
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          status,
	}
	if err := db.Create(&assignment).Error; err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}
	return assignment
}

func TestCheckConflictOverlap(t *testing.T) {
	db := setupScheduleDB(t)
	detector := NewConflictDetector(db)
	worker := seedWorker(t, db, "w1")

	nine := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	existing := seedAssignment(t, db, &worker.ID, nine, 60, models.AssignmentScheduled)

	// Candidate starts halfway through the existing job.
	result, err := detector.CheckConflict(worker.ID, nine.Add(30*time.Minute), 30, nil)
	assert.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.Equal(t, []uint{existing.ID}, result.ConflictingAssignmentIDs)

	// Touching endpoints are not a conflict.
	result, err = detector.CheckConflict(worker.ID, nine.Add(60*time.Minute), 60, nil)
	assert.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.Empty(t, result.ConflictingAssignmentIDs)

	result, err = detector.CheckConflict(worker.ID, nine.Add(-30*time.Minute), 30, nil)
	assert.NoError(t, err)
	assert.False(t, result.HasConflict)
}

func TestCheckConflictSymmetry(t *testing.T) {
	db := setupScheduleDB(t)
	detector := NewConflictDetector(db)
	worker := seedWorker(t, db, "w1")

	nine := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	ten := nine.Add(time.Hour)

	a := seedAssignment(t, db, &worker.ID, nine, 90, models.AssignmentScheduled)

	// B overlaps A, so attaching B conflicts with A...
	result, err := detector.CheckConflict(worker.ID, ten, 60, nil)
	assert.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.Contains(t, result.ConflictingAssignmentIDs, a.ID)

	// ...and with the roles reversed, attaching A conflicts with B.
	assert.NoError(t, db.Delete(&a).Error)
	b := seedAssignment(t, db, &worker.ID, ten, 60, models.AssignmentScheduled)

	result, err = detector.CheckConflict(worker.ID, nine, 90, nil)
	assert.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.Contains(t, result.ConflictingAssignmentIDs, b.ID)
}

func TestCheckConflictListsAllOverlaps(t *testing.T) {
	db := setupScheduleDB(t)
	detector := NewConflictDetector(db)
	worker := seedWorker(t, db, "w1")

	nine := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	first := seedAssignment(t, db, &worker.ID, nine, 60, models.AssignmentScheduled)
	second := seedAssignment(t, db, &worker.ID, nine.Add(90*time.Minute), 60, models.AssignmentInProgress)

	// A three-hour candidate spans both existing jobs.
	result, err := detector.CheckConflict(worker.ID, nine, 180, nil)
	assert.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.ElementsMatch(t, []uint{first.ID, second.ID}, result.ConflictingAssignmentIDs)
}

func TestCheckConflictIgnoresTerminalStatuses(t *testing.T) {
	db := setupScheduleDB(t)
	detector := NewConflictDetector(db)
	worker := seedWorker(t, db, "w1")

	nine := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	seedAssignment(t, db, &worker.ID, nine, 60, models.AssignmentCompleted)
	seedAssignment(t, db, &worker.ID, nine, 60, models.AssignmentCancelled)

	result, err := detector.CheckConflict(worker.ID, nine, 60, nil)
	assert.NoError(t, err)
	assert.False(t, result.HasConflict)
}

func TestCheckConflictIgnoresOtherWorkersAndUnassigned(t *testing.T) {
	db := setupScheduleDB(t)
	detector := NewConflictDetector(db)
	worker := seedWorker(t, db, "w1")
	other := seedWorker(t, db, "w2")

	nine := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	seedAssignment(t, db, &other.ID, nine, 60, models.AssignmentScheduled)
	seedAssignment(t, db, nil, nine, 60, models.AssignmentScheduled) // unassigned job

	result, err := detector.CheckConflict(worker.ID, nine, 60, nil)
	assert.NoError(t, err)
	assert.False(t, result.HasConflict)
}

func TestCheckConflictSelfExclusion(t *testing.T) {
	db := setupScheduleDB(t)
	detector := NewConflictDetector(db)
	worker := seedWorker(t, db, "w1")

	nine := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	existing := seedAssignment(t, db, &worker.ID, nine, 60, models.AssignmentScheduled)

	// Rescheduling into its own current slot is never a self-conflict.
	result, err := detector.CheckConflict(worker.ID, nine.Add(15*time.Minute), 60, &existing.ID)
	assert.NoError(t, err)
	assert.False(t, result.HasConflict)
}

func TestCheckConflictIncludesPastAssignments(t *testing.T) {
	db := setupScheduleDB(t)
	detector := NewConflictDetector(db)
	worker := seedWorker(t, db, "w1")

	// A slot well in the past still conflicts; the detector has no "now".
	past := time.Now().AddDate(-1, 0, 0)
	existing := seedAssignment(t, db, &worker.ID, past, 60, models.AssignmentScheduled)

	result, err := detector.CheckConflict(worker.ID, past.Add(30*time.Minute), 60, nil)
	assert.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.Contains(t, result.ConflictingAssignmentIDs, existing.ID)
}

func TestCheckConflictInvalidDuration(t *testing.T) {
	db := setupScheduleDB(t)
	detector := NewConflictDetector(db)
	worker := seedWorker(t, db, "w1")

	_, err := detector.CheckConflict(worker.ID, time.Now(), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = detector.CheckConflict(worker.ID, time.Now(), -15, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}
