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

func setupMonitorDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Tenant{}, &models.Worker{}, &models.PhoneNumber{},
		&models.WorkAssignment{}, &models.DBChange{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestChangeMonitorProcessesBatch(t *testing.T) {
	db := setupMonitorDB(t)
	cm := NewChangeMonitor(db)

	tenant := models.Tenant{Name: "Salon A", Email: "a@example.com", Locale: "en-IE"}
	assert.NoError(t, db.Create(&tenant).Error)
	worker := models.Worker{TenantID: tenant.ID, Name: "Niamh", Active: true}
	assert.NoError(t, db.Create(&worker).Error)
	assignment := models.WorkAssignment{
		Reference: "job", TenantID: tenant.ID, WorkerID: &worker.ID,
		StartTime: time.Now(), DurationMinutes: 60, Status: models.AssignmentScheduled,
	}
	assert.NoError(t, db.Create(&assignment).Error)

	db.Create(&models.DBChange{TableName: "work_assignments", RecordID: int64(assignment.ID), ActionType: "UPDATE", ChangedAt: time.Now()})
	db.Create(&models.DBChange{TableName: "workers", RecordID: int64(worker.ID), ActionType: "UPDATE", ChangedAt: time.Now()})
	// Deletes of rows that are already gone must not wedge the batch.
	db.Create(&models.DBChange{TableName: "work_assignments", RecordID: 9999, ActionType: "DELETE", ChangedAt: time.Now()})

	cm.checkChanges()

	var remaining int64
	assert.NoError(t, db.Model(&models.DBChange{}).Where("processed = ?", false).Count(&remaining).Error)
	assert.EqualValues(t, 0, remaining)
}

func TestChangeMonitorEmptyBatch(t *testing.T) {
	db := setupMonitorDB(t)
	cm := NewChangeMonitor(db)

	// No feed rows at all: a poll is a no-op.
	cm.checkChanges()

	var total int64
	assert.NoError(t, db.Model(&models.DBChange{}).Count(&total).Error)
	assert.EqualValues(t, 0, total)
}
