package services

import (
	"log"
	"time"

	"github.com/aoifenolan/bookhive-app/events"
	"github.com/aoifenolan/bookhive-app/models"
	"gorm.io/gorm"
)

// ChangeMonitor polls the db_changes feed written by the database triggers
// and turns unprocessed rows into schedule-board broadcasts. Polling keeps
// multiple API instances consistent without any cross-process messaging.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		log.Printf("Error fetching changes: %v", err)
		return
	}

	changedTables := map[string]int{}
	for _, change := range changes {
		changedTables[change.TableName]++
		switch change.TableName {
		case "work_assignments":
			cm.processAssignmentChange(change)
		case "phone_numbers":
			cm.processPhoneNumberChange(change)
		case "tenants":
			cm.processTenantChange(change)
		case "workers":
			cm.processWorkerChange(change)
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing change batch: %v", err)
		tx.Rollback()
		return
	}

	// Tell dashboard clients which tables moved so they refetch their stats.
	if len(changedTables) > 0 {
		events.BroadcastDashboardUpdate(map[string]interface{}{
			"changed_tables": changedTables,
		})
	}
}

func (cm *ChangeMonitor) processAssignmentChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		events.BroadcastAssignmentDelete(uint(change.RecordID))
		return
	}

	var assignment models.WorkAssignment
	if err := cm.DB.First(&assignment, change.RecordID).Error; err != nil {
		log.Printf("Error fetching assignment %d: %v", change.RecordID, err)
		return
	}
	events.BroadcastAssignmentUpdate(assignment)
}

func (cm *ChangeMonitor) processPhoneNumberChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		return
	}
	var number models.PhoneNumber
	if err := cm.DB.First(&number, change.RecordID).Error; err != nil {
		log.Printf("Error fetching phone number %d: %v", change.RecordID, err)
		return
	}
	events.BroadcastPoolUpdate(number)
}

func (cm *ChangeMonitor) processTenantChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		return
	}
	var tenant models.Tenant
	if err := cm.DB.First(&tenant, change.RecordID).Error; err != nil {
		log.Printf("Error fetching tenant %d: %v", change.RecordID, err)
		return
	}
	events.BroadcastTenantUpdate(tenant)
}

func (cm *ChangeMonitor) processWorkerChange(change models.DBChange) {
	if change.ActionType == "DELETE" {
		return
	}
	var worker models.Worker
	if err := cm.DB.First(&worker, change.RecordID).Error; err != nil {
		log.Printf("Error fetching worker %d: %v", change.RecordID, err)
		return
	}
	events.BroadcastWorkerUpdate(worker)
}
