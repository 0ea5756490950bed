package database

import (
	"os"
	"strings"

	"github.com/aoifenolan/bookhive-app/utils"
	"gorm.io/gorm"
)

// ExecuteTriggers installs the change-feed triggers that populate db_changes.
// MySQL only: the embedded development store runs without the feed and the
// schedule board falls back to explicit broadcasts from the controllers.
func ExecuteTriggers(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		utils.InfoLogger.Println("Skipping change-feed triggers (non-MySQL store)")
		return nil
	}

	triggerSQL, err := os.ReadFile("database/migrations/triggers.sql")
	if err != nil {
		return err
	}

	// The file uses DELIMITER // blocks so statements can contain semicolons.
	blocks := strings.Split(string(triggerSQL), "DELIMITER")

	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}

		for _, stmt := range strings.Split(block, "//") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" || stmt == ";" {
				continue
			}

			if err := db.Exec(stmt).Error; err != nil {
				utils.ErrorLogger.Printf("Error executing trigger: %v\nStatement: %s", err, stmt)
				continue
			}
		}
	}

	var triggers []struct {
		Trigger string
		Event   string
		Table   string
		Timing  string
	}

	db.Raw(`
        SELECT
            TRIGGER_NAME as trigger_name,
            EVENT_MANIPULATION as event_type,
            EVENT_OBJECT_TABLE as table_name,
            ACTION_TIMING as timing
        FROM information_schema.triggers
        WHERE TRIGGER_SCHEMA = DATABASE()
    `).Scan(&triggers)

	for _, t := range triggers {
		utils.InfoLogger.Printf("Trigger verified: %s (%s %s on %s)",
			t.Trigger, t.Timing, t.Event, t.Table)
	}

	return nil
}
