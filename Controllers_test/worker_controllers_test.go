package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/aoifenolan/bookhive-app/controllers"
	"github.com/aoifenolan/bookhive-app/models"
	"github.com/aoifenolan/bookhive-app/utils"
)

func setupWorkerRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	workerCtrl := controllers.NewWorkerController(db)
	router.GET("/workers/:worker_id/hours", workerCtrl.GetWorkedHours)
	return router
}

func TestGetWorkedHoursEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAssignments(t)
	tenant, worker := seedScheduleFixtures(t, db)

	weekStart := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	scheduled := models.WorkAssignment{
		Reference: "sch", TenantID: tenant.ID, WorkerID: &worker.ID,
		StartTime: weekStart.Add(9 * time.Hour), DurationMinutes: 90,
		Status: models.AssignmentScheduled,
	}
	db.Create(&scheduled)
	cancelled := models.WorkAssignment{
		Reference: "can", TenantID: tenant.ID, WorkerID: &worker.ID,
		StartTime: weekStart.Add(12 * time.Hour), DurationMinutes: 60,
		Status: models.AssignmentCancelled,
	}
	db.Create(&cancelled)

	router := setupWorkerRouter(db)

	url := fmt.Sprintf("/workers/%d/hours?from=2025-01-06T00:00:00Z&to=2025-01-13T00:00:00Z", worker.ID)
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	// The cancelled hour contributes nothing.
	assert.EqualValues(t, 90, data["worked_minutes"].(float64))
}

func TestGetWorkedHoursBadPeriod(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForAssignments(t)
	_, worker := seedScheduleFixtures(t, db)
	router := setupWorkerRouter(db)

	url := fmt.Sprintf("/workers/%d/hours?from=not-a-time&to=2025-01-13T00:00:00Z", worker.ID)
	req, _ := http.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Inverted window is rejected as well.
	url = fmt.Sprintf("/workers/%d/hours?from=2025-01-13T00:00:00Z&to=2025-01-06T00:00:00Z", worker.ID)
	req, _ = http.NewRequest("GET", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
