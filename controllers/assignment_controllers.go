package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aoifenolan/bookhive-app/events"
	"github.com/aoifenolan/bookhive-app/models"
	"github.com/aoifenolan/bookhive-app/services"
	"github.com/aoifenolan/bookhive-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssignmentController struct {
	DB          *gorm.DB
	Assignments *services.AssignmentService
	Detector    *services.ConflictDetector
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{
		DB:          db,
		Assignments: services.NewAssignmentService(db),
		Detector:    services.NewConflictDetector(db),
	}
}

// respondScheduleError maps the scheduling error taxonomy onto HTTP statuses.
// Conflicts return every overlapping assignment id so the UI can show all of
// them for a manual decision.
func respondScheduleError(c *gin.Context, err error) {
	if conflict, ok := services.AsConflict(err); ok {
		c.JSON(http.StatusConflict, gin.H{
			"status":                     false,
			"message":                    conflict.Error(),
			"conflicting_assignment_ids": conflict.ConflictingIDs,
		})
		return
	}
	if errors.Is(err, services.ErrInvalidDuration) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, err)
}

// CreateAssignment books a job. Duration comes from the request or falls
// back to the service item's default.
func (ac *AssignmentController) CreateAssignment(c *gin.Context) {
	var req struct {
		TenantID        uint      `json:"tenant_id" binding:"required"`
		CustomerID      *uint     `json:"customer_id"`
		ServiceItemID   *uint     `json:"service_item_id"`
		WorkerID        *uint     `json:"worker_id"`
		StartTime       time.Time `json:"start_time" binding:"required"`
		DurationMinutes int       `json:"duration_minutes"`
		Status          string    `json:"status"`
		Notes           string    `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	duration := req.DurationMinutes
	if duration == 0 && req.ServiceItemID != nil {
		var item models.ServiceItem
		if err := ac.DB.First(&item, *req.ServiceItemID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		duration = item.DefaultDurationMinutes
	}

	assignment := models.WorkAssignment{
		TenantID:        req.TenantID,
		CustomerID:      req.CustomerID,
		ServiceItemID:   req.ServiceItemID,
		WorkerID:        req.WorkerID,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		Status:          req.Status,
		Notes:           req.Notes,
	}

	if err := ac.Assignments.Create(&assignment); err != nil {
		respondScheduleError(c, err)
		return
	}

	events.BroadcastAssignmentUpdate(assignment)
	utils.InfoLogger.Printf("Assignment %s created (tenant=%d)", assignment.Reference, assignment.TenantID)
	utils.RespondJSON(c, http.StatusCreated, "Assignment created successfully", assignment)
}

func (ac *AssignmentController) GetAllAssignments(c *gin.Context) {
	query := ac.DB.Preload("Worker").Preload("Customer").Preload("ServiceItem")
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}
	if workerID := c.Query("worker_id"); workerID != "" {
		query = query.Where("worker_id = ?", workerID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var assignments []models.WorkAssignment
	if err := query.Order("start_time ASC").Find(&assignments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of assignments", assignments)
}

func (ac *AssignmentController) GetAssignmentByID(c *gin.Context) {
	assignmentID := c.Param("assignment_id")
	var assignment models.WorkAssignment
	if err := ac.DB.Preload("Worker").Preload("Customer").Preload("ServiceItem").
		First(&assignment, assignmentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Assignment detail", assignment)
}

func (ac *AssignmentController) DeleteAssignment(c *gin.Context) {
	assignmentID := c.Param("assignment_id")
	var assignment models.WorkAssignment

	if err := ac.DB.First(&assignment, assignmentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := ac.DB.Delete(&assignment).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastAssignmentDelete(assignment.ID)
	utils.InfoLogger.Printf("Assignment %d deleted", assignment.ID)
	utils.RespondJSON(c, http.StatusOK, "Assignment deleted", gin.H{"id": assignment.ID})
}

// AttachWorker books a worker into the assignment's slot.
func (ac *AssignmentController) AttachWorker(c *gin.Context) {
	assignmentID, ok := parseUintParam(c, "assignment_id")
	if !ok {
		return
	}

	var req struct {
		WorkerID uint `json:"worker_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	assignment, err := ac.Assignments.AttachWorker(assignmentID, req.WorkerID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	events.BroadcastAssignmentUpdate(*assignment)
	utils.InfoLogger.Printf("Worker %d attached to assignment %d", req.WorkerID, assignmentID)
	utils.RespondJSON(c, http.StatusOK, "Worker attached", assignment)
}

func (ac *AssignmentController) DetachWorker(c *gin.Context) {
	assignmentID, ok := parseUintParam(c, "assignment_id")
	if !ok {
		return
	}

	assignment, err := ac.Assignments.DetachWorker(assignmentID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastAssignmentUpdate(*assignment)
	utils.RespondJSON(c, http.StatusOK, "Worker detached", assignment)
}

// Reschedule moves an assignment to a new window, re-running the conflict
// check against the attached worker's other jobs.
func (ac *AssignmentController) Reschedule(c *gin.Context) {
	assignmentID, ok := parseUintParam(c, "assignment_id")
	if !ok {
		return
	}

	var req struct {
		StartTime       time.Time `json:"start_time" binding:"required"`
		DurationMinutes int       `json:"duration_minutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	assignment, err := ac.Assignments.Reschedule(assignmentID, req.StartTime, req.DurationMinutes)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	// A moved slot changes the board's shape, so clients get the dedicated
	// schedule event rather than a plain record update.
	events.BroadcastMessage(events.Message{
		Event: events.EventScheduleUpdate,
		Data:  assignment,
	})
	utils.RespondJSON(c, http.StatusOK, "Assignment rescheduled", assignment)
}

// UpdateStatus moves an assignment through its lifecycle.
func (ac *AssignmentController) UpdateStatus(c *gin.Context) {
	assignmentID, ok := parseUintParam(c, "assignment_id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	assignment, err := ac.Assignments.UpdateStatus(assignmentID, req.Status)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	events.BroadcastAssignmentUpdate(*assignment)
	if assignment.Status == models.AssignmentCancelled {
		events.BroadcastStaffNotification(fmt.Sprintf("Assignment %s was cancelled", assignment.Reference))
	}
	utils.InfoLogger.Printf("Assignment %d status changed to %s", assignment.ID, assignment.Status)
	utils.RespondJSON(c, http.StatusOK, "Assignment status updated", assignment)
}

// CheckConflict is the dry-run endpoint: it reports whether a worker could
// take a slot without writing anything.
func (ac *AssignmentController) CheckConflict(c *gin.Context) {
	var req struct {
		WorkerID        uint      `form:"worker_id" binding:"required"`
		StartTime       time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
		DurationMinutes int       `form:"duration_minutes" binding:"required"`
		ExcludeID       *uint     `form:"exclude_assignment_id"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := ac.Detector.CheckConflict(req.WorkerID, req.StartTime, req.DurationMinutes, req.ExcludeID)
	if errors.Is(err, services.ErrInvalidDuration) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Conflict check result", result)
}
