package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/aoifenolan/bookhive-app/models"
	"github.com/aoifenolan/bookhive-app/services"
	"github.com/aoifenolan/bookhive-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WorkerController struct {
	DB         *gorm.DB
	Aggregator *services.HoursAggregator
}

func NewWorkerController(db *gorm.DB) *WorkerController {
	return &WorkerController{
		DB:         db,
		Aggregator: services.NewHoursAggregator(db),
	}
}

func (wc *WorkerController) CreateWorker(c *gin.Context) {
	var req struct {
		TenantID            uint    `json:"tenant_id" binding:"required"`
		Name                string  `json:"name" binding:"required"`
		Email               string  `json:"email"`
		Role                string  `json:"role"`
		ExpectedWeeklyHours float64 `json:"expected_weekly_hours"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	worker := models.Worker{
		TenantID:            req.TenantID,
		Name:                req.Name,
		Email:               req.Email,
		Role:                req.Role,
		ExpectedWeeklyHours: req.ExpectedWeeklyHours,
		Active:              true,
	}

	if err := wc.DB.Create(&worker).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New worker created: %s (tenant=%d)", worker.Name, worker.TenantID)
	utils.RespondJSON(c, http.StatusCreated, "Worker created successfully", worker)
}

func (wc *WorkerController) GetAllWorkers(c *gin.Context) {
	query := wc.DB
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}

	var workers []models.Worker
	if err := query.Find(&workers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of workers", workers)
}

func (wc *WorkerController) GetWorkerByID(c *gin.Context) {
	workerID := c.Param("worker_id")
	var worker models.Worker
	if err := wc.DB.First(&worker, workerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Worker detail", worker)
}

func (wc *WorkerController) UpdateWorker(c *gin.Context) {
	workerID := c.Param("worker_id")
	var body struct {
		Name                string   `json:"name"`
		Email               string   `json:"email"`
		Role                string   `json:"role"`
		ExpectedWeeklyHours *float64 `json:"expected_weekly_hours"`
		Active              *bool    `json:"active"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var worker models.Worker
	if err := wc.DB.First(&worker, workerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		worker.Name = body.Name
	}
	if body.Email != "" {
		worker.Email = body.Email
	}
	if body.Role != "" {
		worker.Role = body.Role
	}
	if body.ExpectedWeeklyHours != nil {
		worker.ExpectedWeeklyHours = *body.ExpectedWeeklyHours
	}
	if body.Active != nil {
		worker.Active = *body.Active
	}

	if err := wc.DB.Save(&worker).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Worker updated", worker)
}

func (wc *WorkerController) DeleteWorker(c *gin.Context) {
	workerID := c.Param("worker_id")
	var worker models.Worker

	if err := wc.DB.First(&worker, workerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := wc.DB.Delete(&worker).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Worker %d deleted", worker.ID)
	utils.RespondJSON(c, http.StatusOK, "Worker deleted", gin.H{"id": worker.ID})
}

// GetWorkedHours reports committed minutes in [from, to) next to the
// worker's weekly target. Defaults to the current ISO week when the range
// is omitted.
func (wc *WorkerController) GetWorkedHours(c *gin.Context) {
	workerID, ok := parseUintParam(c, "worker_id")
	if !ok {
		return
	}

	var worker models.Worker
	if err := wc.DB.First(&worker, workerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	from, to, err := parsePeriod(c.Query("from"), c.Query("to"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	worked, err := wc.Aggregator.HoursWorked(workerID, from, to)
	if errors.Is(err, services.ErrInvalidTimeWindow) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Worked hours", gin.H{
		"worker_id":             worker.ID,
		"period_start":          from,
		"period_end":            to,
		"worked_minutes":        int(worked.Minutes()),
		"worked_hours":          worked.Hours(),
		"expected_weekly_hours": worker.ExpectedWeeklyHours,
	})
}

// parsePeriod reads RFC3339 bounds, defaulting to the current Monday-based
// week.
func parsePeriod(fromRaw, toRaw string) (time.Time, time.Time, error) {
	if fromRaw == "" && toRaw == "" {
		now := time.Now()
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 7), nil
	}

	from, err := time.Parse(time.RFC3339, fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid 'from' timestamp, want RFC3339")
	}
	to, err := time.Parse(time.RFC3339, toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid 'to' timestamp, want RFC3339")
	}
	return from, to, nil
}
