package controllers

import (
	"net/http"

	"github.com/aoifenolan/bookhive-app/models"
	"github.com/aoifenolan/bookhive-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetStats returns counts for the admin dashboard: assignments per status
// and pool occupancy.
func (dc *DashboardController) GetStats(c *gin.Context) {
	assignmentCounts := map[string]int64{}
	for _, status := range []string{
		models.AssignmentPending,
		models.AssignmentScheduled,
		models.AssignmentInProgress,
		models.AssignmentCompleted,
		models.AssignmentCancelled,
	} {
		var count int64
		dc.DB.Model(&models.WorkAssignment{}).Where("status = ?", status).Count(&count)
		assignmentCounts[status] = count
	}

	var availableNumbers, assignedNumbers int64
	dc.DB.Model(&models.PhoneNumber{}).Where("status = ?", models.PhoneNumberAvailable).Count(&availableNumbers)
	dc.DB.Model(&models.PhoneNumber{}).Where("status = ?", models.PhoneNumberAssigned).Count(&assignedNumbers)

	var tenantCount, workerCount, customerCount int64
	dc.DB.Model(&models.Tenant{}).Count(&tenantCount)
	dc.DB.Model(&models.Worker{}).Where("active = ?", true).Count(&workerCount)
	dc.DB.Model(&models.Customer{}).Count(&customerCount)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"assignments": assignmentCounts,
		"phone_pool": gin.H{
			"available": availableNumbers,
			"assigned":  assignedNumbers,
			"total":     availableNumbers + assignedNumbers,
		},
		"tenants":        tenantCount,
		"active_workers": workerCount,
		"customers":      customerCount,
	})
}
