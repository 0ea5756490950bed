package controllers

import (
	"net/http"

	"github.com/aoifenolan/bookhive-app/models"
	"github.com/aoifenolan/bookhive-app/services"
	"github.com/aoifenolan/bookhive-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PhoneNumberController is the operator surface of the provisioning pool:
// bulk import, listing and the administrative full reset.
type PhoneNumberController struct {
	DB        *gorm.DB
	Allocator *services.PhoneAllocator
}

func NewPhoneNumberController(db *gorm.DB) *PhoneNumberController {
	return &PhoneNumberController{
		DB:        db,
		Allocator: services.NewPhoneAllocator(db),
	}
}

// ImportNumbers bulk-loads E.164 numbers into the pool. Duplicates are
// skipped, not errors, so an import file can be replayed safely.
func (pc *PhoneNumberController) ImportNumbers(c *gin.Context) {
	var req struct {
		Numbers []string `json:"numbers" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	added, err := pc.Allocator.ImportNumbers(req.Numbers)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Imported %d phone numbers into the pool", added)
	utils.RespondJSON(c, http.StatusCreated, "Numbers imported", gin.H{
		"imported": added,
		"received": len(req.Numbers),
	})
}

func (pc *PhoneNumberController) GetAllNumbers(c *gin.Context) {
	var numbers []models.PhoneNumber
	if err := pc.DB.Order("created_at ASC, id ASC").Find(&numbers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of pool numbers", numbers)
}

func (pc *PhoneNumberController) GetAvailableNumbers(c *gin.Context) {
	numbers, err := pc.Allocator.ListAvailable()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available pool numbers", numbers)
}

// ResetPool releases every number and clears every tenant's assignment.
func (pc *PhoneNumberController) ResetPool(c *gin.Context) {
	if err := pc.Allocator.ResetPool(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Phone number pool reset by user %v", c.GetUint("user_id"))
	utils.RespondJSON(c, http.StatusOK, "Pool reset", nil)
}
