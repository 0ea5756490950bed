package controllers

import (
	"errors"
	"net/http"

	"github.com/aoifenolan/bookhive-app/models"
	"github.com/aoifenolan/bookhive-app/services"
	"github.com/aoifenolan/bookhive-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TenantController struct {
	DB        *gorm.DB
	Allocator *services.PhoneAllocator
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{
		DB:        db,
		Allocator: services.NewPhoneAllocator(db),
	}
}

// CreateTenant registers a business account. No phone number is assigned
// here; allocation is a separate, caller-initiated step and a tenant may
// operate with no number at all.
func (tc *TenantController) CreateTenant(c *gin.Context) {
	var req struct {
		Name   string `json:"name" binding:"required"`
		Email  string `json:"email" binding:"required,email"`
		Locale string `json:"locale"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tenant := models.Tenant{
		Name:   req.Name,
		Email:  req.Email,
		Locale: "en-IE",
	}
	if req.Locale != "" {
		tenant.Locale = req.Locale
	}

	if err := tc.DB.Create(&tenant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New tenant created: %s", tenant.Name)
	utils.RespondJSON(c, http.StatusCreated, "Tenant created successfully", tenant)
}

func (tc *TenantController) GetAllTenants(c *gin.Context) {
	var tenants []models.Tenant
	if err := tc.DB.Find(&tenants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tenants", tenants)
}

func (tc *TenantController) GetTenantByID(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	var tenant models.Tenant
	if err := tc.DB.First(&tenant, tenantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tenant detail", tenant)
}

func (tc *TenantController) UpdateTenant(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	var body struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Locale string `json:"locale"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var tenant models.Tenant
	if err := tc.DB.First(&tenant, tenantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		tenant.Name = body.Name
	}
	if body.Email != "" {
		tenant.Email = body.Email
	}
	if body.Locale != "" {
		tenant.Locale = body.Locale
	}

	if err := tc.DB.Save(&tenant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tenant updated", tenant)
}

func (tc *TenantController) DeleteTenant(c *gin.Context) {
	tenantID := c.Param("tenant_id")
	var tenant models.Tenant

	if err := tc.DB.First(&tenant, tenantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&tenant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Tenant %d deleted", tenant.ID)
	utils.RespondJSON(c, http.StatusOK, "Tenant deleted", gin.H{"id": tenant.ID})
}

// AssignPhoneNumber claims a pool number for the tenant. With no number in
// the body the oldest available one is taken. Allocation failures map to
// specific HTTP statuses so the UI can react per case.
func (tc *TenantController) AssignPhoneNumber(c *gin.Context) {
	tenantID, ok := parseUintParam(c, "tenant_id")
	if !ok {
		return
	}

	var body struct {
		Number string `json:"number"`
	}
	// Body is optional entirely.
	_ = c.ShouldBindJSON(&body)

	number, err := tc.Allocator.Assign(tenantID, body.Number)
	switch {
	case errors.Is(err, services.ErrAlreadyAssigned):
		utils.RespondError(c, http.StatusConflict, err)
		return
	case errors.Is(err, services.ErrNumberUnavailable):
		utils.RespondError(c, http.StatusConflict, err)
		return
	case errors.Is(err, services.ErrPoolExhausted):
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Phone number %s assigned to tenant %d", number.Number, tenantID)
	utils.RespondJSON(c, http.StatusOK, "Phone number assigned", number)
}

// GetPhoneNumber returns the tenant's current number, if any.
func (tc *TenantController) GetPhoneNumber(c *gin.Context) {
	tenantID, ok := parseUintParam(c, "tenant_id")
	if !ok {
		return
	}

	number, err := tc.Allocator.Current(tenantID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if number == nil {
		utils.RespondJSON(c, http.StatusOK, "No phone number assigned", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Assigned phone number", number)
}
