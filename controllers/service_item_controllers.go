package controllers

import (
	"net/http"

	"github.com/aoifenolan/bookhive-app/models"
	"github.com/aoifenolan/bookhive-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ServiceItemController struct {
	DB *gorm.DB
}

func NewServiceItemController(db *gorm.DB) *ServiceItemController {
	return &ServiceItemController{DB: db}
}

func (sc *ServiceItemController) CreateServiceItem(c *gin.Context) {
	var req struct {
		TenantID               uint    `json:"tenant_id" binding:"required"`
		Name                   string  `json:"name" binding:"required"`
		Price                  float64 `json:"price"`
		DefaultDurationMinutes int     `json:"default_duration_minutes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.ServiceItem{
		TenantID:               req.TenantID,
		Name:                   req.Name,
		Price:                  req.Price,
		DefaultDurationMinutes: 60,
	}
	if req.DefaultDurationMinutes > 0 {
		item.DefaultDurationMinutes = req.DefaultDurationMinutes
	}

	if err := sc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Service item created successfully", item)
}

func (sc *ServiceItemController) GetAllServiceItems(c *gin.Context) {
	query := sc.DB
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}

	var items []models.ServiceItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of service items", items)
}

func (sc *ServiceItemController) GetServiceItemByID(c *gin.Context) {
	itemID := c.Param("item_id")
	var item models.ServiceItem
	if err := sc.DB.First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Service item detail", item)
}

func (sc *ServiceItemController) UpdateServiceItem(c *gin.Context) {
	itemID := c.Param("item_id")
	var body struct {
		Name                   string   `json:"name"`
		Price                  *float64 `json:"price"`
		DefaultDurationMinutes *int     `json:"default_duration_minutes"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.ServiceItem
	if err := sc.DB.First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		item.Name = body.Name
	}
	if body.Price != nil {
		item.Price = *body.Price
	}
	if body.DefaultDurationMinutes != nil && *body.DefaultDurationMinutes > 0 {
		item.DefaultDurationMinutes = *body.DefaultDurationMinutes
	}

	if err := sc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service item updated", item)
}

func (sc *ServiceItemController) DeleteServiceItem(c *gin.Context) {
	itemID := c.Param("item_id")
	var item models.ServiceItem

	if err := sc.DB.First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := sc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Service item deleted", gin.H{"id": item.ID})
}
