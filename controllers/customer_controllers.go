package controllers

import (
	"net/http"

	"github.com/aoifenolan/bookhive-app/models"
	"github.com/aoifenolan/bookhive-app/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		TenantID uint   `json:"tenant_id" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Notes    string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		TenantID: req.TenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Notes:    req.Notes,
	}

	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New customer created: %s (tenant=%d)", customer.Name, customer.TenantID)
	utils.RespondJSON(c, http.StatusCreated, "Customer created successfully", customer)
}

func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	query := cc.DB
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		query = query.Where("tenant_id = ?", tenantID)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	customerID := c.Param("customer_id")
	var customer models.Customer
	if err := cc.DB.First(&customer, customerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	customerID := c.Param("customer_id")
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
		Notes string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, customerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		customer.Name = body.Name
	}
	if body.Email != "" {
		customer.Email = body.Email
	}
	if body.Phone != "" {
		customer.Phone = body.Phone
	}
	if body.Notes != "" {
		customer.Notes = body.Notes
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	customerID := c.Param("customer_id")
	var customer models.Customer

	if err := cc.DB.First(&customer, customerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.DB.Delete(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Customer %d deleted", customer.ID)
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", gin.H{"id": customer.ID})
}
