package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aoifenolan/bookhive-app/controllers"
	"github.com/aoifenolan/bookhive-app/models"
	"github.com/aoifenolan/bookhive-app/utils"
)

func setupTestDBForTenants(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Tenant{}, &models.PhoneNumber{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupTenantRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tenantCtrl := controllers.NewTenantController(db)
	router.POST("/tenants", tenantCtrl.CreateTenant)
	router.GET("/tenants/:tenant_id/phone-number", tenantCtrl.GetPhoneNumber)
	router.POST("/tenants/:tenant_id/phone-number", tenantCtrl.AssignPhoneNumber)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		assert.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest("POST", url, &body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAssignPhoneNumberEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTenants(t)

	tenantA := models.Tenant{Name: "Salon A", Email: "a@example.com", Locale: "en-IE"}
	tenantB := models.Tenant{Name: "Salon B", Email: "b@example.com", Locale: "en-IE"}
	db.Create(&tenantA)
	db.Create(&tenantB)

	db.Create(&models.PhoneNumber{Number: "+3531111111", Status: models.PhoneNumberAvailable, CreatedAt: time.Now().Add(-time.Hour)})
	db.Create(&models.PhoneNumber{Number: "+3532222222", Status: models.PhoneNumberAvailable, CreatedAt: time.Now()})

	router := setupTenantRouter(db)

	// Tenant A takes a specific number.
	w := postJSON(t, router, fmt.Sprintf("/tenants/%d/phone-number", tenantA.ID), map[string]string{"number": "+3532222222"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Tenant B requesting the taken number gets a conflict.
	w = postJSON(t, router, fmt.Sprintf("/tenants/%d/phone-number", tenantB.ID), map[string]string{"number": "+3532222222"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// With no number in the body the oldest available one is assigned.
	w = postJSON(t, router, fmt.Sprintf("/tenants/%d/phone-number", tenantB.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "+3531111111", data["number"])

	// Pool is now exhausted for any further tenant.
	tenantC := models.Tenant{Name: "Salon C", Email: "c@example.com", Locale: "en-IE"}
	db.Create(&tenantC)
	w = postJSON(t, router, fmt.Sprintf("/tenants/%d/phone-number", tenantC.ID), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAssignPhoneNumberAlreadyAssigned(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTenants(t)

	tenant := models.Tenant{Name: "Salon A", Email: "a@example.com", Locale: "en-IE"}
	db.Create(&tenant)
	db.Create(&models.PhoneNumber{Number: "+3533333333", Status: models.PhoneNumberAvailable, CreatedAt: time.Now().Add(-time.Hour)})
	db.Create(&models.PhoneNumber{Number: "+3534444444", Status: models.PhoneNumberAvailable, CreatedAt: time.Now()})

	router := setupTenantRouter(db)

	w := postJSON(t, router, fmt.Sprintf("/tenants/%d/phone-number", tenant.ID), map[string]string{"number": "+3533333333"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, fmt.Sprintf("/tenants/%d/phone-number", tenant.ID), map[string]string{"number": "+3534444444"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The second requested number is untouched.
	var spare models.PhoneNumber
	assert.NoError(t, db.Where("number = ?", "+3534444444").First(&spare).Error)
	assert.Equal(t, models.PhoneNumberAvailable, spare.Status)
}

func TestGetPhoneNumberEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTenants(t)

	tenant := models.Tenant{Name: "Salon A", Email: "a@example.com", Locale: "en-IE"}
	db.Create(&tenant)

	router := setupTenantRouter(db)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/tenants/%d/phone-number", tenant.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "No phone number assigned", response["message"])
	assert.Nil(t, response["data"])
}
