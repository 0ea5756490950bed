package router

import (
	"github.com/aoifenolan/bookhive-app/controllers"
	"github.com/aoifenolan/bookhive-app/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Registered before any route so every handler sits behind it.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	userCtrl := controllers.NewUserController(db)
	tenantCtrl := controllers.NewTenantController(db)
	phoneCtrl := controllers.NewPhoneNumberController(db)
	workerCtrl := controllers.NewWorkerController(db)
	assignmentCtrl := controllers.NewAssignmentController(db)
	customerCtrl := controllers.NewCustomerController(db)
	serviceCtrl := controllers.NewServiceItemController(db)
	dashboardCtrl := controllers.NewDashboardController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", middlewares.RequireRole("admin"), userCtrl.GetAllUsers)

	// TENANTS
	auth.GET("/tenants", tenantCtrl.GetAllTenants)
	auth.POST("/tenants", middlewares.RequireRole("admin", "operator"), tenantCtrl.CreateTenant)
	auth.GET("/tenants/:tenant_id", tenantCtrl.GetTenantByID)
	auth.PATCH("/tenants/:tenant_id", tenantCtrl.UpdateTenant)
	auth.DELETE("/tenants/:tenant_id", middlewares.RequireRole("admin"), tenantCtrl.DeleteTenant)

	// Phone number allocation per tenant
	auth.GET("/tenants/:tenant_id/phone-number", tenantCtrl.GetPhoneNumber)
	auth.POST("/tenants/:tenant_id/phone-number", middlewares.RequireRole("admin", "operator"), tenantCtrl.AssignPhoneNumber)

	// PHONE POOL (operator/admin)
	pool := auth.Group("/phone-numbers")
	pool.Use(middlewares.RequireRole("admin", "operator"))
	{
		pool.GET("", phoneCtrl.GetAllNumbers)
		pool.GET("/available", phoneCtrl.GetAvailableNumbers)
		pool.POST("/import", phoneCtrl.ImportNumbers)
		pool.POST("/reset", middlewares.RequireRole("admin"), phoneCtrl.ResetPool)
	}

	// WORKERS
	auth.GET("/workers", workerCtrl.GetAllWorkers)
	auth.POST("/workers", workerCtrl.CreateWorker)
	auth.GET("/workers/:worker_id", workerCtrl.GetWorkerByID)
	auth.PATCH("/workers/:worker_id", workerCtrl.UpdateWorker)
	auth.DELETE("/workers/:worker_id", middlewares.RequireRole("admin"), workerCtrl.DeleteWorker)
	auth.GET("/workers/:worker_id/hours", workerCtrl.GetWorkedHours)

	// ASSIGNMENTS
	auth.GET("/assignments", assignmentCtrl.GetAllAssignments)
	auth.POST("/assignments", assignmentCtrl.CreateAssignment)
	auth.GET("/assignments/:assignment_id", assignmentCtrl.GetAssignmentByID)
	auth.DELETE("/assignments/:assignment_id", assignmentCtrl.DeleteAssignment)
	auth.POST("/assignments/:assignment_id/assign-worker", assignmentCtrl.AttachWorker)
	auth.POST("/assignments/:assignment_id/unassign-worker", assignmentCtrl.DetachWorker)
	auth.PATCH("/assignments/:assignment_id/reschedule", assignmentCtrl.Reschedule)
	auth.PATCH("/assignments/:assignment_id/status", assignmentCtrl.UpdateStatus)
	auth.GET("/schedule/conflict-check", assignmentCtrl.CheckConflict)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.DELETE("/customers/:customer_id", customerCtrl.DeleteCustomer)

	// SERVICE ITEMS
	auth.GET("/service-items", serviceCtrl.GetAllServiceItems)
	auth.POST("/service-items", serviceCtrl.CreateServiceItem)
	auth.GET("/service-items/:item_id", serviceCtrl.GetServiceItemByID)
	auth.PATCH("/service-items/:item_id", serviceCtrl.UpdateServiceItem)
	auth.DELETE("/service-items/:item_id", serviceCtrl.DeleteServiceItem)

	// DASHBOARD
	auth.GET("/dashboard/stats", dashboardCtrl.GetStats)

	// Live schedule board
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.AuthMiddleware())
	{
		wsGroup.GET("/board", controllers.ScheduleBoardHandler)
	}

	return r
}
