package routes

import (
	"detailpro-backend/config"
	"detailpro-backend/controllers"
	"detailpro-backend/middleware"
	"detailpro-backend/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", controllers.Login)

		auth.Use(middleware.AuthMiddleware())
		auth.GET("/profile", controllers.GetProfile)
		auth.POST("/change-password", controllers.ChangePassword)

		// User management is admin only
		users := auth.Group("/users", middleware.RequireRole(models.RoleAdmin))
		{
			users.GET("", controllers.GetUsers)
			users.POST("", controllers.CreateUser)
			users.GET("/:id", controllers.GetUser)
			users.PUT("/:id", controllers.UpdateUser)
			users.DELETE("/:id", controllers.DeleteUser)
		}
	}

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		finance := middleware.RequireRole(models.RoleAdmin, models.RoleAccountant)

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/stats", controllers.GetCustomerStats)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", finance, controllers.DeleteCustomer)
		}

		// Car routes
		cars := api.Group("/cars")
		{
			cars.POST("", controllers.CreateCar)
			cars.GET("", controllers.GetCars)
			cars.GET("/customer/:customerId", controllers.GetCarsByCustomer)
			cars.GET("/:id", controllers.GetCar)
			cars.PUT("/:id", controllers.UpdateCar)
			cars.DELETE("/:id", finance, controllers.DeleteCar)
		}

		// Job routes
		jobs := api.Group("/jobs")
		{
			jobs.POST("", controllers.CreateJob)
			jobs.GET("", controllers.GetJobs)
			jobs.GET("/stats", controllers.GetJobStats)
			jobs.GET("/customer/:customerId", controllers.GetJobsByCustomer)
			jobs.GET("/car/:carId", controllers.GetJobsByCar)
			jobs.GET("/:id", controllers.GetJob)
			jobs.PUT("/:id", controllers.UpdateJob)
			jobs.DELETE("/:id", finance, controllers.DeleteJob)
		}

		// Billing routes
		billing := api.Group("/billing")
		{
			billing.GET("", controllers.GetInvoices)
			billing.GET("/stats", finance, controllers.GetInvoiceStats)
			billing.GET("/:id", controllers.GetInvoice)
			billing.POST("", finance, controllers.CreateInvoice)
			billing.POST("/generate-from-job/:jobId", finance, controllers.GenerateInvoiceFromJob)
			billing.PUT("/:id", finance, controllers.UpdateInvoice)
			billing.PATCH("/:id", finance, controllers.PatchInvoiceStatus)
			billing.DELETE("/:id", finance, controllers.DeleteInvoice)
		}

		// Inventory routes
		inventory := api.Group("/inventory")
		{
			inventory.POST("", controllers.CreateInventoryItem)
			inventory.GET("", controllers.GetInventoryItems)
			inventory.GET("/:id", controllers.GetInventoryItem)
			inventory.PUT("/:id", controllers.UpdateInventoryItem)
			inventory.DELETE("/:id", finance, controllers.DeleteInventoryItem)
		}

		// Dashboard routes
		analytics := controllers.AnalyticsController{}
		api.GET("/dashboard/stats", controllers.GetDashboardStats)
		api.GET("/dashboard/analytics", analytics.GetAnalytics)

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("/notifications", controllers.GetNotificationSettings)
			settings.PUT("/notifications", middleware.RequireRole(models.RoleAdmin), controllers.UpdateNotificationSettings)
			settings.GET("/notifications/logs", controllers.GetNotificationLogs)
		}
	}

	return r
}
