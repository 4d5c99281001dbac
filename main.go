package main

import (
	"fmt"
	"log"
	"os"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/routes"
	"detailpro-backend/services"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Configuration error: %v", err)
		os.Exit(1)
	}

	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTExpiresInHours)

	if err := config.ConnectDB(cfg.DatabaseURL); err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Car{},
		&models.Job{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.InventoryItem{},
		&models.NotificationSetting{},
		&models.NotificationLog{},
	); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	if err := seedAdminUser(); err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		os.Exit(1)
	}
	if err := services.EnsureDefaultSettings(config.DB); err != nil {
		log.Printf("Failed to seed notification settings: %v", err)
		os.Exit(1)
	}

	notifier := services.NewNotificationService(config.DB, cfg)
	notifier.StartScheduler()

	r := routes.SetupRouter(cfg)
	printRoutes(r)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}

// seedAdminUser creates the initial admin account when no active admin exists
func seedAdminUser() error {
	var count int64
	if err := config.DB.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		log.Println("ADMIN_PASSWORD not set, using default admin password")
	}

	admin := models.User{
		Username:  "admin",
		Email:     "admin@detailpro.local",
		Password:  password, // hashed in BeforeCreate hook
		FirstName: "Admin",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Seeded default admin user")
	return nil
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
