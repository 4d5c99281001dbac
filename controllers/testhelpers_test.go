package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"detailpro-backend/config"
	"detailpro-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
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
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	return body
}

func createTestCustomer(t *testing.T, db *gorm.DB, email string) models.Customer {
	t.Helper()

	customer := models.Customer{
		FirstName: "Test",
		LastName:  "Customer",
		Email:     email,
		Phone:     "+15551230001",
		IsActive:  true,
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return customer
}

func createTestCar(t *testing.T, db *gorm.DB, customer models.Customer, plate string) models.Car {
	t.Helper()

	car := models.Car{
		CustomerID:   customer.ID,
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2020,
		LicensePlate: plate,
		IsActive:     true,
	}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("Failed to create test car: %v", err)
	}
	return car
}

func createTestJob(t *testing.T, db *gorm.DB, customer models.Customer, car models.Car, total float64) models.Job {
	t.Helper()

	job := models.Job{
		CustomerID:    customer.ID,
		CarID:         car.ID,
		JobType:       "Full Detail",
		Status:        models.JobPending,
		Price:         total,
		TotalAmount:   total,
		ScheduledDate: time.Now().AddDate(0, 0, 1),
		ScheduledTime: "10:00",
		IsActive:      true,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("Failed to create test job: %v", err)
	}
	return job
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Fatalf("Expected status %d, got %d: %s", expected, w.Code, w.Body.String())
	}
}
