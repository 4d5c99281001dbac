package controllers

import (
	"net/http"
	"testing"

	"detailpro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCar(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "cars@example.com")

	r := newTestRouter()
	r.POST("/api/cars", CreateCar)

	w := performRequest(r, "POST", "/api/cars", map[string]interface{}{
		"customerId":   customer.ID.String(),
		"make":         "Honda",
		"model":        "Civic",
		"year":         2022,
		"color":        "Black",
		"licensePlate": "abc-999",
		"vin":          "1HGBH41JXMN109186",
	})
	assertStatus(t, w, http.StatusCreated)

	body := decodeBody(t, w)
	car := body["car"].(map[string]interface{})
	// Plates are stored uppercase
	assert.Equal(t, "ABC-999", car["licensePlate"])
	assert.Equal(t, "1HGBH41JXMN109186", car["vin"])
}

func TestCreateCarDuplicatePlate(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "plates@example.com")
	createTestCar(t, db, customer, "DUP-001")

	r := newTestRouter()
	r.POST("/api/cars", CreateCar)

	w := performRequest(r, "POST", "/api/cars", map[string]interface{}{
		"customerId":   customer.ID.String(),
		"make":         "Honda",
		"model":        "Civic",
		"licensePlate": "dup-001",
	})
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "License plate already exists", decodeBody(t, w)["error"])
}

func TestCreateCarDuplicateVIN(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "vins@example.com")
	vin := "1HGBH41JXMN109186"
	car := models.Car{
		CustomerID:   customer.ID,
		Make:         "Toyota",
		Model:        "Camry",
		LicensePlate: "VIN-001",
		VIN:          &vin,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&car).Error)

	r := newTestRouter()
	r.POST("/api/cars", CreateCar)

	w := performRequest(r, "POST", "/api/cars", map[string]interface{}{
		"customerId":   customer.ID.String(),
		"make":         "Toyota",
		"model":        "Camry",
		"licensePlate": "VIN-002",
		"vin":          vin,
	})
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "VIN already exists", decodeBody(t, w)["error"])
}

func TestCreateCarInvalidVIN(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "badvin@example.com")

	r := newTestRouter()
	r.POST("/api/cars", CreateCar)

	// Too short, and I/O/Q are never valid VIN characters
	w := performRequest(r, "POST", "/api/cars", map[string]interface{}{
		"customerId":   customer.ID.String(),
		"make":         "Ford",
		"model":        "Focus",
		"licensePlate": "BVN-001",
		"vin":          "IOQ123",
	})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestCreateCarUnknownCustomer(t *testing.T) {
	setupTestDB(t)

	r := newTestRouter()
	r.POST("/api/cars", CreateCar)

	w := performRequest(r, "POST", "/api/cars", map[string]interface{}{
		"customerId":   "6a0f36f5-6a52-43c4-8b1e-42e5c9eabcde",
		"make":         "Ford",
		"model":        "Focus",
		"licensePlate": "NOC-001",
	})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestGetCarsByCustomer(t *testing.T) {
	db := setupTestDB(t)
	first := createTestCustomer(t, db, "garage1@example.com")
	second := createTestCustomer(t, db, "garage2@example.com")
	createTestCar(t, db, first, "GRG-001")
	createTestCar(t, db, first, "GRG-002")
	createTestCar(t, db, second, "GRG-003")

	r := newTestRouter()
	r.GET("/api/cars/customer/:customerId", GetCarsByCustomer)

	w := performRequest(r, "GET", "/api/cars/customer/"+first.ID.String(), nil)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	cars := body["cars"].([]interface{})
	assert.Len(t, cars, 2)
}

func TestUpdateCarClearVIN(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "clearvin@example.com")
	vin := "1HGBH41JXMN109186"
	car := models.Car{
		CustomerID:   customer.ID,
		Make:         "Mazda",
		Model:        "3",
		LicensePlate: "CLV-001",
		VIN:          &vin,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&car).Error)

	r := newTestRouter()
	r.PUT("/api/cars/:id", UpdateCar)

	w := performRequest(r, "PUT", "/api/cars/"+car.ID.String(), map[string]interface{}{
		"vin": "",
	})
	assertStatus(t, w, http.StatusOK)

	var reloaded models.Car
	require.NoError(t, db.First(&reloaded, "id = ?", car.ID).Error)
	assert.Nil(t, reloaded.VIN)
}

func TestDeleteCarSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "delcar@example.com")
	car := createTestCar(t, db, customer, "DLC-001")

	r := newTestRouter()
	r.DELETE("/api/cars/:id", DeleteCar)
	r.GET("/api/cars/customer/:customerId", GetCarsByCustomer)

	w := performRequest(r, "DELETE", "/api/cars/"+car.ID.String(), nil)
	assertStatus(t, w, http.StatusOK)

	var reloaded models.Car
	require.NoError(t, db.First(&reloaded, "id = ?", car.ID).Error)
	assert.False(t, reloaded.IsActive)

	w = performRequest(r, "GET", "/api/cars/customer/"+customer.ID.String(), nil)
	assertStatus(t, w, http.StatusOK)
	assert.Empty(t, decodeBody(t, w)["cars"])
}
