package controllers

import (
	"errors"
	"net/http"
	"strings"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCarInput defines the expected JSON structure for creating a car
type CreateCarInput struct {
	CustomerID   uuid.UUID `json:"customerId" binding:"required"`
	Make         string    `json:"make" binding:"required"`
	Model        string    `json:"model" binding:"required"`
	Year         int       `json:"year" binding:"omitempty,min=1900"`
	Color        string    `json:"color"`
	LicensePlate string    `json:"licensePlate" binding:"required"`
	VIN          *string   `json:"vin"`
	Notes        string    `json:"notes"`
}

// UpdateCarInput defines the expected JSON structure for updating a car
type UpdateCarInput struct {
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	Color        *string `json:"color"`
	LicensePlate *string `json:"licensePlate"`
	VIN          *string `json:"vin"`
	Notes        *string `json:"notes"`
	IsActive     *bool   `json:"isActive"`
}

// CreateCar registers a new car for an existing customer
func CreateCar(c *gin.Context) {
	var input CreateCarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	plate := strings.ToUpper(strings.TrimSpace(input.LicensePlate))
	if !utils.ValidateLicensePlate(plate) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid license plate format")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var existing models.Car
	if err := config.DB.Where("license_plate = ?", plate).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "License plate already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var vin *string
	if input.VIN != nil && *input.VIN != "" {
		normalized := strings.ToUpper(strings.TrimSpace(*input.VIN))
		if !utils.ValidateVIN(normalized) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid VIN format")
			return
		}
		if err := config.DB.Where("vin = ?", normalized).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "VIN already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		vin = &normalized
	}

	car := models.Car{
		CustomerID:   input.CustomerID,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		Color:        input.Color,
		LicensePlate: plate,
		VIN:          vin,
		Notes:        input.Notes,
		IsActive:     true,
	}

	if err := config.DB.Create(&car).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create car")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"car": car})
}

// GetCars retrieves cars with search, customer filter and pagination
func GetCars(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.Car{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(make) LIKE LOWER(?) OR LOWER(model) LIKE LOWER(?) OR LOWER(license_plate) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if c.Query("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count cars")
		return
	}

	var cars []models.Car
	if err := query.Scopes(utils.Paginate(p)).Preload("Customer").
		Order("created_at DESC").Find(&cars).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve cars")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cars":       cars,
		"pagination": p.Meta(total),
	})
}

// GetCar retrieves a specific car by ID
func GetCar(c *gin.Context) {
	carUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	var car models.Car
	if err := config.DB.Preload("Customer").First(&car, "id = ?", carUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Car not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, car)
}

// GetCarsByCustomer lists a customer's active cars
func GetCarsByCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var cars []models.Car
	if err := config.DB.Where("customer_id = ? AND is_active = ?", customerUUID, true).
		Order("created_at DESC").Find(&cars).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve cars")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cars": cars})
}

// UpdateCar updates an existing car
func UpdateCar(c *gin.Context) {
	carUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	var input UpdateCarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var car models.Car
	if err := config.DB.First(&car, "id = ?", carUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Car not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Make != nil {
		car.Make = *input.Make
	}
	if input.Model != nil {
		car.Model = *input.Model
	}
	if input.Year != nil {
		car.Year = *input.Year
	}
	if input.Color != nil {
		car.Color = *input.Color
	}
	if input.LicensePlate != nil {
		plate := strings.ToUpper(strings.TrimSpace(*input.LicensePlate))
		if !utils.ValidateLicensePlate(plate) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid license plate format")
			return
		}
		if plate != car.LicensePlate {
			var existing models.Car
			if err := config.DB.Where("license_plate = ?", plate).First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusBadRequest, "License plate already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		car.LicensePlate = plate
	}
	if input.VIN != nil {
		if *input.VIN == "" {
			car.VIN = nil
		} else {
			normalized := strings.ToUpper(strings.TrimSpace(*input.VIN))
			if !utils.ValidateVIN(normalized) {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid VIN format")
				return
			}
			if car.VIN == nil || normalized != *car.VIN {
				var existing models.Car
				if err := config.DB.Where("vin = ?", normalized).First(&existing).Error; err == nil {
					utils.RespondWithError(c, http.StatusBadRequest, "VIN already exists")
					return
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
					return
				}
			}
			car.VIN = &normalized
		}
	}
	if input.Notes != nil {
		car.Notes = *input.Notes
	}
	if input.IsActive != nil {
		car.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&car).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update car")
		return
	}

	c.JSON(http.StatusOK, car)
}

// DeleteCar soft deletes a car
func DeleteCar(c *gin.Context) {
	carUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	result := config.DB.Model(&models.Car{}).
		Where("id = ?", carUUID).
		Update("is_active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete car")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Car not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}
