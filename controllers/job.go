package controllers

import (
	"errors"
	"net/http"
	"time"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateJobInput defines the expected JSON structure for creating a job
type CreateJobInput struct {
	CustomerID    uuid.UUID  `json:"customerId" binding:"required"`
	CarID         uuid.UUID  `json:"carId" binding:"required"`
	AssignedTo    *uuid.UUID `json:"assignedTo"`
	JobType       string     `json:"jobType" binding:"required"`
	Description   string     `json:"description"`
	Price         float64    `json:"price" binding:"required,min=0"`
	Discount      float64    `json:"discount" binding:"min=0"`
	ScheduledDate time.Time  `json:"scheduledDate" binding:"required"`
	ScheduledTime string     `json:"scheduledTime"`
	Notes         string     `json:"notes"`
}

// UpdateJobInput defines the expected JSON structure for updating a job
type UpdateJobInput struct {
	AssignedTo    *uuid.UUID `json:"assignedTo"`
	JobType       *string    `json:"jobType"`
	Description   *string    `json:"description"`
	Status        *string    `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	Price         *float64   `json:"price" binding:"omitempty,min=0"`
	Discount      *float64   `json:"discount" binding:"omitempty,min=0"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	ScheduledTime *string    `json:"scheduledTime"`
	Notes         *string    `json:"notes"`
	IsActive      *bool      `json:"isActive"`
}

// CreateJob books a new detailing job
func CreateJob(c *gin.Context) {
	var input CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	var car models.Car
	if err := config.DB.First(&car, "id = ?", input.CarID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Car not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if car.CustomerID != input.CustomerID {
		utils.RespondWithError(c, http.StatusBadRequest, "Car does not belong to this customer")
		return
	}

	if input.AssignedTo != nil {
		var assignee models.User
		if err := config.DB.First(&assignee, "id = ? AND is_active = ?", *input.AssignedTo, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Assigned user not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	if input.Discount > input.Price {
		utils.RespondWithError(c, http.StatusBadRequest, "Discount cannot exceed price")
		return
	}

	job := models.Job{
		CustomerID:    input.CustomerID,
		CarID:         input.CarID,
		AssignedTo:    input.AssignedTo,
		JobType:       input.JobType,
		Description:   input.Description,
		Status:        models.JobPending,
		Price:         input.Price,
		Discount:      input.Discount,
		TotalAmount:   input.Price - input.Discount,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		Notes:         input.Notes,
		IsActive:      true,
	}

	if err := config.DB.Create(&job).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create job")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// GetJobs retrieves jobs with filters, search and pagination
func GetJobs(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.Job{})

	if status := c.Query("status"); status != "" {
		if !models.ValidJobStatus(status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if carID := c.Query("carId"); carID != "" {
		query = query.Where("car_id = ?", carID)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(job_type) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("scheduled_date >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("scheduled_date < ?", t.AddDate(0, 0, 1))
		}
	}
	if c.Query("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count jobs")
		return
	}

	var jobs []models.Job
	if err := query.Scopes(utils.Paginate(p)).
		Preload("Customer").Preload("Car").Preload("Assignee").
		Order("scheduled_date DESC").Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":       jobs,
		"pagination": p.Meta(total),
	})
}

// GetJob retrieves a specific job by ID with its associations
func GetJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var job models.Job
	if err := config.DB.
		Preload("Customer").Preload("Car").Preload("Assignee").
		Preload("Invoices", "is_active = ?", true).
		First(&job, "id = ?", jobUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, job)
}

// GetJobsByCustomer lists a customer's active jobs
func GetJobsByCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var jobs []models.Job
	if err := config.DB.Where("customer_id = ? AND is_active = ?", customerUUID, true).
		Preload("Car").Order("scheduled_date DESC").Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJobsByCar lists a car's active jobs
func GetJobsByCar(c *gin.Context) {
	carUUID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	var jobs []models.Job
	if err := config.DB.Where("car_id = ? AND is_active = ?", carUUID, true).
		Preload("Customer").Order("scheduled_date DESC").Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// UpdateJob updates an existing job. Status transitions stamp start/end times,
// and completing a job rolls its total into the customer's spend.
func UpdateJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var input UpdateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var job models.Job
	if err := config.DB.First(&job, "id = ?", jobUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.AssignedTo != nil {
		var assignee models.User
		if err := config.DB.First(&assignee, "id = ? AND is_active = ?", *input.AssignedTo, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Assigned user not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		job.AssignedTo = input.AssignedTo
	}
	if input.JobType != nil {
		job.JobType = *input.JobType
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Price != nil {
		job.Price = *input.Price
	}
	if input.Discount != nil {
		job.Discount = *input.Discount
	}
	if input.Price != nil || input.Discount != nil {
		if job.Discount > job.Price {
			utils.RespondWithError(c, http.StatusBadRequest, "Discount cannot exceed price")
			return
		}
		job.TotalAmount = job.Price - job.Discount
	}
	if input.ScheduledDate != nil {
		job.ScheduledDate = *input.ScheduledDate
	}
	if input.ScheduledTime != nil {
		job.ScheduledTime = *input.ScheduledTime
	}
	if input.Notes != nil {
		job.Notes = *input.Notes
	}
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}

	completedNow := false
	if input.Status != nil && *input.Status != job.Status {
		now := time.Now()
		switch *input.Status {
		case models.JobInProgress:
			if job.StartTime == nil {
				job.StartTime = &now
			}
		case models.JobCompleted:
			if job.StartTime == nil {
				job.StartTime = &now
			}
			job.EndTime = &now
			completedNow = true
		}
		job.Status = *input.Status
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(&job).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update job")
		return
	}

	if completedNow {
		if err := tx.Model(&models.Customer{}).Where("id = ?", job.CustomerID).
			Updates(map[string]interface{}{
				"total_spent": gorm.Expr("total_spent + ?", job.TotalAmount),
				"last_visit":  job.EndTime,
			}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, job)
}

// DeleteJob soft deletes a job
func DeleteJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	result := config.DB.Model(&models.Job{}).
		Where("id = ?", jobUUID).
		Update("is_active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete job")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// GetJobStats returns job counts by status plus today's schedule and monthly revenue
func GetJobStats(c *gin.Context) {
	now := time.Now()
	today := utils.BeginningOfDay(now)
	firstOfMonth := utils.BeginningOfMonth(now)

	counts := gin.H{}
	for _, status := range []string{models.JobPending, models.JobInProgress, models.JobCompleted, models.JobCancelled} {
		var n int64
		if err := config.DB.Model(&models.Job{}).
			Where("status = ? AND is_active = ?", status, true).
			Count(&n).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get job stats")
			return
		}
		counts[status] = n
	}

	var todayJobs int64
	config.DB.Model(&models.Job{}).
		Where("scheduled_date >= ? AND scheduled_date < ? AND is_active = ?", today, today.AddDate(0, 0, 1), true).
		Count(&todayJobs)

	var monthRevenue float64
	config.DB.Model(&models.Job{}).
		Where("status = ? AND end_time >= ? AND is_active = ?", models.JobCompleted, firstOfMonth, true).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&monthRevenue)

	c.JSON(http.StatusOK, gin.H{
		"byStatus":     counts,
		"todayJobs":    todayJobs,
		"monthRevenue": monthRevenue,
	})
}
