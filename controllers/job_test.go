package controllers

import (
	"net/http"
	"testing"
	"time"

	"detailpro-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJob(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "jobs@example.com")
	car := createTestCar(t, db, customer, "JOB-001")

	r := newTestRouter()
	r.POST("/api/jobs", CreateJob)

	w := performRequest(r, "POST", "/api/jobs", map[string]interface{}{
		"customerId":    customer.ID.String(),
		"carId":         car.ID.String(),
		"jobType":       "Full Detail",
		"price":         150,
		"discount":      10,
		"scheduledDate": time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"scheduledTime": "10:30",
	})
	assertStatus(t, w, http.StatusCreated)

	body := decodeBody(t, w)
	job := body["job"].(map[string]interface{})
	assert.Equal(t, models.JobPending, job["status"])
	assert.Equal(t, float64(140), job["totalAmount"])
}

func TestCreateJobCarOwnershipMismatch(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestCustomer(t, db, "owner@example.com")
	other := createTestCustomer(t, db, "other@example.com")
	car := createTestCar(t, db, owner, "OWN-001")

	r := newTestRouter()
	r.POST("/api/jobs", CreateJob)

	w := performRequest(r, "POST", "/api/jobs", map[string]interface{}{
		"customerId":    other.ID.String(),
		"carId":         car.ID.String(),
		"jobType":       "Wash",
		"price":         30,
		"scheduledDate": time.Now().Format(time.RFC3339),
	})
	assertStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Car does not belong to this customer", decodeBody(t, w)["error"])
}

func TestCreateJobDiscountExceedsPrice(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "discount@example.com")
	car := createTestCar(t, db, customer, "DSC-001")

	r := newTestRouter()
	r.POST("/api/jobs", CreateJob)

	w := performRequest(r, "POST", "/api/jobs", map[string]interface{}{
		"customerId":    customer.ID.String(),
		"carId":         car.ID.String(),
		"jobType":       "Wash",
		"price":         30,
		"discount":      40,
		"scheduledDate": time.Now().Format(time.RFC3339),
	})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestUpdateJobStartsOnInProgress(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "progress@example.com")
	car := createTestCar(t, db, customer, "PRG-001")
	job := createTestJob(t, db, customer, car, 90)

	r := newTestRouter()
	r.PUT("/api/jobs/:id", UpdateJob)

	w := performRequest(r, "PUT", "/api/jobs/"+job.ID.String(), map[string]interface{}{
		"status": "in_progress",
	})
	assertStatus(t, w, http.StatusOK)

	var reloaded models.Job
	require.NoError(t, db.First(&reloaded, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobInProgress, reloaded.Status)
	assert.NotNil(t, reloaded.StartTime)
	assert.Nil(t, reloaded.EndTime)
}

func TestUpdateJobCompletionUpdatesCustomer(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "complete@example.com")
	car := createTestCar(t, db, customer, "CMP-001")
	job := createTestJob(t, db, customer, car, 120)

	r := newTestRouter()
	r.PUT("/api/jobs/:id", UpdateJob)

	w := performRequest(r, "PUT", "/api/jobs/"+job.ID.String(), map[string]interface{}{
		"status": "completed",
	})
	assertStatus(t, w, http.StatusOK)

	var reloaded models.Job
	require.NoError(t, db.First(&reloaded, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobCompleted, reloaded.Status)
	assert.NotNil(t, reloaded.StartTime)
	assert.NotNil(t, reloaded.EndTime)

	var reloadedCustomer models.Customer
	require.NoError(t, db.First(&reloadedCustomer, "id = ?", customer.ID).Error)
	assert.Equal(t, float64(120), reloadedCustomer.TotalSpent)
	assert.NotNil(t, reloadedCustomer.LastVisit)
}

func TestUpdateJobInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "badstatus@example.com")
	car := createTestCar(t, db, customer, "BAD-001")
	job := createTestJob(t, db, customer, car, 50)

	r := newTestRouter()
	r.PUT("/api/jobs/:id", UpdateJob)

	w := performRequest(r, "PUT", "/api/jobs/"+job.ID.String(), map[string]interface{}{
		"status": "finished",
	})
	assertStatus(t, w, http.StatusBadRequest)
}

func TestGetJobsByCustomer(t *testing.T) {
	db := setupTestDB(t)
	first := createTestCustomer(t, db, "first@example.com")
	second := createTestCustomer(t, db, "second@example.com")
	firstCar := createTestCar(t, db, first, "FST-001")
	secondCar := createTestCar(t, db, second, "SND-001")
	createTestJob(t, db, first, firstCar, 40)
	createTestJob(t, db, first, firstCar, 60)
	createTestJob(t, db, second, secondCar, 80)

	r := newTestRouter()
	r.GET("/api/jobs/customer/:customerId", GetJobsByCustomer)

	w := performRequest(r, "GET", "/api/jobs/customer/"+first.ID.String(), nil)
	assertStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	jobs := body["jobs"].([]interface{})
	assert.Len(t, jobs, 2)
}

func TestGetJobsStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "filter@example.com")
	car := createTestCar(t, db, customer, "FLT-001")
	pending := createTestJob(t, db, customer, car, 40)
	done := createTestJob(t, db, customer, car, 60)
	require.NoError(t, db.Model(&done).Update("status", models.JobCompleted).Error)

	r := newTestRouter()
	r.GET("/api/jobs", GetJobs)

	w := performRequest(r, "GET", "/api/jobs?status=pending", nil)
	assertStatus(t, w, http.StatusOK)
	jobs := decodeBody(t, w)["jobs"].([]interface{})
	require.Len(t, jobs, 1)
	assert.Equal(t, pending.ID.String(), jobs[0].(map[string]interface{})["id"])

	w = performRequest(r, "GET", "/api/jobs?status=finished", nil)
	assertStatus(t, w, http.StatusBadRequest)
}

func TestDeleteJobSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db, "deljob@example.com")
	car := createTestCar(t, db, customer, "DEL-001")
	job := createTestJob(t, db, customer, car, 70)

	r := newTestRouter()
	r.DELETE("/api/jobs/:id", DeleteJob)
	r.GET("/api/jobs/:id", GetJob)

	w := performRequest(r, "DELETE", "/api/jobs/"+job.ID.String(), nil)
	assertStatus(t, w, http.StatusOK)

	var reloaded models.Job
	require.NoError(t, db.First(&reloaded, "id = ?", job.ID).Error)
	assert.False(t, reloaded.IsActive)

	w = performRequest(r, "GET", "/api/jobs/"+job.ID.String(), nil)
	assertStatus(t, w, http.StatusOK)
}
