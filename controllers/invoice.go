// controllers/invoice.go
package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceItemInput defines the structure for an invoice line item
type InvoiceItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64 `json:"unitPrice" binding:"required,min=0"`
}

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	CustomerID    uuid.UUID          `json:"customerId" binding:"required"`
	JobID         *uuid.UUID         `json:"jobId"`
	Items         []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
	TaxRate       float64            `json:"taxRate" binding:"min=0"`
	Discount      float64            `json:"discount" binding:"min=0"`
	Status        string             `json:"status" binding:"omitempty,oneof=draft pending paid overdue cancelled partial"`
	PaymentMethod string             `json:"paymentMethod"`
	DueDate       *time.Time         `json:"dueDate"`
	Notes         string             `json:"notes"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating an invoice
type UpdateInvoiceInput struct {
	Items         *[]InvoiceItemInput `json:"items" binding:"omitempty,min=1,dive"`
	TaxRate       *float64            `json:"taxRate" binding:"omitempty,min=0"`
	Discount      *float64            `json:"discount" binding:"omitempty,min=0"`
	Status        *string             `json:"status" binding:"omitempty,oneof=draft pending paid overdue cancelled partial"`
	PaymentMethod *string             `json:"paymentMethod"`
	PaidAmount    *float64            `json:"paidAmount" binding:"omitempty,min=0"`
	DueDate       *time.Time          `json:"dueDate"`
	Notes         *string             `json:"notes"`
}

// PatchInvoiceStatusInput defines the status-only PATCH body
type PatchInvoiceStatusInput struct {
	Status     string   `json:"status" binding:"required,oneof=draft pending paid overdue cancelled partial"`
	PaidAmount *float64 `json:"paidAmount" binding:"omitempty,min=0"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// generateInvoiceNumber returns the next number in the INV-YYYYMM-NNNN
// sequence, counting this month's invoices inside the caller's transaction.
// The unique index on invoice_number surfaces a collision under concurrent
// creation as an insert error.
func generateInvoiceNumber(tx *gorm.DB, now time.Time) (string, error) {
	firstOfMonth := utils.BeginningOfMonth(now)

	var count int64
	err := tx.Model(&models.Invoice{}).
		Where("created_at >= ?", firstOfMonth).
		Count(&count).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("INV-%s-%04d", now.Format("200601"), count+1), nil
}

func computeTotals(items []models.InvoiceItem, taxRate, discount float64) (subtotal, taxAmount, total float64) {
	for _, item := range items {
		subtotal += item.TotalPrice
	}
	subtotal = round2(subtotal)
	taxAmount = round2(subtotal * taxRate / 100)
	total = round2(subtotal + taxAmount - discount)
	return subtotal, taxAmount, total
}

// CreateInvoice creates a new invoice with its line items in one transaction
func CreateInvoice(c *gin.Context) {
	var input CreateInvoiceInput
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

	if input.JobID != nil {
		var job models.Job
		if err := config.DB.First(&job, "id = ?", *input.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Job not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		if job.CustomerID != input.CustomerID {
			utils.RespondWithError(c, http.StatusBadRequest, "Job does not belong to this customer")
			return
		}
	}

	var items []models.InvoiceItem
	for _, item := range input.Items {
		items = append(items, models.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  round2(float64(item.Quantity) * item.UnitPrice),
			IsActive:    true,
		})
	}

	subtotal, taxAmount, total := computeTotals(items, input.TaxRate, input.Discount)

	status := input.Status
	if status == "" {
		status = models.InvoicePending
	}

	invoice := models.Invoice{
		CustomerID:    input.CustomerID,
		JobID:         input.JobID,
		Subtotal:      subtotal,
		TaxRate:       input.TaxRate,
		TaxAmount:     taxAmount,
		Discount:      input.Discount,
		TotalAmount:   total,
		Status:        status,
		PaymentMethod: input.PaymentMethod,
		DueDate:       input.DueDate,
		Notes:         input.Notes,
		IsActive:      true,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	number, err := generateInvoiceNumber(tx, time.Now())
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate invoice number")
		return
	}
	invoice.InvoiceNumber = number

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	for i := range items {
		items[i].InvoiceID = invoice.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice items")
		return
	}

	tx.Commit()

	invoice.Items = items
	c.JSON(http.StatusCreated, gin.H{"invoice": invoice})
}

// GenerateInvoiceFromJob derives an invoice from an existing job: one line
// item at the job's total, same transaction pattern as CreateInvoice.
func GenerateInvoiceFromJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
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

	var existing models.Invoice
	if err := config.DB.Where("job_id = ? AND is_active = ?", job.ID, true).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Job already has an invoice")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	dueDate := time.Now().AddDate(0, 0, 14)

	invoice := models.Invoice{
		CustomerID:  job.CustomerID,
		JobID:       &job.ID,
		Subtotal:    job.TotalAmount,
		TotalAmount: job.TotalAmount,
		Status:      models.InvoicePending,
		DueDate:     &dueDate,
		IsActive:    true,
	}

	item := models.InvoiceItem{
		Description: job.JobType,
		Quantity:    1,
		UnitPrice:   job.TotalAmount,
		TotalPrice:  job.TotalAmount,
		IsActive:    true,
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	number, err := generateInvoiceNumber(tx, time.Now())
	if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate invoice number")
		return
	}
	invoice.InvoiceNumber = number

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	item.InvoiceID = invoice.ID
	if err := tx.Create(&item).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice items")
		return
	}

	tx.Commit()

	invoice.Items = []models.InvoiceItem{item}
	c.JSON(http.StatusCreated, gin.H{"invoice": invoice})
}

// GetInvoices retrieves invoices with filters, search and pagination
func GetInvoices(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.Invoice{})

	if status := c.Query("status"); status != "" {
		if !models.ValidInvoiceStatus(status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(invoice_number) LIKE LOWER(?)", "%"+search+"%")
	}
	if c.Query("includeInactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count invoices")
		return
	}

	var invoices []models.Invoice
	if err := query.Scopes(utils.Paginate(p)).
		Preload("Customer").Preload("Items").
		Order("created_at DESC").Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":   invoices,
		"pagination": p.Meta(total),
	})
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.
		Preload("Customer").Preload("Job").Preload("Items").
		First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice updates an existing invoice. Replacing the items clears the
// old lines and recomputes totals inside a transaction.
func UpdateInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Preload("Items").First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Items != nil {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}

		var items []models.InvoiceItem
		for _, item := range *input.Items {
			items = append(items, models.InvoiceItem{
				InvoiceID:   invoice.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				TotalPrice:  round2(float64(item.Quantity) * item.UnitPrice),
				IsActive:    true,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice items")
			return
		}
		invoice.Items = items
	}

	if input.TaxRate != nil {
		invoice.TaxRate = *input.TaxRate
	}
	if input.Discount != nil {
		invoice.Discount = *input.Discount
	}
	if input.Items != nil || input.TaxRate != nil || input.Discount != nil {
		invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount =
			computeTotals(invoice.Items, invoice.TaxRate, invoice.Discount)
	}
	if input.Status != nil {
		applyStatus(&invoice, *input.Status, input.PaidAmount)
	} else if input.PaidAmount != nil {
		invoice.PaidAmount = *input.PaidAmount
	}
	if input.PaymentMethod != nil {
		invoice.PaymentMethod = *input.PaymentMethod
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, invoice)
}

// PatchInvoiceStatus updates only the payment status of an invoice
func PatchInvoiceStatus(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input PatchInvoiceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	applyStatus(&invoice, input.Status, input.PaidAmount)

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// applyStatus sets the invoice status; marking an invoice paid stamps the
// paid date and defaults the paid amount to the full total.
func applyStatus(invoice *models.Invoice, status string, paidAmount *float64) {
	invoice.Status = status
	if paidAmount != nil {
		invoice.PaidAmount = *paidAmount
	}
	if status == models.InvoicePaid {
		now := time.Now()
		invoice.PaidDate = &now
		if paidAmount == nil {
			invoice.PaidAmount = invoice.TotalAmount
		}
	}
}

// DeleteInvoice soft deletes an invoice and its line items
func DeleteInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
		Update("is_active", false).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}
	if err := tx.Model(&models.InvoiceItem{}).Where("invoice_id = ?", invoice.ID).
		Update("is_active", false).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice items")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

// GetInvoiceStats returns invoice totals by status plus revenue and overdue figures
func GetInvoiceStats(c *gin.Context) {
	now := time.Now()
	firstOfMonth := utils.BeginningOfMonth(now)
	firstOfYear := utils.BeginningOfYear(now)

	byStatus := gin.H{}
	for _, status := range []string{
		models.InvoiceDraft, models.InvoicePending, models.InvoicePaid,
		models.InvoiceOverdue, models.InvoiceCancelled, models.InvoicePartial,
	} {
		var n int64
		if err := config.DB.Model(&models.Invoice{}).
			Where("status = ? AND is_active = ?", status, true).
			Count(&n).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get invoice stats")
			return
		}
		byStatus[status] = n
	}

	var monthRevenue, yearRevenue, outstanding float64
	config.DB.Model(&models.Invoice{}).
		Where("status = ? AND paid_date >= ? AND is_active = ?", models.InvoicePaid, firstOfMonth, true).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&monthRevenue)
	config.DB.Model(&models.Invoice{}).
		Where("status = ? AND paid_date >= ? AND is_active = ?", models.InvoicePaid, firstOfYear, true).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&yearRevenue)
	config.DB.Model(&models.Invoice{}).
		Where("status IN ? AND is_active = ?", []string{models.InvoicePending, models.InvoiceOverdue, models.InvoicePartial}, true).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").Scan(&outstanding)

	var overdueCount int64
	config.DB.Model(&models.Invoice{}).
		Where("due_date < ? AND status NOT IN ? AND is_active = ?",
			utils.BeginningOfDay(now), []string{models.InvoicePaid, models.InvoiceCancelled}, true).
		Count(&overdueCount)

	c.JSON(http.StatusOK, gin.H{
		"byStatus":     byStatus,
		"monthRevenue": monthRevenue,
		"yearRevenue":  yearRevenue,
		"outstanding":  outstanding,
		"overdueCount": overdueCount,
	})
}
