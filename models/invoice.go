package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses
const (
	InvoiceDraft     = "draft"
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
	InvoicePartial   = "partial"
)

type Invoice struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	JobID      *uuid.UUID `gorm:"type:uuid;index" json:"jobId"`

	InvoiceNumber string `gorm:"uniqueIndex;not null" json:"invoiceNumber"`

	Subtotal    float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	TaxRate     float64 `gorm:"type:decimal(5,2);default:0.0" json:"taxRate"`
	TaxAmount   float64 `gorm:"type:decimal(10,2);default:0.0" json:"taxAmount"`
	Discount    float64 `gorm:"type:decimal(10,2);default:0.0" json:"discount"`
	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	Status        string     `gorm:"type:varchar(20);default:'pending'" json:"status"` // draft, pending, paid, overdue, cancelled, partial
	PaymentMethod string     `json:"paymentMethod"`
	PaidAmount    float64    `gorm:"type:decimal(10,2);default:0.0" json:"paidAmount"`
	DueDate       *time.Time `json:"dueDate"`
	PaidDate      *time.Time `json:"paidDate"`
	Notes         string     `json:"notes"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Job      *Job          `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"invoiceId"`

	Description string  `gorm:"not null" json:"description"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice  float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// ValidInvoiceStatus reports whether status is one of the known invoice statuses
func ValidInvoiceStatus(status string) bool {
	switch status {
	case InvoiceDraft, InvoicePending, InvoicePaid, InvoiceOverdue, InvoiceCancelled, InvoicePartial:
		return true
	}
	return false
}
