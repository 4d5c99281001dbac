package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job statuses
const (
	JobPending    = "pending"
	JobInProgress = "in_progress"
	JobCompleted  = "completed"
	JobCancelled  = "cancelled"
)

type Job struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	CarID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"carId"`
	AssignedTo *uuid.UUID `gorm:"type:uuid;index" json:"assignedTo"`

	JobType     string `gorm:"not null" json:"jobType"`
	Description string `json:"description"`
	Status      string `gorm:"type:varchar(20);default:'pending'" json:"status"` // pending, in_progress, completed, cancelled

	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Discount    float64 `gorm:"type:decimal(10,2);default:0.0" json:"discount"`
	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	ScheduledDate time.Time  `json:"scheduledDate"`
	ScheduledTime string     `json:"scheduledTime"`
	StartTime     *time.Time `json:"startTime"`
	EndTime       *time.Time `json:"endTime"`
	Notes         string     `json:"notes"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Car      *Car      `gorm:"foreignKey:CarID" json:"car,omitempty"`
	Assignee *User     `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:JobID" json:"invoices,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return
}

// ValidJobStatus reports whether status is one of the known job statuses
func ValidJobStatus(status string) bool {
	switch status {
	case JobPending, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}
