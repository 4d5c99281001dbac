package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Car struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	Make         string  `gorm:"not null" json:"make"`
	Model        string  `gorm:"not null" json:"model"`
	Year         int     `json:"year"`
	Color        string  `json:"color"`
	LicensePlate string  `gorm:"uniqueIndex;size:32;not null" json:"licensePlate"`
	VIN          *string `gorm:"uniqueIndex;size:64" json:"vin"` // nullable, unique when set
	Notes        string  `json:"notes"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Jobs     []Job     `gorm:"foreignKey:CarID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Car) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
