package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"not null" json:"phone"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`

	TotalSpent float64    `gorm:"type:decimal(10,2);default:0.0" json:"totalSpent"`
	LastVisit  *time.Time `json:"lastVisit"`
	IsActive   bool       `gorm:"default:true" json:"isActive"`

	Cars     []Car     `gorm:"foreignKey:CustomerID" json:"cars,omitempty"`
	Jobs     []Job     `gorm:"foreignKey:CustomerID" json:"jobs,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
