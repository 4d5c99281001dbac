package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Category    string  `gorm:"default:'General'" json:"category"`
	SKU         *string `gorm:"uniqueIndex;size:64" json:"sku"` // nullable, unique when set
	Supplier    string  `json:"supplier"`

	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost        float64 `gorm:"type:decimal(10,2);default:0.0" json:"cost"`
	Quantity    int     `gorm:"default:0" json:"quantity"`
	MinQuantity int     `gorm:"default:0" json:"minQuantity"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// LowStock reports whether the item has dropped to or below its minimum quantity
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinQuantity
}
