package models

import (
	"time"

	"detailpro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleStaff      = "staff"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`

	Role string `gorm:"type:varchar(20);not null;default:'staff'" json:"role"` // admin, accountant or staff

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	Jobs []Job `gorm:"foreignKey:AssignedTo" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate initializes the UUID and hashes the password
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// ValidRole reports whether role is one of the known user roles
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAccountant, RoleStaff:
		return true
	}
	return false
}
