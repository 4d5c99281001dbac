package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationSetting is the single row backing the settings panel. Booking
// reminders go out the day before a job's scheduled date.
type NotificationSetting struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	BookingReminders      bool   `gorm:"default:true" json:"bookingReminders"`
	SMSNotifications      bool   `gorm:"default:true" json:"smsNotifications"`
	WhatsAppNotifications bool   `gorm:"default:false" json:"whatsAppNotifications"`
	ReminderHour          int    `gorm:"default:9" json:"reminderHour"` // 0-23, local time
	TemplateMessage       string `gorm:"type:text" json:"templateMessage"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NotificationLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	JobID      *uuid.UUID `gorm:"type:uuid;index" json:"jobId"`

	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // sms, whatsapp
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	SentAt       time.Time `json:"sentAt"`

	CreatedAt time.Time `json:"createdAt"`
}

func (n *NotificationSetting) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
