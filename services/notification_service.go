// services/notification_service.go
package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotificationService sends booking reminders to customers the day before
// their scheduled job and records every send attempt.
type NotificationService struct {
	db           *gorm.DB
	client       *twilio.RestClient
	cron         *cron.Cron
	smsFrom      string
	whatsappFrom string
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		smsFrom:      cfg.TwilioPhoneNumber,
		whatsappFrom: cfg.TwilioWhatsAppFrom,
	}
}

// StartScheduler runs the reminder pass hourly; SendDailyReminders itself
// checks the configured hour so settings changes take effect without restart.
func (s *NotificationService) StartScheduler() {
	s.cron = cron.New()

	s.cron.AddFunc("0 * * * *", func() {
		s.SendDailyReminders(time.Now())
	})

	s.cron.Start()
	log.Println("Notification scheduler started")
}

// StopScheduler stops the cron loop
func (s *NotificationService) StopScheduler() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SendDailyReminders sends a reminder for every job scheduled tomorrow,
// once per day at the configured hour.
func (s *NotificationService) SendDailyReminders(now time.Time) {
	var settings models.NotificationSetting
	if err := s.db.First(&settings).Error; err != nil {
		log.Printf("Failed to load notification settings: %v", err)
		return
	}

	if !settings.BookingReminders {
		return
	}
	if now.Hour() != settings.ReminderHour {
		return
	}

	log.Println("Starting daily reminder processing...")

	jobs, err := s.upcomingJobs(now)
	if err != nil {
		log.Printf("Failed to fetch upcoming jobs: %v", err)
		return
	}

	for _, job := range jobs {
		s.sendReminder(job, settings)
	}

	log.Println("Daily reminder processing completed")
}

// upcomingJobs returns tomorrow's scheduled jobs that have not yet been
// reminded, with customers preloaded.
func (s *NotificationService) upcomingJobs(now time.Time) ([]models.Job, error) {
	tomorrow := utils.BeginningOfDay(now).AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var jobs []models.Job
	err := s.db.
		Preload("Customer").
		Where("scheduled_date >= ? AND scheduled_date < ?", tomorrow, dayAfter).
		Where("status IN ? AND is_active = ?", []string{models.JobPending, models.JobInProgress}, true).
		Where("id NOT IN (?)", s.db.Model(&models.NotificationLog{}).
			Select("job_id").Where("job_id IS NOT NULL AND status = ?", "sent")).
		Find(&jobs).Error
	return jobs, err
}

func (s *NotificationService) sendReminder(job models.Job, settings models.NotificationSetting) {
	if job.Customer == nil {
		return
	}
	customer := job.Customer

	message := settings.TemplateMessage
	if message == "" {
		message = "Hi [CustomerName], this is a reminder of your [JobType] appointment tomorrow at [Time]."
	}
	message = strings.ReplaceAll(message, "[CustomerName]", customer.FirstName)
	message = strings.ReplaceAll(message, "[JobType]", job.JobType)
	message = strings.ReplaceAll(message, "[Time]", job.ScheduledTime)

	// WhatsApp when enabled and the phone is E.164, otherwise SMS
	channel := "sms"
	to := customer.Phone
	if settings.WhatsAppNotifications && strings.HasPrefix(customer.Phone, "+") {
		to = "whatsapp:" + customer.Phone
		channel = "whatsapp"
	} else if !settings.SMSNotifications {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + s.whatsappFrom)
	} else {
		params.SetFrom(s.smsFrom)
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Phone)
	}

	jobID := job.ID
	entry := models.NotificationLog{
		CustomerID:   customer.ID,
		JobID:        &jobID,
		Channel:      channel,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log reminder for customer %s: %v", customer.ID, err)
	}
}

// EnsureDefaultSettings creates the settings row on first boot
func EnsureDefaultSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.NotificationSetting{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := models.NotificationSetting{
		BookingReminders: true,
		SMSNotifications: true,
		ReminderHour:     9,
		TemplateMessage:  "Hi [CustomerName], this is a reminder of your [JobType] appointment tomorrow at [Time].",
	}
	if err := db.Create(&settings).Error; err != nil {
		return fmt.Errorf("failed to create default notification settings: %w", err)
	}
	return nil
}
