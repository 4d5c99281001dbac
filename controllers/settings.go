package controllers

import (
	"net/http"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpdateNotificationSettingsInput defines the settings panel update body
type UpdateNotificationSettingsInput struct {
	BookingReminders      *bool   `json:"bookingReminders"`
	SMSNotifications      *bool   `json:"smsNotifications"`
	WhatsAppNotifications *bool   `json:"whatsAppNotifications"`
	ReminderHour          *int    `json:"reminderHour" binding:"omitempty,min=0,max=23"`
	TemplateMessage       *string `json:"templateMessage"`
}

// GetNotificationSettings reads the notification settings row
func GetNotificationSettings(c *gin.Context) {
	var settings models.NotificationSetting
	if err := config.DB.First(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch notification settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateNotificationSettings updates the notification settings row
func UpdateNotificationSettings(c *gin.Context) {
	var input UpdateNotificationSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var settings models.NotificationSetting
	if err := config.DB.First(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch notification settings")
		return
	}

	if input.BookingReminders != nil {
		settings.BookingReminders = *input.BookingReminders
	}
	if input.SMSNotifications != nil {
		settings.SMSNotifications = *input.SMSNotifications
	}
	if input.WhatsAppNotifications != nil {
		settings.WhatsAppNotifications = *input.WhatsAppNotifications
	}
	if input.ReminderHour != nil {
		settings.ReminderHour = *input.ReminderHour
	}
	if input.TemplateMessage != nil {
		settings.TemplateMessage = *input.TemplateMessage
	}

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// GetNotificationLogs lists the reminder send history
func GetNotificationLogs(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := config.DB.Model(&models.NotificationLog{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count notification logs")
		return
	}

	var logs []models.NotificationLog
	if err := query.Scopes(utils.Paginate(p)).Order("sent_at DESC").Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve notification logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": p.Meta(total),
	})
}
