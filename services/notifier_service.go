// services/notifier_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gestion-salon-backend/models"
	"gestion-salon-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type NotifierService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotifierService(db *gorm.DB) *NotifierService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotifierService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *NotifierService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM: remind clients with an appointment tomorrow
	c.AddFunc("0 8 * * *", func() {
		s.SendDailyReminders()
	})

	c.Start()
	log.Println("Appointment reminder scheduler started")
}

func (s *NotifierService) SendDailyReminders() {
	log.Println("Starting daily appointment reminder processing...")

	// Tomorrow in the salon's local time, not UTC.
	start := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	end := start.Add(24 * time.Hour)

	var appointments []models.Appointment
	if err := s.db.Preload("Client").
		Where("scheduled_at >= ? AND scheduled_at < ? AND status IN ?",
			start, end, []string{models.StatusPending, models.StatusConfirmed}).
		Find(&appointments).Error; err != nil {
		log.Printf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	for i := range appointments {
		appt := &appointments[i]
		message := fmt.Sprintf("Bonjour %s, rappel de votre rendez-vous demain à %s.",
			appt.Client.Name, appt.ScheduledAt.Format("15h04"))
		s.sendSMS(appt, "reminder", message)
	}

	log.Println("Daily appointment reminder processing completed")
}

// SendConfirmation notifies the client that their appointment is
// confirmed. Failures are logged but never fail the confirming request.
func (s *NotifierService) SendConfirmation(appt *models.Appointment) {
	var salon models.Salon
	if err := s.db.First(&salon, "id = ?", appt.SalonID).Error; err != nil || !salon.SMSNotifications {
		return
	}
	message := fmt.Sprintf("Bonjour %s, votre rendez-vous du %s à %s est confirmé. %s",
		appt.Client.Name,
		appt.ScheduledAt.Format("02/01/2006"),
		appt.ScheduledAt.Format("15h04"),
		salon.Name)
	s.sendSMS(appt, "confirmation", message)
}

func (s *NotifierService) sendSMS(appt *models.Appointment, kind, message string) {
	if appt.Client.Phone == "" {
		return
	}

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(appt.Client.Phone, "+") {
		to = "whatsapp:" + appt.Client.Phone
		channel = "whatsapp"
	} else {
		to = appt.Client.Phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send %s to %s: %v", kind, appt.Client.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("%s sent to %s, SID: %s", kind, appt.Client.Phone, *resp.Sid)
	} else {
		log.Printf("%s sent to %s, but no SID returned", kind, appt.Client.Phone)
	}

	notificationLog := models.NotificationLog{
		SalonID:       appt.SalonID,
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		Kind:          kind,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}

	if err := s.db.Create(&notificationLog).Error; err != nil {
		log.Printf("Failed to log notification for appointment %s: %v", appt.ID, err)
	}
}
