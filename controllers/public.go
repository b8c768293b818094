// controllers/public.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gestion-salon-backend/config"
	"gestion-salon-backend/models"
	"gestion-salon-backend/services"
	"gestion-salon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicBookingInput is the self-service booking payload: an existing
// client reference or inline identity fields, with phone mandatory
type PublicBookingInput struct {
	SalonID     uuid.UUID   `json:"salonId" binding:"required"`
	ClientID    *uuid.UUID  `json:"clientId"`
	Phone       string      `json:"phone"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	ServiceIDs  []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
	ScheduledAt time.Time   `json:"scheduledAt" binding:"required"`
	Notes       string      `json:"notes"`
}

// LookupInput identifies a client by phone for self-service lookup
type LookupInput struct {
	SalonID uuid.UUID `json:"salonId" binding:"required"`
	Phone   string    `json:"phone" binding:"required"`
}

// PublicCancelInput is the phone-verified cancellation payload
type PublicCancelInput struct {
	Phone  string `json:"phone" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// PublicAppointmentView is an appointment as shown to the client, with
// the cancellation window already evaluated
type PublicAppointmentView struct {
	ID             uuid.UUID `json:"id"`
	ScheduledAt    time.Time `json:"scheduledAt"`
	Duration       int       `json:"duration"`
	Status         string    `json:"status"`
	EstimatedPrice int64     `json:"estimatedPrice"`
	DepositAmount  int64     `json:"depositAmount"`
	DepositPaid    bool      `json:"depositPaid"`
	Services       []string  `json:"services"`
	CanCancel      bool      `json:"canCancel"`
}

// PublicCreateAppointment books an appointment from the public site.
// Self-service bookings always start pending; a staff member confirms.
func PublicCreateAppointment(c *gin.Context) {
	var input PublicBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", input.SalonID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Salon not found")
		return
	}

	// Resolve the client: existing reference, or find-or-create by phone
	var client models.Client
	if input.ClientID != nil {
		if err := config.DB.Where("salon_id = ? AND id = ?", salon.ID, *input.ClientID).
			First(&client).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
			return
		}
	} else {
		if !utils.ValidatePhone(input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "A valid phone number is required")
			return
		}
		phone := utils.NormalizePhone(input.Phone)
		err := config.DB.Where("salon_id = ? AND phone = ?", salon.ID, phone).First(&client).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			client = models.Client{
				SalonID:  salon.ID,
				Name:     input.Name,
				Phone:    phone,
				Email:    input.Email,
				IsActive: true,
			}
			if err := config.DB.Create(&client).Error; err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
				return
			}
		} else if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	selected, err := fetchServicesInOrder(salon.ID, input.ServiceIDs)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	lines, duration, price := buildServiceLines(selected)
	deposit := services.ComputeRequiredDeposit(selected)

	appt := models.Appointment{
		SalonID:          salon.ID,
		ClientID:         client.ID,
		ScheduledAt:      input.ScheduledAt,
		Duration:         duration,
		Services:         lines,
		Status:           models.StatusPending,
		EstimatedPrice:   price,
		DepositRequested: services.DepositRequested(selected),
		DepositAmount:    deposit,
		Notes:            input.Notes,
	}

	if err := config.DB.Create(&appt).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment":     appt,
		"requiredDeposit": deposit,
	})
}

// canCancelAppointment evaluates the client-side cancellation window:
// not terminal, and outside the salon's cutoff before the start time.
func canCancelAppointment(appt *models.Appointment, salon *models.Salon, now time.Time) bool {
	if appt.IsTerminal() {
		return false
	}
	cutoff := appt.ScheduledAt.Add(-time.Duration(salon.CancelCutoffMinutes) * time.Minute)
	return now.Before(cutoff)
}

// MyAppointments lists a client's appointments, resolved by phone
func MyAppointments(c *gin.Context) {
	var input LookupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", input.SalonID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Salon not found")
		return
	}

	phone := utils.NormalizePhone(input.Phone)
	var client models.Client
	if err := config.DB.Where("salon_id = ? AND phone = ?", salon.ID, phone).
		First(&client).Error; err != nil {
		// No client yet simply means no appointments
		c.JSON(http.StatusOK, []PublicAppointmentView{})
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Preload("Services").
		Where("salon_id = ? AND client_id = ?", salon.ID, client.ID).
		Order("scheduled_at DESC").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	now := time.Now()
	views := make([]PublicAppointmentView, 0, len(appointments))
	for i := range appointments {
		appt := &appointments[i]
		names := make([]string, 0, len(appt.Services))
		for _, s := range appt.Services {
			names = append(names, s.ServiceName)
		}
		views = append(views, PublicAppointmentView{
			ID:             appt.ID,
			ScheduledAt:    appt.ScheduledAt,
			Duration:       appt.Duration,
			Status:         appt.Status,
			EstimatedPrice: appt.EstimatedPrice,
			DepositAmount:  appt.DepositAmount,
			DepositPaid:    appt.DepositPaid,
			Services:       names,
			CanCancel:      canCancelAppointment(appt, &salon, now),
		})
	}

	c.JSON(http.StatusOK, views)
}

// PublicCancelAppointment cancels an appointment on the client's own
// request, verified by phone and bounded by the cutoff window
func PublicCancelAppointment(c *gin.Context) {
	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input PublicCancelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appt models.Appointment
	if err := config.DB.Preload("Client").First(&appt, "id = ?", apptUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if appt.Client.Phone != utils.NormalizePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusForbidden, "Phone number does not match this appointment")
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", appt.SalonID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if !canCancelAppointment(&appt, &salon, time.Now()) {
		utils.RespondWithError(c, http.StatusConflict,
			"This appointment can no longer be cancelled online; please call the salon")
		return
	}

	next, err := services.NextStatus(&appt, services.EventCancel,
		services.TransitionContext{Reason: input.Reason})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	if err := config.DB.Model(&appt).Updates(map[string]interface{}{
		"status":              next,
		"cancellation_reason": input.Reason,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// GetAvailableSlots proxies the external scheduling service; slots are
// never computed here
func GetAvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "date query parameter is required")
		return
	}

	duration := 60
	if d := c.Query("duration"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid duration")
			return
		}
		duration = parsed
	}

	if slotClient == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Slot service not configured")
		return
	}

	slots, err := slotClient.AvailableSlots(c.Request.Context(), date, duration)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Slot service unavailable, please retry")
		return
	}

	c.JSON(http.StatusOK, slots)
}
