// controllers/appointment.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"gestion-salon-backend/config"
	"gestion-salon-backend/models"
	"gestion-salon-backend/services"
	"gestion-salon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	ClientID       uuid.UUID   `json:"clientId" binding:"required"`
	StylistID      *uuid.UUID  `json:"stylistId"`
	ScheduledAt    time.Time   `json:"scheduledAt" binding:"required"`
	ServiceIDs     []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
	Status         string      `json:"status"`
	Duration       *int        `json:"duration"`       // override, minutes
	EstimatedPrice *int64      `json:"estimatedPrice"` // override
	DepositAmount  *int64      `json:"depositAmount"`  // override of the computed deposit
	Notes          string      `json:"notes"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	StylistID      *uuid.UUID   `json:"stylistId"`
	ScheduledAt    *time.Time   `json:"scheduledAt"`
	ServiceIDs     *[]uuid.UUID `json:"serviceIds"`
	Duration       *int         `json:"duration"`
	EstimatedPrice *int64       `json:"estimatedPrice"`
	Notes          *string      `json:"notes"`
}

// loadAppointment fetches a salon-scoped appointment by path id. On
// failure the response has already been written.
func loadAppointment(c *gin.Context, salonUUID uuid.UUID, preloads ...string) (*models.Appointment, bool) {
	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return nil, false
	}

	query := config.DB.Where("salon_id = ? AND id = ?", salonUUID, apptUUID)
	for _, p := range preloads {
		query = query.Preload(p)
	}

	var appt models.Appointment
	if err := query.First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &appt, true
}

// fetchServicesInOrder resolves service IDs to salon services, keeping
// the selection order.
func fetchServicesInOrder(salonUUID uuid.UUID, ids []uuid.UUID) ([]models.Service, error) {
	var found []models.Service
	if err := config.DB.Where("salon_id = ? AND id IN ? AND is_active = true", salonUUID, ids).
		Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	ordered := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: service %s not found", services.ErrValidation, id)
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}

func buildServiceLines(selected []models.Service) ([]models.AppointmentService, int, int64) {
	var lines []models.AppointmentService
	var duration int
	var price int64
	for i, s := range selected {
		lines = append(lines, models.AppointmentService{
			ServiceID:   s.ID,
			ServiceName: s.Name,
			Price:       s.Price,
			Duration:    s.Duration,
			Position:    i,
		})
		duration += s.Duration
		price += s.Price
	}
	return lines, duration, price
}

// CreateAppointment creates a new appointment for the salon
func CreateAppointment(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	userUUID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Appointments start in pending or confirmed, nothing else
	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	if !services.ValidInitialStatus(status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Initial status must be pending or confirmed")
		return
	}

	// Validate client exists in the same salon
	var client models.Client
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, input.ClientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	selected, err := fetchServicesInOrder(salonUUID, input.ServiceIDs)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	lines, duration, price := buildServiceLines(selected)
	if input.Duration != nil {
		duration = *input.Duration
	}
	if input.EstimatedPrice != nil {
		price = *input.EstimatedPrice
	}

	deposit := services.ComputeRequiredDeposit(selected)
	if input.DepositAmount != nil {
		deposit = *input.DepositAmount
	}

	appt := models.Appointment{
		SalonID:          salonUUID,
		ClientID:         input.ClientID,
		StylistID:        input.StylistID,
		ScheduledAt:      input.ScheduledAt,
		Duration:         duration,
		Services:         lines,
		Status:           status,
		EstimatedPrice:   price,
		DepositRequested: services.DepositRequested(selected),
		DepositAmount:    deposit,
		Notes:            input.Notes,
		CreatedByUserID:  &userUUID,
	}

	if err := config.DB.Create(&appt).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// GetAppointments retrieves the salon's appointments, optionally
// filtered by status, client or date range
func GetAppointments(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Services").Preload("Client").
		Where("salon_id = ?", salonUUID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if clientID := c.Query("clientId"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("scheduled_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("scheduled_at < ?", to)
	}

	var appointments []models.Appointment
	if err := query.Order("scheduled_at").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	appt, ok := loadAppointment(c, salonUUID, "Services", "Client", "Payments")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, appt)
}

// UpdateAppointment updates an existing appointment. Status never
// changes here; that goes through the transition endpoints.
func UpdateAppointment(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	appt, ok := loadAppointment(c, salonUUID, "Services")
	if !ok {
		return
	}

	if appt.IsTerminal() {
		utils.RespondWithError(c, http.StatusConflict, "Appointment is closed and can no longer be edited")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if input.StylistID != nil {
		appt.StylistID = input.StylistID
	}
	if input.ScheduledAt != nil {
		appt.ScheduledAt = *input.ScheduledAt
	}

	// If services are being replaced, rebuild the lines and the derived fields
	if input.ServiceIDs != nil {
		if len(*input.ServiceIDs) == 0 {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusBadRequest, "At least one service is required")
			return
		}

		selected, err := fetchServicesInOrder(salonUUID, *input.ServiceIDs)
		if err != nil {
			tx.Rollback()
			respondDomainError(c, err)
			return
		}

		if err := tx.Where("appointment_id = ?", appt.ID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing services")
			return
		}

		lines, duration, price := buildServiceLines(selected)
		for i := range lines {
			lines[i].AppointmentID = appt.ID
		}
		appt.Services = lines
		appt.Duration = duration
		appt.EstimatedPrice = price
		appt.DepositRequested = services.DepositRequested(selected)

		// The requested deposit follows the selection while it is still
		// unpaid; once paid it is history and never recomputed.
		if !appt.DepositPaid {
			appt.DepositAmount = services.ComputeRequiredDeposit(selected)
		}
	}

	if input.Duration != nil {
		appt.Duration = *input.Duration
	}
	if input.EstimatedPrice != nil {
		appt.EstimatedPrice = *input.EstimatedPrice
	}
	if input.Notes != nil {
		appt.Notes = *input.Notes
	}

	if err := tx.Save(appt).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment hard deletes an appointment and its dependent rows.
// This is an explicit destructive action outside the lifecycle.
func DeleteAppointment(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	appt, ok := loadAppointment(c, salonUUID)
	if !ok {
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("appointment_id = ?", appt.ID).
		Delete(&models.AppointmentService{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment services")
		return
	}

	if err := tx.Unscoped().Delete(appt).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

// CancelInput carries the mandatory cancellation reason
type CancelInput struct {
	Reason string `json:"reason"`
}

// applyTransition runs one lifecycle event through the state machine
// and persists the new status only if the guard passes.
func applyTransition(c *gin.Context, event string) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	appt, ok := loadAppointment(c, salonUUID, "Client")
	if !ok {
		return
	}

	ctx := services.TransitionContext{HasSale: appt.SaleID != nil}
	if event == services.EventCancel {
		var input CancelInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		ctx.Reason = input.Reason
	}

	next, err := services.NextStatus(appt, event, ctx)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	updates := map[string]interface{}{"status": next}
	if event == services.EventCancel {
		updates["cancellation_reason"] = ctx.Reason
	}

	if err := config.DB.Model(appt).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment status")
		return
	}
	appt.Status = next
	if event == services.EventCancel {
		appt.CancellationReason = &ctx.Reason
	}

	if event == services.EventConfirm && notifier != nil {
		go notifier.SendConfirmation(appt)
	}

	c.JSON(http.StatusOK, appt)
}

// ConfirmAppointment moves a pending appointment to confirmed
func ConfirmAppointment(c *gin.Context) {
	applyTransition(c, services.EventConfirm)
}

// CancelAppointment cancels a pending or confirmed appointment
func CancelAppointment(c *gin.Context) {
	applyTransition(c, services.EventCancel)
}

// CompleteAppointment closes an appointment that has been finalized
func CompleteAppointment(c *gin.Context) {
	applyTransition(c, services.EventComplete)
}

// MarkInProgress records that the client has arrived
func MarkInProgress(c *gin.Context) {
	applyTransition(c, services.EventMarkInProgress)
}

// MarkNoShow closes an appointment whose client never arrived
func MarkNoShow(c *gin.Context) {
	applyTransition(c, services.EventNoShow)
}
