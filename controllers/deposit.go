// controllers/deposit.go
package controllers

import (
	"net/http"
	"time"

	"gestion-salon-backend/config"
	"gestion-salon-backend/models"
	"gestion-salon-backend/services"
	"gestion-salon-backend/utils"

	"github.com/gin-gonic/gin"
)

// UpdateDepositInput defines the expected JSON structure for editing
// the requested deposit amount
type UpdateDepositInput struct {
	Amount int64 `json:"amount" binding:"min=0"`
}

// MarkDepositPaidInput records an out-of-band deposit settlement with a
// single instrument (typically cash handed over at the counter)
type MarkDepositPaidInput struct {
	Instrument string `json:"instrument"`
	Reference  string `json:"reference"`
}

// PayDepositInput settles the requested deposit with one or more
// payment instruments
type PayDepositInput struct {
	Payments []services.PaymentEntry `json:"payments" binding:"required,min=1"`
}

// UpdateDepositAmount edits the requested deposit. Only possible while
// the deposit is unpaid and the appointment is still open; once paid,
// the amount is immutable history.
func UpdateDepositAmount(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	appt, ok := loadAppointment(c, salonUUID)
	if !ok {
		return
	}

	if appt.IsTerminal() {
		utils.RespondWithError(c, http.StatusConflict, "Appointment is closed; deposit can no longer change")
		return
	}
	if appt.DepositPaid {
		utils.RespondWithError(c, http.StatusConflict, "Deposit has been paid and can no longer change")
		return
	}

	var input UpdateDepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := config.DB.Model(appt).Update("deposit_amount", input.Amount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update deposit amount")
		return
	}
	appt.DepositAmount = input.Amount

	c.JSON(http.StatusOK, appt)
}

// recordDepositPayments appends deposit payment rows and marks the
// deposit paid, all in one transaction. The recorded deposit amount
// becomes the sum of its payment rows, keeping both in agreement.
func recordDepositPayments(c *gin.Context, appt *models.Appointment, entries []services.PaymentEntry) bool {
	userUUID, ok := userIDFromContext(c)
	if !ok {
		return false
	}

	var total int64
	for _, e := range entries {
		total += e.Amount
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, e := range entries {
		payment := models.Payment{
			SalonID:           appt.SalonID,
			AppointmentID:     appt.ID,
			Kind:              models.PaymentKindDeposit,
			Amount:            e.Amount,
			Instrument:        e.Instrument,
			ExternalReference: e.Reference,
			RecordedByUserID:  &userUUID,
			PaidAt:            time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record deposit payment")
			return false
		}
	}

	if err := tx.Model(appt).Updates(map[string]interface{}{
		"deposit_paid":   true,
		"deposit_amount": total,
	}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to mark deposit paid")
		return false
	}

	tx.Commit()

	appt.DepositPaid = true
	appt.DepositAmount = total
	return true
}

// MarkDepositPaid flags the deposit as settled without going through
// the reconciliation form, recording a single payment row for the
// requested amount
func MarkDepositPaid(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	appt, ok := loadAppointment(c, salonUUID)
	if !ok {
		return
	}

	if appt.IsTerminal() {
		utils.RespondWithError(c, http.StatusConflict, "Appointment is closed")
		return
	}
	if appt.DepositPaid {
		utils.RespondWithError(c, http.StatusConflict, "Deposit is already paid")
		return
	}
	if appt.DepositAmount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No deposit is requested on this appointment")
		return
	}

	var input MarkDepositPaidInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Instrument == "" {
		input.Instrument = models.InstrumentCash
	}

	entries := []services.PaymentEntry{
		{Instrument: input.Instrument, Amount: appt.DepositAmount, Reference: input.Reference},
	}
	if _, err := services.Reconcile(appt.DepositAmount, entries); err != nil {
		respondDomainError(c, err)
		return
	}

	if !recordDepositPayments(c, appt, entries) {
		return
	}

	c.JSON(http.StatusOK, appt)
}

// PayDeposit settles the requested deposit with a reconciled set of
// payment instruments
func PayDeposit(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	appt, ok := loadAppointment(c, salonUUID)
	if !ok {
		return
	}

	if appt.IsTerminal() {
		utils.RespondWithError(c, http.StatusConflict, "Appointment is closed")
		return
	}
	if appt.DepositPaid {
		utils.RespondWithError(c, http.StatusConflict, "Deposit is already paid")
		return
	}
	if appt.DepositAmount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No deposit is requested on this appointment")
		return
	}

	var input PayDepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	rec, err := services.Reconcile(appt.DepositAmount, input.Payments)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if !rec.IsSettled {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Payments do not cover the requested deposit")
		return
	}

	if !recordDepositPayments(c, appt, services.SubmittableEntries(input.Payments)) {
		return
	}

	token, _ := services.GenerateReceiptToken(appt.ID.String(), services.ReceiptDeposit)

	c.JSON(http.StatusOK, gin.H{
		"appointment":    appt,
		"reconciliation": rec,
		"receiptToken":   token,
	})
}
