// controllers/finalize.go
package controllers

import (
	"errors"
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

// ExtraServiceInput is a service added at settlement time
type ExtraServiceInput struct {
	ServiceID uuid.UUID  `json:"serviceId" binding:"required"`
	StylistID *uuid.UUID `json:"stylistId"`
}

// ProductLineInput is a retail product sold at settlement time
type ProductLineInput struct {
	ProductID   uuid.UUID `json:"productId" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,min=1"`
	StockSource string    `json:"stockSource" binding:"required,oneof=for-sale salon-use"`
}

// FinalizeAppointmentInput is the single settlement payload, validated
// wholesale before anything is written
type FinalizeAppointmentInput struct {
	ExtraServices []ExtraServiceInput     `json:"extraServices"`
	Products      []ProductLineInput      `json:"products"`
	Payments      []services.PaymentEntry `json:"payments"`
	Notes         string                  `json:"notes"`
}

// FinalizeAppointment converts a fulfilled appointment into a sale:
// original services, add-ons and products, deposit credit, reconciled
// payments, stock decrement and the completed status, atomically.
func FinalizeAppointment(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}
	userUUID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	appt, ok := loadAppointment(c, salonUUID, "Services", "Client", "Payments")
	if !ok {
		return
	}

	if appt.SaleID != nil {
		utils.RespondWithError(c, http.StatusConflict, "Appointment is already finalized")
		return
	}

	// The appointment must be in a state that can reach completed.
	if _, err := services.NextStatus(appt, services.EventComplete,
		services.TransitionContext{HasSale: true}); err != nil {
		respondDomainError(c, err)
		return
	}

	var input FinalizeAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// Resolve extra services
	var extras []services.ExtraServiceLine
	for _, ex := range input.ExtraServices {
		var svc models.Service
		if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, ex.ServiceID).
			First(&svc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Service not found: "+ex.ServiceID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		extras = append(extras, services.ExtraServiceLine{Service: svc, StylistID: ex.StylistID})
	}

	// Resolve products with their current pool quantities
	var productLines []services.ProductLine
	for _, pl := range input.Products {
		var product models.Product
		if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, pl.ProductID).
			First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Product not found: "+pl.ProductID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		productLines = append(productLines, services.ProductLine{
			Product:     product,
			Quantity:    pl.Quantity,
			StockSource: pl.StockSource,
		})
	}

	result, err := services.BuildFinalization(appt, extras, productLines, input.Payments, salon.TaxPercent)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// Start transaction
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	now := time.Now()
	sale := models.Sale{
		SalonID:         salonUUID,
		AppointmentID:   appt.ID,
		ClientID:        appt.ClientID,
		CreatedByUserID: &userUUID,
		SaleNumber:      "VTE-" + now.Format("20060102") + "-" + utils.GenerateRandomString(6),
		SaleDate:        now,
		TotalHT:         result.TotalHT,
		Tax:             result.Tax,
		TotalTTC:        result.TotalTTC,
		DepositCredit:   result.DepositCredit,
		Notes:           input.Notes,
		Items:           result.Items,
	}

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create sale")
		return
	}

	// Append the settlement payments
	for _, e := range result.Payments {
		payment := models.Payment{
			SalonID:           salonUUID,
			AppointmentID:     appt.ID,
			Kind:              models.PaymentKindBalance,
			Amount:            e.Amount,
			Instrument:        e.Instrument,
			ExternalReference: e.Reference,
			RecordedByUserID:  &userUUID,
			PaidAt:            now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
			return
		}
	}

	// Decrement stock per pool. The guarded update re-checks quantities,
	// so a concurrent sale cannot take a pool below zero.
	for _, pl := range productLines {
		column := "stock_for_sale"
		if pl.StockSource == models.StockSourceSalonUse {
			column = "stock_salon_use"
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND "+column+" >= ?", pl.Product.ID, pl.Quantity).
			Update(column, gorm.Expr(column+" - ?", pl.Quantity))
		if res.Error != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update stock")
			return
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			respondDomainError(c, &services.StockError{
				ProductName: pl.Product.Name,
				Source:      pl.StockSource,
				Requested:   pl.Quantity,
				Available:   pl.Product.StockFor(pl.StockSource),
			})
			return
		}
	}

	// Update client stats
	if err := tx.Model(&models.Client{}).Where("id = ?", appt.ClientID).
		Updates(map[string]interface{}{
			"total_visits": gorm.Expr("total_visits + ?", 1),
			"total_spent":  gorm.Expr("total_spent + ?", result.TotalTTC),
			"last_visit":   now,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client stats")
		return
	}

	// Close the appointment
	if err := tx.Model(appt).Updates(map[string]interface{}{
		"status":  models.StatusCompleted,
		"sale_id": sale.ID,
	}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete appointment")
		return
	}

	tx.Commit()

	appt.Status = models.StatusCompleted
	appt.SaleID = &sale.ID

	token, _ := services.GenerateReceiptToken(appt.ID.String(), services.ReceiptFinal)

	c.JSON(http.StatusCreated, gin.H{
		"sale":           sale,
		"reconciliation": result.Reconciliation,
		"receiptToken":   token,
	})
}

// GetDepositReceipt returns the deposit receipt document. The link is
// token-authenticated so it can be opened outside a session.
func GetDepositReceipt(c *gin.Context) {
	receiptByToken(c, services.ReceiptDeposit)
}

// GetFinalReceipt returns the final sale receipt document
func GetFinalReceipt(c *gin.Context) {
	receiptByToken(c, services.ReceiptFinal)
}

func receiptByToken(c *gin.Context, kind string) {
	apptID := c.Param("id")
	if err := services.VerifyReceiptToken(c.Query("token"), apptID, kind); err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired receipt token")
		return
	}

	var appt models.Appointment
	if err := config.DB.Preload("Services").Preload("Client").Preload("Payments").
		First(&appt, "id = ?", apptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", appt.SalonID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if kind == services.ReceiptDeposit {
		c.JSON(http.StatusOK, services.BuildDepositReceipt(&salon, &appt))
		return
	}

	if appt.SaleID == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment has not been finalized")
		return
	}
	var sale models.Sale
	if err := config.DB.Preload("Items").First(&sale, "id = ?", *appt.SaleID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, services.BuildFinalReceipt(&salon, &appt, &sale))
}
