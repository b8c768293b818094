// controllers/sale.go
package controllers

import (
	"errors"
	"net/http"

	"gestion-salon-backend/config"
	"gestion-salon-backend/models"
	"gestion-salon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sales are read-only here: the only way a sale comes into existence
// is a successful finalization, and it is never edited afterwards.

// GetSales retrieves the salon's sales, optionally filtered by date range
func GetSales(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Items").Where("salon_id = ?", salonUUID)

	if from := c.Query("from"); from != "" {
		query = query.Where("sale_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("sale_date < ?", to)
	}

	var sales []models.Sale
	if err := query.Order("sale_date DESC").Find(&sales).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sales")
		return
	}

	c.JSON(http.StatusOK, sales)
}

// GetSale retrieves a specific sale by ID with its line items and the
// appointment's payment history
func GetSale(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	saleUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID format")
		return
	}

	var sale models.Sale
	if err := config.DB.Preload("Items").
		Where("salon_id = ? AND id = ?", salonUUID, saleUUID).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sale not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("appointment_id = ?", sale.AppointmentID).
		Order("paid_at").Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sale":     sale,
		"payments": payments,
	})
}
