// controllers/service.go
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

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Price           int64  `json:"price" binding:"required,min=0"`
	Duration        int    `json:"duration" binding:"min=0"` // in minutes
	Category        string `json:"category"`
	RequiresDeposit bool   `json:"requiresDeposit"`
	DepositFixed    *int64 `json:"depositFixed"`
	DepositPercent  *int   `json:"depositPercent"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Price           *int64  `json:"price"`
	Duration        *int    `json:"duration"`
	Category        *string `json:"category"`
	IsActive        *bool   `json:"isActive"`
	RequiresDeposit *bool   `json:"requiresDeposit"`
	DepositFixed    *int64  `json:"depositFixed"`
	DepositPercent  *int    `json:"depositPercent"`
}

func validDepositPolicy(fixed *int64, percent *int) bool {
	if fixed != nil && *fixed < 0 {
		return false
	}
	if percent != nil && (*percent < 0 || *percent > 100) {
		return false
	}
	return true
}

// CreateService creates a new service for the salon
func CreateService(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !validDepositPolicy(input.DepositFixed, input.DepositPercent) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid deposit policy")
		return
	}

	service := models.Service{
		SalonID:         salonUUID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		Duration:        input.Duration,
		Category:        input.Category,
		IsActive:        true,
		RequiresDeposit: input.RequiresDeposit,
		DepositFixed:    input.DepositFixed,
		DepositPercent:  input.DepositPercent,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services for the salon
func GetServices(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var serviceList []models.Service
	if err := config.DB.Where("salon_id = ?", salonUUID).Find(&serviceList).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, serviceList)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !validDepositPolicy(input.DepositFixed, input.DepositPercent) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid deposit policy")
		return
	}

	var service models.Service
	if err := config.DB.Where("salon_id = ? AND id = ?", salonUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}
	if input.RequiresDeposit != nil {
		service.RequiresDeposit = *input.RequiresDeposit
	}
	if input.DepositFixed != nil {
		service.DepositFixed = input.DepositFixed
	}
	if input.DepositPercent != nil {
		service.DepositPercent = input.DepositPercent
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service from the catalog
func DeleteService(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salonUUID, serviceUUID).
		Delete(&models.Service{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
