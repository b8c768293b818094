// controllers/profile.go
package controllers

import (
	"net/http"

	"gestion-salon-backend/config"
	"gestion-salon-backend/models"
	"gestion-salon-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateSalonInput struct {
	Name                *string      `json:"name"`
	Address             *string      `json:"address"`
	Phone               *string      `json:"phone"`
	WorkingHours        models.JSONB `json:"workingHours"`
	CancelCutoffMinutes *int         `json:"cancelCutoffMinutes"`
	TaxPercent          *int         `json:"taxPercent"`
	SMSNotifications    *bool        `json:"smsNotifications"`
}

func GetSalonProfile(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"salon": salon})
}

func UpdateSalonProfile(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var salon models.Salon
	if err := config.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.WorkingHours != nil {
		updates["working_hours"] = input.WorkingHours
	}
	if input.CancelCutoffMinutes != nil {
		if *input.CancelCutoffMinutes < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "cancelCutoffMinutes cannot be negative")
			return
		}
		updates["cancel_cutoff_minutes"] = *input.CancelCutoffMinutes
	}
	if input.TaxPercent != nil {
		if *input.TaxPercent < 0 || *input.TaxPercent > 100 {
			utils.RespondWithError(c, http.StatusBadRequest, "taxPercent must be between 0 and 100")
			return
		}
		updates["tax_percent"] = *input.TaxPercent
	}
	if input.SMSNotifications != nil {
		updates["sms_notifications"] = *input.SMSNotifications
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"salon": salon})
		return
	}

	if err := config.DB.Model(&salon).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update salon")
		return
	}

	c.JSON(http.StatusOK, gin.H{"salon": salon})
}
