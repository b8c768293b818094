// controllers/context.go
package controllers

import (
	"errors"
	"net/http"

	"gestion-salon-backend/services"
	"gestion-salon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Shared collaborators, wired at startup from main.
var (
	notifier   *services.NotifierService
	slotClient *services.SlotClient
)

func SetNotifier(n *services.NotifierService) { notifier = n }
func SetSlotClient(s *services.SlotClient)    { slotClient = s }

// salonIDFromContext pulls the salon scope set by the auth middleware.
// On failure it has already written the response.
func salonIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return uuid.Nil, false
	}
	salonUUID, err := uuid.Parse(salonID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return uuid.Nil, false
	}
	return salonUUID, true
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

// respondDomainError maps the services error taxonomy to HTTP statuses.
// Transition and stock errors keep their explanatory message so the
// console can tell the user why the action is unavailable; anything
// unrecognized is a generic retryable failure.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInsufficientStock):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnsettledBalance):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
