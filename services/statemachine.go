// services/statemachine.go
package services

import (
	"fmt"
	"strings"

	"gestion-salon-backend/models"
)

// Lifecycle events an appointment can receive.
const (
	EventConfirm        = "confirm"
	EventCancel         = "cancel"
	EventMarkInProgress = "mark-in-progress"
	EventComplete       = "complete"
	EventNoShow         = "no-show"
)

// TransitionContext carries the data the transition guards look at.
type TransitionContext struct {
	Reason  string // cancellation reason, required for cancel
	HasSale bool   // finalization has produced a sale record
}

// transitions maps (from, event) to the next status. Guards beyond
// membership in this table are applied in NextStatus. no-show is
// handled separately: any non-terminal status allows it.
var transitions = map[string]map[string]string{
	models.StatusPending: {
		EventConfirm: models.StatusConfirmed,
		EventCancel:  models.StatusCancelled,
	},
	models.StatusConfirmed: {
		EventCancel:         models.StatusCancelled,
		EventMarkInProgress: models.StatusInProgress,
		EventComplete:       models.StatusCompleted,
	},
	models.StatusInProgress: {
		EventComplete: models.StatusCompleted,
	},
}

// ValidInitialStatus reports whether an appointment may be created with
// the given status. Only pending and confirmed are allowed.
func ValidInitialStatus(status string) bool {
	return status == models.StatusPending || status == models.StatusConfirmed
}

// NextStatus validates an event against the appointment's current
// status and returns the status to move to. It never mutates the
// appointment; callers apply the returned status only after the backend
// write succeeds.
func NextStatus(appt *models.Appointment, event string, ctx TransitionContext) (string, error) {
	if event == EventNoShow {
		if appt.IsTerminal() {
			return "", &TransitionError{From: appt.Status, Event: event, Reason: "appointment is already closed"}
		}
		return models.StatusNoShow, nil
	}

	next, ok := transitions[appt.Status][event]
	if !ok {
		return "", &TransitionError{From: appt.Status, Event: event}
	}

	switch event {
	case EventCancel:
		if strings.TrimSpace(ctx.Reason) == "" {
			return "", fmt.Errorf("%w: cancellation reason is required", ErrValidation)
		}
	case EventComplete:
		if !ctx.HasSale {
			return "", &TransitionError{From: appt.Status, Event: event,
				Reason: "appointment has not been finalized"}
		}
	}

	return next, nil
}
