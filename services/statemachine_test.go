package services

import (
	"testing"

	"gestion-salon-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apptIn(status string) *models.Appointment {
	return &models.Appointment{Status: status}
}

func TestValidInitialStatus(t *testing.T) {
	assert.True(t, ValidInitialStatus(models.StatusPending))
	assert.True(t, ValidInitialStatus(models.StatusConfirmed))
	assert.False(t, ValidInitialStatus(models.StatusInProgress))
	assert.False(t, ValidInitialStatus(models.StatusCompleted))
	assert.False(t, ValidInitialStatus(models.StatusCancelled))
	assert.False(t, ValidInitialStatus(models.StatusNoShow))
	assert.False(t, ValidInitialStatus(""))
}

func TestNextStatus_AllowedTransitions(t *testing.T) {
	cases := []struct {
		from, event, to string
		ctx             TransitionContext
	}{
		{models.StatusPending, EventConfirm, models.StatusConfirmed, TransitionContext{}},
		{models.StatusPending, EventCancel, models.StatusCancelled, TransitionContext{Reason: "client demande"}},
		{models.StatusConfirmed, EventCancel, models.StatusCancelled, TransitionContext{Reason: "empêchement"}},
		{models.StatusConfirmed, EventMarkInProgress, models.StatusInProgress, TransitionContext{}},
		{models.StatusConfirmed, EventComplete, models.StatusCompleted, TransitionContext{HasSale: true}},
		{models.StatusInProgress, EventComplete, models.StatusCompleted, TransitionContext{HasSale: true}},
		{models.StatusPending, EventNoShow, models.StatusNoShow, TransitionContext{}},
		{models.StatusConfirmed, EventNoShow, models.StatusNoShow, TransitionContext{}},
		{models.StatusInProgress, EventNoShow, models.StatusNoShow, TransitionContext{}},
	}
	for _, c := range cases {
		next, err := NextStatus(apptIn(c.from), c.event, c.ctx)
		require.NoError(t, err, "%s + %s", c.from, c.event)
		assert.Equal(t, c.to, next)
	}
}

func TestNextStatus_RejectsEverythingElse(t *testing.T) {
	allStates := []string{
		models.StatusPending, models.StatusConfirmed, models.StatusInProgress,
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow,
	}
	allEvents := []string{EventConfirm, EventCancel, EventMarkInProgress, EventComplete, EventNoShow}

	allowed := map[string]map[string]bool{
		models.StatusPending:    {EventConfirm: true, EventCancel: true, EventNoShow: true},
		models.StatusConfirmed:  {EventCancel: true, EventMarkInProgress: true, EventComplete: true, EventNoShow: true},
		models.StatusInProgress: {EventComplete: true, EventNoShow: true},
	}

	for _, state := range allStates {
		for _, event := range allEvents {
			if allowed[state][event] {
				continue
			}
			appt := apptIn(state)
			_, err := NextStatus(appt, event, TransitionContext{Reason: "x", HasSale: true})
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s + %s must be rejected", state, event)
			assert.Equal(t, state, appt.Status, "status must not change on rejection")
		}
	}
}

func TestNextStatus_CancelRequiresReason(t *testing.T) {
	_, err := NextStatus(apptIn(models.StatusConfirmed), EventCancel, TransitionContext{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NextStatus(apptIn(models.StatusPending), EventCancel, TransitionContext{Reason: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNextStatus_CompleteRequiresSale(t *testing.T) {
	_, err := NextStatus(apptIn(models.StatusInProgress), EventComplete, TransitionContext{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = NextStatus(apptIn(models.StatusConfirmed), EventComplete, TransitionContext{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNextStatus_NoShowNeedsNoReason(t *testing.T) {
	// Unlike cancel, no-show carries no reason requirement.
	next, err := NextStatus(apptIn(models.StatusPending), EventNoShow, TransitionContext{})
	require.NoError(t, err)
	assert.Equal(t, models.StatusNoShow, next)
}

func TestNextStatus_TerminalStatesAreFinal(t *testing.T) {
	// Scenario: a completed appointment receiving cancel stays completed.
	appt := apptIn(models.StatusCompleted)
	_, err := NextStatus(appt, EventCancel, TransitionContext{Reason: "trop tard"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, models.StatusCompleted, appt.Status)

	// Repeated terminal events stay rejected.
	for _, state := range []string{models.StatusCancelled, models.StatusNoShow, models.StatusCompleted} {
		for _, event := range []string{EventConfirm, EventCancel, EventComplete, EventNoShow, EventMarkInProgress} {
			_, err := NextStatus(apptIn(state), event, TransitionContext{Reason: "x", HasSale: true})
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s + %s", state, event)
		}
	}
}

func TestTransitionError_Message(t *testing.T) {
	_, err := NextStatus(apptIn(models.StatusCompleted), EventCancel, TransitionContext{Reason: "x"})
	require.Error(t, err)
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, models.StatusCompleted, te.From)
	assert.Equal(t, EventCancel, te.Event)
}
