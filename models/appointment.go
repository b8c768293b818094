package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Completed, cancelled and no-show are terminal.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no-show"
)

type Appointment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`
	Client   Client    `gorm:"foreignKey:ClientID"`

	// Primary stylist; individual line items may name someone else.
	StylistID *uuid.UUID `gorm:"type:uuid;index"`

	ScheduledAt time.Time `gorm:"index;not null"`
	Duration    int       // minutes, sum of service durations unless overridden

	Services []AppointmentService `gorm:"foreignKey:AppointmentID"`

	Status         string `gorm:"type:varchar(20);index;default:'pending'"`
	EstimatedPrice int64  // sum of service prices unless overridden

	DepositRequested bool  `gorm:"default:false"`
	DepositAmount    int64 `gorm:"default:0"`
	DepositPaid      bool  `gorm:"default:false"`

	CancellationReason *string
	Notes              string

	Payments []Payment `gorm:"foreignKey:AppointmentID"`
	SaleID   *uuid.UUID

	CreatedByUserID *uuid.UUID `gorm:"type:uuid"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// IsTerminal reports whether the appointment can accept no further
// lifecycle events.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// AppointmentService is one selected service on an appointment, with
// price and duration snapshotted at selection time.
type AppointmentService struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceName   string    `gorm:"not null"`
	Price         int64     `gorm:"not null"`
	Duration      int

	// Set for services added at finalization that were handled by a
	// different stylist than the appointment's primary one.
	StylistID *uuid.UUID `gorm:"type:uuid"`

	// Preserves the order the client selected services in.
	Position int `gorm:"default:0"`
}

func (s *AppointmentService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
