package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment kinds.
const (
	PaymentKindDeposit = "deposit"
	PaymentKindBalance = "balance"
)

// Payment instruments accepted at the till.
const (
	InstrumentCash        = "cash"
	InstrumentOrangeMoney = "orange-money"
	InstrumentMoovMoney   = "moov-money"
	InstrumentCard        = "card"
)

// Payment rows are append-only: reconciliation only ever adds, never
// deletes. The sum of an appointment's deposit-kind payments equals its
// recorded deposit-paid amount.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID       uuid.UUID `gorm:"type:uuid;index;not null"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null"`

	Kind       string `gorm:"type:varchar(10);not null"` // deposit or balance
	Amount     int64  `gorm:"not null"`
	Instrument string `gorm:"type:varchar(20);not null"`

	// Transaction reference of the mobile-money operator. Expected for
	// orange-money and moov-money but not enforced.
	ExternalReference string

	RecordedByUserID *uuid.UUID `gorm:"type:uuid"`
	PaidAt           time.Time  `gorm:"default:CURRENT_TIMESTAMP"`

	gorm.Model
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
