package models

import (
	"github.com/google/uuid"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string
	Price       int64  `gorm:"not null"` // whole currency units
	Duration    int    // in minutes
	Category    string `gorm:"default:'General'"`
	IsActive    bool   `gorm:"default:true"`

	// Deposit policy. When RequiresDeposit is set, DepositFixed wins over
	// DepositPercent; with neither, the service asks a deposit of 0.
	RequiresDeposit bool `gorm:"default:false"`
	DepositFixed    *int64
	DepositPercent  *int
}
