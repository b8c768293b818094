package models

import (
	"github.com/google/uuid"
)

type Salon struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Name         string    `gorm:"not null"`
	Address      string
	Phone        string
	WorkingHours JSONB  `gorm:"type:jsonb;default:'{}'"`
	CurrencyCode string `gorm:"type:varchar(3);default:'XOF'"`

	// Window before the scheduled time during which clients can no
	// longer cancel online.
	CancelCutoffMinutes int `gorm:"default:120"`

	TaxPercent       int  `gorm:"default:0"`
	SMSNotifications bool `gorm:"default:false"`

	Users    []User    `gorm:"foreignKey:SalonID"`
	Clients  []Client  `gorm:"foreignKey:SalonID"`
	Services []Service `gorm:"foreignKey:SalonID"`
	Products []Product `gorm:"foreignKey:SalonID"`
}
