package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_salon_client_phone,priority:1"`

	Name        string
	Phone       string `gorm:"not null;uniqueIndex:idx_salon_client_phone,priority:2"`
	Email       string
	Notes       string
	TotalVisits int   `gorm:"default:0"`
	TotalSpent  int64 `gorm:"default:0"` // whole currency units
	LastVisit   *time.Time
	IsActive    bool `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
