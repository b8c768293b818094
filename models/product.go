package models

import (
	"github.com/google/uuid"
)

// Stock sources a retail product can be drawn from at finalization.
const (
	StockSourceForSale  = "for-sale"
	StockSourceSalonUse = "salon-use"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string
	UnitPrice   int64 `gorm:"not null"` // whole currency units

	// Two separate inventory pools: units kept for resale and units kept
	// for in-salon use.
	StockForSale  int `gorm:"default:0"`
	StockSalonUse int `gorm:"default:0"`

	IsActive bool `gorm:"default:true"`
}

// StockFor returns the available quantity in the given pool.
func (p *Product) StockFor(source string) int {
	if source == StockSourceSalonUse {
		return p.StockSalonUse
	}
	return p.StockForSale
}
