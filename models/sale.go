package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale line item kinds.
const (
	SaleItemService = "service"
	SaleItemProduct = "product"
)

// Sale is the terminal artifact of finalizing an appointment. Exactly
// one sale is created per appointment, at the moment finalization
// succeeds; it is never edited afterwards.
type Sale struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID         uuid.UUID `gorm:"type:uuid;index;not null"`
	AppointmentID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ClientID        uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID *uuid.UUID `gorm:"type:uuid"`

	SaleNumber string    `gorm:"uniqueIndex;not null"`
	SaleDate   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	TotalHT  int64 `gorm:"not null"` // before tax
	Tax      int64 `gorm:"default:0"`
	TotalTTC int64 `gorm:"not null"` // with tax

	DepositCredit int64 `gorm:"default:0"`
	Notes         string

	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem is one line of a sale, either a service or a retail product.
// Product lines carry the stock pool they were drawn from.
type SaleItem struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	SaleID uuid.UUID `gorm:"type:uuid;index;not null"`

	Kind string `gorm:"type:varchar(10);not null"` // service or product

	ServiceID *uuid.UUID `gorm:"type:uuid"`
	ProductID *uuid.UUID `gorm:"type:uuid"`
	StylistID *uuid.UUID `gorm:"type:uuid"`

	Label       string `gorm:"not null"`
	Quantity    int    `gorm:"default:1"`
	UnitPrice   int64  `gorm:"not null"`
	TotalPrice  int64  `gorm:"not null"`
	StockSource string `gorm:"type:varchar(10)"` // product lines only
}

func (s *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (i *SaleItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
