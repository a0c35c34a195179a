package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Points holds a customer's loyalty balance with one salon.
type Points struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_customer_salon_points,priority:1;not null" json:"customerId"`
	SalonID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_customer_salon_points,priority:2;not null" json:"salonId"`
	Balance    int       `gorm:"default:0" json:"balance"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Points) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
