package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Coupon struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code     string    `gorm:"uniqueIndex:idx_salon_coupon_code,priority:2;not null" json:"code"`
	Discount float64   `gorm:"not null" json:"discount"` // percent, 0-100
	SalonID  uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_salon_coupon_code,priority:1;not null" json:"salonId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
