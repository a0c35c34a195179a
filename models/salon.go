package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Salon struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	PhoneNumber string    `json:"phoneNumber"`
	OwnerID     uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"ownerId"`

	Rating       *float64       `json:"rating"`
	WorkingHours string         `json:"workingHours"`
	WorkingDays  datatypes.JSON `json:"workingDays"`

	Pictures []SalonPicture `gorm:"foreignKey:SalonID" json:"pictures,omitempty"`
	Services []Service      `gorm:"foreignKey:SalonID" json:"services,omitempty"`
	Coupons  []Coupon       `gorm:"foreignKey:SalonID" json:"coupons,omitempty"`
	Reviews  []Review       `gorm:"foreignKey:SalonID" json:"reviews,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// SalonPicture stores picture metadata only; the binary lives on the CDN.
type SalonPicture struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	URL     string    `gorm:"not null" json:"url"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *SalonPicture) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
