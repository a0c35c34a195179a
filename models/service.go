package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID     uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_salon_service_name,priority:1;not null" json:"salonId"`
	Name        string    `gorm:"uniqueIndex:idx_salon_service_name,priority:2;not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	PointPrice  int       `gorm:"not null" json:"pointPrice"`
	Duration    int       `gorm:"not null" json:"duration"` // in minutes
	CategoryID  uuid.UUID `gorm:"type:uuid;index;not null" json:"categoryId"`
	InHouse     bool      `gorm:"default:false" json:"inHouse"` // can be performed at the customer's place

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
