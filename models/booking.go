package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusPaid      = "PAID"
)

const (
	PaymentTypeMoney  = "Money"
	PaymentTypePoints = "Points"
)

// BookingGroup ties together the bookings created by one checkout, so the
// payment webhook and the sweeper can transition a whole checkout at once.
type BookingGroup struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	SalonID    uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	StartTime   time.Time `gorm:"not null" json:"startTime"`
	PaymentType string    `gorm:"type:varchar(10);not null" json:"paymentType"`
	CouponCode  string    `json:"couponCode,omitempty"`

	TotalPrice      float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"` // post-discount
	TotalPointPrice int     `gorm:"not null" json:"totalPointPrice"`

	Status     string `gorm:"type:varchar(10);index;not null" json:"status"`
	CheckoutID string `gorm:"index" json:"checkoutId,omitempty"`

	Bookings []Booking `gorm:"foreignKey:GroupID" json:"bookings,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *BookingGroup) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}

// Booking is one customer's claim on one service at one time. The unique
// index on (service_id, start_time) makes concurrent double-booking of the
// same slot fail at the storage layer.
type Booking struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	GroupID uuid.UUID `gorm:"type:uuid;index;not null" json:"groupId"`

	StartTime time.Time `gorm:"uniqueIndex:idx_service_slot,priority:2;not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`
	Status    string    `gorm:"type:varchar(10);index;not null" json:"status"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	ServiceID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_service_slot,priority:1;not null" json:"serviceId"`
	SalonID    uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"` // per-service, pre-discount
	CouponCode  string  `json:"couponCode,omitempty"`
	PaymentType string  `gorm:"type:varchar(10);not null" json:"paymentType"`
	InHouse     bool    `gorm:"default:false" json:"inHouse"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
