// services/pricing.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook-backend/models"
)

// Flat surcharge for a service performed at the customer's place.
const InHouseSurcharge = 100.0

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrMixedSalons      = errors.New("all services must belong to the same salon")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponWrongSalon = errors.New("coupon not valid for this salon")
)

// ServiceSelection is one entry of a checkout's service list.
type ServiceSelection struct {
	ID      uuid.UUID `json:"id" binding:"required"`
	InHouse bool      `json:"inHouse"`
}

// QuoteLine carries the resolved service and its per-service price before
// any coupon discount.
type QuoteLine struct {
	Service models.Service
	InHouse bool
	Price   float64
}

// Quote is the priced result of a service selection. TotalPrice already has
// the coupon discount applied; line prices do not.
type Quote struct {
	SalonID         uuid.UUID
	Lines           []QuoteLine
	TotalPrice      float64
	TotalPointPrice int
	Coupon          *models.Coupon
}

type PricingService struct {
	DB *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{DB: db}
}

// Quote resolves the selected services, sums prices and point costs, and
// applies an optional coupon once to the combined total. The salon is derived
// from the first selection; selections spanning salons are rejected.
func (s *PricingService) Quote(selections []ServiceSelection, couponCode, paymentType string) (*Quote, error) {
	ids := make([]uuid.UUID, 0, len(selections))
	for _, sel := range selections {
		ids = append(ids, sel.ID)
	}

	var services []models.Service
	if err := s.DB.Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	if len(services) != len(selections) {
		return nil, ErrServiceNotFound
	}

	byID := make(map[uuid.UUID]models.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	quote := &Quote{SalonID: byID[selections[0].ID].SalonID}
	for _, sel := range selections {
		svc := byID[sel.ID]
		if svc.SalonID != quote.SalonID {
			return nil, ErrMixedSalons
		}

		price := svc.Price
		if sel.InHouse {
			price += InHouseSurcharge
		}

		quote.Lines = append(quote.Lines, QuoteLine{Service: svc, InHouse: sel.InHouse, Price: price})
		quote.TotalPrice += price
		quote.TotalPointPrice += svc.PointPrice
	}

	if couponCode != "" && paymentType == models.PaymentTypeMoney {
		coupon, err := s.lookupCoupon(couponCode, quote.SalonID)
		if err != nil {
			return nil, err
		}
		quote.Coupon = coupon
		quote.TotalPrice -= quote.TotalPrice * coupon.Discount / 100
	}

	return quote, nil
}

// PreviewDiscount recomputes a discounted price from a caller-supplied
// pre-coupon total, running the same coupon and service validation as Quote.
func (s *PricingService) PreviewDiscount(couponCode string, selections []ServiceSelection, priceBeforeCoupon float64) (float64, error) {
	ids := make([]uuid.UUID, 0, len(selections))
	for _, sel := range selections {
		ids = append(ids, sel.ID)
	}

	var services []models.Service
	if err := s.DB.Where("id IN ?", ids).Find(&services).Error; err != nil {
		return 0, err
	}
	if len(services) != len(selections) {
		return 0, ErrServiceNotFound
	}

	salonID := services[0].SalonID
	for _, svc := range services {
		if svc.SalonID != salonID {
			return 0, ErrMixedSalons
		}
	}

	coupon, err := s.lookupCoupon(couponCode, salonID)
	if err != nil {
		return 0, err
	}

	return priceBeforeCoupon - priceBeforeCoupon*coupon.Discount/100, nil
}

func (s *PricingService) lookupCoupon(code string, salonID uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	if coupon.SalonID != salonID {
		return nil, ErrCouponWrongSalon
	}
	return &coupon, nil
}
