package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbook-backend/models"
)

func TestQuoteSumsPricesAndPoints(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 500, 50, 60)
	beard := seedService(t, db, salon.ID, "Beard Trim", 300, 30, 30)

	quote, err := NewPricingService(db).Quote([]ServiceSelection{
		{ID: haircut.ID},
		{ID: beard.ID},
	}, "", models.PaymentTypeMoney)
	require.NoError(t, err)

	assert.Equal(t, salon.ID, quote.SalonID)
	assert.Equal(t, 800.0, quote.TotalPrice)
	assert.Equal(t, 80, quote.TotalPointPrice)
	assert.Nil(t, quote.Coupon)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, 500.0, quote.Lines[0].Price)
	assert.Equal(t, 300.0, quote.Lines[1].Price)
}

func TestQuoteAddsInHouseSurcharge(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 500, 50, 60)

	quote, err := NewPricingService(db).Quote([]ServiceSelection{
		{ID: haircut.ID, InHouse: true},
	}, "", models.PaymentTypeMoney)
	require.NoError(t, err)

	assert.Equal(t, 600.0, quote.TotalPrice)
	require.Len(t, quote.Lines, 1)
	assert.Equal(t, 600.0, quote.Lines[0].Price)
	assert.True(t, quote.Lines[0].InHouse)
}

func TestQuoteAppliesCouponOnceToCombinedTotal(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	first := seedService(t, db, salon.ID, "Manicure", 30, 3, 30)
	second := seedService(t, db, salon.ID, "Pedicure", 20, 2, 30)
	require.NoError(t, db.Create(&models.Coupon{Code: "SAVE10", Discount: 10, SalonID: salon.ID}).Error)

	quote, err := NewPricingService(db).Quote([]ServiceSelection{
		{ID: first.ID},
		{ID: second.ID, InHouse: true},
	}, "SAVE10", models.PaymentTypeMoney)
	require.NoError(t, err)

	// (30 + 20 + 100) * 0.9, line prices stay undiscounted
	assert.Equal(t, 135.0, quote.TotalPrice)
	require.NotNil(t, quote.Coupon)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, 30.0, quote.Lines[0].Price)
	assert.Equal(t, 120.0, quote.Lines[1].Price)
}

func TestQuoteIgnoresCouponForPointsPayment(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 500, 50, 60)
	require.NoError(t, db.Create(&models.Coupon{Code: "SAVE10", Discount: 10, SalonID: salon.ID}).Error)

	quote, err := NewPricingService(db).Quote([]ServiceSelection{
		{ID: haircut.ID},
	}, "SAVE10", models.PaymentTypePoints)
	require.NoError(t, err)

	assert.Equal(t, 500.0, quote.TotalPrice)
	assert.Nil(t, quote.Coupon)
}

func TestQuoteRejectsUnknownService(t *testing.T) {
	db := newTestDB(t)

	_, err := NewPricingService(db).Quote([]ServiceSelection{
		{ID: uuid.New()},
	}, "", models.PaymentTypeMoney)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestQuoteRejectsServicesFromDifferentSalons(t *testing.T) {
	db := newTestDB(t)
	first := seedSalon(t, db)
	second := seedSalon(t, db)
	a := seedService(t, db, first.ID, "Haircut", 500, 50, 60)
	b := seedService(t, db, second.ID, "Haircut", 400, 40, 60)

	_, err := NewPricingService(db).Quote([]ServiceSelection{
		{ID: a.ID},
		{ID: b.ID},
	}, "", models.PaymentTypeMoney)
	assert.ErrorIs(t, err, ErrMixedSalons)
}

func TestQuoteRejectsCouponFromAnotherSalon(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	other := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 500, 50, 60)
	require.NoError(t, db.Create(&models.Coupon{Code: "ELSEWHERE", Discount: 50, SalonID: other.ID}).Error)

	_, err := NewPricingService(db).Quote([]ServiceSelection{
		{ID: haircut.ID},
	}, "ELSEWHERE", models.PaymentTypeMoney)
	assert.ErrorIs(t, err, ErrCouponWrongSalon)
}

func TestQuoteRejectsUnknownCoupon(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 500, 50, 60)

	_, err := NewPricingService(db).Quote([]ServiceSelection{
		{ID: haircut.ID},
	}, "NOPE", models.PaymentTypeMoney)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestPreviewDiscount(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	haircut := seedService(t, db, salon.ID, "Haircut", 500, 50, 60)
	require.NoError(t, db.Create(&models.Coupon{Code: "SAVE10", Discount: 10, SalonID: salon.ID}).Error)

	price, err := NewPricingService(db).PreviewDiscount("SAVE10", []ServiceSelection{{ID: haircut.ID}}, 200)
	require.NoError(t, err)
	assert.Equal(t, 180.0, price)
}
