package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"salonbook-backend/models"
)

func seedGroup(t *testing.T, db *gorm.DB, paymentType, status string, age time.Duration) *models.BookingGroup {
	t.Helper()

	group := &models.BookingGroup{
		CustomerID:  uuid.New(),
		SalonID:     uuid.New(),
		StartTime:   time.Now().Add(48 * time.Hour),
		PaymentType: paymentType,
		TotalPrice:  500,
		Status:      status,
	}
	require.NoError(t, db.Create(group).Error)
	if age > 0 {
		require.NoError(t, db.Model(group).Update("created_at", time.Now().Add(-age)).Error)
	}
	return group
}

func TestSweepCancelsStalePendingMoneyCheckouts(t *testing.T) {
	db := newTestDB(t)

	stale := seedGroup(t, db, models.PaymentTypeMoney, models.BookingStatusPending, 48*time.Hour)
	booking := &models.Booking{
		GroupID:     stale.ID,
		StartTime:   stale.StartTime,
		EndTime:     stale.StartTime.Add(time.Hour),
		Status:      models.BookingStatusPending,
		CustomerID:  stale.CustomerID,
		ServiceID:   uuid.New(),
		SalonID:     stale.SalonID,
		Price:       500,
		PaymentType: models.PaymentTypeMoney,
	}
	require.NoError(t, db.Create(booking).Error)

	require.NoError(t, NewSweeper(db, 24*time.Hour).Sweep())

	var got models.BookingGroup
	require.NoError(t, db.First(&got, "id = ?", stale.ID).Error)
	assert.Equal(t, models.BookingStatusCancelled, got.Status)

	var gotBooking models.Booking
	require.NoError(t, db.First(&gotBooking, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingStatusCancelled, gotBooking.Status)
}

func TestSweepLeavesFreshAndNonMoneyCheckoutsAlone(t *testing.T) {
	db := newTestDB(t)

	fresh := seedGroup(t, db, models.PaymentTypeMoney, models.BookingStatusPending, 0)
	points := seedGroup(t, db, models.PaymentTypePoints, models.BookingStatusPending, 48*time.Hour)
	paid := seedGroup(t, db, models.PaymentTypeMoney, models.BookingStatusPaid, 48*time.Hour)

	require.NoError(t, NewSweeper(db, 24*time.Hour).Sweep())

	for id, want := range map[uuid.UUID]string{
		fresh.ID:  models.BookingStatusPending,
		points.ID: models.BookingStatusPending,
		paid.ID:   models.BookingStatusPaid,
	} {
		var got models.BookingGroup
		require.NoError(t, db.First(&got, "id = ?", id).Error)
		assert.Equal(t, want, got.Status)
	}
}
