// services/availability.go
package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

// Bookable window: hours 8 through 20, inclusive start hours.
const (
	OpeningHour = 8
	ClosingHour = 20
)

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. This is the single overlap routine used by both
// the availability endpoint and the orchestrator's conflict check.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func truncateToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// AvailableHours returns the free hour slots of a salon for a calendar day
// in the current year. Booked ranges are compared at hour granularity only;
// cancelled bookings do not block a slot.
func (s *AvailabilityService) AvailableHours(salonID uuid.UUID, day, month int) ([]int, error) {
	dayStart, dayEnd := utils.DayWindow(day, month)

	var bookings []models.Booking
	if err := s.DB.
		Where("salon_id = ? AND start_time BETWEEN ? AND ? AND status <> ?",
			salonID, dayStart, dayEnd, models.BookingStatusCancelled).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	hours := make([]int, 0, ClosingHour-OpeningHour+1)
	for hour := OpeningHour; hour <= ClosingHour; hour++ {
		hourStart := time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), hour, 0, 0, 0, dayStart.Location())
		hourEnd := hourStart.Add(time.Hour)

		blocked := false
		for _, booking := range bookings {
			if Overlaps(hourStart, hourEnd, truncateToHour(booking.StartTime), truncateToHour(booking.EndTime)) {
				blocked = true
				break
			}
		}
		if !blocked {
			hours = append(hours, hour)
		}
	}

	return hours, nil
}

// SlotTaken reports whether an existing non-cancelled booking of the service
// overlaps the requested time range. The db handle is a parameter so callers
// can run the check inside their own transaction.
func (s *AvailabilityService) SlotTaken(db *gorm.DB, serviceID uuid.UUID, start, end time.Time) (bool, error) {
	dayStart := utils.BeginningOfDay(start)
	dayEnd := dayStart.Add(24 * time.Hour)

	var bookings []models.Booking
	if err := db.
		Where("service_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			serviceID, models.BookingStatusCancelled, dayStart, dayEnd).
		Find(&bookings).Error; err != nil {
		return false, err
	}

	for _, booking := range bookings {
		if Overlaps(start, end, booking.StartTime, booking.EndTime) {
			return true, nil
		}
	}
	return false, nil
}
