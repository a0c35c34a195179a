// services/sweeper.go
package services

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"salonbook-backend/models"
)

// Sweeper cancels money checkouts that stayed PENDING past their deadline,
// covering payment webhooks that never arrive.
type Sweeper struct {
	db   *gorm.DB
	ttl  time.Duration
	cron *cron.Cron
}

func NewSweeper(db *gorm.DB, ttl time.Duration) *Sweeper {
	return &Sweeper{db: db, ttl: ttl}
}

func (s *Sweeper) Start() {
	s.cron = cron.New()

	// Run every 15 minutes
	s.cron.AddFunc("*/15 * * * *", func() {
		if err := s.Sweep(); err != nil {
			log.Printf("sweeper: %v", err)
		}
	})

	s.cron.Start()
	log.Println("Pending checkout sweeper started")
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep transitions stale PENDING money groups and their bookings to
// CANCELLED in one transaction.
func (s *Sweeper) Sweep() error {
	cutoff := time.Now().Add(-s.ttl)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var groupIDs []uuid.UUID
		if err := tx.Model(&models.BookingGroup{}).
			Where("payment_type = ? AND status = ? AND created_at < ?",
				models.PaymentTypeMoney, models.BookingStatusPending, cutoff).
			Pluck("id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) == 0 {
			return nil
		}

		if err := tx.Model(&models.BookingGroup{}).
			Where("id IN ?", groupIDs).
			Update("status", models.BookingStatusCancelled).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Booking{}).
			Where("group_id IN ? AND status = ?", groupIDs, models.BookingStatusPending).
			Update("status", models.BookingStatusCancelled).Error; err != nil {
			return err
		}

		log.Printf("sweeper: cancelled %d stale pending checkouts", len(groupIDs))
		return nil
	})
}
