// services/rating.go
package services

import (
	"database/sql"
	"os"

	"gorm.io/gorm"

	"salonbook-backend/models"
)

// Rating aggregation strategies. The running biased average is the historical
// behavior: each new review halves the weight of everything before it. The
// full mean is a true average over all reviews.
const (
	RatingStrategyRunningBiasedAverage = "runningBiasedAverage"
	RatingStrategyFullMeanRecompute    = "fullMeanRecompute"
)

type RatingService struct {
	DB       *gorm.DB
	Strategy string
}

func NewRatingService(db *gorm.DB) *RatingService {
	strategy := os.Getenv("RATING_STRATEGY")
	if strategy != RatingStrategyFullMeanRecompute {
		strategy = RatingStrategyRunningBiasedAverage
	}
	return &RatingService{DB: db, Strategy: strategy}
}

// NextRating computes the salon's new rating after a review has been
// persisted. The db handle lets callers run the recompute inside the same
// transaction as the review insert.
func (s *RatingService) NextRating(db *gorm.DB, salon *models.Salon, newRating float64) (float64, error) {
	if s.Strategy == RatingStrategyFullMeanRecompute {
		var avg sql.NullFloat64
		row := db.Model(&models.Review{}).
			Where("salon_id = ?", salon.ID).
			Select("AVG(rating)").
			Row()
		if err := row.Scan(&avg); err != nil {
			return 0, err
		}
		if !avg.Valid {
			return newRating, nil
		}
		return avg.Float64, nil
	}

	if salon.Rating == nil {
		return newRating, nil
	}
	return (*salon.Rating + newRating) / 2, nil
}
