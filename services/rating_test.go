package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbook-backend/models"
)

func TestNewRatingServiceStrategySelection(t *testing.T) {
	t.Setenv("RATING_STRATEGY", "")
	assert.Equal(t, RatingStrategyRunningBiasedAverage, NewRatingService(nil).Strategy)

	t.Setenv("RATING_STRATEGY", RatingStrategyFullMeanRecompute)
	assert.Equal(t, RatingStrategyFullMeanRecompute, NewRatingService(nil).Strategy)

	t.Setenv("RATING_STRATEGY", "bogus")
	assert.Equal(t, RatingStrategyRunningBiasedAverage, NewRatingService(nil).Strategy)
}

func TestRunningBiasedAverageFirstReview(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)

	svc := &RatingService{DB: db, Strategy: RatingStrategyRunningBiasedAverage}
	rating, err := svc.NextRating(db, salon, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating)
}

func TestRunningBiasedAverageHalvesHistory(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	old := 4.0
	salon.Rating = &old

	svc := &RatingService{DB: db, Strategy: RatingStrategyRunningBiasedAverage}
	rating, err := svc.NextRating(db, salon, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, rating)
}

func TestFullMeanRecompute(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)
	other := seedSalon(t, db)

	for _, r := range []float64{5, 3} {
		require.NoError(t, db.Create(&models.Review{
			Rating:     r,
			Comment:    "ok",
			CustomerID: uuid.New(),
			SalonID:    salon.ID,
		}).Error)
	}
	// another salon's review must not skew the mean
	require.NoError(t, db.Create(&models.Review{
		Rating:     1,
		Comment:    "bad",
		CustomerID: uuid.New(),
		SalonID:    other.ID,
	}).Error)

	svc := &RatingService{DB: db, Strategy: RatingStrategyFullMeanRecompute}
	rating, err := svc.NextRating(db, salon, 3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating)
}

func TestFullMeanRecomputeNoReviews(t *testing.T) {
	db := newTestDB(t)
	salon := seedSalon(t, db)

	svc := &RatingService{DB: db, Strategy: RatingStrategyFullMeanRecompute}
	rating, err := svc.NextRating(db, salon, 4.5)
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating)
}
