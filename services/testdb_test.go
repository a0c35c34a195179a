package services

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"salonbook-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Salon{},
		&models.SalonPicture{},
		&models.Category{},
		&models.Service{},
		&models.Coupon{},
		&models.BookingGroup{},
		&models.Booking{},
		&models.Points{},
		&models.Review{},
	))
	return db
}

func seedSalon(t *testing.T, db *gorm.DB) *models.Salon {
	t.Helper()

	salon := &models.Salon{Name: "Test Salon", OwnerID: uuid.New()}
	require.NoError(t, db.Create(salon).Error)
	return salon
}

func seedService(t *testing.T, db *gorm.DB, salonID uuid.UUID, name string, price float64, pointPrice, duration int) *models.Service {
	t.Helper()

	svc := &models.Service{
		SalonID:     salonID,
		Name:        name,
		Description: name,
		Price:       price,
		PointPrice:  pointPrice,
		Duration:    duration,
		CategoryID:  uuid.New(),
	}
	require.NoError(t, db.Create(svc).Error)
	return svc
}
