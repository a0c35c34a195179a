package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"
)

func couponRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	cc := &CouponController{DB: db, Pricing: services.NewPricingService(db)}
	r.POST("/api/coupons", utils.AuthMiddleware(), cc.CreateCoupon)
	r.POST("/api/coupons/apply", utils.AuthMiddleware(), cc.ApplyCoupon)
	r.DELETE("/api/coupons/:id", utils.AuthMiddleware(), cc.DeleteCoupon)
	return r
}

func TestCreateCoupon(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	salon := seedSalonOwnedBy(t, db, owner.ID)
	r := couponRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/coupons", gin.H{
		"code":     "SAVE10",
		"discount": 10,
	}, authCookie(t, owner.ID))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var coupon models.Coupon
	require.NoError(t, db.First(&coupon, "code = ?", "SAVE10").Error)
	assert.Equal(t, salon.ID, coupon.SalonID)

	// same code twice for one salon
	w = doJSON(t, r, http.MethodPost, "/api/coupons", gin.H{
		"code":     "SAVE10",
		"discount": 20,
	}, authCookie(t, owner.ID))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateCouponRequiresSalon(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "customer@example.com")
	r := couponRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/coupons", gin.H{
		"code":     "SAVE10",
		"discount": 10,
	}, authCookie(t, customer.ID))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyCouponPreview(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "customer@example.com")
	owner := seedUser(t, db, "owner@example.com")
	salon := seedSalonOwnedBy(t, db, owner.ID)
	haircut := seedService(t, db, salon.ID, "Haircut", 500, 50, 60)
	require.NoError(t, db.Create(&models.Coupon{Code: "SAVE10", Discount: 10, SalonID: salon.ID}).Error)

	r := couponRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/coupons/apply", gin.H{
		"coupon":            "SAVE10",
		"serviceIds":        []gin.H{{"id": haircut.ID}},
		"priceBeforeCoupon": 500,
	}, authCookie(t, customer.ID))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 450.0, decodeBody(t, w)["price"])
}

func TestApplyCouponFromAnotherSalon(t *testing.T) {
	db := newTestDB(t)
	customer := seedUser(t, db, "customer@example.com")
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	salon := seedSalonOwnedBy(t, db, owner.ID)
	otherSalon := seedSalonOwnedBy(t, db, other.ID)
	haircut := seedService(t, db, salon.ID, "Haircut", 500, 50, 60)
	require.NoError(t, db.Create(&models.Coupon{Code: "ELSEWHERE", Discount: 50, SalonID: otherSalon.ID}).Error)

	r := couponRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/coupons/apply", gin.H{
		"coupon":            "ELSEWHERE",
		"serviceIds":        []gin.H{{"id": haircut.ID}},
		"priceBeforeCoupon": 500,
	}, authCookie(t, customer.ID))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCouponRequiresOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	stranger := seedUser(t, db, "stranger@example.com")
	salon := seedSalonOwnedBy(t, db, owner.ID)
	coupon := &models.Coupon{Code: "SAVE10", Discount: 10, SalonID: salon.ID}
	require.NoError(t, db.Create(coupon).Error)

	r := couponRouter(db)

	w := doJSON(t, r, http.MethodDelete, "/api/coupons/"+coupon.ID.String(), nil, authCookie(t, stranger.ID))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Coupon{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
