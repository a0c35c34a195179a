// controllers/coupon.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"
)

type CouponController struct {
	DB      *gorm.DB
	Pricing *services.PricingService
}

type CreateCouponInput struct {
	Code     string  `json:"code" binding:"required"`
	Discount float64 `json:"discount" binding:"required,min=0,max=100"`
}

type UpdateCouponInput struct {
	Code     *string  `json:"code"`
	Discount *float64 `json:"discount" binding:"omitempty,min=0,max=100"`
}

// CreateCoupon creates a discount code for the caller's salon
func (cc *CouponController) CreateCoupon(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	var input CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salon, ok := cc.callerSalon(c, ownerID)
	if !ok {
		return
	}

	var existing models.Coupon
	result := cc.DB.Where("code = ? AND salon_id = ?", input.Code, salon.ID).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Coupon already exists")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	coupon := models.Coupon{
		Code:     input.Code,
		Discount: input.Discount,
		SalonID:  salon.ID,
	}

	if err := cc.DB.Create(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Coupon already exists")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create coupon")
		}
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

func (cc *CouponController) UpdateCoupon(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	couponUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid coupon ID format")
		return
	}

	var input UpdateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	coupon, ok := cc.ownedCoupon(c, couponUUID, ownerID, "update")
	if !ok {
		return
	}

	if input.Code != nil {
		coupon.Code = *input.Code
	}
	if input.Discount != nil {
		coupon.Discount = *input.Discount
	}

	if err := cc.DB.Save(coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update coupon")
		return
	}

	c.JSON(http.StatusOK, coupon)
}

func (cc *CouponController) DeleteCoupon(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	couponUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid coupon ID format")
		return
	}

	coupon, ok := cc.ownedCoupon(c, couponUUID, ownerID, "delete")
	if !ok {
		return
	}

	if err := cc.DB.Delete(coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

func (cc *CouponController) GetCoupon(c *gin.Context) {
	couponUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid coupon ID format")
		return
	}

	var coupon models.Coupon
	if err := cc.DB.First(&coupon, "id = ?", couponUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// GetMyCoupons lists the caller's salon coupons for the dashboard
func (cc *CouponController) GetMyCoupons(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	salon, ok := cc.callerSalon(c, ownerID)
	if !ok {
		return
	}

	var coupons []models.Coupon
	if err := cc.DB.Where("salon_id = ?", salon.ID).Find(&coupons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve coupons")
		return
	}

	c.JSON(http.StatusOK, coupons)
}

type ApplyCouponInput struct {
	Coupon            string                      `json:"coupon" binding:"required"`
	ServiceIDs        []services.ServiceSelection `json:"serviceIds" binding:"required,min=1"`
	PriceBeforeCoupon float64                     `json:"priceBeforeCoupon" binding:"required,min=0"`
}

// ApplyCoupon previews the discounted price for the checkout confirmation
// step, without creating anything.
func (cc *CouponController) ApplyCoupon(c *gin.Context) {
	var input ApplyCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	price, err := cc.Pricing.PreviewDiscount(input.Coupon, input.ServiceIDs, input.PriceBeforeCoupon)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		case errors.Is(err, services.ErrCouponNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		case errors.Is(err, services.ErrCouponWrongSalon), errors.Is(err, services.ErrMixedSalons):
			utils.RespondWithError(c, http.StatusBadRequest, "Coupon not valid for this salon")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to apply coupon")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"price": price})
}

func (cc *CouponController) callerSalon(c *gin.Context, ownerID uuid.UUID) (*models.Salon, bool) {
	var salon models.Salon
	if err := cc.DB.Where("owner_id = ?", ownerID).First(&salon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &salon, true
}

func (cc *CouponController) ownedCoupon(c *gin.Context, couponID, ownerID uuid.UUID, action string) (*models.Coupon, bool) {
	var coupon models.Coupon
	if err := cc.DB.First(&coupon, "id = ?", couponID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	var salon models.Salon
	if err := cc.DB.First(&salon, "id = ?", coupon.SalonID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return nil, false
	}

	if salon.OwnerID != ownerID {
		utils.RespondWithError(c, http.StatusForbidden, "You are not authorized to "+action+" this coupon")
		return nil, false
	}
	return &coupon, true
}
