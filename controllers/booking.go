// controllers/booking.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/payments"
	"salonbook-backend/services"
	"salonbook-backend/utils"
)

// CheckoutCreator opens a hosted payment session for a money checkout.
type CheckoutCreator interface {
	CreateCheckout(req payments.CheckoutRequest) (*payments.Checkout, error)
}

type BookingController struct {
	DB           *gorm.DB
	Pricing      *services.PricingService
	Availability *services.AvailabilityService
	Payments     CheckoutCreator
}

type CreateReservationInput struct {
	StartTime   time.Time                   `json:"startTime" binding:"required"`
	PaymentType string                      `json:"paymentType" binding:"required"`
	ServiceIDs  []services.ServiceSelection `json:"serviceIds" binding:"required,min=1"`
	Coupon      string                      `json:"coupon"`
}

// CreateReservation runs the whole checkout: validation, conflict checks,
// pricing, points debit or coupon discount, persistence, and the hosted
// checkout handoff for money payments. All writes happen in one transaction
// so a checkout API failure leaves no orphan rows.
func (bc *BookingController) CreateReservation(c *gin.Context) {
	customerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.PaymentType != models.PaymentTypeMoney && input.PaymentType != models.PaymentTypePoints {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment type")
		return
	}

	if input.StartTime.Before(time.Now()) {
		utils.RespondWithError(c, http.StatusBadRequest, "You can't book a reservation in the past")
		return
	}

	quote, err := bc.Pricing.Quote(input.ServiceIDs, input.Coupon, input.PaymentType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		case errors.Is(err, services.ErrMixedSalons):
			utils.RespondWithError(c, http.StatusBadRequest, "All services must belong to the same salon")
		case errors.Is(err, services.ErrCouponNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		case errors.Is(err, services.ErrCouponWrongSalon):
			utils.RespondWithError(c, http.StatusBadRequest, "Coupon not valid for this salon")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to price reservation")
		}
		return
	}

	for _, line := range quote.Lines {
		endTime := input.StartTime.Add(time.Duration(line.Service.Duration) * time.Minute)
		taken, err := bc.Availability.SlotTaken(bc.DB, line.Service.ID, input.StartTime, endTime)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if taken {
			utils.RespondWithError(c, http.StatusConflict, "There is already a reservation for this time")
			return
		}
	}

	group := models.BookingGroup{
		CustomerID:      customerID,
		SalonID:         quote.SalonID,
		StartTime:       input.StartTime,
		PaymentType:     input.PaymentType,
		CouponCode:      input.Coupon,
		TotalPrice:      quote.TotalPrice,
		TotalPointPrice: quote.TotalPointPrice,
		Status:          models.BookingStatusPending,
	}

	var bookings []models.Booking
	var checkout *payments.Checkout

	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		if input.PaymentType == models.PaymentTypePoints {
			if err := debitPoints(tx, customerID, quote.SalonID, quote.TotalPointPrice); err != nil {
				return err
			}
		}

		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		for _, line := range quote.Lines {
			bookings = append(bookings, models.Booking{
				GroupID:     group.ID,
				StartTime:   input.StartTime,
				EndTime:     input.StartTime.Add(time.Duration(line.Service.Duration) * time.Minute),
				Status:      models.BookingStatusPending,
				CustomerID:  customerID,
				ServiceID:   line.Service.ID,
				SalonID:     quote.SalonID,
				Price:       line.Price,
				CouponCode:  input.Coupon,
				PaymentType: input.PaymentType,
				InHouse:     line.InHouse,
			})
		}

		if err := tx.Create(&bookings).Error; err != nil {
			return err
		}

		if input.PaymentType == models.PaymentTypeMoney {
			created, err := bc.Payments.CreateCheckout(payments.CheckoutRequest{
				Amount:     group.TotalPrice,
				Currency:   "dzd",
				Metadata:   []map[string]string{{"groupId": group.ID.String()}},
				SuccessURL: os.Getenv("CHECKOUT_SUCCESS_URL"),
				FailureURL: os.Getenv("CHECKOUT_FAILURE_URL"),
			})
			if err != nil {
				return err
			}
			checkout = created

			if err := tx.Model(&group).Update("checkout_id", checkout.ID).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, errInsufficientPoints):
			utils.RespondWithError(c, http.StatusBadRequest, "You don't have enough points")
		case errors.Is(err, gorm.ErrDuplicatedKey):
			utils.RespondWithError(c, http.StatusConflict, "There is already a reservation for this time")
		default:
			log.Printf("reservation checkout failed: %v", err)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reservation")
		}
		return
	}

	response := gin.H{
		"message":      "Reservation created",
		"reservations": bookings,
		"group":        group,
	}
	if checkout != nil {
		response["checkout"] = checkout.CheckoutURL
	}

	c.JSON(http.StatusCreated, response)
}

var errInsufficientPoints = errors.New("insufficient points")

// debitPoints verifies and debits the customer's per-salon balance inside
// the checkout transaction.
func debitPoints(tx *gorm.DB, customerID, salonID uuid.UUID, cost int) error {
	var points models.Points
	if err := tx.Where("customer_id = ? AND salon_id = ?", customerID, salonID).
		First(&points).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errInsufficientPoints
		}
		return err
	}

	if points.Balance < cost {
		return errInsufficientPoints
	}

	return tx.Model(&points).
		Update("balance", gorm.Expr("balance - ?", cost)).Error
}

// GetAvailableHours returns the bookable hour slots of a salon for one day
func (bc *BookingController) GetAvailableHours(c *gin.Context) {
	salonUUID, err := uuid.Parse(c.Param("salonId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || day < 1 || day > 31 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid day")
		return
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid month")
		return
	}

	hours, err := bc.Availability.AvailableHours(salonUUID, day, month)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{"availableHours": hours})
}

func (bc *BookingController) GetReservations(c *gin.Context) {
	var bookings []models.Booking
	if err := bc.DB.Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All reservations", "data": bookings})
}

func (bc *BookingController) GetMyReservations(c *gin.Context) {
	customerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := bc.DB.Where("customer_id = ?", customerID).Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All reservations", "data": bookings})
}

func (bc *BookingController) GetReservationHistory(c *gin.Context) {
	customerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := bc.DB.Where("customer_id = ?", customerID).Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}
	if len(bookings) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No reservation found for this user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Here is the customer's service history", "data": bookings})
}

func (bc *BookingController) GetConfirmedReservations(c *gin.Context) {
	bc.listByStatus(c, models.BookingStatusConfirmed, "No confirmed reservations found")
}

func (bc *BookingController) GetCancelledReservations(c *gin.Context) {
	bc.listByStatus(c, models.BookingStatusCancelled, "No cancelled reservations found")
}

func (bc *BookingController) listByStatus(c *gin.Context, status, emptyMsg string) {
	var bookings []models.Booking
	if err := bc.DB.Where("status = ?", status).Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}
	if len(bookings) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, emptyMsg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All reservations", "data": bookings})
}

func (bc *BookingController) GetReservation(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation successfully found", "reservation": booking})
}

type UpdateReservationInput struct {
	Status *string `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED PAID"`
}

// UpdateReservation changes a booking's status. Only the booking customer or
// the salon owner may do this.
func (bc *BookingController) UpdateReservation(c *gin.Context) {
	booking, ok := bc.authorizedBooking(c)
	if !ok {
		return
	}

	var input UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Status != nil {
		booking.Status = *input.Status
	}

	if err := bc.DB.Save(booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reservation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation Updated successfully", "data": booking})
}

func (bc *BookingController) DeleteReservation(c *gin.Context) {
	booking, ok := bc.authorizedBooking(c)
	if !ok {
		return
	}

	if err := bc.DB.Delete(booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete reservation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted successfully"})
}

// authorizedBooking loads the booking from the id param and checks that the
// caller is either the booking's customer or the salon's owner.
func (bc *BookingController) authorizedBooking(c *gin.Context) (*models.Booking, bool) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		return nil, false
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
		return nil, false
	}

	var booking models.Booking
	if err := bc.DB.First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	if booking.CustomerID == userID {
		return &booking, true
	}

	var salon models.Salon
	if err := bc.DB.First(&salon, "id = ?", booking.SalonID).Error; err == nil && salon.OwnerID == userID {
		return &booking, true
	}

	utils.RespondWithError(c, http.StatusForbidden, "You are not authorized to modify this reservation")
	return nil, false
}
