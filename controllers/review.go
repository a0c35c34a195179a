// controllers/review.go
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

type ReviewController struct {
	DB     *gorm.DB
	Rating *services.RatingService
}

type CreateReviewInput struct {
	Rating  float64 `json:"rating" binding:"required,min=0,max=5"`
	Comment string  `json:"comment" binding:"required"`
}

type UpdateReviewInput struct {
	Rating  *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	Comment *string  `json:"comment"`
}

// CreateReview posts a review and recomputes the salon's rating with the
// configured aggregation strategy. Owners can't review their own salon.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	customerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	salonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	var input CreateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var salon models.Salon
	if err := rc.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if salon.OwnerID == customerID {
		utils.RespondWithError(c, http.StatusUnauthorized, "You can't review your own salon")
		return
	}

	review := models.Review{
		Rating:     input.Rating,
		Comment:    input.Comment,
		CustomerID: customerID,
		SalonID:    salonUUID,
	}

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		newRating, err := rc.Rating.NextRating(tx, &salon, input.Rating)
		if err != nil {
			return err
		}

		return tx.Model(&salon).Update("rating", newRating).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to post review")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review posted", "data": review})
}

func (rc *ReviewController) UpdateReview(c *gin.Context) {
	review, ok := rc.authoredReview(c, "update")
	if !ok {
		return
	}

	var input UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}

	if err := rc.DB.Save(review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review updated", "data": review})
}

func (rc *ReviewController) DeleteReview(c *gin.Context) {
	review, ok := rc.authoredReview(c, "delete")
	if !ok {
		return
	}

	if err := rc.DB.Delete(review).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

func (rc *ReviewController) GetReviews(c *gin.Context) {
	var reviews []models.Review
	if err := rc.DB.Find(&reviews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All Reviews", "data": reviews})
}

func (rc *ReviewController) GetReview(c *gin.Context) {
	reviewUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	var review models.Review
	if err := rc.DB.First(&review, "id = ?", reviewUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, review)
}

func (rc *ReviewController) GetSalonReviews(c *gin.Context) {
	salonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	var reviews []models.Review
	if err := rc.DB.Where("salon_id = ?", salonUUID).Find(&reviews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All reviews of the salon", "data": reviews})
}

func (rc *ReviewController) GetMyReviews(c *gin.Context) {
	customerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	var reviews []models.Review
	if err := rc.DB.Where("customer_id = ?", customerID).Find(&reviews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All reviews you have made", "data": reviews})
}

func (rc *ReviewController) GetMySalonReviews(c *gin.Context) {
	customerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	salonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	var reviews []models.Review
	if err := rc.DB.Where("salon_id = ? AND customer_id = ?", salonUUID, customerID).
		Find(&reviews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All reviews you have made for this salon", "data": reviews})
}

func (rc *ReviewController) authoredReview(c *gin.Context, action string) (*models.Review, bool) {
	customerID, ok := utils.CurrentUserID(c)
	if !ok {
		return nil, false
	}

	reviewUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid review ID format")
		return nil, false
	}

	var review models.Review
	if err := rc.DB.First(&review, "id = ?", reviewUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Review not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	if review.CustomerID != customerID {
		utils.RespondWithError(c, http.StatusUnauthorized,
			"You are not authorized to "+action+" comments other than yours")
		return nil, false
	}
	return &review, true
}
