// controllers/salon.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

type SalonController struct {
	DB *gorm.DB
}

type CreateSalonInput struct {
	Name         string         `json:"name" binding:"required"`
	Description  string         `json:"description"`
	Address      string         `json:"address"`
	City         string         `json:"city"`
	PhoneNumber  string         `json:"phoneNumber"`
	WorkingHours string         `json:"workingHours"`
	WorkingDays  datatypes.JSON `json:"workingDays"`
}

type UpdateSalonInput struct {
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	Address      *string         `json:"address"`
	City         *string         `json:"city"`
	PhoneNumber  *string         `json:"phoneNumber"`
	WorkingHours *string         `json:"workingHours"`
	WorkingDays  *datatypes.JSON `json:"workingDays"`
}

// GetSalons lists every salon for the public marketing pages
func (sc *SalonController) GetSalons(c *gin.Context) {
	var salons []models.Salon
	if err := sc.DB.Preload("Pictures").Find(&salons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve salons")
		return
	}
	c.JSON(http.StatusOK, salons)
}

func (sc *SalonController) GetSalon(c *gin.Context) {
	salonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	var salon models.Salon
	if err := sc.DB.Preload("Pictures").First(&salon, "id = ?", salonUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, salon)
}

// CreateSalon registers the caller's salon. One salon per owner.
func (sc *SalonController) CreateSalon(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	var input CreateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Salon
	result := sc.DB.Where("owner_id = ?", ownerID).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusForbidden, "You already have a salon")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	salon := models.Salon{
		Name:         input.Name,
		Description:  input.Description,
		Address:      input.Address,
		City:         input.City,
		PhoneNumber:  input.PhoneNumber,
		OwnerID:      ownerID,
		WorkingHours: input.WorkingHours,
		WorkingDays:  input.WorkingDays,
	}

	if err := sc.DB.Create(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create salon")
		return
	}

	c.JSON(http.StatusCreated, salon)
}

func (sc *SalonController) UpdateSalon(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	salonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salon, ok := sc.ownedSalon(c, salonUUID, ownerID, "update")
	if !ok {
		return
	}

	if input.Name != nil {
		salon.Name = *input.Name
	}
	if input.Description != nil {
		salon.Description = *input.Description
	}
	if input.Address != nil {
		salon.Address = *input.Address
	}
	if input.City != nil {
		salon.City = *input.City
	}
	if input.PhoneNumber != nil {
		salon.PhoneNumber = *input.PhoneNumber
	}
	if input.WorkingHours != nil {
		salon.WorkingHours = *input.WorkingHours
	}
	if input.WorkingDays != nil {
		salon.WorkingDays = *input.WorkingDays
	}

	if err := sc.DB.Save(salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update salon")
		return
	}

	c.JSON(http.StatusOK, salon)
}

// DeleteSalon removes the caller's salon. Ownership is checked here even
// though the legacy API skipped it.
func (sc *SalonController) DeleteSalon(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	salonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	salon, ok := sc.ownedSalon(c, salonUUID, ownerID, "delete")
	if !ok {
		return
	}

	if err := sc.DB.Delete(salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete salon")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Salon deleted successfully"})
}

type AddPicturesInput struct {
	URLs []string `json:"urls" binding:"required,min=1"`
}

func (sc *SalonController) AddPictures(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	salonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	var input AddPicturesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salon, ok := sc.ownedSalon(c, salonUUID, ownerID, "update")
	if !ok {
		return
	}

	pictures := make([]models.SalonPicture, 0, len(input.URLs))
	for _, url := range input.URLs {
		pictures = append(pictures, models.SalonPicture{SalonID: salon.ID, URL: url})
	}

	if err := sc.DB.Create(&pictures).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add pictures")
		return
	}

	c.JSON(http.StatusCreated, pictures)
}

func (sc *SalonController) DeletePicture(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	pictureUUID, err := uuid.Parse(c.Param("pictureId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid picture ID format")
		return
	}

	var picture models.SalonPicture
	if err := sc.DB.First(&picture, "id = ?", pictureUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Picture not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if _, ok := sc.ownedSalon(c, picture.SalonID, ownerID, "update"); !ok {
		return
	}

	if err := sc.DB.Delete(&picture).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete picture")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Picture deleted successfully"})
}

// ownedSalon loads a salon and enforces the caller-is-owner guard every
// owner-scoped mutation needs. Writes the error response itself.
func (sc *SalonController) ownedSalon(c *gin.Context, salonID, ownerID uuid.UUID, action string) (*models.Salon, bool) {
	var salon models.Salon
	if err := sc.DB.First(&salon, "id = ?", salonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	if salon.OwnerID != ownerID {
		utils.RespondWithError(c, http.StatusForbidden, "You are not authorized to "+action+" this salon")
		return nil, false
	}
	return &salon, true
}
