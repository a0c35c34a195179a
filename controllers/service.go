// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

type ServiceController struct {
	DB *gorm.DB
}

type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	PointPrice  int     `json:"pointPrice" binding:"required"`
	Duration    int     `json:"duration" binding:"required"` // in minutes
	Category    string  `json:"category" binding:"required"`
	InHouse     bool    `json:"inHouse"`
}

type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	PointPrice  *int     `json:"pointPrice"`
	Duration    *int     `json:"duration"`
	Category    *string  `json:"category"`
	InHouse     *bool    `json:"inHouse"`
}

// CreateService creates a new service for the caller's salon
func (sc *ServiceController) CreateService(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Price <= 100 || input.PointPrice <= 0 || input.Duration <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Price must be greater than 100 DA, pointPrice and duration must be greater than 0")
		return
	}

	salon, ok := sc.callerSalon(c, ownerID)
	if !ok {
		return
	}

	var existing models.Service
	result := sc.DB.Where("name = ? AND salon_id = ?", input.Name, salon.ID).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Service already exists for this salon")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var category models.Category
	if err := sc.DB.Where("name = ?", input.Category).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	service := models.Service{
		SalonID:     salon.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		PointPrice:  input.PointPrice,
		Duration:    input.Duration,
		CategoryID:  category.ID,
		InHouse:     input.InHouse,
	}

	if err := sc.DB.Create(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Service already exists for this salon")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		}
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service, ok := sc.ownedService(c, serviceUUID, ownerID, "update")
	if !ok {
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.PointPrice != nil {
		service.PointPrice = *input.PointPrice
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.InHouse != nil {
		service.InHouse = *input.InHouse
	}
	if input.Category != nil {
		var category models.Category
		if err := sc.DB.Where("name = ?", *input.Category).First(&category).Error; err == nil {
			service.CategoryID = category.ID
		}
	}

	if err := sc.DB.Save(service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	service, ok := sc.ownedService(c, serviceUUID, ownerID, "delete")
	if !ok {
		return
	}

	if err := sc.DB.Delete(service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

func (sc *ServiceController) GetServices(c *gin.Context) {
	var services []models.Service
	if err := sc.DB.Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	c.JSON(http.StatusOK, services)
}

func (sc *ServiceController) GetService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := sc.DB.First(&service, "id = ?", serviceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// GetSalonServices lists the services of one salon for the booking flow
func (sc *ServiceController) GetSalonServices(c *gin.Context) {
	salonUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	var salon models.Salon
	if err := sc.DB.First(&salon, "id = ?", salonUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var services []models.Service
	if err := sc.DB.Where("salon_id = ?", salonUUID).Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (sc *ServiceController) GetSalonServicesByCategory(c *gin.Context) {
	salonUUID, err := uuid.Parse(c.Param("salonId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	var category models.Category
	if err := sc.DB.Where("name = ?", c.Param("category")).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var services []models.Service
	if err := sc.DB.Where("salon_id = ? AND category_id = ?", salonUUID, category.ID).
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetMyServices lists the caller's own salon services for the dashboard
func (sc *ServiceController) GetMyServices(c *gin.Context) {
	ownerID, ok := utils.CurrentUserID(c)
	if !ok {
		return
	}

	salon, ok := sc.callerSalon(c, ownerID)
	if !ok {
		return
	}

	var services []models.Service
	if err := sc.DB.Where("salon_id = ?", salon.ID).Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (sc *ServiceController) callerSalon(c *gin.Context, ownerID uuid.UUID) (*models.Salon, bool) {
	var salon models.Salon
	if err := sc.DB.Where("owner_id = ?", ownerID).First(&salon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &salon, true
}

func (sc *ServiceController) ownedService(c *gin.Context, serviceID, ownerID uuid.UUID, action string) (*models.Service, bool) {
	var service models.Service
	if err := sc.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	var salon models.Salon
	if err := sc.DB.First(&salon, "id = ?", service.SalonID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return nil, false
	}

	if salon.OwnerID != ownerID {
		utils.RespondWithError(c, http.StatusForbidden, "You are not authorized to "+action+" this service")
		return nil, false
	}
	return &service, true
}
