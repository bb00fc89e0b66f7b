package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruimfonseca/nightowl/internal/helpers"
	"github.com/ruimfonseca/nightowl/internal/middleware"
	"github.com/ruimfonseca/nightowl/internal/models"
)

type NightclubRequest struct {
	Longitude   *float64 `json:"longitude" binding:"required"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
}

func ListNightclubs(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var nightclubs []models.Nightclub
	if err := gormDB.Find(&nightclubs).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving nightclubs.")
		return
	}

	c.JSON(http.StatusOK, nightclubs)
}

func GetNightclub(c *gin.Context) {
	nightclubID := c.Param("id")

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var nightclub models.Nightclub
	if err := gormDB.Where("id = ?", nightclubID).First(&nightclub).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Nightclub not found.")
			return
		}
		if helpers.IsUUIDSyntaxError(err) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Id of the nightclub has to be type uuid.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving nightclub.")
		return
	}

	c.JSON(http.StatusOK, nightclub)
}

func CreateNightclub(c *gin.Context) {
	var req NightclubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	nightclub := models.Nightclub{
		ID:          uuid.New(),
		Longitude:   *req.Longitude,
		Latitude:    *req.Latitude,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Rating:      req.Rating,
		Reviews:     req.Reviews,
	}

	if err := gormDB.Create(&nightclub).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create nightclub.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Nightclub added successfully!",
		"nightclub": nightclub,
	})
}
