package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruimfonseca/nightowl/internal/helpers"
	"github.com/ruimfonseca/nightowl/internal/middleware"
	"github.com/ruimfonseca/nightowl/internal/models"
	"github.com/ruimfonseca/nightowl/internal/realtime"
)

type EventRequest struct {
	Longitude    *float64 `json:"longitude" binding:"required"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	StartTime    string   `json:"starttime" binding:"required,timeofday"`
	EndTime      string   `json:"endtime" binding:"omitempty,timeofday"`
	Date         string   `json:"date" binding:"required"`
	Price        int      `json:"price"`
	OwnerContact string   `json:"owner_contact"`
}

type ChangeStateRequest struct {
	State string `json:"state" binding:"required"`
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD.")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	startTime, _ := helpers.NormalizeTimeOfDay(req.StartTime)
	endTime := req.EndTime
	if endTime != "" {
		endTime, _ = helpers.NormalizeTimeOfDay(endTime)
	}

	event := models.Event{
		ID:           uuid.New(),
		Longitude:    *req.Longitude,
		Latitude:     *req.Latitude,
		Name:         req.Name,
		Description:  req.Description,
		Image:        req.Image,
		StartTime:    startTime,
		EndTime:      endTime,
		Date:         date,
		Price:        req.Price,
		OwnerContact: req.OwnerContact,
		State:        models.StatePending,
		UserID:       userID,
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Event added successfully!",
		"event_id": event.ID,
	})
}

func GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		if helpers.IsUUIDSyntaxError(err) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Id of the event has to be type uuid.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListEvents pages by id, then filters the page in memory the way the
// list view always has: exact time-of-day match, case-insensitive name
// substring and a price range. Filter input is validated before any
// persistence call.
func ListEvents(c *gin.Context) {
	pageNum, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limitNum, err := helpers.StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	startTime := c.Query("startTime")
	if startTime != "" {
		if startTime, err = helpers.NormalizeTimeOfDay(startTime); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid format for the time. Please use the format hh:mm or hh:mm:ss.")
			return
		}
	}
	endTime := c.Query("endTime")
	if endTime != "" {
		if endTime, err = helpers.NormalizeTimeOfDay(endTime); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid format for the time. Please use the format hh:mm or hh:mm:ss.")
			return
		}
	}

	var minPrice, maxPrice int
	hasMin, hasMax := false, false
	if raw := c.Query("minPrice"); raw != "" {
		if minPrice, err = helpers.StringToInt(raw); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid minPrice.")
			return
		}
		hasMin = true
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if maxPrice, err = helpers.StringToInt(raw); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid maxPrice.")
			return
		}
		hasMax = true
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var events []models.Event
	offset := (pageNum - 1) * limitNum
	if err := gormDB.Order("id").Offset(offset).Limit(limitNum).Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	name := strings.ToLower(c.Query("name"))
	filtered := make([]models.Event, 0, len(events))
	for _, event := range events {
		if startTime != "" && event.StartTime != startTime {
			continue
		}
		if endTime != "" && event.EndTime != endTime {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(event.Name), name) {
			continue
		}
		if hasMin && event.Price < minPrice {
			continue
		}
		if hasMax && event.Price > maxPrice {
			continue
		}
		filtered = append(filtered, event.TruncateImage())
	}

	c.JSON(http.StatusOK, filtered)
}

func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format. Please use YYYY-MM-DD.")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		if helpers.IsUUIDSyntaxError(err) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Id of the event has to be type uuid.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	startTime, _ := helpers.NormalizeTimeOfDay(req.StartTime)
	endTime := req.EndTime
	if endTime != "" {
		endTime, _ = helpers.NormalizeTimeOfDay(endTime)
	}

	// Full field replacement, not a merge.
	event.Longitude = *req.Longitude
	event.Latitude = *req.Latitude
	event.Name = req.Name
	event.Description = req.Description
	event.Image = req.Image
	event.StartTime = startTime
	event.EndTime = endTime
	event.Date = date
	event.Price = req.Price
	event.OwnerContact = req.OwnerContact

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	if publisher := middleware.GetPublisher(c); publisher != nil {
		publisher.Publish(realtime.EventEventUpdated, event)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully!",
		"event":   event,
	})
}

// ChangeEventState is the Admin/Editor escape hatch. The new state is
// still validated against the canonical allow-list.
func ChangeEventState(c *gin.Context) {
	eventID := c.Param("id")

	var req ChangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "A valid new state has to be provided.")
		return
	}

	newState, ok := models.ParseEventState(req.State)
	if !ok {
		helpers.RespondWithError(c, http.StatusBadRequest, "State must be one of pending, active or deactivated.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		if helpers.IsUUIDSyntaxError(err) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Id of the event has to be type uuid.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	if err := gormDB.Model(&event).Update("state", newState).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event state.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Event state updated successfully!",
		"eventName": event.Name,
		"newState":  newState,
	})
}

func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")
	userID, exists := middleware.GetUserID(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ? AND user_id = ?", eventID, userID).Delete(&models.Event{})
	if result.Error != nil {
		if helpers.IsUUIDSyntaxError(result.Error) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Id of the event has to be type uuid.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully!"})
}
