package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ruimfonseca/nightowl/internal/helpers"
	"github.com/ruimfonseca/nightowl/internal/middleware"
	"github.com/ruimfonseca/nightowl/internal/models"
)

func ListMyGoing(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var going []models.Going
	if err := gormDB.Where("user_id = ?", userID).Find(&going).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving going list.")
		return
	}
	if len(going) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "No one is going to the events.")
		return
	}

	c.JSON(http.StatusOK, going)
}

func GoToEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Id of the event has to be type uuid.")
		return
	}
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var existing models.Going
	if result := gormDB.Where("user_id = ? AND event_id = ?", userID, eventID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "User already going to the event!")
		return
	}

	going := models.Going{UserID: userID, EventID: eventID}
	if err := gormDB.Create(&going).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithError(c, http.StatusConflict, "User already going to the event!")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add user to the going list.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User is now going to the event!"})
}

func CancelGoing(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Id of the event has to be type uuid.")
		return
	}
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("user_id = ? AND event_id = ?", userID, eventID).Delete(&models.Going{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to remove user from the going list.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found in the event's going list.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User is removed from the event's going list!"})
}

// ListPeopleGoing returns the users attending an event.
func ListPeopleGoing(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Id of the event has to be type uuid.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var going []models.Going
	if err := gormDB.Where("event_id = ?", eventID).Find(&going).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving going list.")
		return
	}
	if len(going) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "No one is going to this event.")
		return
	}

	ids := make([]uuid.UUID, 0, len(going))
	for _, entry := range going {
		ids = append(ids, entry.UserID)
	}

	var users []models.User
	if err := gormDB.Select("id", "username", "user_image").Where("id IN ?", ids).Find(&users).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving users.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}
