package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ruimfonseca/nightowl/internal/helpers"
	"github.com/ruimfonseca/nightowl/internal/middleware"
	"github.com/ruimfonseca/nightowl/internal/models"
)

func ListMyNotifications(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var notifications []models.Notification
	if err := gormDB.Where("receiver_id = ?", userID).Order("created_at DESC").Find(&notifications).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving notifications.")
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// DeleteNotification is receiver-gated: only the user the notification
// was addressed to may remove it.
func DeleteNotification(c *gin.Context) {
	notificationID := c.Param("id")
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ? AND receiver_id = ?", notificationID, userID).Delete(&models.Notification{})
	if result.Error != nil {
		if helpers.IsUUIDSyntaxError(result.Error) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Id of the notification has to be type uuid.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete notification.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Could not delete the notification.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification removed successfully."})
}
