package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruimfonseca/nightowl/internal/helpers"
	"github.com/ruimfonseca/nightowl/internal/middleware"
	"github.com/ruimfonseca/nightowl/internal/models"
	"github.com/ruimfonseca/nightowl/internal/push"
	"github.com/ruimfonseca/nightowl/internal/realtime"
)

type CommentRequest struct {
	Comment string `json:"comment"`
}

type CommentLikeRequest struct {
	EventID uuid.UUID `json:"eventId" binding:"required"`
}

func PostComment(c *gin.Context) {
	eventID := c.Param("id")

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "The comment should be a string.")
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		helpers.RespondWithError(c, http.StatusBadRequest, "The comment is required.")
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

	var author models.User
	if err := gormDB.Where("id = ?", userID).First(&author).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving user.")
		return
	}

	comment := models.Comment{
		ID:             uuid.New(),
		UserID:         userID,
		EventID:        event.ID,
		EventName:      event.Name,
		Text:           req.Comment,
		NotificationID: uuid.New(),
	}

	if err := gormDB.Create(&comment).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add comment.")
		return
	}

	if publisher := middleware.GetPublisher(c); publisher != nil {
		publisher.Publish(realtime.EventNewComment, comment)
	}

	// Notify the event owner, unless they wrote the comment themselves or
	// have no registered device. Delivery is fire-and-forget.
	if userID != event.UserID {
		var owner models.User
		if err := gormDB.Where("id = ?", event.UserID).First(&owner).Error; err == nil && owner.DeviceToken != nil && *owner.DeviceToken != "" {
			if notifier := middleware.GetNotifier(c); notifier != nil {
				notifier.Notify(push.Message{
					ID:          comment.NotificationID,
					EventID:     event.ID,
					EventName:   event.Name,
					SenderID:    userID,
					ReceiverID:  owner.ID,
					Title:       "New comment",
					Body:        fmt.Sprintf("%s commented on your event %s: %q", author.Username, event.Name, req.Comment),
					DeviceToken: *owner.DeviceToken,
				})
			}
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Successfully commented on %s", event.Name),
		"id":      comment.ID,
		"comment": comment.Text,
	})
}

func DeleteComment(c *gin.Context) {
	commentID := c.Param("id")
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

	result := gormDB.Where("id = ? AND user_id = ?", commentID, userID).Delete(&models.Comment{})
	if result.Error != nil {
		if helpers.IsUUIDSyntaxError(result.Error) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Id of the comment has to be type uuid.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete comment.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Comment not found!")
		return
	}

	if publisher := middleware.GetPublisher(c); publisher != nil {
		publisher.Publish(realtime.EventDeleteComment, gin.H{"id": commentID, "userId": userID})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment successfully deleted!"})
}

func ListComments(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var comments []models.Comment
	if err := gormDB.Find(&comments).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving comments.")
		return
	}

	c.JSON(http.StatusOK, comments)
}

func ListEventComments(c *gin.Context) {
	eventID := c.Param("eventId")

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var comments []models.Comment
	if err := gormDB.Where("event_id = ?", eventID).Find(&comments).Error; err != nil {
		if helpers.IsUUIDSyntaxError(err) {
			helpers.RespondWithError(c, http.StatusBadRequest, "Id of the event has to be type uuid.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving comments.")
		return
	}

	c.JSON(http.StatusOK, comments)
}

func ListCommentLikes(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var likes []models.CommentLike
	if err := gormDB.Find(&likes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving comment likes.")
		return
	}
	if len(likes) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "No likes found!")
		return
	}

	c.JSON(http.StatusOK, likes)
}

func LikeComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Id of the comment has to be type uuid.")
		return
	}

	var req CommentLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "eventId is required.")
		return
	}
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var existing models.CommentLike
	if result := gormDB.Where("comment_id = ? AND user_id = ? AND event_id = ?", commentID, userID, req.EventID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "User has already liked this comment.")
		return
	}

	like := models.CommentLike{CommentID: commentID, UserID: userID, EventID: req.EventID}
	if err := gormDB.Create(&like).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithError(c, http.StatusConflict, "User has already liked this comment.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to like comment.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment liked successfully!"})
}

func UnlikeComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Id of the comment has to be type uuid.")
		return
	}

	var req CommentLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "eventId is required.")
		return
	}
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("comment_id = ? AND user_id = ? AND event_id = ?", commentID, userID, req.EventID).Delete(&models.CommentLike{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to remove like from comment.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Like on this comment does not exist.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like removed from comment successfully!"})
}
