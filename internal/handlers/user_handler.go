package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ruimfonseca/nightowl/internal/helpers"
	"github.com/ruimfonseca/nightowl/internal/middleware"
	"github.com/ruimfonseca/nightowl/internal/models"
	"github.com/ruimfonseca/nightowl/internal/realtime"
)

type UpdateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	UserImage string `json:"userimage"`
}

func ListUsers(c *gin.Context) {
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

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	query := gormDB.Model(&models.User{})
	if name := c.Query("name"); name != "" {
		query = query.Where("LOWER(username) LIKE LOWER(?)", "%"+name+"%")
	}

	var users []models.User
	offset := (pageNum - 1) * limitNum
	if err := query.Offset(offset).Limit(limitNum).Order("username").Find(&users).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving users.")
		return
	}

	c.JSON(http.StatusOK, users)
}

func UpdateMe(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
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

	updates := map[string]interface{}{
		"username":   req.Username,
		"email":      req.Email,
		"user_image": req.UserImage,
	}
	result := gormDB.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		if helpers.IsUniqueViolation(result.Error) {
			helpers.RespondWithError(c, http.StatusConflict, "This username or email is already in use.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update user.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found!")
		return
	}

	if publisher := middleware.GetPublisher(c); publisher != nil {
		publisher.Publish(realtime.EventUserUpdate, gin.H{
			"userId":    userID,
			"username":  req.Username,
			"email":     req.Email,
			"userimage": req.UserImage,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully!"})
}

// DeleteMe removes the account and every relationship row that references
// it. The store has no ON DELETE CASCADE, so the cleanup is explicit and
// transactional.
func DeleteMe(c *gin.Context) {
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

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", userID).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.EventLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.EventFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Going{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR following_id = ?", userID, userID).Delete(&models.Follower{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).Delete(&models.Notification{}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "User not found!")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete account.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully!"})
}
