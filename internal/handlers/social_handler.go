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

type UnfollowRequest struct {
	Mutual bool `json:"mutual"`
}

func fetchEventsByIDs(gormDB *gorm.DB, ids []uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	if err := gormDB.Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, err
	}
	for i := range events {
		events[i] = events[i].TruncateImage()
	}
	return events, nil
}

func LikeEvent(c *gin.Context) {
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

	var existing models.EventLike
	if result := gormDB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "This event is already liked by you!")
		return
	}

	like := models.EventLike{UserID: userID, EventID: eventID}
	if err := gormDB.Create(&like).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithError(c, http.StatusConflict, "This event is already liked by you!")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to like event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event successfully liked!"})
}

func UnlikeEvent(c *gin.Context) {
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

	result := gormDB.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventLike{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to unlike event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Like not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event successfully disliked."})
}

func ListMyLikedEvents(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var likes []models.EventLike
	if err := gormDB.Where("user_id = ?", userID).Find(&likes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving liked events.")
		return
	}
	if len(likes) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "No liked events found.")
		return
	}

	ids := make([]uuid.UUID, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.EventID)
	}

	events, err := fetchEventsByIDs(gormDB, ids)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving liked events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// ListAllEventLikes groups every like by event and annotates whether the
// caller is among the likers.
func ListAllEventLikes(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var likes []models.EventLike
	if err := gormDB.Find(&likes).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving likes.")
		return
	}
	if len(likes) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "No liked events found.")
		return
	}

	byEvent := make(map[uuid.UUID][]uuid.UUID)
	for _, like := range likes {
		byEvent[like.EventID] = append(byEvent[like.EventID], like.UserID)
	}

	data := make([]gin.H, 0, len(byEvent))
	for eventID, userIDs := range byEvent {
		isLikedByMe := false
		for _, id := range userIDs {
			if id == userID {
				isLikedByMe = true
				break
			}
		}
		data = append(data, gin.H{
			"eventId":     eventID,
			"userIds":     userIDs,
			"count":       len(userIDs),
			"isLikedByMe": isLikedByMe,
		})
	}

	c.JSON(http.StatusOK, data)
}

func FavouriteEvent(c *gin.Context) {
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

	var existing models.EventFavorite
	if result := gormDB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You already have this event in your favourite events list.")
		return
	}

	favorite := models.EventFavorite{UserID: userID, EventID: eventID}
	if err := gormDB.Create(&favorite).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithError(c, http.StatusConflict, "You already have this event in your favourite events list.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to add event to favourites.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event successfully added to favourites!"})
}

func UnfavouriteEvent(c *gin.Context) {
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

	result := gormDB.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventFavorite{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to remove event from favourites.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Event does not exist.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event removed from favourites!"})
}

func ListMyFavouriteEvents(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var favorites []models.EventFavorite
	if err := gormDB.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving favourite events.")
		return
	}
	if len(favorites) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "No favorite events found.")
		return
	}

	ids := make([]uuid.UUID, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.EventID)
	}

	events, err := fetchEventsByIDs(gormDB, ids)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving favourite events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// ListFollowersAndFollowings returns both directions of the caller's
// follow relationships.
func ListFollowersAndFollowings(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var followers []models.Follower
	if err := gormDB.Where("following_id = ?", userID).Find(&followers).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving followers.")
		return
	}

	var followings []models.Follower
	if err := gormDB.Where("user_id = ?", userID).Find(&followings).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving followings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followers":       followers,
		"followersCount":  len(followers),
		"followings":      followings,
		"followingsCount": len(followings),
	})
}

func FollowUser(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Id of the user has to be type uuid.")
		return
	}
	userID, _ := middleware.GetUserID(c)

	if targetID == userID {
		helpers.RespondWithError(c, http.StatusBadRequest, "You cannot follow yourself.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var target models.User
	if err := gormDB.Where("id = ?", targetID).First(&target).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving user.")
		return
	}

	var existing models.Follower
	if result := gormDB.Where("user_id = ? AND following_id = ?", userID, targetID).First(&existing); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "You are already following this user.")
		return
	}

	follow := models.Follower{UserID: userID, FollowingID: targetID}
	if err := gormDB.Create(&follow).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithError(c, http.StatusConflict, "You are already following this user.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to follow user.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Following this user."})
}

// Unfollow removes the caller -> target edge. With mutual set, the
// reverse edge is removed as well. The direction is an explicit caller
// choice, never inferred.
func Unfollow(c *gin.Context) {
	removeFollowEdge(c, false)
}

// RemoveFollower removes the target -> caller edge, and with mutual set
// also the caller -> target edge.
func RemoveFollower(c *gin.Context) {
	removeFollowEdge(c, true)
}

func removeFollowEdge(c *gin.Context, reverse bool) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Id of the user has to be type uuid.")
		return
	}
	userID, _ := middleware.GetUserID(c)

	var req UnfollowRequest
	// The body is optional; absence means a unilateral removal.
	_ = c.ShouldBindJSON(&req)

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	followerID, followingID := userID, targetID
	if reverse {
		followerID, followingID = targetID, userID
	}

	result := gormDB.Where("user_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follower{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to remove follower.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Follower does not exist!")
		return
	}

	if req.Mutual {
		if err := gormDB.Where("user_id = ? AND following_id = ?", followingID, followerID).Delete(&models.Follower{}).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to remove follower.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Follower removed!"})
}
