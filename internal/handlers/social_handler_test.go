package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruimfonseca/nightowl/internal/models"
)

func TestLikeEventIsIdempotentGuarded(t *testing.T) {
	r, db, _, _ := newTestServer(t)

	token := registerUser(t, r, "liker1")
	eventID := createEvent(t, r, token, "Liked Event")

	w := doRequest(r, http.MethodPost, "/events/"+eventID+"/likes", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(r, http.MethodPost, "/events/"+eventID+"/likes", "", token)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.EventLike{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUnlikeAbsentLike(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	token := registerUser(t, r, "liker2")
	eventID := createEvent(t, r, token, "Unliked Event")

	w := doRequest(r, http.MethodDelete, "/events/"+eventID+"/likes", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMyLikedEvents(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	token := registerUser(t, r, "liker3")

	w := doRequest(r, http.MethodGet, "/events/likes/me", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	eventID := createEvent(t, r, token, "My Liked Event")
	w = doRequest(r, http.MethodPost, "/events/"+eventID+"/likes", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/events/likes/me", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	assert.Equal(t, float64(1), resp["count"])

	events, ok := resp["events"].([]interface{})
	require.True(t, ok)
	require.Len(t, events, 1)

	event := events[0].(map[string]interface{})
	image := event["image"].(string)
	assert.LessOrEqual(t, len(image), models.ListImageLength)
}

func TestListAllEventLikes(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	aliceToken := registerUser(t, r, "alice-likes")
	bobToken := registerUser(t, r, "bob-likes")
	eventID := createEvent(t, r, aliceToken, "Popular Event")

	for _, token := range []string{aliceToken, bobToken} {
		w := doRequest(r, http.MethodPost, "/events/"+eventID+"/likes", "", token)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(r, http.MethodGet, "/events/all/likes", "", aliceToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var groups []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, eventID, groups[0]["eventId"])
	assert.Equal(t, float64(2), groups[0]["count"])
	assert.Equal(t, true, groups[0]["isLikedByMe"])
}

func TestFavouriteEventDuplicate(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	token := registerUser(t, r, "fav1")
	eventID := createEvent(t, r, token, "Favourite Event")

	w := doRequest(r, http.MethodPost, "/events/"+eventID+"/favourites", "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(r, http.MethodPost, "/events/"+eventID+"/favourites", "", token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodGet, "/events/favorites/me", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, float64(1), resp["count"])
}

func TestUnfavouriteAbsent(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	token := registerUser(t, r, "fav2")

	w := doRequest(r, http.MethodDelete, "/events/"+uuid.NewString()+"/favourites", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowUserValidation(t *testing.T) {
	r, db, _, _ := newTestServer(t)

	token := registerUser(t, r, "ana-follow")
	ana := findUser(t, db, "ana-follow")

	w := doRequest(r, http.MethodPost, "/following/"+ana.ID.String(), "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodPost, "/following/"+uuid.NewString(), "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/following/not-a-uuid", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowAndListBothDirections(t *testing.T) {
	r, db, _, _ := newTestServer(t)

	anaToken := registerUser(t, r, "ana-social")
	registerUser(t, r, "bruno-social")
	bruno := findUser(t, db, "bruno-social")

	w := doRequest(r, http.MethodPost, "/following/"+bruno.ID.String(), "", anaToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(r, http.MethodPost, "/following/"+bruno.ID.String(), "", anaToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodGet, "/followers&followings", "", anaToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody(t, w)
	assert.Equal(t, float64(0), resp["followersCount"])
	assert.Equal(t, float64(1), resp["followingsCount"])
}

func TestUnfollowMutual(t *testing.T) {
	r, db, _, _ := newTestServer(t)

	anaToken := registerUser(t, r, "ana-mutual")
	brunoToken := registerUser(t, r, "bruno-mutual")
	ana := findUser(t, db, "ana-mutual")
	bruno := findUser(t, db, "bruno-mutual")

	w := doRequest(r, http.MethodPost, "/following/"+bruno.ID.String(), "", anaToken)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(r, http.MethodPost, "/following/"+ana.ID.String(), "", brunoToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodDelete, "/following/"+bruno.ID.String(), `{"mutual":true}`, anaToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.Follower{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRemoveFollower(t *testing.T) {
	r, db, _, _ := newTestServer(t)

	anaToken := registerUser(t, r, "ana-remove")
	brunoToken := registerUser(t, r, "bruno-remove")
	ana := findUser(t, db, "ana-remove")
	bruno := findUser(t, db, "bruno-remove")

	w := doRequest(r, http.MethodPost, "/following/"+ana.ID.String(), "", brunoToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodDelete, "/followers/"+bruno.ID.String(), "", anaToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(r, http.MethodDelete, "/followers/"+bruno.ID.String(), "", anaToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
