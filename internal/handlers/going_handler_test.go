package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoingLifecycle(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	token := registerUser(t, r, "goer1")
	eventID := createEvent(t, r, token, "Attended Event")

	w := doRequest(r, http.MethodGet, "/going", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/going/"+eventID, "", token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(r, http.MethodPost, "/going/"+eventID, "", token)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodGet, "/going", "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodDelete, "/going/"+eventID, "", token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodDelete, "/going/"+eventID, "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPeopleGoing(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	ownerToken := registerUser(t, r, "goer2")
	guestToken := registerUser(t, r, "goer3")
	eventID := createEvent(t, r, ownerToken, "Busy Event")

	w := doRequest(r, http.MethodGet, "/event/"+eventID+"/peopleGoing", "", ownerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	for _, token := range []string{ownerToken, guestToken} {
		w = doRequest(r, http.MethodPost, "/going/"+eventID, "", token)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doRequest(r, http.MethodGet, "/event/"+eventID+"/peopleGoing", "", ownerToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	assert.Equal(t, float64(2), resp["count"])
	assert.Contains(t, w.Body.String(), "goer2")
	assert.Contains(t, w.Body.String(), "goer3")
}

func TestGoingRejectsBadEventID(t *testing.T) {
	r, _, _, _ := newTestServer(t)

	token := registerUser(t, r, "goer4")

	w := doRequest(r, http.MethodPost, "/going/not-a-uuid", "", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
