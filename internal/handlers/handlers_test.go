package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ruimfonseca/nightowl/config"
	"github.com/ruimfonseca/nightowl/internal/models"
	"github.com/ruimfonseca/nightowl/internal/push"
	"github.com/ruimfonseca/nightowl/internal/server"
)

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *fakePublisher) Publish(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) published(event string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e == event {
			return true
		}
	}
	return false
}

type fakeDispatcher struct {
	mu       sync.Mutex
	messages []push.Message
}

func (d *fakeDispatcher) Notify(msg push.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
}

func (d *fakeDispatcher) all() []push.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]push.Message(nil), d.messages...)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	config.SeedRoles(db)
	return db
}

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *fakePublisher, *fakeDispatcher) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	gin.SetMode(gin.TestMode)
	server.RegisterValidations()

	db := setupTestDB(t)
	publisher := &fakePublisher{}
	dispatcher := &fakeDispatcher{}

	r := gin.New()
	server.SetupRoutes(r, db, publisher, dispatcher)
	return r, db, publisher, dispatcher
}

func doRequest(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, r http.Handler, username string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"secret123","gender":"male"}`, username, username)
	w := doRequest(r, http.MethodPost, "/signup", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func findUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("username = ?", username).First(&user).Error)
	return user
}

func createEvent(t *testing.T, r http.Handler, token, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{
		"longitude": -8.61,
		"latitude": 41.15,
		"name": %q,
		"description": "late night",
		"image": "data:image/png;base64,AAAABBBBCCCCDDDD",
		"starttime": "22:00",
		"endtime": "04:00",
		"date": "2026-12-31",
		"price": 10,
		"owner_contact": "912345678"
	}`, name)
	w := doRequest(r, http.MethodPost, "/events", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody(t, w)
	id, ok := resp["event_id"].(string)
	require.True(t, ok)
	return id
}

// promoteAndSignIn changes the user's role and issues a token carrying it.
func promoteAndSignIn(t *testing.T, r http.Handler, db *gorm.DB, username, roleName string) string {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where("name = ?", roleName).First(&role).Error)
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", username).Update("role_id", role.ID).Error)

	body := fmt.Sprintf(`{"username":%q,"password":"secret123"}`, username)
	w := doRequest(r, http.MethodGet, "/signin", body, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}
