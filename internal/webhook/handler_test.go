// File: internal/webhook/handler_test.go
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"learnhub_backend/internal/clerk"
	"learnhub_backend/internal/common"
	"learnhub_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type syncCall struct {
	clerkUserID string
	dbID        uuid.UUID
	role        string
}

// fakeSyncer records metadata write-backs instead of calling the provider.
type fakeSyncer struct {
	calls []syncCall
	err   error
}

func (f *fakeSyncer) SyncUserMetadata(_ context.Context, clerkUserID string, dbID uuid.UUID, role string) error {
	f.calls = append(f.calls, syncCall{clerkUserID: clerkUserID, dbID: dbID, role: role})
	return f.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}))
	return db
}

func newWebhookRouter(t *testing.T, db *gorm.DB, syncer clerk.MetadataSyncer) (*gin.Engine, *Verifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifier := newTestVerifier(t)
	users := user.NewService(user.NewGORMStore(db), zap.NewNop())
	handler := NewHandler(verifier, users, syncer, zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router, verifier
}

func signedRequest(t *testing.T, v *Verifier, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/clerk", strings.NewReader(body))
	msgID := "msg_" + uuid.NewString()
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set(HeaderID, msgID)
	req.Header.Set(HeaderTimestamp, ts)
	req.Header.Set(HeaderSignature, "v1,"+v.sign(msgID, ts, []byte(body)))
	return req
}

func userEventBody(t *testing.T, eventType string, data gin.H) string {
	t.Helper()
	body, err := json.Marshal(gin.H{"type": eventType, "data": data})
	require.NoError(t, err)
	return string(body)
}

func createdEventData() gin.H {
	return gin.H{
		"id":                       "user_abc",
		"first_name":               "Ada",
		"last_name":                "Lovelace",
		"image_url":                "https://img.example.com/ada.png",
		"primary_email_address_id": "idn_1",
		"email_addresses": []gin.H{
			{"id": "idn_2", "email_address": "secondary@example.com"},
			{"id": "idn_1", "email_address": "ada@example.com"},
		},
	}
}

func countUsers(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&user.User{}).Count(&n).Error)
	return n
}

func TestHandleClerkEvent_MissingSignatureHeaders(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})
	body := userEventBody(t, EventUserCreated, createdEventData())

	for _, header := range []string{HeaderID, HeaderTimestamp, HeaderSignature} {
		t.Run(header, func(t *testing.T) {
			req := signedRequest(t, verifier, body)
			req.Header.Del(header)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Missing "+header+" header.")
		})
	}
	assert.EqualValues(t, 0, countUsers(t, db))
}

func TestHandleClerkEvent_BadSignature(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})

	req := signedRequest(t, verifier, userEventBody(t, EventUserCreated, createdEventData()))
	req.Header.Set(HeaderSignature, "v1,Zm9yZ2VkLXNpZ25hdHVyZQ==")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "signature verification failed")
	assert.EqualValues(t, 0, countUsers(t, db))
}

func TestHandleClerkEvent_MalformedPayload(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, `{"type":`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Malformed event payload.")
}

func TestHandleClerkEvent_UserCreated(t *testing.T) {
	db := newTestDB(t)
	syncer := &fakeSyncer{}
	router, verifier := newWebhookRouter(t, db, syncer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserCreated, createdEventData())))
	require.Equal(t, http.StatusOK, w.Code)

	var saved user.User
	require.NoError(t, db.Where("clerk_user_id = ?", "user_abc").First(&saved).Error)
	assert.Equal(t, "ada@example.com", saved.Email)
	assert.Equal(t, "Ada Lovelace", saved.Name)
	assert.Equal(t, common.RoleUser, saved.Role)
	require.NotNil(t, saved.ImageURL)
	assert.Equal(t, "https://img.example.com/ada.png", *saved.ImageURL)
	assert.NotEqual(t, uuid.Nil, saved.ID)

	// The new local id and role must be stamped back onto the provider.
	require.Len(t, syncer.calls, 1)
	assert.Equal(t, "user_abc", syncer.calls[0].clerkUserID)
	assert.Equal(t, saved.ID, syncer.calls[0].dbID)
	assert.Equal(t, common.RoleUser, syncer.calls[0].role)
}

func TestHandleClerkEvent_UserCreatedRedelivered(t *testing.T) {
	db := newTestDB(t)
	syncer := &fakeSyncer{}
	router, verifier := newWebhookRouter(t, db, syncer)
	body := userEventBody(t, EventUserCreated, createdEventData())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, signedRequest(t, verifier, body))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.EqualValues(t, 1, countUsers(t, db), "redelivery must not create a second row")
	require.Len(t, syncer.calls, 2)
	assert.Equal(t, syncer.calls[0].dbID, syncer.calls[1].dbID, "both deliveries must resolve to the same row")
}

func TestHandleClerkEvent_UserCreatedWithoutPrimaryEmail(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})

	data := createdEventData()
	data["primary_email_address_id"] = "idn_does_not_exist"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserCreated, data)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No email.")
	assert.EqualValues(t, 0, countUsers(t, db))
}

func TestHandleClerkEvent_UserCreatedWithoutName(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})

	data := createdEventData()
	data["first_name"] = ""
	data["last_name"] = " "
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserCreated, data)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No name.")
	assert.EqualValues(t, 0, countUsers(t, db))
}

func TestHandleClerkEvent_UserUpdated(t *testing.T) {
	db := newTestDB(t)
	syncer := &fakeSyncer{}
	router, verifier := newWebhookRouter(t, db, syncer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserCreated, createdEventData())))
	require.Equal(t, http.StatusOK, w.Code)

	data := createdEventData()
	data["first_name"] = "Ada M."
	data["email_addresses"] = []gin.H{{"id": "idn_1", "email_address": "ada.new@example.com"}}
	data["public_metadata"] = gin.H{"role": common.RoleAdmin}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserUpdated, data)))
	require.Equal(t, http.StatusOK, w.Code)

	var saved user.User
	require.NoError(t, db.Where("clerk_user_id = ?", "user_abc").First(&saved).Error)
	assert.Equal(t, "ada.new@example.com", saved.Email)
	assert.Equal(t, "Ada M. Lovelace", saved.Name)
	assert.Equal(t, common.RoleAdmin, saved.Role)
	assert.EqualValues(t, 1, countUsers(t, db))

	// Update events do not trigger a second metadata write-back.
	assert.Len(t, syncer.calls, 1)
}

func TestHandleClerkEvent_UserUpdatedUnknownUser(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserUpdated, createdEventData())))

	// At-least-once delivery can replay an update after the user is gone.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, countUsers(t, db))
}

func TestHandleClerkEvent_UserDeleted(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserCreated, createdEventData())))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserDeleted, gin.H{"id": "user_abc"})))
	require.Equal(t, http.StatusOK, w.Code)

	// The row survives with its personal fields redacted.
	var saved user.User
	require.NoError(t, db.First(&saved).Error)
	assert.Equal(t, user.DeletedClerkUserID, saved.ClerkUserID)
	assert.Equal(t, user.DeletedEmail, saved.Email)
	assert.Equal(t, user.DeletedName, saved.Name)
	assert.Nil(t, saved.ImageURL)
	assert.True(t, saved.IsDeleted())
}

func TestHandleClerkEvent_UserDeletedUnknownUser(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserDeleted, gin.H{"id": "user_gone"})))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleClerkEvent_UserDeletedWithoutID(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserDeleted, gin.H{})))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleClerkEvent_UnhandledEventType(t *testing.T) {
	db := newTestDB(t)
	router, verifier := newWebhookRouter(t, db, &fakeSyncer{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, "session.created", gin.H{"id": "sess_1"})))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, countUsers(t, db))
}

func TestHandleClerkEvent_MetadataSyncFailure(t *testing.T) {
	db := newTestDB(t)
	syncer := &fakeSyncer{err: fmt.Errorf("provider unavailable")}
	router, verifier := newWebhookRouter(t, db, syncer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, verifier, userEventBody(t, EventUserCreated, createdEventData())))

	// The delivery fails so the provider retries; the local row already exists
	// and the retry resolves it via upsert.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.EqualValues(t, 1, countUsers(t, db))
}
