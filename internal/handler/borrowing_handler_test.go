package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"room-booking-backend/internal/models"
	"room-booking-backend/internal/repository"
	"room-booking-backend/internal/service"
)

type handlerEnv struct {
	router *gin.Engine
	db     *gorm.DB
	admin  models.User
	user   models.User
	room   models.Room
}

// asUser injects the auth context the JWT middleware would normally set.
func asUser(u *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", u.ID)
		c.Set("role", u.Role)
		c.Next()
	}
}

func newHandlerEnv(t *testing.T, actor **models.User) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Room{}, &models.Borrowing{},
		&models.BorrowingHistory{}, &models.Notification{},
	))

	userRepo := repository.NewUserRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	borrowingRepo := repository.NewBorrowingRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)

	notifier := service.NewNotificationService(notificationRepo, userRepo)
	borrowings := service.NewBorrowingService(db, borrowingRepo, historyRepo, roomRepo, notifier)
	h := NewBorrowingHandler(borrowings, userRepo)

	env := &handlerEnv{
		db:    db,
		admin: models.User{Username: "admin", PasswordHash: "x", Role: "admin"},
		user:  models.User{Username: "alice", PasswordHash: "x", Role: "user"},
		room:  models.Room{Code: "R-201", Name: "Lab", Capacity: 12, Status: "available", IsActive: true},
	}
	require.NoError(t, db.Create(&env.admin).Error)
	require.NoError(t, db.Create(&env.user).Error)
	require.NoError(t, db.Create(&env.room).Error)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		asUser(*actor)(c)
	})
	r.POST("/borrowings", h.CreateBorrowing)
	r.GET("/borrowings/:id", h.GetBorrowing)
	r.GET("/borrowings/:id/history", h.GetHistory)
	r.POST("/borrowings/:id/approve", h.Approve)
	r.POST("/borrowings/:id/reject", h.Reject)
	r.POST("/borrowings/:id/cancel", h.Cancel)
	env.router = r
	return env
}

func (e *handlerEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestBorrowingLifecycleOverHTTP(t *testing.T) {
	actor := &models.User{}
	env := newHandlerEnv(t, &actor)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	actor = &env.user
	w := env.do(t, http.MethodPost, "/borrowings", gin.H{
		"room_id":       env.room.ID,
		"borrower_name": "Alice",
		"borrow_date":   tomorrow,
		"start_time":    "09:00",
		"return_date":   tomorrow,
		"end_time":      "11:00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Borrowing models.Borrowing `json:"borrowing"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.Borrowing.ID
	require.NotZero(t, id)
	assert.Equal(t, "pending", created.Data.Borrowing.Status)

	// Admin approves.
	actor = &env.admin
	w = env.do(t, http.MethodPost, fmt.Sprintf("/borrowings/%d/approve", id), gin.H{"note": "ok"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Approving again conflicts and names status and action.
	w = env.do(t, http.MethodPost, fmt.Sprintf("/borrowings/%d/approve", id), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "approved")
	assert.Contains(t, w.Body.String(), "approve")

	// History shows both rows.
	w = env.do(t, http.MethodGet, fmt.Sprintf("/borrowings/%d/history", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"created"`)
	assert.Contains(t, w.Body.String(), `"approved"`)
}

func TestRejectRequiresReasonOverHTTP(t *testing.T) {
	actor := &models.User{}
	env := newHandlerEnv(t, &actor)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	actor = &env.user
	w := env.do(t, http.MethodPost, "/borrowings", gin.H{
		"room_id":       env.room.ID,
		"borrower_name": "Alice",
		"borrow_date":   tomorrow,
		"start_time":    "09:00",
		"return_date":   tomorrow,
		"end_time":      "11:00",
	})
	require.Equal(t, http.StatusOK, w.Code)

	actor = &env.admin
	w = env.do(t, http.MethodPost, "/borrowings/1/reject", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/borrowings/1/reject", gin.H{"reason": "no staff available"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var b models.Borrowing
	require.NoError(t, env.db.First(&b, 1).Error)
	assert.Equal(t, "no staff available", b.RejectionReason)
}

func TestCancelForbiddenForStrangers(t *testing.T) {
	actor := &models.User{}
	env := newHandlerEnv(t, &actor)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	actor = &env.user
	w := env.do(t, http.MethodPost, "/borrowings", gin.H{
		"room_id":       env.room.ID,
		"borrower_name": "Alice",
		"borrow_date":   tomorrow,
		"start_time":    "09:00",
		"return_date":   tomorrow,
		"end_time":      "11:00",
	})
	require.Equal(t, http.StatusOK, w.Code)

	stranger := models.User{Username: "mallory", PasswordHash: "x", Role: "user"}
	require.NoError(t, env.db.Create(&stranger).Error)

	actor = &stranger
	w = env.do(t, http.MethodPost, "/borrowings/1/cancel", gin.H{"reason": "mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Strangers cannot read it either.
	w = env.do(t, http.MethodGet, "/borrowings/1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	actor = &env.user
	w = env.do(t, http.MethodPost, "/borrowings/1/cancel", gin.H{"reason": "plans changed"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestBorrowingNotFound(t *testing.T) {
	actor := &models.User{}
	env := newHandlerEnv(t, &actor)

	actor = &env.admin
	w := env.do(t, http.MethodPost, "/borrowings/999/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/borrowings/abc/approve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
