package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auditorium/middleware"
	"auditorium/models"
	"auditorium/services/booking"
	"auditorium/services/errs"
	"auditorium/services/export"
	"auditorium/services/user"
	"auditorium/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBookings struct {
	booking.BookingService

	submit    func(actor models.Actor, in models.BookingInput) (*models.Booking, error)
	list      func(c models.BookingCriteria) ([]models.Booking, error)
	setStatus func(id, status string) (*models.Booking, error)
	approved  []models.Booking
}

func (s *stubBookings) Submit(_ context.Context, actor models.Actor, in models.BookingInput) (*models.Booking, error) {
	return s.submit(actor, in)
}

func (s *stubBookings) List(_ context.Context, c models.BookingCriteria) ([]models.Booking, error) {
	return s.list(c)
}

func (s *stubBookings) SetStatus(_ context.Context, id, status string, _ models.Actor) (*models.Booking, error) {
	return s.setStatus(id, status)
}

func (s *stubBookings) Iterate(_ context.Context, _ models.BookingCriteria) iter.Seq2[models.Booking, error] {
	return func(yield func(models.Booking, error) bool) {
		for _, b := range s.approved {
			if !yield(b, nil) {
				return
			}
		}
	}
}

type stubUsers struct {
	user.UserService
	login func(username, password string) (*models.AuthResponse, error)
}

func (s *stubUsers) Login(_ context.Context, username, password string) (*models.AuthResponse, error) {
	return s.login(username, password)
}

type lookupByID map[string]models.User

func (l lookupByID) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := l[id]
	if !ok {
		return nil, errors.New("missing")
	}
	return &u, nil
}

type testServer struct {
	router *gin.Engine
	tokens *utils.TokenManager
}

func newTestServer(t *testing.T, bookings *stubBookings, users *stubUsers) *testServer {
	t.Helper()
	tokens := utils.NewTokenManager("handler-test-secret", time.Hour)
	exporter := export.NewExporter(bookings, lookupByID{"hod-1": {Name: "Dr. Rao", Email: "rao@college.edu"}}, zap.NewNop())
	bh := NewBookingHandler(bookings, exporter)
	ah := NewAuthHandler(users)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("logger", zap.NewNop())
		c.Next()
	})
	r.POST("/api/auth/login", ah.LoginHandler)

	authed := r.Group("/api/booking", middleware.JWTAuthMiddleware(tokens))
	authed.POST("", middleware.RequireRole(models.RoleHOD), bh.SubmitBookingHandler)
	authed.GET("/recent-bookings", middleware.RequireRole(models.RoleAdmin), bh.RecentBookingsHandler)
	authed.GET("/export", middleware.RequireRole(models.RoleAdmin), bh.ExportHandler)
	authed.PUT("/:bookingId/status", middleware.RequireRole(models.RoleAdmin), bh.UpdateStatusHandler)

	return &testServer{router: r, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, role string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		id := role + "-1"
		token, err := s.tokens.GenerateToken(id, role, "Physics")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestStatusForKinds(t *testing.T) {
	cases := map[error]int{
		errs.NewValidationError("bad"):                 http.StatusBadRequest,
		errs.NewNotFoundError("missing"):               http.StatusNotFound,
		errs.NewConflictError("taken"):                 http.StatusConflict,
		errs.NewAuthorizationError("no"):               http.StatusForbidden,
		errs.NewUnauthenticatedError("who"):            http.StatusUnauthorized,
		errs.NewDependencyError("db", errors.New("x")): http.StatusBadGateway,
		errors.New("plain"):                               http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}

func bookingPayload() map[string]any {
	return map[string]any{
		"eventName": "Annual Symposium",
		"eventType": "Seminar",
		"startTime": "2024-03-01T09:00:00Z",
		"endTime":   "2024-03-01T10:00:00Z",
		"sTime":     "09:00",
		"eTime":     "10:00",
	}
}

func TestSubmitBookingAsHOD(t *testing.T) {
	var got models.Actor
	bookings := &stubBookings{submit: func(actor models.Actor, in models.BookingInput) (*models.Booking, error) {
		got = actor
		return &models.Booking{ID: "b-1", EventName: in.EventName, Status: models.StatusPending}, nil
	}}
	s := newTestServer(t, bookings, &stubUsers{})

	w := s.do(t, http.MethodPost, "/api/booking", models.RoleHOD, bookingPayload())

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, models.Actor{UserID: "hod-1", Role: models.RoleHOD, Department: "Physics"}, got)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestSubmitBookingErrors(t *testing.T) {
	bookings := &stubBookings{submit: func(models.Actor, models.BookingInput) (*models.Booking, error) {
		return nil, errs.NewConflictError("time slot already booked")
	}}
	s := newTestServer(t, bookings, &stubUsers{})

	w := s.do(t, http.MethodPost, "/api/booking", models.RoleHOD, bookingPayload())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "time slot already booked", errorBody(t, w))

	w = s.do(t, http.MethodPost, "/api/booking", models.RoleHOD, `{"eventName":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/booking", models.RoleAdmin, bookingPayload())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/booking", "", bookingPayload())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDependencyErrorHidesDetails(t *testing.T) {
	bookings := &stubBookings{submit: func(models.Actor, models.BookingInput) (*models.Booking, error) {
		return nil, errs.NewDependencyError("failed to store booking", errors.New("mongo: connection refused"))
	}}
	s := newTestServer(t, bookings, &stubUsers{})

	w := s.do(t, http.MethodPost, "/api/booking", models.RoleHOD, bookingPayload())

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRecentBookings(t *testing.T) {
	var got models.BookingCriteria
	bookings := &stubBookings{list: func(c models.BookingCriteria) ([]models.Booking, error) {
		got = c
		return nil, nil
	}}
	s := newTestServer(t, bookings, &stubUsers{})

	for _, q := range []string{"", "?year=2024", "?month=2", "?year=2024&month=13", "?year=x&month=2"} {
		w := s.do(t, http.MethodGet, "/api/booking/recent-bookings"+q, models.RoleAdmin, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}

	w := s.do(t, http.MethodGet, "/api/booking/recent-bookings?year=2024&month=2", models.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), got.From)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got.To)
	assert.Equal(t, models.SortStartDesc, got.Sort)
}

func TestUpdateStatusHandler(t *testing.T) {
	bookings := &stubBookings{setStatus: func(id, status string) (*models.Booking, error) {
		if id != "b-1" {
			return nil, errs.NewNotFoundError("booking not found")
		}
		return &models.Booking{ID: id, Status: status}, nil
	}}
	s := newTestServer(t, bookings, &stubUsers{})

	w := s.do(t, http.MethodPut, "/api/booking/b-1/status", models.RoleAdmin, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking approved")

	w = s.do(t, http.MethodPut, "/api/booking/b-2/status", models.RoleAdmin, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/api/booking/b-1/status", models.RoleAdmin, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/booking/b-1/status", models.RoleHOD, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExportCSV(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	bookings := &stubBookings{approved: []models.Booking{{
		ID:           "b-1",
		EventName:    "Annual Symposium",
		EventType:    "Seminar",
		Department:   "Physics",
		RequestedBy:  "hod-1",
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		STime:        "09:00",
		ETime:        "10:00",
		Status:       models.StatusApproved,
		Requirements: []string{"mic"},
	}}}
	s := newTestServer(t, bookings, &stubUsers{})

	w := s.do(t, http.MethodGet, "/api/booking/export", models.RoleAdmin, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=bookings.csv", w.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "EventName,EventType,Department"))
	assert.Contains(t, lines[1], "Dr. Rao")
	assert.Contains(t, lines[1], "09:00 - 10:00")

	w = s.do(t, http.MethodGet, "/api/booking/export?format=pdf", models.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

func TestLoginHandler(t *testing.T) {
	users := &stubUsers{login: func(username, password string) (*models.AuthResponse, error) {
		if username == "admin" && password == "secret1" {
			return &models.AuthResponse{Token: "tok", Role: models.RoleAdmin, Name: "Admin"}, nil
		}
		return nil, errs.NewUnauthenticatedError("invalid username or password")
	}}
	s := newTestServer(t, &stubBookings{}, users)

	w := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok"`)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMonthRangeIsHalfOpen(t *testing.T) {
	from, to := monthRange(2023, time.December)

	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), to)
	lastMoment := time.Date(2023, 12, 31, 23, 59, 59, 500_000_000, time.UTC)
	assert.True(t, lastMoment.Before(to), "a booking in the month's final second is inside the range")
}
