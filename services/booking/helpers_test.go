package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"auditorium/config"
	bookingRepo "auditorium/database/repository/booking"
	"auditorium/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	adminActor = models.Actor{UserID: "admin-1", Role: models.RoleAdmin}
	hodActor   = models.Actor{UserID: "hod-1", Role: models.RoleHOD, Department: "Physics"}
	otherHOD   = models.Actor{UserID: "hod-2", Role: models.RoleHOD, Department: "Chemistry"}
)

type fakeUsers struct {
	users map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]models.User{
		"admin-1": {ID: "admin-1", Email: "admin@college.edu", Role: models.RoleAdmin, Approved: true},
		"hod-1":   {ID: "hod-1", Email: "physics@college.edu", Role: models.RoleHOD, Department: "Physics", Approved: true},
		"hod-2":   {ID: "hod-2", Email: "chem@college.edu", Role: models.RoleHOD, Department: "Chemistry", Approved: true},
	}}
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (f *fakeUsers) FindByRole(_ context.Context, role string, approvedOnly bool) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == role && (!approvedOnly || u.Approved) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Count(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range f.users {
		if role == "" || u.Role == role {
			n++
		}
	}
	return n, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []models.EmailMessage
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg models.EmailMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.err
}

func (n *recordingNotifier) sent() []models.EmailMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.EmailMessage(nil), n.msgs...)
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = nil
}

type testEnv struct {
	svc      *DefaultBookingService
	repo     *bookingRepo.MemoryBookingRepo
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := bookingRepo.NewMemoryBookingRepo()
	notifier := &recordingNotifier{}
	svc, err := NewDefaultBookingService(Dependencies{
		Repo:       repo,
		Users:      newFakeUsers(),
		Notifier:   notifier,
		Routes:     config.DefaultEquipmentRoutes("camera@college.edu", "audio@college.edu"),
		AdminEmail: "Office@College.edu",
		Logger:     zap.NewNop(),
	})
	require.NoError(t, err)
	return &testEnv{svc: svc, repo: repo, notifier: notifier}
}

// clock returns 2024-03-01 at hh:mm UTC.
func clock(hh, mm int) time.Time {
	return time.Date(2024, 3, 1, hh, mm, 0, 0, time.UTC)
}

func bookingInput(start, end time.Time, requirements ...string) models.BookingInput {
	return models.BookingInput{
		EventName:    "Seminar",
		EventType:    "Lecture",
		StartTime:    start,
		EndTime:      end,
		STime:        start.Format("15:04"),
		ETime:        end.Format("15:04"),
		Requirements: requirements,
	}
}

func (e *testEnv) submit(t *testing.T, actor models.Actor, start, end time.Time, requirements ...string) *models.Booking {
	t.Helper()
	in := bookingInput(start, end, requirements...)
	if actor.IsAdmin() {
		in.Department = "Administration"
	}
	b, err := e.svc.Submit(context.Background(), actor, in)
	require.NoError(t, err)
	return b
}
