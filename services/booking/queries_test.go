package booking

import (
	"context"
	"testing"

	"auditorium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOrderingAndFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.submit(t, hodActor, clock(14, 0), clock(15, 0))
	second := env.submit(t, otherHOD, clock(8, 0), clock(9, 0))
	third := env.submit(t, hodActor, clock(11, 0), clock(12, 0))

	all, err := env.svc.List(ctx, models.BookingCriteria{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{third.ID, second.ID, first.ID}, idsOf(all), "newest first by default")

	mine, err := env.svc.List(ctx, models.BookingCriteria{RequestedBy: "hod-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID, first.ID}, idsOf(mine))

	upcoming, err := env.svc.List(ctx, models.BookingCriteria{Sort: models.SortStartAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, third.ID, first.ID}, idsOf(upcoming))

	morning, err := env.svc.List(ctx, models.BookingCriteria{From: clock(7, 0), To: clock(12, 0), Sort: models.SortStartDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{third.ID, second.ID}, idsOf(morning))

	_, err = env.svc.List(ctx, models.BookingCriteria{Status: "archived"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svc.List(ctx, models.BookingCriteria{Sort: "random"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.svc.List(ctx, models.BookingCriteria{From: clock(12, 0), To: clock(7, 0)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIterateIsLazyAndRestartable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seq := env.svc.Iterate(ctx, models.BookingCriteria{Status: models.StatusPending})

	env.submit(t, hodActor, clock(9, 0), clock(10, 0))
	count := func() int {
		n := 0
		for _, err := range seq {
			require.NoError(t, err)
			n++
		}
		return n
	}
	assert.Equal(t, 1, count(), "query runs when ranged, not when created")

	env.submit(t, otherHOD, clock(11, 0), clock(12, 0))
	assert.Equal(t, 2, count(), "a new range re-runs the query")

	for b, err := range seq {
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		break
	}

	for _, err := range env.svc.Iterate(ctx, models.BookingCriteria{Sort: "bogus"}) {
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestApprovedCalendarAndBookedDates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.submit(t, adminActor, clock(13, 0), clock(14, 0))
	env.submit(t, adminActor, clock(9, 0), clock(10, 0))
	next := env.submit(t, adminActor, clock(9, 0).AddDate(0, 0, 1), clock(10, 0).AddDate(0, 0, 1))
	env.submit(t, hodActor, clock(15, 0), clock(16, 0)) // pending, not on the calendar

	days, err := env.svc.ApprovedCalendar(ctx)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-03-01", days[0].Date)
	assert.Equal(t, []string{"09:00 - 10:00", "13:00 - 14:00"}, days[0].BookedSlots)
	assert.Equal(t, "Administration", days[0].Department)
	assert.Equal(t, "2024-03-02", days[1].Date)

	slots, err := env.svc.BookedDates(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, next.StartTime, slots[2].StartDate)
	assert.Equal(t, "Seminar", slots[0].EventName)
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.submit(t, hodActor, clock(9, 0), clock(10, 0))
	env.submit(t, hodActor, clock(11, 0), clock(12, 0))
	env.submit(t, adminActor, clock(13, 0), clock(14, 0))
	_, err := env.svc.SetStatus(ctx, a.ID, models.StatusRejected, adminActor)
	require.NoError(t, err)

	m, err := env.svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), m.TotalUsers)
	assert.Equal(t, int64(2), m.TotalHODs)
	assert.Equal(t, int64(3), m.TotalBookings)
	assert.Equal(t, map[string]int64{
		models.StatusPending:  1,
		models.StatusApproved: 1,
		models.StatusRejected: 1,
	}, m.ByStatus)
}

func idsOf(bookings []models.Booking) []string {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	return ids
}
