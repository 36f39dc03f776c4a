package bookingRepo

import (
	"context"
	"sync"
	"testing"
	"time"

	"auditorium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 1, hour, min, 0, 0, time.UTC)
}

func seed(t *testing.T, repo *MemoryBookingRepo, id, status string, start, end time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.Booking{
		ID: id, Status: status, StartTime: start, EndTime: end, EventName: id,
	}))
}

func TestMemoryRepoGetByIDNotFound(t *testing.T) {
	repo := NewMemoryBookingRepo()
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	b := &models.Booking{ID: "b1", Status: models.StatusPending, Requirements: []string{"mic"}}
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	got.Requirements[0] = "camera"
	got.Status = models.StatusApproved

	again, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, []string{"mic"}, again.Requirements)
	assert.Equal(t, models.StatusPending, again.Status)
}

func TestMemoryRepoFindApprovedOverlapping(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	seed(t, repo, "a", models.StatusApproved, at(9, 0), at(10, 0))
	seed(t, repo, "b", models.StatusApproved, at(10, 0), at(11, 0))
	seed(t, repo, "p", models.StatusPending, at(9, 0), at(12, 0))

	hits, err := repo.FindApprovedOverlapping(ctx, at(9, 30), at(10, 30), "")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].ID)
	assert.Equal(t, "b", hits[1].ID)

	hits, err = repo.FindApprovedOverlapping(ctx, at(10, 0), at(11, 0), "b")
	require.NoError(t, err)
	assert.Empty(t, hits, "back-to-back with a and b excluded")
}

func TestMemoryRepoFindFiltersAndSorts(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	seed(t, repo, "first", models.StatusApproved, at(14, 0), at(15, 0))
	seed(t, repo, "second", models.StatusApproved, at(8, 0), at(9, 0))
	seed(t, repo, "third", models.StatusPending, at(11, 0), at(12, 0))

	all, err := repo.Find(ctx, models.BookingCriteria{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].ID, "newest first by default")

	approved, err := repo.Find(ctx, models.BookingCriteria{Status: models.StatusApproved, Sort: models.SortStartAsc})
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, "second", approved[0].ID)

	ranged, err := repo.Find(ctx, models.BookingCriteria{From: at(10, 0), To: at(12, 0)})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "third", ranged[0].ID)
}

func TestMemoryRepoFindUpperBoundIsExclusive(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	lastMoment := to.Add(-500 * time.Millisecond)
	seed(t, repo, "late-night", models.StatusApproved, lastMoment, lastMoment.Add(time.Hour))
	seed(t, repo, "next-month", models.StatusApproved, to, to.Add(time.Hour))
	seed(t, repo, "first-moment", models.StatusPending, from, from.Add(time.Hour))

	got, err := repo.Find(ctx, models.BookingCriteria{From: from, To: to, Sort: models.SortStartAsc})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first-moment", got[0].ID)
	assert.Equal(t, "late-night", got[1].ID)
}

func TestMemoryRepoUpdateKeepsStatus(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	seed(t, repo, "x", models.StatusApproved, at(9, 0), at(10, 0))

	require.NoError(t, repo.Update(ctx, &models.Booking{ID: "x", EventName: "renamed", Status: models.StatusPending}))
	got, err := repo.GetByID(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.EventName)
	assert.Equal(t, models.StatusApproved, got.Status)

	assert.ErrorIs(t, repo.Update(ctx, &models.Booking{ID: "nope"}), ErrNotFound)
}

func TestMemoryRepoApprovalLockSerialises(t *testing.T) {
	repo := NewMemoryBookingRepo()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.WithApprovalLock(context.Background(), func(context.Context) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestMemoryRepoCountByStatus(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()
	seed(t, repo, "a", models.StatusApproved, at(9, 0), at(10, 0))
	seed(t, repo, "b", models.StatusPending, at(9, 0), at(10, 0))
	seed(t, repo, "c", models.StatusPending, at(9, 0), at(10, 0))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.StatusApproved])
	assert.Equal(t, int64(2), counts[models.StatusPending])

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
