package booking

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"auditorium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentApprovalRace(t *testing.T) {
	for round := 0; round < 25; round++ {
		env := newTestEnv(t)
		ctx := context.Background()

		a := env.submit(t, hodActor, clock(9, 0), clock(10, 0))
		b := env.submit(t, otherHOD, clock(9, 30), clock(10, 30))

		var (
			wg    sync.WaitGroup
			start = make(chan struct{})
			errs  = make([]error, 2)
		)
		for i, id := range []string{a.ID, b.ID} {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				<-start
				_, errs[i] = env.svc.SetStatus(ctx, id, models.StatusApproved, adminActor)
			}(i, id)
		}
		close(start)
		wg.Wait()

		var wins, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case KindOf(err) == KindConflict:
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, 1, wins, "round %d", round)
		require.Equal(t, 1, conflicts, "round %d", round)
	}
}

func TestNoDoubleApprovalProperty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	var ids []string
	for i := 0; i < 150; i++ {
		startMin := rng.Intn(24 * 60)
		length := 15 + rng.Intn(180)
		start := clock(0, 0).Add(time.Duration(startMin) * time.Minute)
		b := env.submit(t, hodActor, start, start.Add(time.Duration(length)*time.Minute))
		ids = append(ids, b.ID)
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(ids); i += 8 {
				_, err := env.svc.SetStatus(ctx, ids[i], models.StatusApproved, adminActor)
				if err != nil && KindOf(err) != KindConflict {
					t.Errorf("approve %s: %v", ids[i], err)
				}
			}
		}(w)
	}
	wg.Wait()

	approved, err := env.svc.List(ctx, models.BookingCriteria{Status: models.StatusApproved})
	require.NoError(t, err)
	require.NotEmpty(t, approved)

	for i := range approved {
		for j := i + 1; j < len(approved); j++ {
			assert.False(t, Overlaps(IntervalOf(approved[i]), IntervalOf(approved[j])),
				"approved bookings %s and %s overlap", approved[i].ID, approved[j].ID)
		}
	}
}
