package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"auditorium/models"
)

// MemoryBookingRepo is an in-process BookingRepository used by tests and by
// local runs without MongoDB. Records are copied in and out so callers never
// share memory with the store.
type MemoryBookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
	// approval serialises WithApprovalLock callers.
	approval sync.Mutex
	now      func() time.Time
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{
		bookings: make(map[string]models.Booking),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists {
		return fmt.Errorf("error creating booking: duplicate id %s", booking.ID)
	}
	now := r.now()
	// Keep creation order strictly increasing so createdAt sorting is deterministic.
	for _, b := range r.bookings {
		if !now.After(b.CreatedAt) {
			now = b.CreatedAt.Add(time.Nanosecond)
		}
	}
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.Requirements == nil {
		booking.Requirements = []string{}
	}
	r.bookings[booking.ID] = clone(*booking)
	return nil
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := clone(b)
	return &out, nil
}

func (r *MemoryBookingRepo) Find(_ context.Context, c models.BookingCriteria) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.bookings {
		if c.Status != "" && b.Status != c.Status {
			continue
		}
		if c.RequestedBy != "" && b.RequestedBy != c.RequestedBy {
			continue
		}
		if !c.From.IsZero() && b.StartTime.Before(c.From) {
			continue
		}
		if !c.To.IsZero() && !b.StartTime.Before(c.To) {
			continue
		}
		out = append(out, clone(b))
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch c.Sort {
		case models.SortStartAsc:
			return out[i].StartTime.Before(out[j].StartTime)
		case models.SortStartDesc:
			return out[i].StartTime.After(out[j].StartTime)
		default:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
	})
	return out, nil
}

func (r *MemoryBookingRepo) FindApprovedOverlapping(_ context.Context, start, end time.Time, excludeID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.bookings {
		if b.Status != models.StatusApproved || b.ID == excludeID {
			continue
		}
		if b.StartTime.Before(end) && start.Before(b.EndTime) {
			out = append(out, clone(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *MemoryBookingRepo) UpdateStatus(_ context.Context, id, status string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = r.now()
	r.bookings[id] = b
	out := clone(b)
	return &out, nil
}

func (r *MemoryBookingRepo) Update(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.bookings[booking.ID]
	if !ok {
		return ErrNotFound
	}
	updated := clone(*booking)
	// Status, ownership and creation time are not editable through Update.
	updated.Status = existing.Status
	updated.RequestedBy = existing.RequestedBy
	updated.BookedByAdmin = existing.BookedByAdmin
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = r.now()
	booking.UpdatedAt = updated.UpdatedAt
	r.bookings[booking.ID] = updated
	return nil
}

func (r *MemoryBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *MemoryBookingRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}

func (r *MemoryBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int64{}
	for _, b := range r.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func (r *MemoryBookingRepo) WithApprovalLock(ctx context.Context, fn func(ctx context.Context) error) error {
	r.approval.Lock()
	defer r.approval.Unlock()
	return fn(ctx)
}

func clone(b models.Booking) models.Booking {
	if b.Requirements != nil {
		b.Requirements = append([]string(nil), b.Requirements...)
	}
	return b
}
