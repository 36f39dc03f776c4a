package bookingRepo

import (
	"context"
	"errors"
	"time"

	"auditorium/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines data access for booking records. It is the only
// component that touches the bookings collection.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Find lists bookings matching the criteria.
	Find(ctx context.Context, criteria models.BookingCriteria) ([]models.Booking, error)
	// FindApprovedOverlapping lists approved bookings whose [start, end) intersects the
	// given interval, skipping excludeID when it is non-empty.
	FindApprovedOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]models.Booking, error)
	// UpdateStatus sets the status of one booking and returns the updated record.
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
	// Update replaces the editable fields of an existing booking.
	Update(ctx context.Context, booking *models.Booking) error
	// Delete removes a booking permanently.
	Delete(ctx context.Context, id string) error
	// Count returns the total number of bookings.
	Count(ctx context.Context) (int64, error)
	// CountByStatus returns booking counts keyed by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
	// WithApprovalLock runs fn so that no other WithApprovalLock call interleaves with it.
	// Reads and writes made through ctx inside fn are part of the same unit.
	WithApprovalLock(ctx context.Context, fn func(ctx context.Context) error) error
}
