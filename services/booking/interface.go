package booking

import (
	"context"
	"iter"

	"auditorium/models"
)

// BookingService owns the booking lifecycle: submission, approval and
// rejection, admin edits and cancellations, and the read-only listings built on top.
type BookingService interface {
	Submit(ctx context.Context, actor models.Actor, in models.BookingInput) (*models.Booking, error)
	SetStatus(ctx context.Context, bookingID, status string, actor models.Actor) (*models.Booking, error)
	CancelAdminBooking(ctx context.Context, bookingID string) error
	Update(ctx context.Context, bookingID string, patch models.BookingPatch, actor models.Actor) (*models.Booking, error)
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	List(ctx context.Context, criteria models.BookingCriteria) ([]models.Booking, error)
	Iterate(ctx context.Context, criteria models.BookingCriteria) iter.Seq2[models.Booking, error]
	ApprovedCalendar(ctx context.Context) ([]models.CalendarDay, error)
	BookedDates(ctx context.Context) ([]models.BookedSlot, error)
	Metrics(ctx context.Context) (*models.BookingMetrics, error)
}

// UserDirectory is the slice of the user store the booking service reads:
// requester and admin addresses for notifications, and counts for metrics.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	FindByRole(ctx context.Context, role string, approvedOnly bool) ([]models.User, error)
	Count(ctx context.Context, role string) (int64, error)
}
