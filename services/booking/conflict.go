package booking

import (
	"context"

	bookingRepo "auditorium/database/repository/booking"
	"auditorium/models"
)

// ConflictResolver decides whether an interval may be approved against the
// currently approved bookings. It never caches; every call reads the store.
type ConflictResolver struct {
	repo bookingRepo.BookingRepository
}

func NewConflictResolver(repo bookingRepo.BookingRepository) *ConflictResolver {
	return &ConflictResolver{repo: repo}
}

// FindConflict returns the first approved booking, other than excludeID, whose
// interval overlaps candidate. It returns nil when the interval is free.
func (c *ConflictResolver) FindConflict(ctx context.Context, candidate Interval, excludeID string) (*models.Booking, error) {
	hits, err := c.repo.FindApprovedOverlapping(ctx, candidate.Start, candidate.End, excludeID)
	if err != nil {
		return nil, NewDependencyError("failed to check booking conflicts", err)
	}
	for i := range hits {
		b := hits[i]
		if b.ID == excludeID || b.Status != models.StatusApproved {
			continue
		}
		if Overlaps(candidate, IntervalOf(b)) {
			return &b, nil
		}
	}
	return nil, nil
}

// HasConflict reports whether candidate overlaps any approved booking other than excludeID.
func (c *ConflictResolver) HasConflict(ctx context.Context, candidate Interval, excludeID string) (bool, error) {
	b, err := c.FindConflict(ctx, candidate, excludeID)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}
