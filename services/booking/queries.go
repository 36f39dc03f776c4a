package booking

import (
	"context"
	"iter"

	"auditorium/models"
)

const calendarDateLayout = "2006-01-02"

// Get returns a single booking.
func (s *DefaultBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, storeError(err, bookingID)
	}
	return b, nil
}

// List returns the bookings matching criteria, newest first unless criteria.Sort
// says otherwise.
func (s *DefaultBookingService) List(ctx context.Context, criteria models.BookingCriteria) ([]models.Booking, error) {
	if err := checkCriteria(criteria); err != nil {
		return nil, err
	}
	bookings, err := s.repo.Find(ctx, criteria)
	if err != nil {
		return nil, storeError(err, "")
	}
	return bookings, nil
}

// Iterate is the lazy form of List. The query runs when the sequence is ranged
// over and runs again on every new range.
func (s *DefaultBookingService) Iterate(ctx context.Context, criteria models.BookingCriteria) iter.Seq2[models.Booking, error] {
	return func(yield func(models.Booking, error) bool) {
		bookings, err := s.List(ctx, criteria)
		if err != nil {
			yield(models.Booking{}, err)
			return
		}
		for _, b := range bookings {
			if !yield(b, nil) {
				return
			}
		}
	}
}

func checkCriteria(c models.BookingCriteria) error {
	if c.Status != "" && !models.IsValidStatus(c.Status) {
		return NewValidationError("invalid status %q", c.Status)
	}
	switch c.Sort {
	case "", models.SortCreatedDesc, models.SortStartAsc, models.SortStartDesc:
	default:
		return NewValidationError("invalid sort %q", c.Sort)
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.From.After(c.To) {
		return NewValidationError("from must not be after to")
	}
	return nil
}

func (s *DefaultBookingService) approvedByStart(ctx context.Context) ([]models.Booking, error) {
	return s.List(ctx, models.BookingCriteria{Status: models.StatusApproved, Sort: models.SortStartAsc})
}

// ApprovedCalendar groups approved bookings by the UTC date they start on.
func (s *DefaultBookingService) ApprovedCalendar(ctx context.Context) ([]models.CalendarDay, error) {
	approved, err := s.approvedByStart(ctx)
	if err != nil {
		return nil, err
	}

	days := []models.CalendarDay{}
	index := map[string]int{}
	for _, b := range approved {
		date := b.StartTime.UTC().Format(calendarDateLayout)
		slot := b.STime + " - " + b.ETime
		if i, ok := index[date]; ok {
			days[i].BookedSlots = append(days[i].BookedSlots, slot)
			continue
		}
		index[date] = len(days)
		days = append(days, models.CalendarDay{
			Date:        date,
			BookedSlots: []string{slot},
			Department:  b.Department,
			EventName:   b.EventName,
		})
	}
	return days, nil
}

// BookedDates projects approved bookings onto their public fields.
func (s *DefaultBookingService) BookedDates(ctx context.Context) ([]models.BookedSlot, error) {
	approved, err := s.approvedByStart(ctx)
	if err != nil {
		return nil, err
	}
	slots := make([]models.BookedSlot, 0, len(approved))
	for _, b := range approved {
		slots = append(slots, models.BookedSlot{
			StartDate:      b.StartTime,
			EndDate:        b.EndTime,
			STime:          b.STime,
			ETime:          b.ETime,
			EventName:      b.EventName,
			DepartmentName: b.Department,
		})
	}
	return slots, nil
}

// Metrics returns the admin dashboard counters.
func (s *DefaultBookingService) Metrics(ctx context.Context) (*models.BookingMetrics, error) {
	totalUsers, err := s.users.Count(ctx, "")
	if err != nil {
		return nil, NewDependencyError("failed to count users", err)
	}
	totalHODs, err := s.users.Count(ctx, models.RoleHOD)
	if err != nil {
		return nil, NewDependencyError("failed to count HODs", err)
	}
	totalBookings, err := s.repo.Count(ctx)
	if err != nil {
		return nil, storeError(err, "")
	}
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, storeError(err, "")
	}

	byStatus := map[string]int64{
		models.StatusPending:  0,
		models.StatusApproved: 0,
		models.StatusRejected: 0,
	}
	for status, n := range counts {
		byStatus[status] = n
	}
	return &models.BookingMetrics{
		TotalUsers:    totalUsers,
		TotalHODs:     totalHODs,
		TotalBookings: totalBookings,
		ByStatus:      byStatus,
	}, nil
}
