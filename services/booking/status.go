package booking

import (
	"context"

	"auditorium/models"

	"go.uber.org/zap"
)

// SetStatus moves a booking to pending, approved or rejected. Approval runs the
// conflict check and the write under the store's approval lock, so two
// overlapping bookings can never both be approved. Setting the current status
// again is a no-op and sends no notification.
func (s *DefaultBookingService) SetStatus(ctx context.Context, bookingID, status string, actor models.Actor) (*models.Booking, error) {
	if !actor.IsAdmin() {
		return nil, NewAuthorizationError("only admins can change booking status")
	}
	if !models.IsValidStatus(status) {
		return nil, NewValidationError("invalid status %q", status)
	}

	var (
		updated *models.Booking
		changed bool
	)
	apply := func(ctx context.Context) error {
		changed = false
		current, err := s.repo.GetByID(ctx, bookingID)
		if err != nil {
			return storeError(err, bookingID)
		}
		if current.Status == status {
			updated = current
			return nil
		}
		if status == models.StatusApproved {
			existing, err := s.resolver.FindConflict(ctx, IntervalOf(*current), current.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				return conflictError(*existing)
			}
		}
		updated, err = s.repo.UpdateStatus(ctx, bookingID, status)
		if err != nil {
			return storeError(err, bookingID)
		}
		changed = true
		return nil
	}

	var err error
	if status == models.StatusApproved {
		err = s.repo.WithApprovalLock(ctx, apply)
	} else {
		err = apply(ctx)
	}
	if err != nil {
		return nil, storeError(err, bookingID)
	}

	if changed {
		s.logger.Info("booking status changed",
			zap.String("bookingID", bookingID),
			zap.String("status", status),
			zap.String("admin", actor.UserID),
		)
		s.notifyStatusChange(ctx, *updated)
	}
	return updated, nil
}

// CancelAdminBooking permanently deletes a booking that an admin created.
// Bookings requested by a HOD are reported as not found.
func (s *DefaultBookingService) CancelAdminBooking(ctx context.Context, bookingID string) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return storeError(err, bookingID)
	}
	if !b.BookedByAdmin {
		return NewNotFoundError("admin booking %s not found", bookingID)
	}
	if err := s.repo.Delete(ctx, bookingID); err != nil {
		return storeError(err, bookingID)
	}
	s.logger.Info("admin booking cancelled", zap.String("bookingID", bookingID))
	return nil
}

// Update applies an admin edit. When an approved booking moves to a new
// interval the conflict check runs again under the approval lock.
func (s *DefaultBookingService) Update(ctx context.Context, bookingID string, patch models.BookingPatch, actor models.Actor) (*models.Booking, error) {
	if !actor.IsAdmin() {
		return nil, NewAuthorizationError("only admins can edit bookings")
	}

	var updated *models.Booking
	apply := func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, bookingID)
		if err != nil {
			return storeError(err, bookingID)
		}
		next := *current
		applyPatch(&next, patch)
		if next.Department == "" || next.EventName == "" || next.EventType == "" {
			return NewValidationError("department, eventName and eventType cannot be empty")
		}
		if err := validateInterval(IntervalOf(next)); err != nil {
			return err
		}

		moved := !next.StartTime.Equal(current.StartTime) || !next.EndTime.Equal(current.EndTime)
		if next.Status == models.StatusApproved && moved {
			existing, err := s.resolver.FindConflict(ctx, IntervalOf(next), next.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				return conflictError(*existing)
			}
		}
		if err := s.repo.Update(ctx, &next); err != nil {
			return storeError(err, bookingID)
		}
		updated = &next
		return nil
	}

	if err := s.repo.WithApprovalLock(ctx, apply); err != nil {
		return nil, storeError(err, bookingID)
	}
	s.logger.Info("booking updated", zap.String("bookingID", bookingID), zap.String("admin", actor.UserID))
	return updated, nil
}

func applyPatch(b *models.Booking, p models.BookingPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = trimmed(*src)
		}
	}
	set(&b.Department, p.Department)
	set(&b.EventName, p.EventName)
	set(&b.EventType, p.EventType)
	set(&b.STime, p.STime)
	set(&b.ETime, p.ETime)
	set(&b.Comments, p.Comments)
	if p.StartTime != nil {
		b.StartTime = p.StartTime.UTC()
	}
	if p.EndTime != nil {
		b.EndTime = p.EndTime.UTC()
	}
	if p.Requirements != nil {
		b.Requirements = cleanRequirements(*p.Requirements)
	}
}
