package booking

import (
	"context"
	"strings"

	"auditorium/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submit creates a booking. HOD requests start pending and notify the admins;
// admin bookings are checked for conflicts and stored directly as approved.
func (s *DefaultBookingService) Submit(ctx context.Context, actor models.Actor, in models.BookingInput) (*models.Booking, error) {
	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleHOD:
		if actor.Department != "" {
			in.Department = actor.Department
		}
	default:
		return nil, NewAuthorizationError("role %q cannot create bookings", actor.Role)
	}

	if err := s.validateInput(&in); err != nil {
		return nil, err
	}

	b := models.Booking{
		ID:           uuid.NewString(),
		Department:   in.Department,
		EventName:    in.EventName,
		EventType:    in.EventType,
		StartTime:    in.StartTime.UTC(),
		EndTime:      in.EndTime.UTC(),
		STime:        in.STime,
		ETime:        in.ETime,
		Comments:     in.Comments,
		Requirements: cleanRequirements(in.Requirements),
	}

	if actor.IsAdmin() {
		b.Status = models.StatusApproved
		b.BookedByAdmin = true
		err := s.repo.WithApprovalLock(ctx, func(ctx context.Context) error {
			existing, err := s.resolver.FindConflict(ctx, IntervalOf(b), "")
			if err != nil {
				return err
			}
			if existing != nil {
				return conflictError(*existing)
			}
			return storeError(s.repo.Create(ctx, &b), b.ID)
		})
		if err != nil {
			return nil, storeError(err, b.ID)
		}
		s.logger.Info("admin booking created", zap.String("bookingID", b.ID), zap.String("admin", actor.UserID))
		return &b, nil
	}

	b.Status = models.StatusPending
	b.RequestedBy = actor.UserID
	if err := s.repo.Create(ctx, &b); err != nil {
		return nil, storeError(err, b.ID)
	}
	s.logger.Info("booking request submitted",
		zap.String("bookingID", b.ID),
		zap.String("requestedBy", actor.UserID),
		zap.String("department", b.Department),
	)
	s.notifyNewRequest(ctx, b)
	return &b, nil
}

func (s *DefaultBookingService) validateInput(in *models.BookingInput) error {
	in.Department = strings.TrimSpace(in.Department)
	in.EventName = strings.TrimSpace(in.EventName)
	in.EventType = strings.TrimSpace(in.EventType)
	in.STime = strings.TrimSpace(in.STime)
	in.ETime = strings.TrimSpace(in.ETime)
	in.Comments = strings.TrimSpace(in.Comments)

	var missing []string
	if in.Department == "" {
		missing = append(missing, "department")
	}
	if err := s.validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return NewValidationError("invalid booking: %v", err)
		}
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				missing = append(missing, jsonName(fe.Field()))
			case "gtfield":
				return NewValidationError("startTime must be before endTime")
			default:
				return NewValidationError("invalid value for %s", jsonName(fe.Field()))
			}
		}
	}
	if len(missing) > 0 {
		return NewValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// jsonName turns a Go field name into the request field name, e.g. EventName -> eventName.
func jsonName(field string) string {
	switch field {
	case "STime":
		return "sTime"
	case "ETime":
		return "eTime"
	}
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func cleanRequirements(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func validateInterval(i Interval) error {
	if !i.Valid() {
		return NewValidationError("startTime must be before endTime")
	}
	return nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }
