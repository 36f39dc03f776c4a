package booking

import (
	"context"
	"strings"

	"auditorium/models"

	"go.uber.org/zap"
)

// dispatch hands msg to the notifier. Failures are logged and swallowed: the
// booking write that triggered the email has already been committed.
func (s *DefaultBookingService) dispatch(ctx context.Context, msg models.EmailMessage, err error) {
	if err != nil {
		s.logger.Error("failed to build notification", zap.Error(err))
		return
	}
	if len(msg.To) == 0 {
		return
	}
	if err := s.notifier.Notify(context.WithoutCancel(ctx), msg); err != nil {
		s.logger.Warn("failed to dispatch notification",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
	}
}

// adminRecipients returns the addresses of approved admins plus the configured
// fallback address, deduplicated.
func (s *DefaultBookingService) adminRecipients(ctx context.Context) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			return
		}
		if _, ok := seen[email]; ok {
			return
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}

	admins, err := s.users.FindByRole(ctx, models.RoleAdmin, false)
	if err != nil {
		s.logger.Warn("failed to look up admin emails", zap.Error(err))
	}
	for _, a := range admins {
		add(a.Email)
	}
	add(s.adminEmail)
	return out
}

func (s *DefaultBookingService) notifyNewRequest(ctx context.Context, b models.Booking) {
	msg, err := newRequestEmail(s.adminRecipients(ctx), b)
	s.dispatch(ctx, msg, err)
}

// notifyStatusChange emails the requester and the admins about a decision, then
// routes equipment notices for approved HOD bookings.
func (s *DefaultBookingService) notifyStatusChange(ctx context.Context, b models.Booking) {
	if b.RequestedBy != "" {
		requester, err := s.users.GetByID(ctx, b.RequestedBy)
		if err != nil {
			s.logger.Warn("failed to look up requester", zap.String("userID", b.RequestedBy), zap.Error(err))
		} else if requester.Email != "" {
			msg, err := statusUpdateEmail([]string{requester.Email}, b)
			s.dispatch(ctx, msg, err)
		}
	}

	msg, err := statusUpdateEmail(s.adminRecipients(ctx), b)
	s.dispatch(ctx, msg, err)

	if b.Status != models.StatusApproved || b.BookedByAdmin {
		return
	}
	for _, route := range s.router.Match(b.Requirements) {
		msg, err := equipmentEmail(route, b)
		s.dispatch(ctx, msg, err)
	}
}
