package user

import (
	"context"
	"strings"

	"auditorium/models"

	"go.uber.org/zap"
)

// send hands msg to the notifier and reports failure to the caller.
func (s *DefaultUserService) send(ctx context.Context, msg models.EmailMessage, renderErr error) error {
	if renderErr != nil {
		return renderErr
	}
	return s.notifier.Notify(context.WithoutCancel(ctx), msg)
}

// dispatch is send for best-effort emails: failures are only logged.
func (s *DefaultUserService) dispatch(ctx context.Context, msg models.EmailMessage, renderErr error) {
	if err := s.send(ctx, msg, renderErr); err != nil {
		s.logger.Warn("failed to dispatch notification",
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
	}
}

func (s *DefaultUserService) adminRecipients(ctx context.Context) ([]string, error) {
	admins, err := s.repo.FindByRole(ctx, models.RoleAdmin, false)
	if err != nil {
		return nil, storeError(err, "admin")
	}
	seen := map[string]struct{}{}
	var out []string
	for _, email := range append(emailsOf(admins), s.adminEmail) {
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out, nil
}

func emailsOf(users []models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, normalize(u.Email))
	}
	return out
}

func trim(s string) string { return strings.TrimSpace(s) }
