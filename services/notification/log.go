package notification

import (
	"context"

	"auditorium/models"

	"go.uber.org/zap"
)

// LogMailer writes emails to the log instead of sending them. Used in
// development when no SMTP relay is configured.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Deliver(_ context.Context, msg models.EmailMessage) error {
	m.logger.Info("email (not sent)",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
