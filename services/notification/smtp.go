package notification

import (
	"context"
	"fmt"

	"auditorium/config"
	"auditorium/models"

	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers email through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

// Deliver dials the relay and sends msg. gomail has no context support, so ctx
// is only checked before dialing.
func (m *SMTPMailer) Deliver(ctx context.Context, msg models.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("email %q has no recipients", msg.Subject)
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("smtp send %q: %w", msg.Subject, err)
	}
	return nil
}
