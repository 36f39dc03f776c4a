package notification

import (
	"context"
	"errors"

	"auditorium/models"
)

var (
	// ErrQueueFull is returned by a Notifier that cannot accept more messages.
	ErrQueueFull  = errors.New("notification queue is full")
	// ErrPoolClosed is returned by a Pool after Shutdown.
	ErrPoolClosed = errors.New("notification pool is shut down")
)

// Notifier hands an email off for delivery. Implementations must not block on
// the SMTP round trip; a nil error only means the message was accepted.
type Notifier interface {
	Notify(ctx context.Context, msg models.EmailMessage) error
}

// Mailer performs the actual, synchronous delivery of one email.
type Mailer interface {
	Deliver(ctx context.Context, msg models.EmailMessage) error
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(ctx context.Context, msg models.EmailMessage) error

func (f NotifierFunc) Notify(ctx context.Context, msg models.EmailMessage) error {
	return f(ctx, msg)
}
