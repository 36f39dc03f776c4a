package cron

import (
	"context"
	"errors"
	"testing"

	"auditorium/models"
	"auditorium/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mailerFunc func(ctx context.Context, msg models.EmailMessage) error

func (f mailerFunc) Deliver(ctx context.Context, msg models.EmailMessage) error { return f(ctx, msg) }

func TestHandleEmailTaskDelivers(t *testing.T) {
	var got models.EmailMessage
	handler := handleEmailTask(mailerFunc(func(_ context.Context, msg models.EmailMessage) error {
		got = msg
		return nil
	}), zap.NewNop())

	want := models.EmailMessage{To: []string{"hod@college.edu"}, Subject: "Booking Approved: Symposium", HTML: "<p>ok</p>"}
	task, _, err := tasks.NewEmailTask(want)
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	assert.Equal(t, want, got)
}

func TestHandleEmailTaskSkipsRetryOnBadPayload(t *testing.T) {
	called := false
	handler := handleEmailTask(mailerFunc(func(context.Context, models.EmailMessage) error {
		called = true
		return nil
	}), zap.NewNop())

	err := handler(context.Background(), asynq.NewTask(tasks.TypeSendEmail, []byte("{not json")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.False(t, called)
}

func TestHandleEmailTaskReturnsDeliveryError(t *testing.T) {
	smtpDown := errors.New("dial tcp: connection refused")
	handler := handleEmailTask(mailerFunc(func(context.Context, models.EmailMessage) error {
		return smtpDown
	}), zap.NewNop())

	task, _, err := tasks.NewEmailTask(models.EmailMessage{To: []string{"a@b.c"}, Subject: "s"})
	require.NoError(t, err)

	assert.ErrorIs(t, handler(context.Background(), task), smtpDown)
}
