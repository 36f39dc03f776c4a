package notification

import (
	"context"
	"fmt"

	"auditorium/models"
	"auditorium/services/tasks"

	"github.com/hibiken/asynq"
)

// QueueNotifier publishes emails as asynq tasks; the cron worker delivers them.
type QueueNotifier struct {
	client *asynq.Client
}

func NewQueueNotifier(redisOpt asynq.RedisClientOpt) *QueueNotifier {
	return &QueueNotifier{client: asynq.NewClient(redisOpt)}
}

func (q *QueueNotifier) Notify(ctx context.Context, msg models.EmailMessage) error {
	task, opts, err := tasks.NewEmailTask(msg)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue email %q: %w", msg.Subject, err)
	}
	return nil
}

func (q *QueueNotifier) Close() error {
	return q.client.Close()
}
