package tasks

import (
	"encoding/json"
	"time"

	"auditorium/models"

	"github.com/hibiken/asynq"
)

const TypeSendEmail = "email:send"

// NewEmailTask builds the asynq task that carries one outgoing email.
func NewEmailTask(msg models.EmailMessage) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendEmail, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	}

	return task, opts, nil
}

// ParseEmailTask decodes the payload of an email task.
func ParseEmailTask(task *asynq.Task) (models.EmailMessage, error) {
	var msg models.EmailMessage
	err := json.Unmarshal(task.Payload(), &msg)
	return msg, err
}
