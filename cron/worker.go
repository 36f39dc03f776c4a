package cron

import (
	"context"
	"time"

	"auditorium/config"
	"auditorium/services/notification"
	"auditorium/services/tasks"
	"auditorium/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// EmailWorker consumes queued email tasks and delivers them through a Mailer.
type EmailWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// RedisOpt returns the asynq connection settings for the notification queue.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

func NewEmailWorker(cfg config.Config, mailer notification.Mailer, concurrency int) *EmailWorker {
	logger := utils.GetLogger().Named("email-worker")
	if concurrency < 1 {
		concurrency = 1
	}

	srv := asynq.NewServer(
		RedisOpt(cfg),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendEmail, handleEmailTask(mailer, logger))

	return &EmailWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *EmailWorker) Start() {
	go func() {
		w.logger.Info("starting async email worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("failed to start email worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				w.logger.Error("email worker gave up; queued emails will wait in redis")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *EmailWorker) Shutdown() {
	w.srv.Shutdown()
}

func handleEmailTask(mailer notification.Mailer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		msg, err := tasks.ParseEmailTask(task)
		if err != nil {
			logger.Error("invalid email payload", zap.Error(err))
			return asynq.SkipRetry
		}

		if err := mailer.Deliver(ctx, msg); err != nil {
			logger.Warn("email delivery failed, will retry",
				zap.Strings("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
			return err
		}
		logger.Info("email delivered", zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
		return nil
	}
}
