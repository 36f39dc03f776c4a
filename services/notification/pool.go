package notification

import (
	"context"
	"sync"
	"time"

	"auditorium/models"

	"go.uber.org/zap"
)

const deliveryTimeout = 30 * time.Second

// Pool is an in-process Notifier: a buffered queue drained by a fixed number of
// workers that call the underlying Mailer.
type Pool struct {
	queue   chan models.EmailMessage
	mailer  Mailer
	logger  *zap.Logger
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	stopped chan struct{}
}

func NewPool(mailer Mailer, workers, buffer int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if buffer < 1 {
		buffer = 100
	}
	p := &Pool{
		queue:   make(chan models.EmailMessage, buffer),
		mailer:  mailer,
		logger:  logger,
		stopped: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		if err := p.mailer.Deliver(ctx, msg); err != nil {
			p.logger.Error("email delivery failed",
				zap.Int("worker", id),
				zap.Strings("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		} else {
			p.logger.Debug("email delivered", zap.Int("worker", id), zap.String("subject", msg.Subject))
		}
		cancel()
	}
}

// Notify enqueues msg without waiting for delivery.
func (p *Pool) Notify(_ context.Context, msg models.EmailMessage) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting messages and waits for queued ones to be delivered,
// or for ctx to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
		go func() {
			p.wg.Wait()
			close(p.stopped)
		}()
	}
	p.mu.Unlock()

	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
