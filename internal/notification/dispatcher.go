package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Dispatcher sends notifications in the background. Delivery failures are
// logged and never reach the caller.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	now      func() time.Time
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(notifier Notifier, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if notifier == nil {
		notifier = Nop{}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		notifier: notifier,
		timeout:  timeout,
		now:      time.Now,
		logger:   logger,
	}
}

// Dispatch queues msg for delivery and returns immediately
func (d *Dispatcher) Dispatch(msg Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = d.now()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Notify(ctx, msg); err != nil {
			d.logger.Warn("Notification delivery failed",
				zap.String("request_type", msg.RequestType),
				zap.Time("timestamp", msg.Timestamp),
				zap.Error(err))
			return
		}

		d.logger.Debug("Notification delivered",
			zap.String("request_type", msg.RequestType),
			zap.Time("timestamp", msg.Timestamp))
	}()
}

// Send delivers msg synchronously and reports the outcome
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	if msg.Text == "" {
		return ErrEmptyMessage
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = d.now()
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, msg); err != nil {
		d.logger.Error("Notification relay failed",
			zap.String("request_type", msg.RequestType),
			zap.Error(err))
		return err
	}
	return nil
}

// Wait blocks until every dispatched notification has finished
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
