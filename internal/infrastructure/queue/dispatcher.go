package queue

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/elitetoolboxes/manufacturer-api/internal/api/metrics"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/domain"
	"github.com/elitetoolboxes/manufacturer-api/internal/core/ports"
	"github.com/elitetoolboxes/manufacturer-api/internal/infrastructure/mail"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

type job struct {
	order domain.Order
	done  chan error
}

// Dispatcher sends order confirmation emails from a fixed pool of workers.
// Callers never block: when the queue is full the job is dropped and the
// returned channel reports domain.ErrQueueFull.
type Dispatcher struct {
	jobs   chan job
	mailer ports.Mailer
	from   string
	log    zerolog.Logger

	workers int
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
}

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, from string, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{
		jobs:    make(chan job, channelBuffer),
		mailer:  mailer,
		from:    from,
		log:     log,
		workers: numWorkers,
	}
}

// Start launches the worker goroutines. They exit once Shutdown has closed
// the queue and every pending job is handled.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.runWorker(i)
	}
}

// NotifyOrderPlaced enqueues a confirmation for order. The returned channel
// yields exactly one result and is then closed.
func (d *Dispatcher) NotifyOrderPlaced(order domain.Order) <-chan error {
	done := make(chan error, 1)

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(order, done, "dispatcher closed")
		return done
	}

	select {
	case d.jobs <- job{order: order, done: done}:
		metrics.NotificationQueueDepth.Inc()
	default:
		d.drop(order, done, "queue full")
	}
	return done
}

func (d *Dispatcher) drop(order domain.Order, done chan error, reason string) {
	metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
	d.log.Warn().
		Str("order_id", order.ID).
		Str("email", order.Email).
		Str("reason", reason).
		Msg("order confirmation dropped")
	done <- domain.ErrQueueFull
	close(done)
}

// Shutdown stops intake and waits for queued jobs to drain or ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) runWorker(id int) {
	defer d.wg.Done()
	for j := range d.jobs {
		metrics.NotificationQueueDepth.Dec()
		err := d.send(j.order)
		if err != nil {
			metrics.NotificationsTotal.WithLabelValues("failed").Inc()
			d.log.Error().Err(err).
				Str("order_id", j.order.ID).
				Str("email", j.order.Email).
				Int("worker_id", id).
				Msg("order confirmation failed")
		} else {
			metrics.NotificationsTotal.WithLabelValues("sent").Inc()
			d.log.Info().
				Str("order_id", j.order.ID).
				Str("email", j.order.Email).
				Msg("order confirmation sent")
		}
		j.done <- err
		close(j.done)
	}
}

func (d *Dispatcher) send(order domain.Order) error {
	start := time.Now()
	defer func() { metrics.NotificationDuration.Observe(time.Since(start).Seconds()) }()

	msg, err := mail.OrderConfirmation(d.from, order)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return d.mailer.Send(ctx, msg)
}
