// Package notification delivers (recipient, subject, body) messages after a
// transition commits. Delivery is asynchronous and best-effort.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Message struct {
	ID          string `json:"id"`
	RecipientID uint   `json:"recipient_id"`
	To          string `json:"to"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier is what use cases depend on.
type Notifier interface {
	Notify(msgs ...Message)
}

const sendTimeout = 10 * time.Second

type Dispatcher struct {
	sink   Sink
	logger zerolog.Logger
	queue  chan Message
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger.With().Str("component", "notification").Logger(),
		queue:  make(chan Message, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sink.Send(ctx, msg)
		cancel()
		if err != nil {
			d.logger.Error().
				Err(err).
				Str("message_id", msg.ID).
				Uint("recipient_id", msg.RecipientID).
				Msg("notification delivery failed")
		}
	}
}

// Notify enqueues without blocking; messages that don't fit, or arrive
// after Close, are dropped.
func (d *Dispatcher) Notify(msgs ...Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn().Int("count", len(msgs)).Msg("notification dispatcher closed, dropping messages")
		return
	}
	for _, msg := range msgs {
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		select {
		case d.queue <- msg:
		default:
			d.logger.Warn().
				Str("message_id", msg.ID).
				Uint("recipient_id", msg.RecipientID).
				Msg("notification queue full, dropping message")
		}
	}
}

func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
