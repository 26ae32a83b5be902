package driver

import (
	"context"
	"errors"

	"github.com/pixil98/go-monotony/internal/session"
)

const (
	DefaultQueueSize = 64
)

var ErrStopped = errors.New("driver stopped")

// Handler consumes events one at a time.
type Handler interface {
	Handle(ctx context.Context, ev session.Event)
}

// SessionDriver is the single writer for game state. Listeners submit events
// from any goroutine and the driver hands them to the handler in arrival
// order, each one running to completion before the next starts.
type SessionDriver struct {
	queueSize int
	handler   Handler

	events  chan session.Event
	stopped chan struct{}
}

func NewSessionDriver(handler Handler, opts ...SessionDriverOpt) *SessionDriver {
	d := &SessionDriver{
		queueSize: DefaultQueueSize,
		handler:   handler,
		stopped:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.events = make(chan session.Event, d.queueSize)

	return d
}

func (d *SessionDriver) Start(ctx context.Context) error {
	defer close(d.stopped)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-d.events:
			d.handler.Handle(ctx, ev)
		}
	}
}

// Submit queues an event. It blocks while the queue is full and gives up when
// ctx is done or the driver has stopped.
func (d *SessionDriver) Submit(ctx context.Context, ev session.Event) error {
	select {
	case <-d.stopped:
		return ErrStopped
	default:
	}

	select {
	case d.events <- ev:
		return nil
	case <-d.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
