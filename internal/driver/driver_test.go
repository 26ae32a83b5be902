package driver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-monotony/internal/session"
	"github.com/pixil98/go-testutil"
)

type recordingHandler struct {
	mu     sync.Mutex
	active int
	maxAct int
	seen   []session.Event
	done   chan struct{}
	want   int
}

func (h *recordingHandler) Handle(_ context.Context, ev session.Event) {
	h.mu.Lock()
	h.active++
	if h.active > h.maxAct {
		h.maxAct = h.active
	}
	h.mu.Unlock()

	time.Sleep(time.Millisecond)

	h.mu.Lock()
	h.active--
	h.seen = append(h.seen, ev)
	if len(h.seen) == h.want {
		close(h.done)
	}
	h.mu.Unlock()
}

func TestSessionDriver_SerialisesEvents(t *testing.T) {
	const producers, perProducer = 4, 10

	h := &recordingHandler{done: make(chan struct{}), want: producers * perProducer}
	d := NewSessionDriver(h, WithQueueSize(2))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Start(ctx)

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				ev := session.Event{Type: session.EventCommand, ConnId: string(rune('a' + p)), Arg: string(rune('0' + i))}
				if err := d.Submit(ctx, ev); err != nil {
					t.Errorf("submit: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	select {
	case <-h.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for events")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	testutil.AssertEqual(t, "max concurrent handlers", h.maxAct, 1)

	// Per-connection order is preserved.
	last := map[string]string{}
	for _, ev := range h.seen {
		if prev, ok := last[ev.ConnId]; ok && ev.Arg <= prev {
			t.Errorf("conn %s: %q handled after %q", ev.ConnId, ev.Arg, prev)
		}
		last[ev.ConnId] = ev.Arg
	}
}

func TestSessionDriver_SubmitAfterStop(t *testing.T) {
	h := &recordingHandler{done: make(chan struct{})}
	d := NewSessionDriver(h)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- d.Start(ctx) }()
	cancel()

	if err := <-errCh; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := d.Submit(context.Background(), session.Event{Type: session.EventDisconnect, ConnId: "c1"})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("error = %v, expected %v", err, ErrStopped)
	}
}

func TestSessionDriver_SubmitHonoursContext(t *testing.T) {
	h := &recordingHandler{done: make(chan struct{})}
	d := NewSessionDriver(h, WithQueueSize(1))

	// Loop not started: the first event fills the queue, the second blocks.
	if err := d.Submit(context.Background(), session.Event{ConnId: "c1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := d.Submit(ctx, session.Event{ConnId: "c2"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, expected %v", err, context.DeadlineExceeded)
	}
}
