package listener

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/pixil98/go-monotony/internal/driver"
	"github.com/pixil98/go-monotony/internal/game"
	"github.com/pixil98/go-monotony/internal/session"
)

// localBus routes frames to subscribers in-process.
type localBus struct {
	mu   sync.Mutex
	subs map[string]func([]byte)
}

func newLocalBus() *localBus {
	return &localBus{subs: map[string]func([]byte){}}
}

func (b *localBus) SubscribeConn(connId string, handler func([]byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[connId] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, connId)
	}, nil
}

func (b *localBus) PublishToConn(connId string, data []byte) error {
	b.mu.Lock()
	h, ok := b.subs[connId]
	b.mu.Unlock()
	if !ok {
		return fmt.Errorf("no subscriber for %s", connId)
	}
	h(data)
	return nil
}

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

// newTestManager wires a connection manager to a running session loop over
// the reference world.
func newTestManager(t *testing.T) *ConnectionManager {
	t.Helper()

	w, err := game.NewWorld(game.ReferenceRooms())
	if err != nil {
		t.Fatalf("building world: %v", err)
	}
	if err := game.SpawnLoot(w, zeroRand{}); err != nil {
		t.Fatalf("spawning loot: %v", err)
	}
	r, err := game.NewRegistry(w, game.ReferenceStartRoom)
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}

	bus := newLocalBus()
	d := driver.NewSessionDriver(session.NewCoordinator(r, bus))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- d.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-errCh
	})

	return NewConnectionManager(d, bus)
}
