package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

func startTestServer(t *testing.T) *NatsServer {
	t.Helper()

	s, err := NewNatsServer(WithStartTimeout(5 * time.Second))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("server exited: %v", err)
		}
	})

	select {
	case <-s.Ready():
	case err := <-errCh:
		t.Fatalf("server failed to start: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for nats")
	}
	return s
}

func TestSubject(t *testing.T) {
	testutil.AssertEqual(t, "subject", Subject("abc-123"), "conn-abc-123")
}

func TestNatsServer_NotStarted(t *testing.T) {
	s, err := NewNatsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = s.Subscribe("conn-x", func([]byte) {})
	testutil.AssertErrorContains(t, err, "not started")
	testutil.AssertErrorContains(t, s.Publish("conn-x", nil), "not started")
}

func TestNatsPublisher_PerConnectionDelivery(t *testing.T) {
	pub := NewNatsPublisher(startTestServer(t))

	got := make(chan string, 10)
	unsubA, err := pub.SubscribeConn("a", func(b []byte) { got <- "a:" + string(b) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsubA()
	unsubB, err := pub.SubscribeConn("b", func(b []byte) { got <- "b:" + string(b) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsubB()

	for _, msg := range []string{"first", "second", "third"} {
		if err := pub.PublishToConn("a", []byte(msg)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var recv []string
	for range 3 {
		select {
		case m := <-got:
			recv = append(recv, m)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out, received %v", recv)
		}
	}
	testutil.AssertEqual(t, "received in order", recv, []string{"a:first", "a:second", "a:third"})

	select {
	case m := <-got:
		t.Fatalf("unexpected extra message %q", m)
	case <-time.After(50 * time.Millisecond):
	}
}
