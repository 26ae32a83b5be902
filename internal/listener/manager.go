package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-monotony/internal/driver"
	"github.com/pixil98/go-monotony/internal/metrics"
	"github.com/pixil98/go-monotony/internal/session"
)

const disconnectTimeout = 2 * time.Second

// EventSubmitter queues inbound events for the session loop.
type EventSubmitter interface {
	Submit(ctx context.Context, ev session.Event) error
}

// ConnSubscriber delivers outbound frames addressed to a connection.
type ConnSubscriber interface {
	SubscribeConn(connId string, handler func(data []byte)) (func(), error)
}

// ConnectionManager gives each client connection an identity, routes its
// outbound frames back to it and forwards its requests to the session loop.
type ConnectionManager struct {
	events EventSubmitter
	subs   ConnSubscriber
}

func NewConnectionManager(events EventSubmitter, subs ConnSubscriber) *ConnectionManager {
	return &ConnectionManager{
		events: events,
		subs:   subs,
	}
}

// Conn is an attached client connection.
type Conn struct {
	Id       string
	protocol string

	m     *ConnectionManager
	unsub func()
	once  sync.Once
}

// Attach assigns a new connection id and subscribes deliver to the frames
// published for it. The subscription is in place before Attach returns, so
// no reply to a later Submit can be missed.
func (m *ConnectionManager) Attach(ctx context.Context, protocol string, deliver func(data []byte)) (*Conn, error) {
	id := uuid.NewString()

	unsub, err := m.subs.SubscribeConn(id, deliver)
	if err != nil {
		return nil, fmt.Errorf("subscribing connection %s: %w", id, err)
	}

	metrics.ConnectionsOpen.WithLabelValues(protocol).Inc()
	slog.InfoContext(ctx, "connection opened", "conn", id, "protocol", protocol)

	return &Conn{
		Id:       id,
		protocol: protocol,
		m:        m,
		unsub:    unsub,
	}, nil
}

// Submit sends a request from this connection to the session loop.
func (c *Conn) Submit(ctx context.Context, typ session.EventType, arg string) error {
	return c.m.events.Submit(ctx, session.Event{Type: typ, ConnId: c.Id, Arg: arg})
}

// Close unsubscribes the connection and tells the session loop it is gone.
// It is safe to call more than once.
func (c *Conn) Close(ctx context.Context) {
	c.once.Do(func() {
		c.unsub()
		metrics.ConnectionsOpen.WithLabelValues(c.protocol).Dec()

		// The connection context is usually already cancelled here.
		dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), disconnectTimeout)
		defer cancel()

		err := c.m.events.Submit(dctx, session.Event{Type: session.EventDisconnect, ConnId: c.Id})
		if err != nil && !errors.Is(err, driver.ErrStopped) {
			slog.WarnContext(ctx, "submitting disconnect", "conn", c.Id, "error", err)
		}

		slog.InfoContext(ctx, "connection closed", "conn", c.Id, "protocol", c.protocol)
	})
}
