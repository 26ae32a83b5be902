package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-monotony/internal/commands"
	"github.com/pixil98/go-monotony/internal/game"
	"github.com/pixil98/go-monotony/internal/metrics"
)

const DefaultGameName = "Monotony"

const MsgAlreadyJoined = "You have already joined the game."

// Publisher delivers an encoded frame to a single connection.
type Publisher interface {
	PublishToConn(connId string, data []byte) error
}

// Coordinator applies session events to the registry and replies to the
// issuing connection. It is not safe for concurrent use; the driver loop is
// its only caller.
type Coordinator struct {
	registry *game.Registry
	interp   *commands.Interpreter
	pub      Publisher
	gameName string
}

type CoordinatorOpt func(*Coordinator)

// WithGameName sets the name used in the welcome message.
func WithGameName(name string) CoordinatorOpt {
	return func(c *Coordinator) {
		c.gameName = name
	}
}

func NewCoordinator(r *game.Registry, pub Publisher, opts ...CoordinatorOpt) *Coordinator {
	c := &Coordinator{
		registry: r,
		interp:   commands.NewInterpreter(r),
		pub:      pub,
		gameName: DefaultGameName,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Handle dispatches a single event.
func (c *Coordinator) Handle(ctx context.Context, ev Event) {
	metrics.EventsHandled.WithLabelValues(string(ev.Type)).Inc()

	switch ev.Type {
	case EventJoinGame:
		c.Join(ctx, ev.ConnId, ev.Arg)
	case EventMoveToRoom:
		c.Move(ctx, ev.ConnId, ev.Arg)
	case EventCommand:
		c.Command(ctx, ev.ConnId, ev.Arg)
	case EventDisconnect:
		c.Disconnect(ctx, ev.ConnId)
	default:
		slog.WarnContext(ctx, "ignoring unknown event", "type", ev.Type, "conn", ev.ConnId)
	}
}

// Join registers a player in the start room and sends it the world state
// followed by a welcome. A connection that has already joined only gets a
// notice.
func (c *Coordinator) Join(ctx context.Context, connId, name string) {
	p, err := c.registry.Register(connId, name)
	if errors.Is(err, game.ErrPlayerExists) {
		slog.InfoContext(ctx, "rejected duplicate join", "conn", connId, "name", name)
		c.sendResult(ctx, connId, MsgAlreadyJoined)
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "registering player", "conn", connId, "error", err)
		return
	}

	metrics.PlayersOnline.Set(float64(c.registry.Count()))
	slog.InfoContext(ctx, "player joined", "conn", connId, "name", p.Name, "room", p.RoomId)

	c.sendState(ctx, connId)
	c.sendResult(ctx, connId, fmt.Sprintf("Welcome to %s, %s! You are currently in the %s.",
		c.gameName, p.Name, c.registry.StartRoom().Room.Name))
}

// Move relocates a joined player. An unknown room produces only a failure
// notice and leaves all state untouched.
func (c *Coordinator) Move(ctx context.Context, connId, roomId string) {
	if _, err := c.registry.Lookup(connId); err != nil {
		slog.DebugContext(ctx, "dropping move from unjoined connection", "conn", connId)
		return
	}

	ri, err := c.registry.Move(connId, roomId)
	if err != nil {
		metrics.MovesFailed.Inc()
		slog.DebugContext(ctx, "move failed", "conn", connId, "room", roomId, "error", err)
		c.sendResult(ctx, connId, fmt.Sprintf("Cannot move to %s.", roomId))
		return
	}

	slog.DebugContext(ctx, "player moved", "conn", connId, "room", ri.Id)

	c.sendState(ctx, connId)
	c.sendResult(ctx, connId, fmt.Sprintf("You moved to %s.", ri.Room.Name))
}

// Command interprets a command line for a joined player.
func (c *Coordinator) Command(ctx context.Context, connId, line string) {
	p, err := c.registry.Lookup(connId)
	if err != nil {
		slog.DebugContext(ctx, "dropping command from unjoined connection", "conn", connId)
		return
	}

	cmd := commands.Parse(line)
	metrics.CommandsExecuted.WithLabelValues(cmd.Kind.String()).Inc()

	c.sendResult(ctx, connId, c.interp.Exec(p, cmd))
}

// Disconnect removes the player, if any. Repeated calls are no-ops.
func (c *Coordinator) Disconnect(ctx context.Context, connId string) {
	if !c.registry.Unregister(connId) {
		return
	}

	metrics.PlayersOnline.Set(float64(c.registry.Count()))
	slog.InfoContext(ctx, "player left", "conn", connId)
}

func (c *Coordinator) sendState(ctx context.Context, connId string) {
	c.send(ctx, connId, MessageGameState, c.registry.Snapshot())
}

func (c *Coordinator) sendResult(ctx context.Context, connId, text string) {
	c.send(ctx, connId, MessageCommandResult, text)
}

func (c *Coordinator) send(ctx context.Context, connId, typ string, data any) {
	b, err := EncodeFrame(typ, data)
	if err == nil {
		err = c.pub.PublishToConn(connId, b)
	}
	if err != nil {
		metrics.PublishErrors.Inc()
		slog.WarnContext(ctx, "publishing to connection", "conn", connId, "type", typ, "error", err)
	}
}
