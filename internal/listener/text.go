package listener

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pixil98/go-monotony/internal"
	"github.com/pixil98/go-monotony/internal/display"
	"github.com/pixil98/go-monotony/internal/game"
	"github.com/pixil98/go-monotony/internal/metrics"
	"github.com/pixil98/go-monotony/internal/session"
)

const (
	namePrompt = "By what name shall the office know you? "
	linePrompt = "> "
)

// terminalGroup runs the text sessions of one terminal listener. Sessions
// share a context that outlives the listener's so shutdown can say goodbye
// before the transport closes.
type terminalGroup struct {
	cm       *ConnectionManager
	protocol string

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
	drained chan struct{}
	once    sync.Once
}

func newTerminalGroup(ctx context.Context, cm *ConnectionManager, protocol string) *terminalGroup {
	gctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	return &terminalGroup{
		cm:       cm,
		protocol: protocol,
		ctx:      gctx,
		cancel:   cancel,
		drained:  make(chan struct{}),
	}
}

// serve runs a session over a raw terminal stream and blocks until it ends.
// Streams arriving after shutdown has begun are not served.
func (g *terminalGroup) serve(rw io.ReadWriter, attrs ...any) {
	g.mu.Lock()
	if g.closing {
		g.mu.Unlock()
		return
	}
	g.wg.Add(1)
	g.mu.Unlock()
	defer g.wg.Done()

	metrics.TerminalsAccepted.WithLabelValues(g.protocol).Inc()
	attrs = append([]any{"protocol", g.protocol}, attrs...)
	slog.DebugContext(g.ctx, "terminal opened", attrs...)
	g.cm.AcceptConnection(g.ctx, g.protocol, newLineEndings(rw))
	slog.DebugContext(g.ctx, "terminal closed", attrs...)
}

// shutdown ends every running session and waits for them to return. The
// drained channel is closed once they have.
func (g *terminalGroup) shutdown() {
	g.mu.Lock()
	g.closing = true
	g.cancel()
	g.mu.Unlock()

	g.wg.Wait()
	g.once.Do(func() { close(g.drained) })
}

// AcceptConnection runs a line-oriented session over rw until the client
// quits, the connection drops or ctx is cancelled.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, protocol string, rw io.ReadWriter) {
	if err := m.runTextSession(ctx, protocol, rw); err != nil && ctx.Err() == nil {
		slog.WarnContext(ctx, "text session", "protocol", protocol, "error", err)
	}
}

func (m *ConnectionManager) runTextSession(ctx context.Context, protocol string, rw io.ReadWriter) error {
	br := bufio.NewReader(rw)

	name, err := internal.Prompt(br, rw, namePrompt,
		internal.WithValidator(internal.NotEmpty("A name is required.\n")),
		internal.WithMaxTries(3),
	)
	if err != nil {
		return fmt.Errorf("reading name: %w", err)
	}

	done := make(chan struct{})
	defer close(done)

	msgs := make(chan []byte, 16)
	conn, err := m.Attach(ctx, protocol, func(data []byte) {
		select {
		case msgs <- data:
		case <-done:
		}
	})
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if err := conn.Submit(ctx, session.EventJoinGame, name); err != nil {
		return fmt.Errorf("joining: %w", err)
	}

	// Read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(br)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-done:
				return
			}
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	for {
		select {
		case <-ctx.Done():
			writeText(rw, "\nThe office is closing. Goodbye!\n")
			return nil

		case msg := <-msgs:
			text, err := renderFrame(conn.Id, msg)
			if err != nil {
				slog.WarnContext(ctx, "rendering frame", "conn", conn.Id, "error", err)
				continue
			}
			if text != "" {
				text += "\n"
			}
			if err := writeText(rw, text+linePrompt); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			ev, arg, quit := parseTextLine(line)
			if quit {
				writeText(rw, "Goodbye!\n")
				return nil
			}
			if ev == "" {
				if err := writeText(rw, arg+linePrompt); err != nil {
					return err
				}
				continue
			}
			if err := conn.Submit(ctx, ev, arg); err != nil {
				return fmt.Errorf("submitting %s: %w", ev, err)
			}
		}
	}
}

// parseTextLine maps a line typed by a text client onto a session event.
// An empty event type means nothing is submitted and arg is local feedback.
func parseTextLine(line string) (session.EventType, string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", "", false
	}

	switch strings.ToLower(fields[0]) {
	case "quit":
		return "", "", true
	case "go", "move":
		if len(fields) < 2 {
			return "", "Move where?\n", false
		}
		return session.EventMoveToRoom, fields[1], false
	default:
		return session.EventCommand, strings.TrimSpace(line), false
	}
}

// renderFrame turns an outbound frame into text for connId.
func renderFrame(connId string, b []byte) (string, error) {
	var f session.Frame
	if err := json.Unmarshal(b, &f); err != nil {
		return "", fmt.Errorf("decoding frame: %w", err)
	}

	switch f.Type {
	case session.MessageGameState:
		var s game.Snapshot
		if err := json.Unmarshal(f.Data, &s); err != nil {
			return "", fmt.Errorf("decoding state: %w", err)
		}
		return display.RenderState(s, connId)

	case session.MessageCommandResult:
		var text string
		if err := json.Unmarshal(f.Data, &text); err != nil {
			return "", fmt.Errorf("decoding result: %w", err)
		}
		return display.Wrap(text), nil

	default:
		metrics.FramesDropped.WithLabelValues("text").Inc()
		return "", fmt.Errorf("unknown frame type %q", f.Type)
	}
}

func writeText(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
