package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"syscall"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves text sessions to plain telnet clients.
type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
}

func NewTelnetListener(port uint16, cm *ConnectionManager) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	terminals := &telnetTerminals{newTerminalGroup(ctx, l.cm, "telnet")}
	defer terminals.shutdown()
	svr := telnet.NewServer(fmt.Sprintf(":%d", l.port), terminals)

	stop := context.AfterFunc(ctx, func() {
		svr.Stop()
		terminals.shutdown()
	})
	defer stop()

	slog.InfoContext(ctx, "listening for telnet", "port", l.port)

	err := svr.ListenAndServe()
	switch {
	case ctx.Err() != nil:
		return nil
	case errors.Is(err, syscall.EADDRINUSE):
		return fmt.Errorf("telnet port %d is already in use", l.port)
	case err != nil:
		return fmt.Errorf("serving telnet on port %d: %w", l.port, err)
	}
	return nil
}

// telnetTerminals hands each telnet connection to the terminal group.
type telnetTerminals struct {
	*terminalGroup
}

func (t *telnetTerminals) HandleTelnet(conn *telnet.Connection) {
	defer func() {
		if err := conn.Close(); err != nil {
			slog.DebugContext(t.ctx, "closing telnet connection", "error", err)
		}
	}()
	t.serve(conn)
}
