package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
)

const handshakeTimeout = 10 * time.Second

var errNoShell = errors.New("channel closed before a shell was requested")

// SshListener serves text sessions over ssh. Clients are not authenticated;
// the player name is asked for once the shell opens.
type SshListener struct {
	port   uint16
	cm     *ConnectionManager
	config *ssh.ServerConfig
}

func NewSshListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer) *SshListener {
	config := &ssh.ServerConfig{NoClientAuth: true}
	config.AddHostKey(hostKey)

	return &SshListener{
		port:   port,
		cm:     cm,
		config: config,
	}
}

func (l *SshListener) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "port", l.port)
	return l.Serve(ctx, ln)
}

// Serve accepts ssh connections on ln until ctx is cancelled. It takes
// ownership of ln.
func (l *SshListener) Serve(ctx context.Context, ln net.Listener) error {
	terminals := newTerminalGroup(ctx, l.cm, "ssh")
	var conns sync.WaitGroup

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	for {
		nc, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				terminals.shutdown()
				conns.Wait()
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("accepting ssh connections: %w", err)
			}
			slog.WarnContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		conns.Add(1)
		go func() {
			defer conns.Done()
			l.handleConn(terminals, nc)
		}()
	}
}

func (l *SshListener) handleConn(terminals *terminalGroup, nc net.Conn) {
	defer nc.Close()

	nc.SetDeadline(time.Now().Add(handshakeTimeout))
	sc, chans, reqs, err := ssh.NewServerConn(nc, l.config)
	if err != nil {
		slog.WarnContext(terminals.ctx, "ssh handshake", "remote", nc.RemoteAddr(), "error", err)
		return
	}
	nc.SetDeadline(time.Time{})
	defer sc.Close()

	// Closing the server connection ends the channel range below. Wait for
	// sessions to finish so their goodbye reaches the client first.
	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-terminals.drained:
			sc.Close()
		case <-closed:
		}
	}()

	go ssh.DiscardRequests(reqs)

	for nch := range chans {
		if nch.ChannelType() != "session" {
			nch.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}

		ch, err := acceptShell(terminals.ctx, nch)
		if err != nil {
			slog.WarnContext(terminals.ctx, "opening ssh shell", "remote", nc.RemoteAddr(), "error", err)
			continue
		}

		terminals.serve(ch, "remote", nc.RemoteAddr().String(), "user", sc.User())
		ch.Close()
	}
}

// acceptShell accepts a session channel and waits for the client's shell
// request. Clients hold back input until that request is answered. Pty
// requests are refused so the client keeps local echo and line editing.
func acceptShell(ctx context.Context, nch ssh.NewChannel) (ssh.Channel, error) {
	ch, reqs, err := nch.Accept()
	if err != nil {
		return nil, err
	}

	opened := make(chan bool, 1)
	go func() {
		shell := false
		for req := range reqs {
			ok := req.Type == "shell" && !shell
			if req.WantReply {
				req.Reply(ok, nil)
			}
			if ok {
				shell = true
				opened <- true
			}
		}
		if !shell {
			opened <- false
		}
	}()

	select {
	case ok := <-opened:
		if !ok {
			ch.Close()
			return nil, errNoShell
		}
		return ch, nil
	case <-ctx.Done():
		ch.Close()
		return nil, ctx.Err()
	}
}
