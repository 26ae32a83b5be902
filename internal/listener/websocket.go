package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pixil98/go-monotony/internal/metrics"
	"github.com/pixil98/go-monotony/internal/session"
)

const (
	wsWriteTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// WebsocketListener serves the JSON frame protocol on /socket alongside the
// health and metrics endpoints.
type WebsocketListener struct {
	port     uint16
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, cm *ConnectionManager) *WebsocketListener {
	return &WebsocketListener{
		port: port,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Router returns the HTTP routes served by the listener.
func (l *WebsocketListener) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/socket", l.handleSocket)

	return r
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", l.port),
		Handler:           l.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				slog.WarnContext(ctx, "shutting down websocket listener", "error", err)
			}
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "listening for websocket", "port", l.port)

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
	}
	return nil
}

func (l *WebsocketListener) handleSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer ws.Close()

	// gorilla allows one concurrent writer; frames arrive on the subscription
	// goroutine while shutdown writes from this one.
	var writeMu sync.Mutex
	write := func(messageType int, data []byte) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		ws.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		return ws.WriteMessage(messageType, data)
	}

	conn, err := l.cm.Attach(ctx, "websocket", func(data []byte) {
		if err := write(websocket.TextMessage, data); err != nil {
			slog.DebugContext(ctx, "writing websocket frame", "error", err)
		}
	})
	if err != nil {
		slog.ErrorContext(ctx, "attaching websocket connection", "error", err)
		write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "unavailable"))
		return
	}
	defer conn.Close(ctx)

	// Unblock ReadMessage on shutdown.
	stop := context.AfterFunc(ctx, func() {
		write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		ws.Close()
	})
	defer stop()

	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && ctx.Err() == nil {
				slog.DebugContext(ctx, "websocket read", "conn", conn.Id, "error", err)
			}
			return
		}

		ev, err := session.DecodeEvent(conn.Id, payload)
		if err != nil {
			metrics.FramesDropped.WithLabelValues("websocket").Inc()
			slog.WarnContext(ctx, "discarding websocket frame", "conn", conn.Id, "error", err)
			continue
		}

		if err := conn.Submit(ctx, ev.Type, ev.Arg); err != nil {
			slog.WarnContext(ctx, "submitting event", "conn", conn.Id, "type", ev.Type, "error", err)
			return
		}
	}
}
