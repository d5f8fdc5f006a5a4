package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/calc-climb/internal/multiplayer"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	eventBuffer    = 64
)

// Server exposes a coordinator to websocket clients.
type Server struct {
	coord    *multiplayer.Coordinator
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server over a started coordinator. A nil logger
// discards output.
func NewServer(coord *multiplayer.Coordinator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		coord:  coord,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Routes returns the HTTP handler: /ws, /rooms and the /health heartbeat.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/health"))

	r.Get("/ws", s.handleWS)
	r.Get("/rooms", s.handleRooms)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting websocket server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	stats, err := s.coord.Stats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		s.logger.Warn("cannot write room stats", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &peer{
		conn:    conn,
		session: multiplayer.NewChannelSession(multiplayer.NewSessionID(), eventBuffer),
		coord:   s.coord,
		logger:  s.logger,
	}
	s.coord.Attach(c.session)
	s.logger.Info("client connected", "session", c.session.ID(), "remote", r.RemoteAddr)

	go c.writePump()
	c.readPump()
	s.logger.Info("client disconnected", "session", c.session.ID(), "remote", r.RemoteAddr)
}

// peer is one websocket connection bound to a coordinator session.
type peer struct {
	conn    *websocket.Conn
	session *multiplayer.ChannelSession
	coord   *multiplayer.Coordinator
	logger  *log.Logger
}

// readPump forwards client frames to the coordinator. Its exit closes the
// session, which the coordinator treats as a disconnect.
func (c *peer) readPump() {
	defer func() {
		c.session.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // a failed deadline surfaces on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "session", c.session.ID(), "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.reject(fmt.Errorf("ws: bad frame: %w", err))
			continue
		}

		msg, err := DecodeMessage(c.session.ID(), env)
		if err != nil {
			c.reject(err)
			continue
		}
		c.coord.Send(msg)
	}
}

// reject answers a malformed frame without touching room state.
func (c *peer) reject(err error) {
	c.logger.Debug("bad frame", "session", c.session.ID(), "error", err)
	c.session.Send(multiplayer.RoomErrorEvent{Err: err})
}

// writePump drains coordinator events onto the socket and keeps it alive
// with pings.
func (c *peer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case evt := <-c.session.Events():
			env, err := EncodeEvent(evt)
			if err != nil {
				c.logger.Warn("dropping event", "session", c.session.ID(), "error", err)
				continue
			}
			//nolint:errcheck // a failed deadline surfaces on the next write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(env); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // a failed deadline surfaces on the next write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.session.Done():
			//nolint:errcheck // the peer may already be gone
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
