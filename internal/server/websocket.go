package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/nechto-online/nechto-server/internal/config"
	"github.com/nechto-online/nechto-server/internal/room"
	"github.com/nechto-online/nechto-server/internal/store"
)

// Server is the WebSocket gateway. Each connection is one player; the
// protocol is JSON request/response frames plus server-pushed state
// frames fed by the store's watch stream.
type Server struct {
	cfg      config.WebSocketConfig
	rooms    *room.Manager
	store    store.StateStore
	log      *zap.Logger
	upgrader websocket.Upgrader

	httpServer *http.Server
}

// New creates the gateway.
func New(cfg config.WebSocketConfig, rooms *room.Manager, st store.StateStore, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		cfg:   cfg,
		rooms: rooms,
		store: st,
		log:   log,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range s.cfg.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Start runs the HTTP listener until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s.httpServer = &http.Server{
		Addr:    s.cfg.Address,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("websocket server listening", zap.String("address", s.cfg.Address))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Handler returns the gateway's HTTP handler. Tests dial it through
// httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		server: s,
		conn:   conn,
		send:   make(chan []byte, 32),
	}
	ctx, cancel := context.WithCancel(r.Context())
	c.ctx = ctx
	c.cancel = cancel

	go c.writePump()
	c.readPump()
}
