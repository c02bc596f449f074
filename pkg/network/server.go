package network

import (
	"context"
	"net/http"

	"github.com/gonewx/bastion/pkg/game"
	"github.com/gonewx/bastion/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Server serves the simulation loop to WebSocket clients.
type Server struct {
	ctx      context.Context
	loop     *game.Loop
	hub      *Hub
	upgrader websocket.Upgrader
	log      *logrus.Entry
}

// NewServer creates a server over loop and routes the loop's snapshots to
// connected clients. ctx bounds every call the server makes into the loop.
func NewServer(ctx context.Context, loop *game.Loop, log logrus.FieldLogger) *Server {
	s := &Server{
		ctx:  ctx,
		loop: loop,
		hub:  NewHub(log),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logger.For(log, "Server"),
	}
	loop.OnSnapshot = s.hub.Broadcast
	return s
}

// Hub returns the client hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP routes: /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("[Server] upgrade failed")
		return
	}
	c := newClient(s, conn)
	s.log.WithField("remote", r.RemoteAddr).Debug("[Server] connection accepted")

	go c.writePump()
	go c.readPump(s.ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.log.WithError(err).Debug("[Server] health write failed")
	}
}
