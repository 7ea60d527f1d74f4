// Package websocket serves the MCP protocol over WebSocket connections.
//
// Each inbound text frame carries one JSON-RPC message. Responses return
// on the same connection in request order; notifications produce no
// frame. This is a thin bridge: the MCP server does all protocol work,
// including error responses for unparsable frames.
package websocket

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Server bridges WebSocket connections to an MCP server.
type Server struct {
	mcp      *mcpserver.MCPServer
	upgrader websocket.Upgrader
	logger   *zap.Logger
	baseCtx  context.Context
	active   atomic.Int64
}

// ServerConfig holds WebSocket server configuration.
type ServerConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultServerConfig returns the configuration used when none is given.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Meant for localhost deployments; tighten when exposing wider.
			return true
		},
	}
}

// NewServer creates a WebSocket server in front of the given MCP server.
func NewServer(mcp *mcpserver.MCPServer, config *ServerConfig, logger *zap.Logger) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}

	return &Server{
		mcp: mcp,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:  logger,
		baseCtx: context.Background(),
	}
}

// HandleWebSocket handles WebSocket upgrade requests.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection",
			zap.Error(err),
			zap.String("remoteAddr", r.RemoteAddr),
		)
		return
	}

	c := newClient(s.baseCtx, s.mcp, conn, s.logger)
	s.active.Add(1)
	c.onClose = func() { s.active.Add(-1) }
	c.start()

	s.logger.Info("websocket connection established",
		zap.String("connectionID", c.id),
		zap.String("remoteAddr", r.RemoteAddr),
	)
}

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves WebSocket connections on address until ctx is canceled,
// then shuts the listener down and closes remaining connections.
func (s *Server) Start(ctx context.Context, address string) error {
	s.baseCtx = ctx

	server := &http.Server{
		Addr:         address,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting websocket server", zap.String("address", address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down websocket server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Clients watch ctx and close themselves; Shutdown only covers
		// the listener and non-hijacked connections.
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("websocket server shutdown: %w", err)
		}

		s.logger.Info("websocket server stopped")
		return nil

	case err := <-serverErr:
		return fmt.Errorf("websocket server: %w", err)
	}
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":"graphmem","activeConnections":%d}`, s.active.Load())
}
