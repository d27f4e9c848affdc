package server

import (
	"context"
	"log"
	"net/http"

	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/riskmap/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/riskmap/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/riskmap/internal/core/ports"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr string

	ProgressHub       *websocket.ProgressHub
	AssessHandler     *handlers.AssessHandler
	AssessmentHandler *handlers.AssessmentHandler
	srv               *http.Server
}

// NewServer creates a new web server.
func NewServer(addr string, assessor ports.Assessor, store ports.AssessmentStore, hub *websocket.ProgressHub) *Server {
	if hub == nil {
		hub = websocket.NewProgressHub()
	}

	return &Server{
		Addr:              addr,
		ProgressHub:       hub,
		AssessHandler:     handlers.NewAssessHandler(assessor),
		AssessmentHandler: handlers.NewAssessmentHandler(store),
	}
}

// Run starts the server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler := SetupRoutes(s)

	// Instrument with OpenTelemetry
	instrumentedHandler := otelhttp.NewHandler(handler, "riskmap-server")

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           instrumentedHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown implementation
	go func() {
		<-ctx.Done()
		log.Println("Web Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web Server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// BroadcastLog sends a log message to all connected clients
func (s *Server) BroadcastLog(message string, level string) {
	s.ProgressHub.BroadcastLog(message, level)
}
