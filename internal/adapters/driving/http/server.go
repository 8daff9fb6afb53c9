package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	// Services
	authService   driving.AuthService
	sourceService driving.SourceService
	editorService driving.EditorService

	// Infrastructure checked by /ready, keyed by name
	deps map[string]Pinger
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	Version     string
	CORSOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        8080,
		Version:     "dev",
		CORSOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server. deps are pinged by /ready; nil
// entries are skipped.
func NewServer(
	cfg Config,
	logger *slog.Logger,
	authService driving.AuthService,
	sourceService driving.SourceService,
	editorService driving.EditorService,
	deps map[string]Pinger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:        http.NewServeMux(),
		version:       cfg.Version,
		logger:        logger,
		authService:   authService,
		sourceService: sourceService,
		editorService: editorService,
		deps:          deps,
	}

	s.setupRoutes()

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	var handler http.Handler = s.router
	handler = corsHandler(handler)
	handler = NewLoggingMiddleware(logger).Handler(handler)
	handler = NewRecoveryMiddleware(logger).Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	auth := NewAuthMiddleware(s.authService)
	authed := func(h http.HandlerFunc) http.Handler {
		return auth.Authenticate(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return auth.Authenticate(auth.RequireAdmin(h))
	}

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.Handle("GET /api/v1/me", authed(s.handleGetMe))

	// Source endpoints (admin-only for mutations)
	s.router.Handle("GET /api/v1/sources", authed(s.handleListSources))
	s.router.Handle("POST /api/v1/sources", admin(s.handleCreateSource))
	s.router.Handle("GET /api/v1/sources/backend-filter-templates", authed(s.handleFilterTemplates))
	s.router.Handle("GET /api/v1/sources/{id}", authed(s.handleGetSource))
	s.router.Handle("DELETE /api/v1/sources/{id}", admin(s.handleDeleteSource))
	s.router.Handle("GET /api/v1/sources/{id}/filters", authed(s.handleSourceFilters))
	s.router.Handle("GET /api/v1/filters/operators-catalog", authed(s.handleOperatorCatalog))

	// Editor endpoints (admin-only)
	s.router.Handle("POST /api/v1/editor/sessions", admin(s.handleOpenSession))
	s.router.Handle("GET /api/v1/editor/sessions/{id}", admin(s.handleGetSession))
	s.router.Handle("DELETE /api/v1/editor/sessions/{id}", admin(s.handleDiscardSession))
	s.router.Handle("POST /api/v1/editor/sessions/{id}/mode", admin(s.handleSwitchMode))
	s.router.Handle("PUT /api/v1/editor/sessions/{id}/text", admin(s.handleSetText))
	s.router.Handle("PATCH /api/v1/editor/sessions/{id}/fields", admin(s.handleSetFields))
	s.router.Handle("POST /api/v1/editor/sessions/{id}/lists/{list}/items", admin(s.handleAddItem))
	s.router.Handle("PATCH /api/v1/editor/sessions/{id}/lists/{list}/items/{item}", admin(s.handleUpdateItem))
	s.router.Handle("DELETE /api/v1/editor/sessions/{id}/lists/{list}/items/{item}", admin(s.handleRemoveItem))
	s.router.Handle("PUT /api/v1/editor/sessions/{id}/mapping", admin(s.handleSetMapping))
	s.router.Handle("DELETE /api/v1/editor/sessions/{id}/mapping", admin(s.handleRemoveMapping))
	s.router.Handle("PUT /api/v1/editor/sessions/{id}/headers", admin(s.handleSetHeader))
	s.router.Handle("DELETE /api/v1/editor/sessions/{id}/headers", admin(s.handleRemoveHeader))
	s.router.Handle("POST /api/v1/editor/sessions/{id}/submit", admin(s.handleSubmit))
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
