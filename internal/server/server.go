// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/cv-builder/internal/analytics"
	"github.com/jonathan/cv-builder/internal/assistant"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/identity"
	"github.com/jonathan/cv-builder/internal/server/middleware"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/theme"
)

// maxBodyBytes bounds JSON request bodies. Documents may embed a profile
// image as a data URL.
const maxBodyBytes = 8 << 20

// Exporter prints rendered HTML to binary formats.
type Exporter interface {
	PDF(ctx context.Context, html string) ([]byte, error)
	PNG(ctx context.Context, html string) ([]byte, error)
}

// Deps are the collaborators a Server is built from.
type Deps struct {
	Store     storage.Store
	Auth      *identity.Service
	Settings  theme.Store
	Exporter  Exporter
	Assistant assistant.Generator
	Analyzer  *analytics.Analyzer
	Limiter   *ratelimit.Limiter
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         *config.AppConfig
	store       storage.Store
	auth        *identity.Service
	settings    theme.Store
	exporter    Exporter
	assistant   assistant.Generator
	analyzer    *analytics.Analyzer
	rateLimiter *ratelimit.Limiter
	closers     []func() error
}

// New creates a server with collaborators chosen from cfg. Without a
// database URL it runs in local mode: a JSON file store and the demo
// identity provider.
func New(ctx context.Context, cfg *config.AppConfig) (*Server, error) {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	closers := []func() error{store.Close}
	abort := func(err error) (*Server, error) {
		for _, c := range closers {
			_ = c()
		}
		return nil, err
	}

	auth, err := newIdentity(cfg, store)
	if err != nil {
		return abort(err)
	}

	settings, err := theme.NewFileStore(cfg.DataDir)
	if err != nil {
		return abort(fmt.Errorf("failed to open settings store: %w", err))
	}

	gen, closeGen, err := assistant.New(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return abort(fmt.Errorf("failed to create assistant: %w", err))
	}
	closers = append(closers, closeGen)

	if _, ok := export.FindChrome(cfg.ChromePath); !ok {
		log.Printf("[server] no Chrome binary found, PDF and PNG export will fail")
	}

	s := NewWithDeps(cfg, Deps{
		Store:     store,
		Auth:      auth,
		Settings:  settings,
		Exporter:  export.New(cfg.ChromePath, cfg.PDFQuality),
		Assistant: gen,
		Analyzer:  analytics.NewAnalyzer(nil),
		Limiter:   ratelimit.NewLimiter(ratelimit.LoadConfig()),
	})
	s.closers = closers
	return s, nil
}

func newIdentity(cfg *config.AppConfig, store storage.Store) (*identity.Service, error) {
	if cfg.LocalMode() {
		jwtConfig, err := config.NewLocalJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		return identity.NewService(identity.DemoProvider{}, identity.NewTokenService(jwtConfig)), nil
	}

	users, ok := store.(*storage.PostgresStore)
	if !ok {
		return nil, errors.New("password sign-in requires the PostgreSQL store")
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	provider := identity.NewPasswordProvider(users, passwordConfig)
	return identity.NewService(provider, identity.NewTokenService(jwtConfig)), nil
}

// NewWithDeps creates a server from explicit collaborators.
func NewWithDeps(cfg *config.AppConfig, deps Deps) *Server {
	if deps.Analyzer == nil {
		deps.Analyzer = analytics.NewAnalyzer(nil)
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}

	s := &Server{
		cfg:         cfg,
		store:       deps.Store,
		auth:        deps.Auth,
		settings:    deps.Settings,
		exporter:    deps.Exporter,
		assistant:   deps.Assistant,
		analyzer:    deps.Analyzer,
		rateLimiter: deps.Limiter,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * export.DefaultTimeout, // export runs a browser
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	requireAuth := middleware.AuthMiddleware(&tokenValidator{auth: s.auth})
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Document endpoints
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /validate", s.handleValidate)
	mux.HandleFunc("GET /templates", s.handleTemplates)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /export/{format}", s.handleExport)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/signin", s.handleSignIn)
	mux.Handle("POST /auth/signout", protected(s.handleSignOut))

	// Saved resumes
	mux.Handle("GET /resumes", protected(s.handleListResumes))
	mux.Handle("POST /resumes", protected(s.handleSaveResume))
	mux.Handle("GET /resumes/{id}", protected(s.handleGetResume))
	mux.Handle("DELETE /resumes/{id}", protected(s.handleDeleteResume))

	// Assistant and uploads
	mux.HandleFunc("POST /assistant/{section}", s.handleAssist)
	mux.HandleFunc("POST /images", s.handleUploadImage)

	// Theme settings
	mux.Handle("GET /settings", protected(s.handleGetSettings))
	mux.Handle("PUT /settings", protected(s.handlePutSettings))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.Close(); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}

// Close stops the rate limiter and releases collaborators.
func (s *Server) Close() error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// tokenValidator adapts identity.Service to the auth middleware.
type tokenValidator struct {
	auth *identity.Service
}

func (v *tokenValidator) ValidateToken(tokenString string) (middleware.UserIDGetter, error) {
	if v.auth == nil {
		return nil, errors.New("authentication is not configured")
	}
	claims, err := v.auth.Authenticate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// extractClientID uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail logs err and writes it with the status HTTPStatus picks.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] %s %s failed: %v", r.Method, r.URL.Path, err)
		if status == http.StatusInternalServerError {
			s.errorResponse(w, status, "internal server error")
			return
		}
	}
	s.errorResponse(w, status, err.Error())
}
