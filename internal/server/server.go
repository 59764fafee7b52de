// Package server provides the HTTP REST API for the valuation service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/chat"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/config"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/db"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/extraction"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/intake"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/llm"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/pdftext"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/records"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/server/middleware"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/server/ratelimit"
	"github.com/GowthamiKadiyala/startup-valuation-ai/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	llmClient   llm.Client
	normalizer  *intake.Normalizer
	extractor   *extraction.Adapter
	chatSvc     *chat.Service
	sessions    *session.Manager
	records     *records.Controller
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
}

// Config holds server configuration
type Config struct {
	Port               int
	DatabaseURL        string
	APIKey             string
	Pdftotext          string
	UseBrowser         bool
	Verbose            bool
	RateLimitPerMinute int
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(context.Background(), nil, cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	s := &Server{
		db:        database,
		llmClient: llmClient,
		extractor: extraction.NewAdapter(llmClient),
		chatSvc:   chat.NewService(llmClient),
		sessions:  session.NewManager(),
	}
	s.records = records.NewController(database, s.sessions)

	pdf := pdftext.NewExtractor(pdftext.Config{Pdftotext: cfg.Pdftotext})
	s.normalizer = intake.NewNormalizer(pdf, intake.Options{
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
	})

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig(cfg.RateLimitPerMinute))

	// Initialize authentication
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Deck analysis calls out to the model
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the router. Everything under /api/ requires a valid bearer
// token; /health is open.
func (s *Server) routes() http.Handler {
	authMw := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.Handle("POST /api/parse-deck", authMw(http.HandlerFunc(s.handleParseDeck)))
	mux.Handle("POST /api/chat", authMw(http.HandlerFunc(s.handleChat)))
	mux.Handle("GET /api/valuations", authMw(http.HandlerFunc(s.handleListValuations)))
	mux.Handle("POST /api/valuations", authMw(http.HandlerFunc(s.handleSaveValuation)))
	mux.Handle("DELETE /api/valuations/{id}", authMw(http.HandlerFunc(s.handleDeleteValuation)))

	return mux
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

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if err := s.llmClient.Close(); err != nil {
		log.Printf("Error closing model client: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
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

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
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

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
