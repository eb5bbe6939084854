// Package web provides the HTTP server and JSON API handlers.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phamqv/studyhub/internal/config"
	"github.com/phamqv/studyhub/internal/core"
	"github.com/phamqv/studyhub/internal/database"
	"github.com/phamqv/studyhub/internal/web/middleware"
)

// Server is the HTTP server for the schedule API.
type Server struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	queries  *database.Queries
	importer *core.Importer
	validate *validator.Validate
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new Server instance wired to the connection pool.
func NewServer(cfg *config.Config, pool *pgxpool.Pool) *Server {
	queries := database.New(pool)
	s := &Server{
		cfg:      cfg,
		pool:     pool,
		queries:  queries,
		importer: core.NewImporter(queries, core.WithPreviewRows(cfg.Upload.PreviewRows)),
		validate: validator.New(),
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Auth.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	// Security hardening
	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(middleware.JWTAuth(s.cfg.Auth.JWTSecret))

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/{semID}", s.handleListSchedules)
			r.Post("/", s.handleCreateSchedule)
			r.Put("/{scheduleID}", s.handleUpdateSchedule)
			r.Delete("/{scheduleID}", s.handleDeleteSchedule)
			r.Post("/import", s.handleImportSchedules)
		})

		r.Route("/year-semester", func(r chi.Router) {
			r.Get("/", s.handleListYears)
			r.Post("/years", s.handleCreateYear)
			r.Put("/years/{yearID}", s.handleRenameYear)
			r.Delete("/years/{yearID}", s.handleDeleteYear)
			r.Post("/semesters", s.handleCreateSemester)
			r.Put("/semesters/{semID}", s.handleRenameSemester)
			r.Delete("/semesters/{semID}", s.handleDeleteSemester)
			r.Post("/semesters/set-current", s.handleSetCurrentSemester)
		})

		r.Route("/campuses", func(r chi.Router) {
			r.Get("/", s.handleListCampuses)
			r.Post("/", s.handleGetOrCreateCampus)
			r.Delete("/{camID}", s.handleDeleteCampus)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/{semID}", s.handleListNotes)
			r.Post("/", s.handleCreateNote)
			r.Put("/{noteID}", s.handleUpdateNote)
			r.Delete("/{noteID}", s.handleDeleteNote)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.handleListTransactions)
			r.Post("/", s.handleCreateTransaction)
			r.Put("/{transID}", s.handleUpdateTransaction)
			r.Delete("/{transID}", s.handleDeleteTransaction)
		})
	})
}

// handleHealth reports liveness, including a pool ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.pool.Ping(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// rateLimiter implements a simple token bucket rate limiter per IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a rate limiter with the specified rate per window.
func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
	}
	// Start cleanup goroutine
	go rl.cleanup()
	return rl
}

// cleanup removes stale visitor entries every minute.
func (rl *rateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1, // consume one token
			lastReset: time.Now(),
		}
		return true
	}

	// Reset tokens if window has passed
	if time.Since(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = time.Now()
		return true
	}

	if v.tokens <= 0 {
		return false
	}

	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by IP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			ip = realIP
		}

		if !rl.allow(ip) {
			w.Header().Set("Retry-After", "60")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limit exceeded","code":"RATE001"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
