// Package http exposes the budget REST API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"

	"budget/internal/cache"
	"budget/internal/core"
	"budget/internal/middleware/ratelimit"
	"budget/internal/middleware/security"
	"budget/internal/middleware/trace"
	"budget/internal/services"
	"budget/internal/storage"
)

// BudgetAPI is the service surface the handlers call.
// *services.BudgetService satisfies it.
type BudgetAPI interface {
	RegisterUser(ctx context.Context, email, name string) (core.User, error)
	GetUser(ctx context.Context, id string) (core.User, error)

	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
	CreateCategory(ctx context.Context, userID string, in services.CategoryInput) (core.Category, error)
	UpdateCategory(ctx context.Context, userID, id string, in services.CategoryInput) (core.Category, error)
	DeleteCategory(ctx context.Context, userID, id string) error

	CreateTransaction(ctx context.Context, userID string, c core.TransactionCandidate) (services.AdmissionResult, error)
	UpdateTransaction(ctx context.Context, userID, id string, c core.TransactionCandidate) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	TransactionsForPeriod(ctx context.Context, userID string, p core.Period) ([]storage.TransactionRow, error)

	Summary(ctx context.Context, userID string, p core.Period) (core.BudgetSummary, error)
	GetSettings(ctx context.Context, userID string, p core.Period) (core.BudgetSettings, error)
	UpdateSettings(ctx context.Context, userID string, p core.Period, in core.SettingsInput) (services.SettingsResult, error)
}

// Options tunes the HTTP layer.
type Options struct {
	CORSOrigins       []string
	RequestsPerMinute int
}

type Server struct {
	http.Server
	api BudgetAPI

	rateLimiter *ratelimit.Limiter

	// Category lists are cheap to cache per user and easy to invalidate
	// on writes. Summaries are never cached: reads must always reflect
	// the latest store state.
	categoriesCache *cache.LRUCache[[]core.Category]
	cacheManager    *cache.Manager

	shutdownOnce sync.Once
}

func NewServer(addr string, api BudgetAPI, opts Options) *Server {
	s := &Server{
		api: api,
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RequestsPerMinute,
		}),
		categoriesCache: cache.NewLRUCache[[]core.Category](500, 5*time.Minute),
		cacheManager:    cache.NewManager(),
	}
	s.cacheManager.Register(s.categoriesCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleHealth)
	mux.HandleFunc("POST /api/users", s.handleRegisterUser)

	mux.HandleFunc("GET /api/categories", s.withUser(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withUser(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.withUser(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.withUser(s.handleDeleteCategory))

	mux.HandleFunc("POST /api/transactions", s.withUser(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions/{month}/{year}", s.withUser(s.handleListTransactions))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withUser(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withUser(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/summary/{month}/{year}", s.withUser(s.handleSummary))
	mux.HandleFunc("GET /api/settings/{month}/{year}", s.withUser(s.handleGetSettings))
	mux.HandleFunc("PUT /api/settings/{month}/{year}", s.withUser(s.handleUpdateSettings))

	corsware := cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	})
	headers := security.NewHeadersMiddleware(apiHeadersConfig())
	detector := security.NewDetector()
	tracer := trace.NewMiddleware(extractClientIP)

	var handler http.Handler = mux
	handler = s.rateLimitMiddleware(handler)
	handler = corsware.Handler(handler)
	handler = detector.Middleware(handler)
	handler = headers.Middleware(handler)
	handler = tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// apiHeadersConfig trims the defaults down to what a JSON API serves.
func apiHeadersConfig() security.HeadersConfig {
	cfg := security.DefaultHeadersConfig()
	cfg.CSP = "default-src 'none'; frame-ancestors 'none'"
	return cfg
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(extractClientIP(r)) {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) invalidateCategories(userID string) {
	s.categoriesCache.Delete(userID)
}

// Shutdown stops the HTTP server and the background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
