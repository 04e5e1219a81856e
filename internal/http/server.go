// Package http exposes the JSON API: transactions, profile, month
// views, checkpoints, funds and backups.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"finanzas/internal/cache"
	"finanzas/internal/log"
	"finanzas/internal/services"
	"finanzas/internal/sheets"
)

// Config carries the server's tunables.
type Config struct {
	Addr          string
	RateLimit     int
	CacheSize     int
	CacheTTL      time.Duration
	CleanupPeriod time.Duration
}

type Server struct {
	http.Server

	tracker    *services.Tracker
	planReader sheets.PlanReader
	logger     *log.Logger

	rateLimiter  *rateLimiter
	viewCache    *cache.LRUCache[services.MonthView]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware. planReader may be nil when no
// spreadsheet is configured; the plan endpoint then answers 503.
func NewServer(cfg Config, tracker *services.Tracker, planReader sheets.PlanReader, logger *log.Logger) *Server {
	mux := http.NewServeMux()
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		tracker:     tracker,
		planReader:  planReader,
		logger:      logger,
		rateLimiter: newRateLimiter(cfg.RateLimit),
		viewCache:   cache.NewLRUCache[services.MonthView](cfg.CacheSize, cfg.CacheTTL),
	}

	s.cacheManager = cache.NewManager()
	s.cacheManager.Register(s.viewCache)
	s.cacheManager.StartCleanup(cfg.CleanupPeriod)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.wrap(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.wrap(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.wrap(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.wrap(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/profile", s.wrap(s.handleGetProfile))
	mux.HandleFunc("PUT /api/profile", s.wrap(s.handleSaveProfile))
	mux.HandleFunc("POST /api/profile/plan-import", s.wrap(s.handlePlanImport))

	mux.HandleFunc("GET /api/months/{month}", s.wrap(s.handleMonthView))
	mux.HandleFunc("GET /api/months/{month}/insights", s.wrap(s.handleInsights))

	mux.HandleFunc("POST /api/checkpoint", s.wrap(s.handleCheckpoint))
	mux.HandleFunc("POST /api/funds/{fund}/add", s.wrap(s.handleFundAdd))
	mux.HandleFunc("POST /api/funds/{fund}/set", s.wrap(s.handleFundSet))
	mux.HandleFunc("POST /api/distribute", s.wrap(s.handleDistribute))

	mux.HandleFunc("GET /api/export", s.wrap(s.handleExport))
	mux.HandleFunc("POST /api/import", s.wrap(s.handleImport))

	return s
}

// wrap applies the common middleware: request ID, context logger,
// security headers, rate limiting on mutations and request logging.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		logger := s.logger.With(log.FieldRequestID, requestID)
		ctx := context.WithValue(r.Context(), log.LoggerContextKey, logger)
		r = r.WithContext(ctx)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			logger.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")

		sl := log.NewStructuredLogger(logger)
		sl.LogHTTPStart(ctx, r, clientIP)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		sl.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// viewCacheKey includes the snapshot version so any mutation
// invalidates every cached month implicitly.
func (s *Server) viewCacheKey(year, month int) string {
	return s.tracker.UserID() + ":" +
		strconv.Itoa(year) + "-" + strconv.Itoa(month) + ":" +
		strconv.FormatUint(s.tracker.Version(), 10)
}

func (s *Server) monthView(year, month int, now time.Time) services.MonthView {
	key := s.viewCacheKey(year, month)
	if view, ok := s.viewCache.Get(key); ok {
		return view
	}
	view := s.tracker.MonthView(year, month, now)
	s.viewCache.Set(key, view)
	return view
}

// Shutdown stops the HTTP server and the background cleanup loops.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		s.cacheManager.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
