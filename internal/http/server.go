// Package http is the rendering-facing adapter: it translates HTTP requests
// into calls on the core services and serves their snapshots back as JSON.
// No domain logic lives here.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"cassa/internal/log"
	"cassa/internal/services"
)

type Server struct {
	http.Server
	logger *log.Logger

	catalog  *services.Catalog
	sales    *services.Sales
	dayClose *services.DayClose
	stats    *services.Stats

	rateLimiter *rateLimiter

	// Stats rollups are pure over history, so responses are cached until a
	// mutation touches the history record.
	statsCache *ttlCache[services.WindowStats]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, catalog *services.Catalog, sales *services.Sales, dayClose *services.DayClose, stats *services.Stats, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		logger:      logger.WithComponent(log.ComponentHTTP),
		catalog:     catalog,
		sales:       sales,
		dayClose:    dayClose,
		stats:       stats,
		rateLimiter: newRateLimiter(),
		statsCache:  newTTLCache[services.WindowStats](32, 5*time.Minute),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/products", s.withMiddleware(s.handleListProducts))
	mux.HandleFunc("POST /api/products", s.withMiddleware(s.handleAddProduct))
	mux.HandleFunc("PUT /api/products/{index}", s.withMiddleware(s.handleUpdateProduct))
	mux.HandleFunc("DELETE /api/products/{index}", s.withMiddleware(s.handleDeleteProduct))
	mux.HandleFunc("GET /api/products/export", s.withMiddleware(s.handleExportCatalog))
	mux.HandleFunc("POST /api/products/import", s.withMiddleware(s.handleImportCatalog))

	mux.HandleFunc("GET /api/sales", s.withMiddleware(s.handleTally))
	mux.HandleFunc("POST /api/sales/{name}", s.withMiddleware(s.handleRecordSale))
	mux.HandleFunc("DELETE /api/sales/{name}", s.withMiddleware(s.handleUndoSale))

	mux.HandleFunc("POST /api/day/close", s.withMiddleware(s.handleCloseDay))
	mux.HandleFunc("GET /api/history", s.withMiddleware(s.handleHistory))
	mux.HandleFunc("GET /api/history/recent", s.withMiddleware(s.handleRecentHistory))
	mux.HandleFunc("GET /api/history/chart", s.withMiddleware(s.handleHistoryChart))
	mux.HandleFunc("DELETE /api/history", s.withMiddleware(s.handleClearHistory))
	mux.HandleFunc("DELETE /api/data", s.withMiddleware(s.handleResetAll))

	mux.HandleFunc("GET /api/stats", s.withMiddleware(s.handleStats))
	mux.HandleFunc("GET /api/export", s.withMiddleware(s.handleExportHistory))

	return s
}

// withMiddleware adds security headers, request IDs, rate limiting on
// mutations, and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			s.logger.Warn("Rate limit exceeded",
				log.FieldRequestID, requestID,
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.Info("Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatus, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

// Shutdown stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// invalidateStats drops cached rollups after a history mutation.
func (s *Server) invalidateStats() {
	s.statsCache.Clear()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
