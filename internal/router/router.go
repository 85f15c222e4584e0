package router

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/andrasetya/realestate-rizz/internal/frame"
	"github.com/andrasetya/realestate-rizz/internal/house"
	"github.com/andrasetya/realestate-rizz/internal/image"
	"github.com/andrasetya/realestate-rizz/internal/leaderboard"
	"github.com/andrasetya/realestate-rizz/internal/metrics"
	"github.com/andrasetya/realestate-rizz/internal/vote"
	"github.com/andrasetya/realestate-rizz/pkg/utilities"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			// ensure status is set
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"request_id", w.Header().Get("X-Request-ID"),
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// RequestIDMiddleware tags each request with a KSUID on the X-Request-ID
// response header, preserving an incoming ID when the client sent one.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = utilities.NewKSUID()
			}
			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
// It is intentionally simple and conservative so it works with most setups.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Clickjacking protection
			w.Header().Set("X-Frame-Options", "DENY")

			// Referrer policy
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")

			next.ServeHTTP(w, r)
		})
	}
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	House       *house.Handler
	Vote        *vote.Handler
	Leaderboard *leaderboard.Handler
	Frame       *frame.Handler
	Image       *image.Handler
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
// This keeps routing stdlib-only while keeping wiring simple and testable.
func RegisterRoutes(logger *zap.SugaredLogger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// mini-app API
	mux.HandleFunc("POST /api/mini/house", h.House.GetOrCreate)
	mux.HandleFunc("GET /api/houses", h.House.List)
	mux.HandleFunc("POST /api/vote", h.Vote.Vote)
	mux.HandleFunc("GET /api/leaderboard", h.Leaderboard.Get)
	mux.HandleFunc("GET /api/house-image", h.Image.Get)

	// Farcaster frames
	mux.HandleFunc("POST /frame", h.Frame.Show)
	mux.HandleFunc("GET /frame", h.Frame.ShowInfo)
	mux.HandleFunc("POST /frame/vote", h.Frame.Vote)

	// observability
	mux.Handle("GET /metrics", metrics.Handler())

	// wrap with security headers middleware then request id and logging middleware
	handler := LoggingMiddleware(logger)(RequestIDMiddleware()(SecurityHeadersMiddleware()(mux)))
	return handler
}
