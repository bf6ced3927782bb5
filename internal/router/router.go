package router

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/openboard/service-jobboard-go/internal/auth"
	"github.com/openboard/service-jobboard-go/internal/company"
	"github.com/openboard/service-jobboard-go/internal/job"
	"github.com/openboard/service-jobboard-go/internal/user"
	"github.com/openboard/service-jobboard-go/pkg/utilities"
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
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
				"request_id", w.Header().Get("X-Request-Id"),
			)
		})
	}
}

// RequestIDMiddleware tags every response with a KSUID so log lines for a
// request can be correlated.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Request-Id", utilities.NewRequestID())
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

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
// This keeps the project stdlib-only on the routing side while keeping
// wiring simple and testable.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, tokens *auth.TokenService) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /jobboard-api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// auth routes
	userHandler := user.NewHandler(db, tokens, logger)
	mux.HandleFunc("POST /auth/token", userHandler.Login)
	mux.HandleFunc("POST /auth/register", userHandler.Register)

	// user routes
	mux.HandleFunc("GET /users/{username}", userHandler.Get)
	mux.HandleFunc("PATCH /users/{username}", userHandler.Update)
	mux.HandleFunc("DELETE /users/{username}", userHandler.Delete)

	// job routes
	jobHandler := job.NewHandler(db, logger)
	mux.HandleFunc("GET /jobs", jobHandler.List)
	mux.HandleFunc("POST /jobs", jobHandler.Create)
	mux.HandleFunc("GET /jobs/{id}", jobHandler.Get)
	mux.HandleFunc("PATCH /jobs/{id}", jobHandler.Update)
	mux.HandleFunc("DELETE /jobs/{id}", jobHandler.Delete)

	// company routes
	companyHandler := company.NewHandler(db, logger)
	mux.HandleFunc("GET /companies", companyHandler.List)
	mux.HandleFunc("POST /companies", companyHandler.Create)
	mux.HandleFunc("GET /companies/{handle}", companyHandler.Get)
	mux.HandleFunc("PATCH /companies/{handle}", companyHandler.Update)
	mux.HandleFunc("DELETE /companies/{handle}", companyHandler.Delete)

	// outermost first: request id, then logging, security headers, token auth
	handler := auth.Authenticate(tokens)(mux)
	handler = SecurityHeadersMiddleware()(handler)
	handler = LoggingMiddleware(logger)(handler)
	handler = RequestIDMiddleware()(handler)
	return handler
}
