package middleware

import (
	"net/http"
	"time"

	"github.com/blaisecz/meal-cycle/internal/logger"
)

// Logger logs method, path, status and duration of each request.
// Server errors are logged at error level, client errors at warn.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sw, r)

		keyvals := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.statusCode,
			"duration", time.Since(start),
			"remote_addr", r.RemoteAddr,
		}
		switch {
		case sw.statusCode >= http.StatusInternalServerError:
			logger.Error("HTTP request", keyvals...)
		case sw.statusCode >= http.StatusBadRequest:
			logger.Warn("HTTP request", keyvals...)
		default:
			logger.Debug("HTTP request", keyvals...)
		}
	})
}

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.statusCode = code
	sw.ResponseWriter.WriteHeader(code)
}
