package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"userhub/internal/logging"
)

// requestLogger emits one access line per request. 5xx logs at error level,
// 4xx at warn, the rest at info.
func requestLogger(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			logAt(logger, status)("http_request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_ip", r.RemoteAddr,
			)
		})
	}
}

func logAt(logger logging.Logger, status int) func(msg string, args ...any) {
	switch {
	case status >= http.StatusInternalServerError:
		return logger.Error
	case status >= http.StatusBadRequest:
		return logger.Warn
	default:
		return logger.Info
	}
}
