package observability

import (
	"net/http"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs each request and feeds the request counters. Panics are
// logged with their stack and answered with 500.
func RequestLogger(logger *zap.Logger, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				if p := recover(); p != nil {
					logger.Error("panic recovered", zap.Any("panic", p), zap.ByteString("stack", debug.Stack()))
					rec.WriteHeader(http.StatusInternalServerError)
				}
				dur := time.Since(start)
				metrics.RecordRequest(r.URL.Path, r.Method, rec.status, dur)
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", rec.status),
					zap.Duration("duration", dur),
				)
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

// Timeout wraps next in http.TimeoutHandler when d is positive.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.TimeoutHandler(next, d, "request timed out")
	}
}
