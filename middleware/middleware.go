package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goodbooks/goodbooks-api/http/request"
	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/metrics"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

func (m *Middleware) HandleCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "X-API-Key, Authorization, Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "7200")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoggingRequest tags every request with a client IP and a request id, logs
// it on completion and feeds the Prometheus counters.
func (m *Middleware) LoggingRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := request.FindClientIP(r)
		requestID := uuid.NewString()

		ctx := r.Context()
		ctx = context.WithValue(ctx, request.ClientIPContextKey, clientIP)
		ctx = context.WithValue(ctx, request.RequestIDContextKey, requestID)
		r = r.WithContext(ctx)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		t1 := time.Now()
		next.ServeHTTP(recorder, r)
		elapsed := time.Since(t1)

		route := routeTemplate(r)
		metrics.RequestsTotal.WithLabelValues(route, r.Method, fmt.Sprintf("%d", recorder.status)).Inc()
		metrics.RequestDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

		log.Info("Incoming request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("proto", r.Proto),
			zap.String("client_ip", clientIP),
			zap.Int("status", recorder.status),
			zap.Float64("latency_ms", float64(elapsed.Microseconds())/1000),
		)
	})
}

// routeTemplate returns the mux route pattern so metrics labels stay bounded.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}
