package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	v1 "github.com/goodbooks/goodbooks-api/api/v1"
	"github.com/goodbooks/goodbooks-api/config"
	"github.com/goodbooks/goodbooks-api/http/response"
	"github.com/goodbooks/goodbooks-api/log"
	"github.com/goodbooks/goodbooks-api/middleware"
	"github.com/goodbooks/goodbooks-api/store"
	"github.com/goodbooks/goodbooks-api/version"
)

// StartServer starts the HTTP server.
func StartServer(ctx context.Context, store *store.Store) (*http.Server, error) {
	addr := config.Opts.Host
	port := config.Opts.Port
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", addr, port),
		Handler: setupHandler(store),
	}

	startHTTPServer(server)

	return server, nil
}

func startHTTPServer(server *http.Server) {
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
}

func setupHandler(store *store.Store) http.Handler {
	router := mux.NewRouter()

	m := middleware.NewMiddleware()
	router.Use(m.LoggingRequest)
	router.Use(m.HandleCORS)

	// Catalog routes
	v1.Server(router, store)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, r, map[string]string{
			"message": "GoodBooks API",
			"version": version.GetCurrentVersion(),
		})
	}).Name("root")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(); err != nil {
			response.ServiceUnavailable(w, r, errors.Wrap(err, "database connection failed"))
			return
		}
		response.OK(w, r, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	if config.Opts.MetricsCollector {
		router.Handle("/metrics", promhttp.Handler()).Name("metrics")
	}

	return router
}
