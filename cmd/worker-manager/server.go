package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type readinessCheck struct {
	name  string
	check func(ctx context.Context) error
}

const readinessTimeout = 3 * time.Second

func newServer(addr string, checks []readinessCheck, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", readyHandler(checks, log))
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// readyHandler reports 503 with the failing dependencies when any check fails.
func readyHandler(checks []readinessCheck, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		failed := map[string]string{}
		for _, c := range checks {
			if err := c.check(ctx); err != nil {
				failed[c.name] = err.Error()
			}
		}

		if len(failed) > 0 {
			log.Warn("readiness check failed", zap.Any("dependencies", failed))
			writeStatus(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "not_ready",
				"failed": failed,
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
		writeStatus(w, http.StatusOK, map[string]interface{}{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func writeStatus(w http.ResponseWriter, code int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
