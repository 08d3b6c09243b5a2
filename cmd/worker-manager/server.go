package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talent-match-workers/internal/common/database"
	"talent-match-workers/internal/common/logger"
)

const readinessTimeout = 2 * time.Second

// newHTTPServer serves liveness, readiness and prometheus metrics. Readiness
// pings every dependency and reports 503 if any is down.
func newHTTPServer(addr string, deps map[string]database.Pinger, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}, log)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		results := database.CheckAll(r.Context(), deps, readinessTimeout)
		status, code := "ready", http.StatusOK
		if !database.AllHealthy(results) {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]interface{}{
			"status":       status,
			"dependencies": results,
			"time":         time.Now().Format(time.RFC3339),
		}, log)
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeJSON(w http.ResponseWriter, code int, body interface{}, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn("failed to write response", map[string]interface{}{"error": err.Error()})
	}
}
