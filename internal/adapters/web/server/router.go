package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()

	// Assessment pipeline
	r.HandleFunc("/api/assess", s.AssessHandler.HandleAssess).Methods(http.MethodPost)

	// Stored runs
	r.HandleFunc("/api/assessments", s.AssessmentHandler.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/api/assessments/{id}", s.AssessmentHandler.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/api/assessments/{id}/report.pdf", s.AssessmentHandler.HandleReport).Methods(http.MethodGet)

	// Progress stream
	r.HandleFunc("/api/events", s.ProgressHub.HandleWebSocket)

	// Health
	r.HandleFunc("/api/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	return r
}
