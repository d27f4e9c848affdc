package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
	"github.com/lcalzada-xor/riskmap/internal/core/ports"
)

// AssessRequest is the body of POST /api/assess.
type AssessRequest struct {
	Scan            domain.ScanResult      `json:"scan"`
	Vulnerabilities []domain.Vulnerability `json:"vulnerabilities"`
}

// AssessHandler runs assessments on demand.
type AssessHandler struct {
	Assessor ports.Assessor
}

// NewAssessHandler creates a new AssessHandler
func NewAssessHandler(assessor ports.Assessor) *AssessHandler {
	return &AssessHandler{Assessor: assessor}
}

// HandleAssess runs the full pipeline over the posted scan data.
func (h *AssessHandler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 10MB
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.Scan.Hosts) == 0 && len(req.Vulnerabilities) == 0 {
		http.Error(w, "Empty scan: no hosts or vulnerabilities", http.StatusBadRequest)
		return
	}

	doc, err := h.Assessor.Run(r.Context(), req.Scan, req.Vulnerabilities)
	if err != nil {
		log.Printf("Assessment failed: %v", err)
		http.Error(w, "Assessment failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}
