package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/lcalzada-xor/riskmap/internal/adapters/reporting"
	"github.com/lcalzada-xor/riskmap/internal/core/ports"
)

// AssessmentHandler serves stored assessment runs.
type AssessmentHandler struct {
	Store       ports.AssessmentStore
	PDFExporter *reporting.PDFExporter
}

// NewAssessmentHandler creates a new AssessmentHandler
func NewAssessmentHandler(store ports.AssessmentStore) *AssessmentHandler {
	return &AssessmentHandler{
		Store:       store,
		PDFExporter: reporting.NewPDFExporter(),
	}
}

// HandleList returns summaries of stored runs, newest first.
func (h *AssessmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	summaries, err := h.Store.ListAssessments(r.Context(), limit)
	if err != nil {
		log.Printf("List assessments failed: %v", err)
		http.Error(w, "Failed to list assessments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"assessments": summaries,
		"count":       len(summaries),
	})
}

// HandleGet returns one full assessment document.
func (h *AssessmentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.Store.GetAssessment(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Assessment not found", http.StatusNotFound)
			return
		}
		log.Printf("Get assessment failed: %v", err)
		http.Error(w, "Failed to load assessment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// HandleReport renders a stored assessment as a PDF download.
func (h *AssessmentHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.Store.GetAssessment(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Assessment not found", http.StatusNotFound)
			return
		}
		log.Printf("Get assessment failed: %v", err)
		http.Error(w, "Failed to load assessment", http.StatusInternalServerError)
		return
	}

	data, err := h.PDFExporter.ExportAssessment(doc)
	if err != nil {
		log.Printf("PDF export failed: %v", err)
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", id))
	w.Write(data)
}
