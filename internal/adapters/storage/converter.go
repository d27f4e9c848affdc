package storage

import (
	"encoding/json"
	"fmt"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// toModels converts a domain document into its persistence models.
func toModels(doc *domain.AssessmentDocument) (*AssessmentModel, []RiskModel, error) {
	blob, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("encode assessment: %w", err)
	}

	var meanCVSS float64
	if len(doc.Risks) > 0 {
		for _, r := range doc.Risks {
			meanCVSS += r.CVSS
		}
		meanCVSS /= float64(len(doc.Risks))
	}

	model := &AssessmentModel{
		ID:          doc.ID,
		Target:      doc.Target,
		GeneratedAt: doc.GeneratedAt,
		RiskCount:   len(doc.Risks),
		Treatable:   doc.Evaluation.Treatable,
		MeanCVSS:    meanCVSS,
		Document:    blob,
	}

	rows := make([]RiskModel, 0, len(doc.Risks))
	for _, r := range doc.Risks {
		rows = append(rows, RiskModel{
			ID:           r.ID,
			AssessmentID: doc.ID,
			Event:        r.Event,
			Source:       r.Source,
			Severity:     string(r.Vuln.Severity),
			CVSS:         r.CVSS,
			Level:        string(r.Level),
			Acceptable:   r.Acceptable,
			Priority:     r.TreatmentPriority,
			Score:        r.PriorityScore,
			Status:       string(r.Status),
		})
	}
	return model, rows, nil
}

// fromModel restores the full document from its stored blob.
func fromModel(model *AssessmentModel) (*domain.AssessmentDocument, error) {
	var doc domain.AssessmentDocument
	if err := json.Unmarshal(model.Document, &doc); err != nil {
		return nil, fmt.Errorf("decode assessment %s: %w", model.ID, err)
	}
	return &doc, nil
}
