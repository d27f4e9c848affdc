package ports

import (
	"context"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// AssessmentSummary is the lightweight listing row for stored runs.
type AssessmentSummary struct {
	ID          string  `json:"assessment_id"`
	Target      string  `json:"target"`
	GeneratedAt string  `json:"generated_at"`
	RiskCount   int     `json:"risk_count"`
	MeanCVSS    float64 `json:"mean_cvss"`
}

// AssessmentStore persists completed assessment runs and serves the
// historical aggregate scores the exploitation predictor consumes.
type AssessmentStore interface {
	SaveAssessment(ctx context.Context, doc *domain.AssessmentDocument) error
	GetAssessment(ctx context.Context, id string) (*domain.AssessmentDocument, error)
	ListAssessments(ctx context.Context, limit int) ([]AssessmentSummary, error)

	// HistoricalMeanCVSS returns the mean CVSS across previously stored
	// runs, and false when no history exists.
	HistoricalMeanCVSS(ctx context.Context) (float64, bool, error)

	// Close closes the storage connection.
	Close() error
}
