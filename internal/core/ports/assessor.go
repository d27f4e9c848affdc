package ports

import (
	"context"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// Assessor runs one full assessment over a scan and its vulnerabilities.
type Assessor interface {
	Run(ctx context.Context, scan domain.ScanResult, vulns []domain.Vulnerability) (*domain.AssessmentDocument, error)
}
