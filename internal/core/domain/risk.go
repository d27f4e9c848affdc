package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RiskStatus tracks a risk through the lifecycle. The order is strict:
// IDENTIFIED -> ANALYZED -> EVALUATED, no skipping, no going backward.
type RiskStatus string

const (
	StatusIdentified RiskStatus = "IDENTIFIED"
	StatusAnalyzed   RiskStatus = "ANALYZED"
	StatusEvaluated  RiskStatus = "EVALUATED"
)

// ErrStageOrder is returned when a lifecycle stage is applied to a risk that
// has not passed through the preceding stage.
var ErrStageOrder = errors.New("risk lifecycle stage applied out of order")

// Likelihood is the five-level ordinal likelihood taxonomy.
type Likelihood string

const (
	LikelihoodVeryHigh Likelihood = "VERY_HIGH"
	LikelihoodHigh     Likelihood = "HIGH"
	LikelihoodMedium   Likelihood = "MEDIUM"
	LikelihoodLow      Likelihood = "LOW"
	LikelihoodVeryLow  Likelihood = "VERY_LOW"
)

// Consequence is the five-level ordinal consequence taxonomy.
type Consequence string

const (
	ConsequenceCatastrophic Consequence = "CATASTROPHIC"
	ConsequenceMajor        Consequence = "MAJOR"
	ConsequenceModerate     Consequence = "MODERATE"
	ConsequenceMinor        Consequence = "MINOR"
	ConsequenceNegligible   Consequence = "NEGLIGIBLE"
)

// RiskLevel is the overall classification from the risk matrix.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskExtreme RiskLevel = "EXTREME"
)

// Risk is the central entity of the pipeline. Fields accumulate across
// stages: identification fills the upper block, analysis the middle one,
// evaluation the bottom one. Earlier-stage fields are never cleared, so a
// fully evaluated risk still carries its complete audit trail.
type Risk struct {
	ID           string        `json:"risk_id"`
	IdentifiedAt time.Time     `json:"identification_date"`
	Source       string        `json:"source"` // originating service
	Event        string        `json:"event"`  // vulnerability type
	Cause        string        `json:"cause"`
	Consequence  string        `json:"consequence"`
	Assets       []string      `json:"affected_assets"` // host:port pairs
	Vuln         Vulnerability `json:"vulnerability_ref"`

	// Analysis stage
	Likelihood       Likelihood  `json:"likelihood,omitempty"`
	ConsequenceClass Consequence `json:"consequence_class,omitempty"`
	Level            RiskLevel   `json:"risk_level,omitempty"`
	CVSS             float64     `json:"cvss_score"`

	// Evaluation stage
	Acceptable        bool    `json:"is_acceptable"`
	TreatmentPriority int     `json:"treatment_priority,omitempty"`
	PriorityScore     float64 `json:"priority_score,omitempty"`

	Status RiskStatus `json:"status"`
}

// NewRiskID generates a unique identifier in the RISK-XXXXXXXX form.
func NewRiskID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "RISK-" + strings.ToUpper(hex[:8])
}

// LikelihoodCriterion documents one level of the likelihood taxonomy.
type LikelihoodCriterion struct {
	Probability string `json:"probability" yaml:"probability"`
	Description string `json:"description" yaml:"description"`
}

// ConsequenceCriterion documents one level of the consequence taxonomy.
type ConsequenceCriterion struct {
	Impact          string `json:"impact" yaml:"impact"`
	RecoveryTime    string `json:"recovery_time" yaml:"recovery_time"`
	FinancialImpact string `json:"financial_impact" yaml:"financial_impact"`
}

// RiskMatrix maps (likelihood, consequence) to an overall risk level.
type RiskMatrix map[Likelihood]map[Consequence]RiskLevel

// Level resolves a matrix cell. Unknown coordinates resolve to MEDIUM, the
// same silent default the evaluation criteria apply elsewhere.
func (m RiskMatrix) Level(l Likelihood, c Consequence) RiskLevel {
	if row, ok := m[l]; ok {
		if lvl, ok := row[c]; ok {
			return lvl
		}
	}
	return RiskMedium
}

// RiskCriteria is the immutable per-run criteria snapshot: appetite
// threshold, both taxonomies and the 5x5 matrix. Built once by the lifecycle
// engine, safe to share across parallel workers.
type RiskCriteria struct {
	AppetiteThreshold float64                              `json:"risk_appetite_threshold"`
	Tolerance         float64                              `json:"risk_tolerance"`
	Likelihoods       map[Likelihood]LikelihoodCriterion   `json:"likelihood_criteria"`
	Consequences      map[Consequence]ConsequenceCriterion `json:"consequence_criteria"`
	Matrix            RiskMatrix                           `json:"risk_matrix"`
}

// AssessmentContext captures the organizational context established before
// criteria are defined. Purely descriptive, carried into the final document.
type AssessmentContext struct {
	Scope             string   `json:"scope"`
	Objectives        []string `json:"objectives"`
	IndustryStandards []string `json:"industry_standards"`
}
