package domain

import "time"

// Evaluation is the risk evaluator's verdict over one run.
type Evaluation struct {
	Acceptable     []Risk            `json:"acceptable_risks"`
	Unacceptable   []Risk            `json:"unacceptable_risks"`
	AcceptanceRate float64           `json:"acceptance_rate"`
	Treatable      int               `json:"requires_treatment"`
	Summary        EvaluationSummary `json:"evaluation_summary"`
}

// EvaluationSummary is the high-level readout of an evaluation.
type EvaluationSummary struct {
	Total           int    `json:"total_risks_evaluated"`
	AcceptableCount int    `json:"acceptable_count"`
	TreatableCount  int    `json:"unacceptable_count"`
	ImmediateAction int    `json:"immediate_action_required"`
	Recommendation  string `json:"recommendation"`
}

// QuantStats is the quantitative analysis over the evaluated risk set.
type QuantStats struct {
	TotalExposure float64 `json:"total_risk_exposure"`
	Average       float64 `json:"average_risk"`
	Maximum       float64 `json:"maximum_risk"`
	Minimum       float64 `json:"minimum_risk"`
	StdDev        float64 `json:"standard_deviation"`
	Critical      int     `json:"critical"`
	High          int     `json:"high"`
	Medium        int     `json:"medium"`
	Low           int     `json:"low"`
}

// AssessmentDocument is the complete output of one pipeline run, handed to
// the report-generation collaborator as a single in-memory structure.
type AssessmentDocument struct {
	ID          string    `json:"assessment_id"`
	Target      string    `json:"target"`
	GeneratedAt time.Time `json:"generated_at"`
	GeneratedBy string    `json:"generated_by"`

	Context  AssessmentContext `json:"context"`
	Criteria RiskCriteria      `json:"risk_criteria"`

	Threats    []Threat   `json:"threats"`
	Anomalies  []Anomaly  `json:"anomalies"`
	Prediction Prediction `json:"prediction"`

	Risks      []Risk     `json:"risks"` // EVALUATED records, prioritized order
	Evaluation Evaluation `json:"evaluation"`
	Quant      QuantStats `json:"quantitative_analysis"`

	Plans   ActionBuckets      `json:"mitigation_plans"`
	Program RemediationProgram `json:"remediation_program"`
}
