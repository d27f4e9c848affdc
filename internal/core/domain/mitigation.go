package domain

// StepStatus tracks one implementation step.
type StepStatus string

const (
	StepPending    StepStatus = "PENDING"
	StepInProgress StepStatus = "IN_PROGRESS"
	StepDone       StepStatus = "DONE"
)

// Strategy is one entry of the mitigation catalog: a named remediation
// approach with ordered steps and effort/cost data. Catalog entries are
// configuration, not code; they can be overridden from a YAML file.
type Strategy struct {
	Name        string   `json:"strategy" yaml:"strategy"`
	Description string   `json:"description" yaml:"description"`
	Steps       []string `json:"steps" yaml:"steps"`
	EffortHours float64  `json:"effort_hours" yaml:"effort_hours"`
	Resources   []string `json:"resources" yaml:"resources"`
	TimePerStep string   `json:"time_per_step" yaml:"time_per_step"`
	ToolCost    float64  `json:"tool_cost,omitempty" yaml:"tool_cost,omitempty"`
}

// ImplementationStep is one numbered, assignable action within a plan.
type ImplementationStep struct {
	Number        int        `json:"step_number"`
	Description   string     `json:"description"`
	Responsible   string     `json:"responsible"`
	EstimatedTime string     `json:"estimated_time"`
	Status        StepStatus `json:"status"`
}

// CostEstimate breaks a plan's cost into labor and tooling.
type CostEstimate struct {
	Labor   float64 `json:"labor_cost_usd"`
	Tooling float64 `json:"tool_cost_usd"`
	Total   float64 `json:"total_cost_usd"`
}

// MitigationPlan is the full treatment plan for one risk.
type MitigationPlan struct {
	RiskID           string               `json:"risk_id"`
	RiskType         string               `json:"risk_type"`
	Severity         RiskLevel            `json:"severity"`
	Strategies       []Strategy           `json:"strategies"`
	Steps            []ImplementationStep `json:"implementation_steps"`
	Timeframe        string               `json:"timeframe"`
	EstimatedEffort  string               `json:"estimated_effort"`
	EffortHours      float64              `json:"effort_hours"`
	Resources        []string             `json:"required_resources"`
	SuccessCriteria  []string             `json:"success_criteria"`
	ValidationMethod string               `json:"validation_method"`
	Cost             CostEstimate         `json:"cost_estimate"`
}

// ActionBuckets groups plans by urgency, keyed off the timeframe string.
type ActionBuckets struct {
	Immediate []MitigationPlan `json:"immediate_actions"`
	Urgent    []MitigationPlan `json:"urgent_actions"`
	Scheduled []MitigationPlan `json:"scheduled_actions"`
	Routine   []MitigationPlan `json:"routine_actions"`
}

// Total returns the number of plans across all buckets.
func (b ActionBuckets) Total() int {
	return len(b.Immediate) + len(b.Urgent) + len(b.Scheduled) + len(b.Routine)
}

// All returns the plans flattened in urgency order.
func (b ActionBuckets) All() []MitigationPlan {
	out := make([]MitigationPlan, 0, b.Total())
	out = append(out, b.Immediate...)
	out = append(out, b.Urgent...)
	out = append(out, b.Scheduled...)
	out = append(out, b.Routine...)
	return out
}
