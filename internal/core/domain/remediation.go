package domain

import "time"

// Phase is one time-boxed slice of the remediation timeline.
type Phase struct {
	Number   int       `json:"phase"`
	Name     string    `json:"name"`
	Start    time.Time `json:"start_date"`
	End      time.Time `json:"end_date"`
	Actions  int       `json:"actions"`
	Priority string    `json:"priority"`
}

// Timeline is the ordered set of phases. Each phase starts where the
// previous one ends; phases with zero plans are omitted entirely.
type Timeline struct {
	Start      time.Time `json:"start_date"`
	Completion time.Time `json:"estimated_completion"`
	Phases     []Phase   `json:"phases"`
}

// ResourceDemand accumulates how often a resource is needed and for how long.
type ResourceDemand struct {
	Count      int     `json:"count"`
	TotalHours float64 `json:"total_hours"`
}

// ResourceAllocation sums resource demand across all plans.
type ResourceAllocation struct {
	Requirements map[string]ResourceDemand `json:"resource_requirements"`
	TeamSize     int                       `json:"estimated_team_size"`
}

// Milestone marks a checkpoint in the program.
type Milestone struct {
	Name       string     `json:"milestone"`
	TargetDate time.Time  `json:"target_date"`
	Criteria   string     `json:"criteria"`
	Status     StepStatus `json:"status"`
}

// ProgramMetrics are the aggregate numbers for the whole program.
type ProgramMetrics struct {
	TotalActions    int     `json:"total_actions"`
	TotalCost       float64 `json:"total_estimated_cost_usd"`
	TotalHours      float64 `json:"total_estimated_hours"`
	AvgCostPerPlan  float64 `json:"average_cost_per_action"`
	AvgHoursPerPlan float64 `json:"average_hours_per_action"`
}

// PlanRisk is a risk to the remediation program itself.
type PlanRisk struct {
	Name        string `json:"risk"`
	Description string `json:"description"`
	Mitigation  string `json:"mitigation"`
}

// Dependency expresses an ordering constraint between groups of plans.
type Dependency struct {
	Name            string `json:"dependency"`
	Description     string `json:"description"`
	AffectedActions int    `json:"affected_actions"`
}

// RemediationProgram is the root scheduling output: phased timeline,
// resourcing, milestones, metrics, and the program's own risk flags.
// Read-only once built.
type RemediationProgram struct {
	CreatedAt    time.Time          `json:"plan_created"`
	Timeline     Timeline           `json:"timeline"`
	Resources    ResourceAllocation `json:"resource_allocation"`
	Milestones   []Milestone        `json:"milestones"`
	Metrics      ProgramMetrics     `json:"metrics"`
	PlanRisks    []PlanRisk         `json:"risks"`
	Dependencies []Dependency       `json:"dependencies"`
}
