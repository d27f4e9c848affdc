package mitigation

import (
	"sort"
	"strings"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
	"github.com/lcalzada-xor/riskmap/internal/core/ports"
)

// hourlyRate is the fixed labor rate used for cost estimates (USD/hour).
const defaultHourlyRate = 150.0

// Engine expands treated risks into concrete mitigation plans.
type Engine struct {
	catalog    ports.StrategyCatalog
	hourlyRate float64
}

// NewEngine builds a mitigation engine over the given catalog; nil selects
// the built-in one. A non-positive rate falls back to the default.
func NewEngine(catalog ports.StrategyCatalog, hourlyRate float64) *Engine {
	if catalog == nil {
		catalog = NewCatalog()
	}
	if hourlyRate <= 0 {
		hourlyRate = defaultHourlyRate
	}
	return &Engine{catalog: catalog, hourlyRate: hourlyRate}
}

// GeneratePlans creates one plan per risk and groups them into urgency
// buckets keyed off the computed timeframe. Input order is preserved within
// each bucket, so prioritized risks claim the earliest slots.
func (e *Engine) GeneratePlans(risks []domain.Risk) domain.ActionBuckets {
	var buckets domain.ActionBuckets

	for _, r := range risks {
		plan := e.CreatePlan(r)
		switch {
		case strings.Contains(plan.Timeframe, "Immediate"):
			buckets.Immediate = append(buckets.Immediate, plan)
		case strings.Contains(plan.Timeframe, "Urgent"):
			buckets.Urgent = append(buckets.Urgent, plan)
		case strings.Contains(plan.Timeframe, "Scheduled"):
			buckets.Scheduled = append(buckets.Scheduled, plan)
		default:
			buckets.Routine = append(buckets.Routine, plan)
		}
	}

	return buckets
}

// CreatePlan builds the full treatment plan for one risk. Never returns an
// empty plan: the catalog's General entry backs every unmatched category.
func (e *Engine) CreatePlan(r domain.Risk) domain.MitigationPlan {
	strategies := e.strategiesFor(r)

	var effortHours float64
	for _, s := range strategies {
		effortHours += s.EffortHours
	}

	return domain.MitigationPlan{
		RiskID:           r.ID,
		RiskType:         r.Event,
		Severity:         r.Level,
		Strategies:       strategies,
		Steps:            implementationSteps(strategies),
		Timeframe:        timeframe(r.Level),
		EstimatedEffort:  effortBucket(effortHours),
		EffortHours:      effortHours,
		Resources:        requiredResources(strategies),
		SuccessCriteria:  successCriteria(),
		ValidationMethod: "Re-scan with assessment pipeline + manual verification + penetration testing",
		Cost:             e.estimateCost(strategies, effortHours),
	}
}

// strategiesFor resolves the catalog chain: risk event, then vulnerability
// type, then the General fallback.
func (e *Engine) strategiesFor(r domain.Risk) []domain.Strategy {
	var strategies []domain.Strategy

	if s, ok := e.catalog.Lookup(r.Event); ok {
		strategies = append(strategies, s...)
	}
	if r.Vuln.Type != r.Event {
		if s, ok := e.catalog.Lookup(r.Vuln.Type); ok {
			strategies = append(strategies, s...)
		}
	}
	if len(strategies) == 0 {
		strategies = e.catalog.GeneralEntry()
	}
	return strategies
}

// implementationSteps flattens strategy steps into one sequentially numbered
// list, each starting PENDING.
func implementationSteps(strategies []domain.Strategy) []domain.ImplementationStep {
	var steps []domain.ImplementationStep
	n := 1

	for _, s := range strategies {
		estimate := s.TimePerStep
		if estimate == "" {
			estimate = "1 hour"
		}
		for _, desc := range s.Steps {
			steps = append(steps, domain.ImplementationStep{
				Number:        n,
				Description:   desc,
				Responsible:   "Security Team",
				EstimatedTime: estimate,
				Status:        domain.StepPending,
			})
			n++
		}
	}
	return steps
}

func timeframe(level domain.RiskLevel) string {
	switch level {
	case domain.RiskExtreme:
		return "Immediate (within 24 hours)"
	case domain.RiskHigh:
		return "Urgent (within 72 hours)"
	case domain.RiskMedium:
		return "Scheduled (within 2 weeks)"
	case domain.RiskLow:
		return "Routine (within 30 days)"
	default:
		return "As resources permit"
	}
}

func effortBucket(hours float64) string {
	switch {
	case hours < 4:
		return "Low (< 4 hours)"
	case hours < 16:
		return "Medium (4-16 hours)"
	default:
		return "High (> 16 hours)"
	}
}

func requiredResources(strategies []domain.Strategy) []string {
	seen := make(map[string]bool)
	var resources []string
	for _, s := range strategies {
		for _, r := range s.Resources {
			if !seen[r] {
				seen[r] = true
				resources = append(resources, r)
			}
		}
	}
	sort.Strings(resources)
	return resources
}

func successCriteria() []string {
	return []string{
		"Vulnerability no longer detected in subsequent scans",
		"Risk score reduced to acceptable level",
		"No security incidents related to this risk",
		"Compliance requirements met",
		"System functionality maintained",
	}
}

func (e *Engine) estimateCost(strategies []domain.Strategy, effortHours float64) domain.CostEstimate {
	var tooling float64
	for _, s := range strategies {
		tooling += s.ToolCost
	}
	labor := effortHours * e.hourlyRate
	return domain.CostEstimate{
		Labor:   labor,
		Tooling: tooling,
		Total:   labor + tooling,
	}
}
