package mitigation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// Planner aggregates mitigation plans into a phased remediation program.
type Planner struct{}

func NewPlanner() *Planner {
	return &Planner{}
}

// phaseSpec defines the four urgency phases; empty ones are omitted.
var phaseSpecs = []struct {
	name     string
	priority string
	days     int
}{
	{"Critical Remediation", "CRITICAL", 1},
	{"High Priority Remediation", "HIGH", 3},
	{"Scheduled Remediation", "MEDIUM", 14},
	{"Routine Remediation", "LOW", 30},
}

// BuildProgram assembles the complete remediation program from the plan
// buckets. now anchors the first phase.
func (p *Planner) BuildProgram(buckets domain.ActionBuckets, now time.Time) domain.RemediationProgram {
	timeline := p.buildTimeline(buckets, now)

	return domain.RemediationProgram{
		CreatedAt:    now,
		Timeline:     timeline,
		Resources:    p.allocateResources(buckets),
		Milestones:   p.defineMilestones(timeline),
		Metrics:      p.calculateMetrics(buckets),
		PlanRisks:    p.identifyPlanRisks(buckets),
		Dependencies: p.identifyDependencies(buckets),
	}
}

// buildTimeline chains the non-empty phases back to back, starting at now.
func (p *Planner) buildTimeline(buckets domain.ActionBuckets, now time.Time) domain.Timeline {
	groups := [][]domain.MitigationPlan{buckets.Immediate, buckets.Urgent, buckets.Scheduled, buckets.Routine}

	timeline := domain.Timeline{Start: now, Completion: now}
	current := now

	for i, plans := range groups {
		if len(plans) == 0 {
			continue
		}
		end := current.Add(time.Duration(phaseSpecs[i].days) * 24 * time.Hour)
		timeline.Phases = append(timeline.Phases, domain.Phase{
			Number:   i + 1,
			Name:     phaseSpecs[i].name,
			Start:    current,
			End:      end,
			Actions:  len(plans),
			Priority: phaseSpecs[i].priority,
		})
		current = end
	}

	timeline.Completion = current
	return timeline
}

// allocateResources sums per-resource demand across all plans. Hours per
// plan come from the effort bucket midpoints, not the raw strategy hours,
// so allocation stays comparable across catalogs.
func (p *Planner) allocateResources(buckets domain.ActionBuckets) domain.ResourceAllocation {
	requirements := make(map[string]domain.ResourceDemand)
	var totalHours float64

	for _, plan := range buckets.All() {
		hours := bucketHours(plan.EstimatedEffort)
		for _, resource := range plan.Resources {
			demand := requirements[resource]
			demand.Count++
			demand.TotalHours += hours
			requirements[resource] = demand
			totalHours += hours
		}
	}

	return domain.ResourceAllocation{
		Requirements: requirements,
		TeamSize:     teamSize(totalHours),
	}
}

// teamSize assumes 80 available hours per person per sprint, plus a lead.
func teamSize(totalHours float64) int {
	size := int(math.Ceil(totalHours/80.0)) + 1
	if size < 1 {
		size = 1
	}
	if size > 10 {
		size = 10
	}
	return size
}

// defineMilestones emits one milestone per phase plus the final completion
// milestone at the end of the last phase.
func (p *Planner) defineMilestones(timeline domain.Timeline) []domain.Milestone {
	var milestones []domain.Milestone

	for _, phase := range timeline.Phases {
		milestones = append(milestones, domain.Milestone{
			Name:       fmt.Sprintf("Complete Phase %d", phase.Number),
			TargetDate: phase.End,
			Criteria:   fmt.Sprintf("All %d actions in %s completed", phase.Actions, phase.Name),
			Status:     domain.StepPending,
		})
	}

	milestones = append(milestones, domain.Milestone{
		Name:       "Complete Remediation",
		TargetDate: timeline.Completion,
		Criteria:   "All identified risks mitigated and validated",
		Status:     domain.StepPending,
	})
	return milestones
}

func (p *Planner) calculateMetrics(buckets domain.ActionBuckets) domain.ProgramMetrics {
	all := buckets.All()

	var totalCost, totalHours float64
	for _, plan := range all {
		totalCost += plan.Cost.Total
		totalHours += bucketHours(plan.EstimatedEffort)
	}

	n := math.Max(float64(len(all)), 1)
	return domain.ProgramMetrics{
		TotalActions:    len(all),
		TotalCost:       totalCost,
		TotalHours:      totalHours,
		AvgCostPerPlan:  totalCost / n,
		AvgHoursPerPlan: totalHours / n,
	}
}

// identifyPlanRisks flags risks to the program itself. The downtime risk is
// always present.
func (p *Planner) identifyPlanRisks(buckets domain.ActionBuckets) []domain.PlanRisk {
	var risks []domain.PlanRisk

	if len(buckets.Immediate) > 5 {
		risks = append(risks, domain.PlanRisk{
			Name:        "Resource Overload",
			Description: "High number of immediate actions may overwhelm team",
			Mitigation:  "Consider additional resources or prioritize further",
		})
	}

	if buckets.Total() > 20 {
		risks = append(risks, domain.PlanRisk{
			Name:        "Project Complexity",
			Description: "Large number of actions increases project complexity",
			Mitigation:  "Break into smaller sub-projects with dedicated leads",
		})
	}

	risks = append(risks, domain.PlanRisk{
		Name:        "System Downtime",
		Description: "Remediation may require system downtime",
		Mitigation:  "Schedule maintenance windows, plan for redundancy",
	})
	return risks
}

// identifyDependencies orders patching before reconfiguration when both
// appear among the immediate and urgent actions.
func (p *Planner) identifyDependencies(buckets domain.ActionBuckets) []domain.Dependency {
	var patching, config int

	urgent := append(append([]domain.MitigationPlan{}, buckets.Immediate...), buckets.Urgent...)
	for _, plan := range urgent {
		riskType := strings.ToLower(plan.RiskType)
		if strings.Contains(riskType, "patch") {
			patching++
		}
		if strings.Contains(riskType, "config") {
			config++
		}
	}

	if patching == 0 || config == 0 {
		return nil
	}
	return []domain.Dependency{{
		Name:            "Patching before Configuration",
		Description:     "Apply patches before reconfiguring services",
		AffectedActions: patching + config,
	}}
}

// bucketHours maps an effort bucket back to representative hours.
func bucketHours(effort string) float64 {
	switch {
	case strings.HasPrefix(effort, "Low"):
		return 2.0
	case strings.HasPrefix(effort, "Medium"):
		return 10.0
	case strings.HasPrefix(effort, "High"):
		return 20.0
	default:
		return 5.0
	}
}
