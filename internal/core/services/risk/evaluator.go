package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// Response is the recommended treatment posture for one risk.
type Response string

const (
	ResponseTreatImmediately Response = "TREAT_IMMEDIATELY"
	ResponseTreatPriority    Response = "TREAT_PRIORITY"
	ResponseTreatScheduled   Response = "TREAT_SCHEDULED"
	ResponseAcceptMonitor    Response = "ACCEPT_WITH_MONITORING"
)

// Evaluator partitions evaluated risks against the appetite and orders them
// for treatment. Its acceptance decision is authoritative for downstream
// treatment selection, even though the lifecycle stamps the same rule on
// each risk during evaluation.
type Evaluator struct {
	appetite float64
}

// NewEvaluator builds an evaluator with the given risk appetite threshold;
// non-positive values fall back to the 5.0 default.
func NewEvaluator(appetite float64) *Evaluator {
	if appetite <= 0 {
		appetite = 5.0
	}
	return &Evaluator{appetite: appetite}
}

// EvaluateAgainstCriteria partitions risks into acceptable and unacceptable
// sets and computes the acceptance rate.
func (e *Evaluator) EvaluateAgainstCriteria(risks []domain.Risk) domain.Evaluation {
	ev := domain.Evaluation{}

	for _, r := range risks {
		if e.isAcceptable(r) {
			ev.Acceptable = append(ev.Acceptable, r)
		} else {
			ev.Unacceptable = append(ev.Unacceptable, r)
		}
	}

	ev.AcceptanceRate = float64(len(ev.Acceptable)) / math.Max(float64(len(risks)), 1)
	ev.Treatable = len(ev.Unacceptable)
	ev.Summary = e.summarize(risks, ev.Acceptable, ev.Unacceptable)
	return ev
}

// Prioritize assigns each risk a priority score and returns a new slice in
// descending score order. The sort is stable: ties keep input order, which
// decides who gets the first immediate-mitigation slots.
func (e *Evaluator) Prioritize(risks []domain.Risk) []domain.Risk {
	out := make([]domain.Risk, len(risks))
	copy(out, risks)

	for i := range out {
		out[i].PriorityScore = priorityScore(out[i])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}

// RecommendResponse maps a risk to its treatment posture.
func (e *Evaluator) RecommendResponse(r domain.Risk) Response {
	cvss := r.Vuln.EffectiveCVSS()
	switch {
	case r.Level == domain.RiskExtreme || cvss >= 9.0:
		return ResponseTreatImmediately
	case r.Level == domain.RiskHigh || cvss >= 7.0:
		return ResponseTreatPriority
	case r.Level == domain.RiskMedium:
		return ResponseTreatScheduled
	default:
		return ResponseAcceptMonitor
	}
}

// Quantitative computes the numeric exposure profile of the risk set.
func (e *Evaluator) Quantitative(risks []domain.Risk) domain.QuantStats {
	stats := domain.QuantStats{}
	if len(risks) == 0 {
		return stats
	}

	stats.Minimum = math.MaxFloat64
	for _, r := range risks {
		cvss := r.Vuln.EffectiveCVSS()
		stats.TotalExposure += cvss
		stats.Maximum = math.Max(stats.Maximum, cvss)
		stats.Minimum = math.Min(stats.Minimum, cvss)

		switch {
		case cvss >= 9.0:
			stats.Critical++
		case cvss >= 7.0:
			stats.High++
		case cvss >= 4.0:
			stats.Medium++
		default:
			stats.Low++
		}
	}

	n := float64(len(risks))
	stats.Average = stats.TotalExposure / n

	var variance float64
	for _, r := range risks {
		d := r.Vuln.EffectiveCVSS() - stats.Average
		variance += d * d
	}
	stats.StdDev = math.Sqrt(variance / n)

	stats.TotalExposure = round2(stats.TotalExposure)
	stats.Average = round2(stats.Average)
	stats.StdDev = round2(stats.StdDev)
	return stats
}

// isAcceptable is the acceptance gate: strictly below appetite and at most
// MEDIUM on the matrix. A score exactly at the appetite is not acceptable.
func (e *Evaluator) isAcceptable(r domain.Risk) bool {
	return r.Vuln.EffectiveCVSS() < e.appetite &&
		(r.Level == domain.RiskLow || r.Level == domain.RiskMedium)
}

// priorityScore = cvss + level weight + capped asset spread bonus.
func priorityScore(r domain.Risk) float64 {
	score := r.Vuln.EffectiveCVSS() +
		levelWeight(r.Level) +
		math.Min(float64(len(r.Assets))*0.1, 2.0)
	return round2(score)
}

func levelWeight(level domain.RiskLevel) float64 {
	switch level {
	case domain.RiskExtreme:
		return 5.0
	case domain.RiskHigh:
		return 3.0
	case domain.RiskMedium:
		return 1.5
	case domain.RiskLow:
		return 0.5
	default:
		return 0
	}
}

func (e *Evaluator) summarize(all, acceptable, unacceptable []domain.Risk) domain.EvaluationSummary {
	extreme := 0
	for _, r := range unacceptable {
		if r.Level == domain.RiskExtreme {
			extreme++
		}
	}

	return domain.EvaluationSummary{
		Total:           len(all),
		AcceptableCount: len(acceptable),
		TreatableCount:  len(unacceptable),
		ImmediateAction: extreme,
		Recommendation:  overallRecommendation(unacceptable, extreme),
	}
}

func overallRecommendation(unacceptable []domain.Risk, extreme int) string {
	switch {
	case len(unacceptable) == 0:
		return "Risk posture is acceptable. Continue monitoring."
	case extreme > 0:
		return fmt.Sprintf("URGENT: %d extreme risks require immediate treatment", extreme)
	case len(unacceptable) > 10:
		return "Multiple risks require treatment. Implement systematic remediation."
	default:
		return fmt.Sprintf("%d risks require treatment per schedule.", len(unacceptable))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
