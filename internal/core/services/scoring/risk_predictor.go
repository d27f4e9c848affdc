package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// emergingThreshold: number of same-event risks before a cluster is flagged.
const emergingThreshold = 3

// RiskPredictor derives exploitation forecasts, emerging-threat clusters and
// the aggregate risk trend from an identified risk set.
type RiskPredictor struct{}

func NewRiskPredictor() *RiskPredictor {
	return &RiskPredictor{}
}

// Predict runs all forecast heuristics over the risk set. historicalMean is
// the mean CVSS of prior runs; hasHistory false yields an UNKNOWN trend.
func (p *RiskPredictor) Predict(risks []domain.Risk, historicalMean float64, hasHistory bool) domain.Prediction {
	current := meanCVSS(risks)

	pred := domain.Prediction{
		GeneratedAt:     time.Now().UTC(),
		Trend:           classifyTrend(current, historicalMean, hasHistory),
		CurrentScore:    current,
		EmergingThreats: p.emergingThreats(risks),
		OverallRisk:     overallRisk(risks),
	}

	for _, r := range risks {
		forecast := exploitForecast(r)
		switch forecast.Likelihood {
		case domain.ExploitHigh:
			pred.HighLikelihood = append(pred.HighLikelihood, forecast)
		case domain.ExploitMedium:
			pred.MedLikelihood = append(pred.MedLikelihood, forecast)
		default:
			pred.LowLikelihood = append(pred.LowLikelihood, forecast)
		}
	}

	pred.Recommendations = p.recommendations(risks, pred.Trend)
	return pred
}

// exploitForecast buckets a single risk by severity and CVSS.
func exploitForecast(r domain.Risk) domain.ExploitForecast {
	sev := domain.NormalizeSeverity(r.Vuln.Severity)
	cvss := r.Vuln.EffectiveCVSS()

	switch {
	case sev == domain.SeverityCritical || cvss >= 9.0:
		return domain.ExploitForecast{RiskEvent: r.Event, Likelihood: domain.ExploitHigh, TimeWindow: "24-48 hours"}
	case sev == domain.SeverityHigh || cvss >= 7.0:
		return domain.ExploitForecast{RiskEvent: r.Event, Likelihood: domain.ExploitMedium, TimeWindow: "1-7 days"}
	default:
		return domain.ExploitForecast{RiskEvent: r.Event, Likelihood: domain.ExploitLow, TimeWindow: "30+ days"}
	}
}

func (p *RiskPredictor) emergingThreats(risks []domain.Risk) []domain.EmergingThreat {
	counts := make(map[string]int)
	for _, r := range risks {
		counts[r.Event]++
	}

	types := make([]string, 0, len(counts))
	for t, n := range counts {
		if n >= emergingThreshold {
			types = append(types, t)
		}
	}
	sort.Strings(types)

	var emerging []domain.EmergingThreat
	for _, t := range types {
		emerging = append(emerging, domain.EmergingThreat{
			ThreatType:  t,
			Occurrences: counts[t],
			Severity:    domain.ThreatHigh,
			Description: fmt.Sprintf("Multiple instances of %s detected across network", t),
		})
	}
	return emerging
}

func classifyTrend(current, historical float64, hasHistory bool) domain.RiskTrend {
	if !hasHistory {
		return domain.TrendUnknown
	}
	switch {
	case current > historical*1.2:
		return domain.TrendIncreasing
	case current < historical*0.8:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func meanCVSS(risks []domain.Risk) float64 {
	if len(risks) == 0 {
		return 0
	}
	var total float64
	for _, r := range risks {
		total += r.Vuln.EffectiveCVSS()
	}
	return total / float64(len(risks))
}

func overallRisk(risks []domain.Risk) domain.ThreatLevel {
	if len(risks) == 0 {
		return domain.ThreatLow
	}

	critical, high := 0, 0
	for _, r := range risks {
		switch domain.NormalizeSeverity(r.Vuln.Severity) {
		case domain.SeverityCritical:
			critical++
		case domain.SeverityHigh:
			high++
		}
	}

	switch {
	case critical > 0:
		return domain.ThreatCritical
	case high > 2:
		return domain.ThreatHigh
	case high > 0 || len(risks) > 5:
		return domain.ThreatMedium
	default:
		return domain.ThreatLow
	}
}

func (p *RiskPredictor) recommendations(risks []domain.Risk, trend domain.RiskTrend) []string {
	var recs []string

	if trend == domain.TrendIncreasing {
		recs = append(recs,
			"Risk levels are increasing - immediate action required",
			"Schedule emergency security review within 24 hours")
	}

	critical := 0
	for _, r := range risks {
		if domain.NormalizeSeverity(r.Vuln.Severity) == domain.SeverityCritical {
			critical++
		}
	}
	if critical > 0 {
		recs = append(recs, fmt.Sprintf("Address %d critical risks immediately", critical))
	}
	if len(risks) > 10 {
		recs = append(recs, "High volume of risks detected - consider systematic remediation approach")
	}

	recs = append(recs,
		"Implement continuous monitoring and automated patching",
		"Conduct regular vulnerability assessments")
	return recs
}
