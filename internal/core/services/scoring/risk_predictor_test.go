package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

func riskWith(event string, severity domain.Severity, cvss float64) domain.Risk {
	return domain.Risk{
		ID:    domain.NewRiskID(),
		Event: event,
		Vuln:  domain.Vulnerability{Type: event, Severity: severity, CVSS: cvss},
	}
}

func TestExploitForecastBuckets(t *testing.T) {
	tests := []struct {
		name   string
		risk   domain.Risk
		want   domain.ExploitLikelihood
		window string
	}{
		{"critical severity", riskWith("Outdated Software", domain.SeverityCritical, 6.0), domain.ExploitHigh, "24-48 hours"},
		{"cvss nine", riskWith("Outdated Software", domain.SeverityMedium, 9.1), domain.ExploitHigh, "24-48 hours"},
		{"high severity", riskWith("Default Credentials", domain.SeverityHigh, 5.0), domain.ExploitMedium, "1-7 days"},
		{"cvss seven", riskWith("Default Credentials", domain.SeverityLow, 7.4), domain.ExploitMedium, "1-7 days"},
		{"low", riskWith("Service Misconfiguration", domain.SeverityLow, 3.0), domain.ExploitLow, "30+ days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := exploitForecast(tt.risk)
			assert.Equal(t, tt.want, f.Likelihood)
			assert.Equal(t, tt.window, f.TimeWindow)
			assert.Equal(t, tt.risk.Event, f.RiskEvent)
		})
	}
}

func TestEmergingThreatsRequireCluster(t *testing.T) {
	p := NewRiskPredictor()

	risks := []domain.Risk{
		riskWith("Outdated Software", domain.SeverityHigh, 7.0),
		riskWith("Outdated Software", domain.SeverityHigh, 7.2),
		riskWith("Default Credentials", domain.SeverityHigh, 8.0),
	}
	assert.Empty(t, p.emergingThreats(risks), "two occurrences are below the cluster threshold")

	risks = append(risks, riskWith("Outdated Software", domain.SeverityMedium, 5.0))
	emerging := p.emergingThreats(risks)
	require.Len(t, emerging, 1)
	assert.Equal(t, "Outdated Software", emerging[0].ThreatType)
	assert.Equal(t, 3, emerging[0].Occurrences)
	assert.Equal(t, domain.ThreatHigh, emerging[0].Severity)
}

func TestEmergingThreatsSortedByType(t *testing.T) {
	p := NewRiskPredictor()

	var risks []domain.Risk
	for i := 0; i < 3; i++ {
		risks = append(risks,
			riskWith("Weak Cipher Suites", domain.SeverityMedium, 5.0),
			riskWith("Default Credentials", domain.SeverityHigh, 8.0))
	}

	emerging := p.emergingThreats(risks)
	require.Len(t, emerging, 2)
	assert.Equal(t, "Default Credentials", emerging[0].ThreatType)
	assert.Equal(t, "Weak Cipher Suites", emerging[1].ThreatType)
}

func TestClassifyTrend(t *testing.T) {
	assert.Equal(t, domain.TrendUnknown, classifyTrend(5.0, 0, false))
	assert.Equal(t, domain.TrendIncreasing, classifyTrend(7.0, 5.0, true))
	assert.Equal(t, domain.TrendDecreasing, classifyTrend(3.0, 5.0, true))
	assert.Equal(t, domain.TrendStable, classifyTrend(5.5, 5.0, true))
	assert.Equal(t, domain.TrendStable, classifyTrend(6.0, 5.0, true), "exactly 1.2x is stable")
	assert.Equal(t, domain.TrendStable, classifyTrend(4.0, 5.0, true), "exactly 0.8x is stable")
}

func TestOverallRisk(t *testing.T) {
	assert.Equal(t, domain.ThreatLow, overallRisk(nil))

	critical := []domain.Risk{riskWith("X", domain.SeverityCritical, 9.8)}
	assert.Equal(t, domain.ThreatCritical, overallRisk(critical))

	threeHigh := []domain.Risk{
		riskWith("A", domain.SeverityHigh, 7.0),
		riskWith("B", domain.SeverityHigh, 7.0),
		riskWith("C", domain.SeverityHigh, 7.0),
	}
	assert.Equal(t, domain.ThreatHigh, overallRisk(threeHigh))

	oneHigh := []domain.Risk{riskWith("A", domain.SeverityHigh, 7.0)}
	assert.Equal(t, domain.ThreatMedium, overallRisk(oneHigh))

	var manyLow []domain.Risk
	for i := 0; i < 6; i++ {
		manyLow = append(manyLow, riskWith("A", domain.SeverityLow, 2.0))
	}
	assert.Equal(t, domain.ThreatMedium, overallRisk(manyLow), "volume alone raises the floor")

	fewLow := manyLow[:3]
	assert.Equal(t, domain.ThreatLow, overallRisk(fewLow))
}

func TestPredict(t *testing.T) {
	p := NewRiskPredictor()

	risks := []domain.Risk{
		riskWith("Outdated Software", domain.SeverityCritical, 9.8),
		riskWith("Default Credentials", domain.SeverityHigh, 8.0),
		riskWith("Weak Cipher Suites", domain.SeverityMedium, 5.0),
		riskWith("Service Misconfiguration", domain.SeverityLow, 2.0),
	}

	pred := p.Predict(risks, 4.0, true)

	assert.InDelta(t, 6.2, pred.CurrentScore, 1e-9)
	assert.Equal(t, domain.TrendIncreasing, pred.Trend, "6.2 > 4.0*1.2")
	assert.Equal(t, domain.ThreatCritical, pred.OverallRisk)
	assert.Len(t, pred.HighLikelihood, 1)
	assert.Len(t, pred.MedLikelihood, 1)
	assert.Len(t, pred.LowLikelihood, 2)
	assert.False(t, pred.GeneratedAt.IsZero())

	require.NotEmpty(t, pred.Recommendations)
	assert.Contains(t, pred.Recommendations, "Risk levels are increasing - immediate action required")
	assert.Contains(t, pred.Recommendations, "Address 1 critical risks immediately")
	assert.Contains(t, pred.Recommendations, "Conduct regular vulnerability assessments")
}

func TestPredictNoHistory(t *testing.T) {
	p := NewRiskPredictor()

	pred := p.Predict(nil, 0, false)

	assert.Equal(t, domain.TrendUnknown, pred.Trend)
	assert.Zero(t, pred.CurrentScore)
	assert.Equal(t, domain.ThreatLow, pred.OverallRisk)
	assert.Empty(t, pred.EmergingThreats)
	// Baseline hygiene recommendations are always present.
	assert.Len(t, pred.Recommendations, 2)
}
