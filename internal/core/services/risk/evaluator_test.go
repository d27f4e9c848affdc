package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

func evaluatedRisk(id string, cvss float64, level domain.RiskLevel, assets int) domain.Risk {
	r := domain.Risk{
		ID:     id,
		Event:  "Outdated Software",
		Vuln:   domain.Vulnerability{Type: "Outdated Software", CVSS: cvss},
		CVSS:   cvss,
		Level:  level,
		Status: domain.StatusEvaluated,
	}
	for i := 0; i < assets; i++ {
		r.Assets = append(r.Assets, "10.0.0.1:80")
	}
	return r
}

func TestEvaluateAgainstCriteriaPartitions(t *testing.T) {
	e := NewEvaluator(5.0)

	risks := []domain.Risk{
		evaluatedRisk("RISK-00000001", 9.8, domain.RiskExtreme, 1),
		evaluatedRisk("RISK-00000002", 2.0, domain.RiskLow, 1),
		evaluatedRisk("RISK-00000003", 4.0, domain.RiskMedium, 1),
		evaluatedRisk("RISK-00000004", 6.0, domain.RiskHigh, 1),
	}

	ev := e.EvaluateAgainstCriteria(risks)

	assert.Len(t, ev.Acceptable, 2)
	assert.Len(t, ev.Unacceptable, 2)
	assert.Equal(t, 2, ev.Treatable)
	assert.InDelta(t, 0.5, ev.AcceptanceRate, 1e-9)

	assert.Equal(t, 4, ev.Summary.Total)
	assert.Equal(t, 2, ev.Summary.AcceptableCount)
	assert.Equal(t, 2, ev.Summary.TreatableCount)
	assert.Equal(t, 1, ev.Summary.ImmediateAction)
	assert.Equal(t, "URGENT: 1 extreme risks require immediate treatment", ev.Summary.Recommendation)
}

func TestEvaluateAgainstCriteriaEmpty(t *testing.T) {
	e := NewEvaluator(5.0)
	ev := e.EvaluateAgainstCriteria(nil)

	assert.Zero(t, ev.AcceptanceRate, "empty set divides by one, not zero")
	assert.Zero(t, ev.Treatable)
	assert.Equal(t, "Risk posture is acceptable. Continue monitoring.", ev.Summary.Recommendation)
}

func TestIsAcceptableBoundaries(t *testing.T) {
	e := NewEvaluator(5.0)

	assert.False(t, e.isAcceptable(evaluatedRisk("R", 5.0, domain.RiskLow, 0)), "at appetite is rejected")
	assert.True(t, e.isAcceptable(evaluatedRisk("R", 4.99, domain.RiskLow, 0)))
	assert.True(t, e.isAcceptable(evaluatedRisk("R", 4.99, domain.RiskMedium, 0)))
	assert.False(t, e.isAcceptable(evaluatedRisk("R", 1.0, domain.RiskHigh, 0)), "level gate holds even at low CVSS")
	assert.False(t, e.isAcceptable(evaluatedRisk("R", 1.0, domain.RiskExtreme, 0)))
}

func TestNewEvaluatorDefaultsAppetite(t *testing.T) {
	e := NewEvaluator(0)
	assert.True(t, e.isAcceptable(evaluatedRisk("R", 4.9, domain.RiskLow, 0)))
	assert.False(t, e.isAcceptable(evaluatedRisk("R", 5.0, domain.RiskLow, 0)))
}

func TestPrioritizeOrdersByScore(t *testing.T) {
	e := NewEvaluator(5.0)

	risks := []domain.Risk{
		evaluatedRisk("RISK-LOW", 2.0, domain.RiskLow, 1),      // 2.0 + 0.5 + 0.1 = 2.6
		evaluatedRisk("RISK-TOP", 9.8, domain.RiskExtreme, 2),  // 9.8 + 5.0 + 0.2 = 15.0
		evaluatedRisk("RISK-MID", 6.0, domain.RiskHigh, 11),    // 6.0 + 3.0 + 1.1 = 10.1
	}

	out := e.Prioritize(risks)
	require.Len(t, out, 3)

	assert.Equal(t, "RISK-TOP", out[0].ID)
	assert.Equal(t, 15.0, out[0].PriorityScore)
	assert.Equal(t, "RISK-MID", out[1].ID)
	assert.Equal(t, 10.1, out[1].PriorityScore)
	assert.Equal(t, "RISK-LOW", out[2].ID)
	assert.Equal(t, 2.6, out[2].PriorityScore)

	// Input slice untouched.
	assert.Equal(t, "RISK-LOW", risks[0].ID)
	assert.Zero(t, risks[0].PriorityScore)
}

func TestPrioritizeAssetBonusCapped(t *testing.T) {
	e := NewEvaluator(5.0)

	out := e.Prioritize([]domain.Risk{evaluatedRisk("R", 5.0, domain.RiskMedium, 40)})
	assert.Equal(t, 8.5, out[0].PriorityScore, "asset bonus caps at 2.0")
}

func TestPrioritizeStableOnTies(t *testing.T) {
	e := NewEvaluator(5.0)

	risks := []domain.Risk{
		evaluatedRisk("RISK-FIRST", 7.0, domain.RiskHigh, 1),
		evaluatedRisk("RISK-SECOND", 7.0, domain.RiskHigh, 1),
	}

	out := e.Prioritize(risks)
	assert.Equal(t, "RISK-FIRST", out[0].ID)
	assert.Equal(t, "RISK-SECOND", out[1].ID)
}

func TestRecommendResponse(t *testing.T) {
	e := NewEvaluator(5.0)

	assert.Equal(t, ResponseTreatImmediately, e.RecommendResponse(evaluatedRisk("R", 3.0, domain.RiskExtreme, 0)))
	assert.Equal(t, ResponseTreatImmediately, e.RecommendResponse(evaluatedRisk("R", 9.2, domain.RiskMedium, 0)))
	assert.Equal(t, ResponseTreatPriority, e.RecommendResponse(evaluatedRisk("R", 7.5, domain.RiskMedium, 0)))
	assert.Equal(t, ResponseTreatScheduled, e.RecommendResponse(evaluatedRisk("R", 5.0, domain.RiskMedium, 0)))
	assert.Equal(t, ResponseAcceptMonitor, e.RecommendResponse(evaluatedRisk("R", 2.0, domain.RiskLow, 0)))
}

func TestQuantitative(t *testing.T) {
	e := NewEvaluator(5.0)

	risks := []domain.Risk{
		evaluatedRisk("A", 9.8, domain.RiskExtreme, 0),
		evaluatedRisk("B", 7.0, domain.RiskHigh, 0),
		evaluatedRisk("C", 4.0, domain.RiskMedium, 0),
		evaluatedRisk("D", 2.0, domain.RiskLow, 0),
	}

	stats := e.Quantitative(risks)

	assert.Equal(t, 22.8, stats.TotalExposure)
	assert.Equal(t, 5.7, stats.Average)
	assert.Equal(t, 9.8, stats.Maximum)
	assert.Equal(t, 2.0, stats.Minimum)
	assert.Equal(t, 1, stats.Critical)
	assert.Equal(t, 1, stats.High)
	assert.Equal(t, 1, stats.Medium)
	assert.Equal(t, 1, stats.Low)
	assert.InDelta(t, 2.96, stats.StdDev, 0.01)
}

func TestQuantitativeEmpty(t *testing.T) {
	e := NewEvaluator(5.0)
	stats := e.Quantitative(nil)

	assert.Zero(t, stats.TotalExposure)
	assert.Zero(t, stats.Minimum, "empty set reports zero minimum, not MaxFloat")
}
