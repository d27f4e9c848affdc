package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

func sampleScan() domain.ScanResult {
	return domain.ScanResult{
		Target: "192.168.1.0/24",
		Hosts: map[string]domain.ScanHost{
			"192.168.1.10": {
				Address: "192.168.1.10",
				Protocols: map[string]map[int]domain.PortInfo{
					"tcp": {
						80:  {State: domain.PortOpen, Service: "http", Version: "2.2.8"},
						443: {State: domain.PortOpen, Service: "https"},
					},
				},
			},
			"192.168.1.20": {
				Address: "192.168.1.20",
				Protocols: map[string]map[int]domain.PortInfo{
					"tcp": {
						8080: {State: domain.PortOpen, Service: "http-proxy"},
					},
				},
			},
		},
	}
}

func TestDefineRiskCriteria(t *testing.T) {
	l := NewLifecycle()
	criteria := l.DefineRiskCriteria(6.5)

	assert.Equal(t, 6.5, criteria.AppetiteThreshold)
	assert.Equal(t, 1.0, criteria.Tolerance)
	assert.Len(t, criteria.Likelihoods, 5)
	assert.Len(t, criteria.Consequences, 5)
	assert.Len(t, criteria.Matrix, 5)
}

func TestDefineRiskCriteriaDefaultsAppetite(t *testing.T) {
	l := NewLifecycle()
	assert.Equal(t, 5.0, l.DefineRiskCriteria(0).AppetiteThreshold)
	assert.Equal(t, 5.0, l.DefineRiskCriteria(-3).AppetiteThreshold)
}

func TestCriteriaLazyDefault(t *testing.T) {
	l := NewLifecycle()
	criteria := l.Criteria()
	assert.Equal(t, 5.0, criteria.AppetiteThreshold)
	assert.NotEmpty(t, criteria.Matrix)
}

func TestEstablishContext(t *testing.T) {
	l := NewLifecycle()
	ctx := l.EstablishContext()

	assert.Equal(t, "Network infrastructure and end-user systems", ctx.Scope)
	assert.Contains(t, ctx.IndustryStandards, "ISO 31000:2018")
	assert.Len(t, ctx.Objectives, 3)
}

func TestRiskMatrixCorners(t *testing.T) {
	m := buildRiskMatrix()

	tests := []struct {
		likelihood  domain.Likelihood
		consequence domain.Consequence
		want        domain.RiskLevel
	}{
		{domain.LikelihoodVeryHigh, domain.ConsequenceCatastrophic, domain.RiskExtreme},
		{domain.LikelihoodVeryHigh, domain.ConsequenceNegligible, domain.RiskLow},
		{domain.LikelihoodHigh, domain.ConsequenceModerate, domain.RiskHigh},
		{domain.LikelihoodMedium, domain.ConsequenceCatastrophic, domain.RiskExtreme},
		{domain.LikelihoodMedium, domain.ConsequenceModerate, domain.RiskMedium},
		{domain.LikelihoodLow, domain.ConsequenceCatastrophic, domain.RiskHigh},
		{domain.LikelihoodVeryLow, domain.ConsequenceCatastrophic, domain.RiskMedium},
		{domain.LikelihoodVeryLow, domain.ConsequenceNegligible, domain.RiskLow},
	}

	for _, tt := range tests {
		got := m.Level(tt.likelihood, tt.consequence)
		assert.Equal(t, tt.want, got, "%s x %s", tt.likelihood, tt.consequence)
	}
}

func TestRiskMatrixUnknownCellDefaultsMedium(t *testing.T) {
	m := buildRiskMatrix()
	assert.Equal(t, domain.RiskMedium, m.Level("BOGUS", domain.ConsequenceMajor))
	assert.Equal(t, domain.RiskMedium, m.Level(domain.LikelihoodHigh, "BOGUS"))
}

func TestIdentifyCreatesOneRiskPerVuln(t *testing.T) {
	l := NewLifecycle()
	vulns := []domain.Vulnerability{
		{Type: "Outdated Software", Severity: domain.SeverityHigh, Service: "http", Port: 80, CVSS: 7.5},
		{Type: "SSL/TLS Configuration", Severity: domain.SeverityMedium, Service: "https", Port: 443, CVSS: 5.3},
	}

	risks := l.Identify(sampleScan(), vulns)
	require.Len(t, risks, 2)

	r := risks[0]
	assert.Regexp(t, `^RISK-[0-9A-F]{8}$`, r.ID)
	assert.Equal(t, domain.StatusIdentified, r.Status)
	assert.Equal(t, "http", r.Source)
	assert.Equal(t, "Outdated Software", r.Event)
	assert.Equal(t, "Failure to apply security patches", r.Cause)
	assert.Equal(t, "Unauthorized access, data exposure, system exploitation", r.Consequence)
	assert.False(t, r.IdentifiedAt.IsZero())
	// "http" matches http, https and http-proxy service names.
	assert.Equal(t, []string{"192.168.1.10:443", "192.168.1.10:80", "192.168.1.20:8080"}, r.Assets)

	assert.NotEqual(t, risks[0].ID, risks[1].ID)
}

func TestIdentifyUnknownTypeAndService(t *testing.T) {
	l := NewLifecycle()
	risks := l.Identify(domain.ScanResult{}, []domain.Vulnerability{
		{Severity: "WEIRD"},
	})
	require.Len(t, risks, 1)

	r := risks[0]
	assert.Equal(t, "Unknown", r.Source)
	assert.Equal(t, "Unknown", r.Event)
	assert.Equal(t, "Security misconfiguration or vulnerability", r.Cause)
	assert.Equal(t, "Potential security incident", r.Consequence)
	assert.Equal(t, []string{"Network infrastructure"}, r.Assets)
}

func TestAnalyzeDerivesMatrixLevel(t *testing.T) {
	l := NewLifecycle()
	risks := l.Identify(sampleScan(), []domain.Vulnerability{
		{Type: "Outdated Software", Severity: domain.SeverityCritical, Service: "http", CVSS: 9.8},
		{Type: "Weak Cipher Suites", Severity: domain.SeverityLow, Service: "https", CVSS: 2.0},
	})

	analyzed, err := l.Analyze(risks)
	require.NoError(t, err)
	require.Len(t, analyzed, 2)

	critical := analyzed[0]
	assert.Equal(t, domain.StatusAnalyzed, critical.Status)
	assert.Equal(t, domain.LikelihoodVeryHigh, critical.Likelihood)
	assert.Equal(t, domain.ConsequenceCatastrophic, critical.ConsequenceClass)
	assert.Equal(t, domain.RiskExtreme, critical.Level)
	assert.Equal(t, 9.8, critical.CVSS)

	low := analyzed[1]
	assert.Equal(t, domain.LikelihoodLow, low.Likelihood)
	assert.Equal(t, domain.ConsequenceNegligible, low.ConsequenceClass)
	assert.Equal(t, domain.RiskLow, low.Level)

	// Identification fields survive analysis untouched.
	assert.Equal(t, risks[0].ID, critical.ID)
	assert.Equal(t, risks[0].Cause, critical.Cause)
	assert.Equal(t, risks[0].Assets, critical.Assets)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	l := NewLifecycle()
	risks := l.Identify(sampleScan(), []domain.Vulnerability{
		{Type: "Outdated Software", Severity: domain.SeverityHigh, Service: "http", CVSS: 7.5},
	})

	once, err := l.Analyze(risks)
	require.NoError(t, err)
	twice, err := l.Analyze(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestAnalyzeRejectsEvaluatedRisk(t *testing.T) {
	l := NewLifecycle()
	_, err := l.Analyze([]domain.Risk{{ID: "RISK-00000001", Status: domain.StatusEvaluated}})
	assert.ErrorIs(t, err, domain.ErrStageOrder)
}

func TestEvaluateRejectsIdentifiedRisk(t *testing.T) {
	l := NewLifecycle()
	_, err := l.Evaluate([]domain.Risk{{ID: "RISK-00000001", Status: domain.StatusIdentified}})
	assert.ErrorIs(t, err, domain.ErrStageOrder)
}

func TestEvaluateAcceptance(t *testing.T) {
	l := NewLifecycle()
	l.DefineRiskCriteria(5.0)

	risks := l.Identify(sampleScan(), []domain.Vulnerability{
		{Type: "Outdated Software", Severity: domain.SeverityCritical, Service: "http", CVSS: 9.8},
		{Type: "Weak Cipher Suites", Severity: domain.SeverityLow, Service: "https", CVSS: 2.0},
		{Type: "Service Misconfiguration", Severity: domain.SeverityMedium, Service: "http", CVSS: 5.0},
	})

	analyzed, err := l.Analyze(risks)
	require.NoError(t, err)
	evaluated, err := l.Evaluate(analyzed)
	require.NoError(t, err)

	assert.False(t, evaluated[0].Acceptable, "extreme risk never acceptable")
	assert.Equal(t, 1, evaluated[0].TreatmentPriority)
	assert.Equal(t, domain.StatusEvaluated, evaluated[0].Status)

	assert.True(t, evaluated[1].Acceptable)
	assert.Equal(t, 4, evaluated[1].TreatmentPriority)

	assert.False(t, evaluated[2].Acceptable, "CVSS exactly at appetite is not acceptable")
	assert.Equal(t, 3, evaluated[2].TreatmentPriority)
}

func TestSeverityLikelihoodDefaultsLow(t *testing.T) {
	assert.Equal(t, domain.LikelihoodLow, severityLikelihood("GARBAGE"))
	assert.Equal(t, domain.LikelihoodVeryHigh, severityLikelihood(domain.SeverityCritical))
}

func TestCVSSConsequenceBuckets(t *testing.T) {
	assert.Equal(t, domain.ConsequenceCatastrophic, cvssConsequence(9.0))
	assert.Equal(t, domain.ConsequenceMajor, cvssConsequence(8.9))
	assert.Equal(t, domain.ConsequenceModerate, cvssConsequence(5.0))
	assert.Equal(t, domain.ConsequenceMinor, cvssConsequence(3.0))
	assert.Equal(t, domain.ConsequenceNegligible, cvssConsequence(2.9))
}
