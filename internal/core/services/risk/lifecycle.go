package risk

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// Lifecycle owns the risk criteria snapshot and drives each vulnerability
// through IDENTIFIED -> ANALYZED -> EVALUATED. Stages are pure transforms
// over the risk slice; the only state generated outside the inputs is the
// risk ID at identification time.
type Lifecycle struct {
	criteria domain.RiskCriteria
	context  domain.AssessmentContext
	defined  bool
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// EstablishContext defines the scope and objectives for the run. Called once
// before criteria are defined.
func (l *Lifecycle) EstablishContext() domain.AssessmentContext {
	l.context = domain.AssessmentContext{
		Scope: "Network infrastructure and end-user systems",
		Objectives: []string{
			"Identify and eliminate security risks",
			"Protect confidentiality, integrity, and availability",
			"Enable business continuity",
		},
		IndustryStandards: []string{"ISO 31000:2018", "ISO/IEC 27001", "NIST Cybersecurity Framework"},
	}
	return l.context
}

// DefineRiskCriteria builds the immutable criteria snapshot for this run:
// appetite threshold, the five-level taxonomies and the 5x5 risk matrix.
func (l *Lifecycle) DefineRiskCriteria(appetite float64) domain.RiskCriteria {
	if appetite <= 0 {
		appetite = 5.0
	}
	l.criteria = domain.RiskCriteria{
		AppetiteThreshold: appetite,
		Tolerance:         1.0,
		Likelihoods: map[domain.Likelihood]domain.LikelihoodCriterion{
			domain.LikelihoodVeryHigh: {Probability: "> 90%", Description: "Expected to occur"},
			domain.LikelihoodHigh:     {Probability: "70-90%", Description: "Likely to occur"},
			domain.LikelihoodMedium:   {Probability: "30-70%", Description: "May occur"},
			domain.LikelihoodLow:      {Probability: "10-30%", Description: "Unlikely to occur"},
			domain.LikelihoodVeryLow:  {Probability: "< 10%", Description: "Rare occurrence"},
		},
		Consequences: map[domain.Consequence]domain.ConsequenceCriterion{
			domain.ConsequenceCatastrophic: {Impact: "Complete system failure, data loss, regulatory penalties", RecoveryTime: "> 30 days", FinancialImpact: "> $1M"},
			domain.ConsequenceMajor:        {Impact: "Significant disruption, partial data loss", RecoveryTime: "7-30 days", FinancialImpact: "$100K - $1M"},
			domain.ConsequenceModerate:     {Impact: "Moderate disruption, limited data exposure", RecoveryTime: "1-7 days", FinancialImpact: "$10K - $100K"},
			domain.ConsequenceMinor:        {Impact: "Minor disruption, no data loss", RecoveryTime: "< 24 hours", FinancialImpact: "$1K - $10K"},
			domain.ConsequenceNegligible:   {Impact: "Minimal impact", RecoveryTime: "< 4 hours", FinancialImpact: "< $1K"},
		},
		Matrix: buildRiskMatrix(),
	}
	l.defined = true
	return l.criteria
}

// Criteria returns the current snapshot, building the default one if
// DefineRiskCriteria was never called.
func (l *Lifecycle) Criteria() domain.RiskCriteria {
	if !l.defined {
		return l.DefineRiskCriteria(5.0)
	}
	return l.criteria
}

// buildRiskMatrix reproduces the fixed 5x5 matrix verbatim.
func buildRiskMatrix() domain.RiskMatrix {
	return domain.RiskMatrix{
		domain.LikelihoodVeryHigh: {
			domain.ConsequenceCatastrophic: domain.RiskExtreme,
			domain.ConsequenceMajor:        domain.RiskExtreme,
			domain.ConsequenceModerate:     domain.RiskHigh,
			domain.ConsequenceMinor:        domain.RiskMedium,
			domain.ConsequenceNegligible:   domain.RiskLow,
		},
		domain.LikelihoodHigh: {
			domain.ConsequenceCatastrophic: domain.RiskExtreme,
			domain.ConsequenceMajor:        domain.RiskHigh,
			domain.ConsequenceModerate:     domain.RiskHigh,
			domain.ConsequenceMinor:        domain.RiskMedium,
			domain.ConsequenceNegligible:   domain.RiskLow,
		},
		domain.LikelihoodMedium: {
			domain.ConsequenceCatastrophic: domain.RiskExtreme,
			domain.ConsequenceMajor:        domain.RiskHigh,
			domain.ConsequenceModerate:     domain.RiskMedium,
			domain.ConsequenceMinor:        domain.RiskMedium,
			domain.ConsequenceNegligible:   domain.RiskLow,
		},
		domain.LikelihoodLow: {
			domain.ConsequenceCatastrophic: domain.RiskHigh,
			domain.ConsequenceMajor:        domain.RiskMedium,
			domain.ConsequenceModerate:     domain.RiskMedium,
			domain.ConsequenceMinor:        domain.RiskLow,
			domain.ConsequenceNegligible:   domain.RiskLow,
		},
		domain.LikelihoodVeryLow: {
			domain.ConsequenceCatastrophic: domain.RiskMedium,
			domain.ConsequenceMajor:        domain.RiskMedium,
			domain.ConsequenceModerate:     domain.RiskLow,
			domain.ConsequenceMinor:        domain.RiskLow,
			domain.ConsequenceNegligible:   domain.RiskLow,
		},
	}
}

// Identify creates exactly one IDENTIFIED risk per vulnerability. Cause and
// consequence come from fixed lookup tables; affected assets are the
// host:port pairs whose service matches the vulnerability's service.
func (l *Lifecycle) Identify(scan domain.ScanResult, vulns []domain.Vulnerability) []domain.Risk {
	risks := make([]domain.Risk, 0, len(vulns))
	now := time.Now().UTC()

	for _, v := range vulns {
		risks = append(risks, domain.Risk{
			ID:           domain.NewRiskID(),
			IdentifiedAt: now,
			Source:       orUnknown(v.Service),
			Event:        orUnknown(v.Type),
			Cause:        identifyCause(v.Type),
			Consequence:  identifyConsequence(v.Severity),
			Assets:       affectedAssets(scan, v.Service),
			Vuln:         v,
			Status:       domain.StatusIdentified,
		})
	}

	slog.Info("risks identified", "count", len(risks))
	return risks
}

// Analyze derives likelihood, consequence class and the matrix risk level
// for each risk. Pure: re-running on an ANALYZED set yields identical values.
func (l *Lifecycle) Analyze(risks []domain.Risk) ([]domain.Risk, error) {
	criteria := l.Criteria()
	out := make([]domain.Risk, len(risks))

	for i, r := range risks {
		if r.Status == domain.StatusEvaluated {
			return nil, fmt.Errorf("analyze %s: %w", r.ID, domain.ErrStageOrder)
		}
		r.Likelihood = severityLikelihood(r.Vuln.Severity)
		r.ConsequenceClass = cvssConsequence(r.Vuln.EffectiveCVSS())
		r.Level = criteria.Matrix.Level(r.Likelihood, r.ConsequenceClass)
		r.CVSS = r.Vuln.EffectiveCVSS()
		r.Status = domain.StatusAnalyzed
		out[i] = r
	}
	return out, nil
}

// Evaluate decides acceptance against the appetite and assigns treatment
// priority. Requires analyzed input; re-evaluating is a no-op transform.
func (l *Lifecycle) Evaluate(risks []domain.Risk) ([]domain.Risk, error) {
	criteria := l.Criteria()
	out := make([]domain.Risk, len(risks))

	for i, r := range risks {
		if r.Status == domain.StatusIdentified {
			return nil, fmt.Errorf("evaluate %s: %w", r.ID, domain.ErrStageOrder)
		}
		r.Acceptable = r.CVSS < criteria.AppetiteThreshold &&
			(r.Level == domain.RiskLow || r.Level == domain.RiskMedium)
		r.TreatmentPriority = treatmentPriority(r.Level)
		r.Status = domain.StatusEvaluated
		out[i] = r
	}
	return out, nil
}

// identifyCause maps a vulnerability type to its documented root cause.
func identifyCause(vulnType string) string {
	causes := map[string]string{
		"Outdated Software":        "Failure to apply security patches",
		"Default Credentials":      "Inadequate access control",
		"SSL/TLS Configuration":    "Weak cryptographic configuration",
		"Weak Cipher Suites":       "Outdated security standards",
		"Missing Security Patches": "Inadequate patch management",
	}
	if c, ok := causes[vulnType]; ok {
		return c
	}
	return "Security misconfiguration or vulnerability"
}

// identifyConsequence maps severity to its documented consequence text.
func identifyConsequence(sev domain.Severity) string {
	consequences := map[domain.Severity]string{
		domain.SeverityCritical: "Complete system compromise, data breach, service disruption",
		domain.SeverityHigh:     "Unauthorized access, data exposure, system exploitation",
		domain.SeverityMedium:   "Limited unauthorized access, potential data exposure",
		domain.SeverityLow:      "Minor security weakness, limited impact",
	}
	if c, ok := consequences[sev]; ok {
		return c
	}
	return "Potential security incident"
}

// affectedAssets lists host:port pairs whose service name contains the
// vulnerable service. Falls back to the generic infrastructure asset.
func affectedAssets(scan domain.ScanResult, service string) []string {
	var assets []string
	for addr, host := range scan.Hosts {
		for _, ports := range host.Protocols {
			for port, info := range ports {
				if service != "" && strings.Contains(info.Service, service) {
					assets = append(assets, fmt.Sprintf("%s:%d", addr, port))
				}
			}
		}
	}
	if len(assets) == 0 {
		return []string{"Network infrastructure"}
	}
	return sortedUnique(assets)
}

// sortedUnique keeps asset ordering deterministic across map iteration.
func sortedUnique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// severityLikelihood buckets scanner severity into the likelihood taxonomy.
// Unknown severities default to LOW, silently.
func severityLikelihood(sev domain.Severity) domain.Likelihood {
	switch domain.NormalizeSeverity(sev) {
	case domain.SeverityCritical:
		return domain.LikelihoodVeryHigh
	case domain.SeverityHigh:
		return domain.LikelihoodHigh
	case domain.SeverityMedium:
		return domain.LikelihoodMedium
	default:
		return domain.LikelihoodLow
	}
}

// cvssConsequence buckets a CVSS score into the consequence taxonomy.
func cvssConsequence(cvss float64) domain.Consequence {
	switch {
	case cvss >= 9.0:
		return domain.ConsequenceCatastrophic
	case cvss >= 7.0:
		return domain.ConsequenceMajor
	case cvss >= 5.0:
		return domain.ConsequenceModerate
	case cvss >= 3.0:
		return domain.ConsequenceMinor
	default:
		return domain.ConsequenceNegligible
	}
}

func treatmentPriority(level domain.RiskLevel) int {
	switch level {
	case domain.RiskExtreme:
		return 1
	case domain.RiskHigh:
		return 2
	case domain.RiskMedium:
		return 3
	default:
		return 4
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
