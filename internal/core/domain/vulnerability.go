package domain

// Severity is the qualitative severity assigned by the vulnerability scanner.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// NormalizeSeverity maps unknown severities to LOW. Degraded scanner input is
// absorbed here rather than rejected, keeping risk counts stable.
func NormalizeSeverity(s Severity) Severity {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return s
	}
	return SeverityLow
}

// Vulnerability is one finding from the external vulnerability scanner.
// Read-only input; CVSS outside [0,10] is clamped and a missing score
// defaults to 0.
type Vulnerability struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Service  string   `json:"service"`
	Port     int      `json:"port"`
	CVSS     float64  `json:"cvss_score"`
}

// EffectiveCVSS returns the CVSS score clamped to the valid [0,10] range.
// Malformed (negative or NaN-ish) values resolve to 0.
func (v Vulnerability) EffectiveCVSS() float64 {
	if !(v.CVSS > 0) { // catches negatives, zero and NaN
		return 0
	}
	if v.CVSS > 10 {
		return 10
	}
	return v.CVSS
}
