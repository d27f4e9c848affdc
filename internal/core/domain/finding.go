package domain

import "time"

// ThreatLevel classifies a host threat finding.
type ThreatLevel string

const (
	ThreatLow      ThreatLevel = "LOW"
	ThreatMedium   ThreatLevel = "MEDIUM"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatCritical ThreatLevel = "CRITICAL"
)

// Threat is a scored per-host threat finding. Created once by the threat
// detector and never mutated afterwards.
type Threat struct {
	Host       string      `json:"host"`
	Level      ThreatLevel `json:"threat_level"`
	Score      float64     `json:"threat_score"`
	Type       string      `json:"threat_type"`
	Confidence float64     `json:"confidence"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Anomaly is a per-host anomaly finding from the anomaly detector.
type Anomaly struct {
	Host        string      `json:"host"`
	Score       float64     `json:"anomaly_score"`
	Severity    ThreatLevel `json:"severity"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
}

// ExploitLikelihood buckets how soon a risk is expected to be exploited.
type ExploitLikelihood string

const (
	ExploitHigh   ExploitLikelihood = "HIGH"
	ExploitMedium ExploitLikelihood = "MEDIUM"
	ExploitLow    ExploitLikelihood = "LOW"
)

// ExploitForecast is the per-risk exploitation likelihood and time window.
type ExploitForecast struct {
	RiskEvent  string            `json:"risk"`
	Likelihood ExploitLikelihood `json:"likelihood"`
	TimeWindow string            `json:"expected_timeframe"`
}

// EmergingThreat flags a cluster of similar risk events across the network.
type EmergingThreat struct {
	ThreatType  string      `json:"threat_type"`
	Occurrences int         `json:"occurrence_count"`
	Severity    ThreatLevel `json:"severity"`
	Description string      `json:"description"`
}

// RiskTrend compares the current aggregate risk against history.
type RiskTrend string

const (
	TrendIncreasing RiskTrend = "INCREASING"
	TrendDecreasing RiskTrend = "DECREASING"
	TrendStable     RiskTrend = "STABLE"
	TrendUnknown    RiskTrend = "UNKNOWN"
)

// Prediction aggregates the exploitation predictor's output for one run.
type Prediction struct {
	GeneratedAt     time.Time         `json:"prediction_date"`
	Trend           RiskTrend         `json:"risk_trend"`
	CurrentScore    float64           `json:"current_score"` // mean CVSS across risks
	HighLikelihood  []ExploitForecast `json:"high_likelihood_exploits"`
	MedLikelihood   []ExploitForecast `json:"medium_likelihood_exploits"`
	LowLikelihood   []ExploitForecast `json:"low_likelihood_exploits"`
	EmergingThreats []EmergingThreat  `json:"emerging_threats"`
	OverallRisk     ThreatLevel       `json:"overall_risk_level"`
	Recommendations []string          `json:"recommendations"`
}
