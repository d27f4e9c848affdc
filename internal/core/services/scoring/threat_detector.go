package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
	"github.com/lcalzada-xor/riskmap/internal/core/ports"
)

// threatWeights is the fixed per-feature weight table, indexed by the
// Feat* constants in features.go.
var threatWeights = []float64{0.8, 1.5, 1.2, 0.5, 0.3, 0.7, 2.0}

// reportThreshold: hosts scoring at or below this are not reported.
const reportThreshold = 5.0

// WeightedThreatModel is the default deterministic scoring model.
type WeightedThreatModel struct{}

// Score computes the weighted sum of the feature vector, capped at 10.
func (WeightedThreatModel) Score(features []float64) float64 {
	var score float64
	for i, f := range features {
		if i >= len(threatWeights) {
			break
		}
		score += f * threatWeights[i]
	}
	return math.Min(score, 10.0)
}

// ThreatDetector scores hosts and emits threat findings.
type ThreatDetector struct {
	model ports.ThreatModel
}

// NewThreatDetector builds a detector backed by the given model; nil selects
// the deterministic weighted model.
func NewThreatDetector(model ports.ThreatModel) *ThreatDetector {
	if model == nil {
		model = WeightedThreatModel{}
	}
	return &ThreatDetector{model: model}
}

// Detect scores every host of a scan and returns the findings whose score
// clears the reporting threshold, ordered by host address for determinism.
func (d *ThreatDetector) Detect(scan domain.ScanResult) []domain.Threat {
	addrs := make([]string, 0, len(scan.Hosts))
	for addr := range scan.Hosts {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	var threats []domain.Threat
	for _, addr := range addrs {
		if t, ok := d.DetectHost(addr, scan.Hosts[addr]); ok {
			threats = append(threats, t)
		}
	}
	return threats
}

// DetectHost scores a single host. The second return value is false when the
// host does not qualify as a threat.
func (d *ThreatDetector) DetectHost(addr string, host domain.ScanHost) (domain.Threat, bool) {
	features := ExtractThreatFeatures(host)
	score := d.model.Score(features)
	if score <= reportThreshold {
		return domain.Threat{}, false
	}

	return domain.Threat{
		Host:       addr,
		Level:      threatLevel(score),
		Score:      score,
		Type:       threatType(features),
		Confidence: confidence(features),
		Timestamp:  time.Now().UTC(),
	}, true
}

func threatLevel(score float64) domain.ThreatLevel {
	switch {
	case score >= 8.0:
		return domain.ThreatCritical
	case score >= 6.0:
		return domain.ThreatHigh
	case score >= 4.0:
		return domain.ThreatMedium
	default:
		return domain.ThreatLow
	}
}

// threatType is a priority chain over the feature vector.
func threatType(features []float64) string {
	switch {
	case features[FeatCriticalPorts] > 0:
		return "Intrusion Risk"
	case features[FeatHighRiskServices] > 0:
		return "Service Exploitation Risk"
	case features[FeatOutdatedSoftware] == 1:
		return "Unpatched Vulnerabilities"
	default:
		return "General Security Risk"
	}
}

// confidence is the share of non-zero features, a proxy for how much signal
// was available rather than statistical confidence.
func confidence(features []float64) float64 {
	nonZero := 0
	for _, f := range features {
		if f != 0 {
			nonZero++
		}
	}
	c := float64(nonZero) / float64(len(features))
	return math.Round(c*100) / 100
}
