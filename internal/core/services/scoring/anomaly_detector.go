package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
	"github.com/lcalzada-xor/riskmap/internal/core/ports"
)

// thresholdAnomalyModel is the always-available fallback: fixed score
// increments for port count, high-port usage and unknown-service ratio.
type thresholdAnomalyModel struct{}

func (thresholdAnomalyModel) Ready() bool { return true }

func (thresholdAnomalyModel) Score(f []float64) float64 {
	score := 0.0

	if f[AFeatTotalPorts] > 50 {
		score += 0.3
	} else if f[AFeatTotalPorts] > 20 {
		score += 0.2
	}

	if f[AFeatHighPorts] > 30 {
		score += 0.2
	}

	if f[AFeatUnknownRatio] > 0.5 {
		score += 0.3
	} else if f[AFeatUnknownRatio] > 0.3 {
		score += 0.2
	}

	return math.Min(score, 1.0)
}

// BaselineModel is the optional fitted mode: z-score outlier detection
// against the mean/stddev of previously observed host feature vectors.
type BaselineModel struct {
	mean   []float64
	stddev []float64
	fitted bool

	// Contamination tunes how far past the baseline spread a host must sit
	// before its score saturates.
	Contamination float64
}

// NewBaselineModel returns an unfitted baseline model. It reports not ready
// until Fit is called with at least one host vector.
func NewBaselineModel(contamination float64) *BaselineModel {
	if contamination <= 0 || contamination >= 1 {
		contamination = 0.1
	}
	return &BaselineModel{Contamination: contamination}
}

func (m *BaselineModel) Ready() bool { return m.fitted }

// Fit establishes the baseline from normal-network host feature vectors.
func (m *BaselineModel) Fit(vectors [][]float64) {
	if len(vectors) == 0 {
		return
	}
	n := len(vectors[0])
	m.mean = make([]float64, n)
	m.stddev = make([]float64, n)

	for _, v := range vectors {
		for i := 0; i < n && i < len(v); i++ {
			m.mean[i] += v[i]
		}
	}
	for i := range m.mean {
		m.mean[i] /= float64(len(vectors))
	}
	for _, v := range vectors {
		for i := 0; i < n && i < len(v); i++ {
			d := v[i] - m.mean[i]
			m.stddev[i] += d * d
		}
	}
	for i := range m.stddev {
		m.stddev[i] = math.Sqrt(m.stddev[i] / float64(len(vectors)))
	}
	m.fitted = true
}

// Score maps the mean absolute z-score of the vector into [0,1].
func (m *BaselineModel) Score(f []float64) float64 {
	if !m.fitted {
		return 0
	}
	var total float64
	n := 0
	for i := range m.mean {
		if i >= len(f) {
			break
		}
		sd := m.stddev[i]
		if sd == 0 {
			sd = 1
		}
		total += math.Abs(f[i]-m.mean[i]) / sd
		n++
	}
	if n == 0 {
		return 0
	}
	// Saturation point: 3 sigma average, tightened by contamination.
	z := total / float64(n)
	return math.Min(z/(3.0*(1.0-m.Contamination)), 1.0)
}

// AnomalyDetector scores hosts for unusual exposure patterns. A fitted
// model is consulted only once ready; the threshold heuristic is the
// default and always remains available.
type AnomalyDetector struct {
	fallback ports.AnomalyModel
	fitted   ports.AnomalyModel
}

// NewAnomalyDetector builds a detector. fitted may be nil, in which case
// only the fallback heuristic is used.
func NewAnomalyDetector(fitted ports.AnomalyModel) *AnomalyDetector {
	return &AnomalyDetector{
		fallback: thresholdAnomalyModel{},
		fitted:   fitted,
	}
}

// Detect scores every host and returns the anomalous ones (score > 0.6),
// ordered by host address for determinism.
func (d *AnomalyDetector) Detect(scan domain.ScanResult) []domain.Anomaly {
	addrs := make([]string, 0, len(scan.Hosts))
	for addr := range scan.Hosts {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	var anomalies []domain.Anomaly
	for _, addr := range addrs {
		features := ExtractAnomalyFeatures(scan.Hosts[addr])
		score := d.score(features)
		if score <= 0.6 {
			continue
		}
		anomalies = append(anomalies, domain.Anomaly{
			Host:        addr,
			Score:       score,
			Severity:    anomalySeverity(score),
			Description: describeAnomaly(features),
			Type:        "Network Anomaly",
		})
	}
	return anomalies
}

func (d *AnomalyDetector) score(features []float64) float64 {
	if d.fitted != nil && d.fitted.Ready() {
		return d.fitted.Score(features)
	}
	return d.fallback.Score(features)
}

func anomalySeverity(score float64) domain.ThreatLevel {
	switch {
	case score > 0.8:
		return domain.ThreatCritical
	case score > 0.6:
		return domain.ThreatHigh
	case score > 0.4:
		return domain.ThreatMedium
	default:
		return domain.ThreatLow
	}
}

// describeAnomaly concatenates the triggered conditions in fixed order:
// port count, high ports, unknown ratio.
func describeAnomaly(f []float64) string {
	var parts []string

	if f[AFeatTotalPorts] > 50 {
		parts = append(parts, fmt.Sprintf("Unusually high number of open ports (%d)", int(f[AFeatTotalPorts])))
	}
	if f[AFeatHighPorts] > 30 {
		parts = append(parts, fmt.Sprintf("Excessive high port usage (%d ports)", int(f[AFeatHighPorts])))
	}
	if f[AFeatUnknownRatio] > 0.5 {
		parts = append(parts, fmt.Sprintf("High ratio of unknown services (%.1f%%)", f[AFeatUnknownRatio]*100))
	}

	if len(parts) == 0 {
		return "Abnormal network behavior pattern detected"
	}
	return strings.Join(parts, "; ")
}
