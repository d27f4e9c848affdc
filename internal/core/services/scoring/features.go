package scoring

import (
	"strings"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// Threat feature vector layout. Order is fixed; the weight table in the
// threat detector is indexed by these positions.
const (
	FeatOpenPorts = iota
	FeatHighRiskServices
	FeatOutdatedSoftware
	FeatUnusualPortCombo
	FeatOSRisk
	FeatMissingVersions
	FeatCriticalPorts
	ThreatFeatureCount
)

// Anomaly feature vector layout.
const (
	AFeatTotalPorts = iota
	AFeatTCPPorts
	AFeatUDPPorts
	AFeatUniqueServices
	AFeatHighPorts
	AFeatLowPorts
	AFeatUnknownRatio
	AnomalyFeatureCount
)

var highRiskServices = []string{"ftp", "telnet", "smb", "rdp", "vnc"}

// legacyVersionPrefixes flag well-known end-of-life version strings.
var legacyVersionPrefixes = []string{"5.", "6.", "2.2", "1.0"}

var criticalPorts = map[int]bool{445: true, 3389: true, 22: true, 23: true, 21: true}

// ExtractThreatFeatures derives the fixed numeric feature vector for one
// host. Pure and total: incomplete scan data contributes zeros.
func ExtractThreatFeatures(host domain.ScanHost) []float64 {
	f := make([]float64, ThreatFeatureCount)

	distinctPorts := make(map[int]bool)

	for _, ports := range host.Protocols {
		for port, info := range ports {
			distinctPorts[port] = true

			if info.State == domain.PortOpen {
				f[FeatOpenPorts]++
				if criticalPorts[port] {
					f[FeatCriticalPorts]++
				}
			}

			name := strings.ToLower(info.Service)
			for _, svc := range highRiskServices {
				if strings.Contains(name, svc) {
					f[FeatHighRiskServices]++
					break
				}
			}

			if info.Version == "" {
				f[FeatMissingVersions]++
			} else if f[FeatOutdatedSoftware] == 0 {
				for _, prefix := range legacyVersionPrefixes {
					if strings.Contains(info.Version, prefix) {
						f[FeatOutdatedSoftware] = 1
						break
					}
				}
			}
		}
	}

	if len(distinctPorts) > 20 {
		f[FeatUnusualPortCombo] = 1
	}

	f[FeatOSRisk] = osRiskClass(host.OS.Name)

	return f
}

// osRiskClass: 0 unknown, 1 linux, 2 windows, 3 anything else named.
func osRiskClass(osName string) float64 {
	name := strings.ToLower(osName)
	switch {
	case strings.Contains(name, "windows"):
		return 2
	case strings.Contains(name, "linux"):
		return 1
	case name == "" || name == "unknown":
		return 0
	default:
		return 3
	}
}

// ExtractAnomalyFeatures derives the anomaly feature vector for one host.
func ExtractAnomalyFeatures(host domain.ScanHost) []float64 {
	f := make([]float64, AnomalyFeatureCount)

	unique := make(map[string]bool)
	unknown := 0.0
	total := 0.0

	for proto, ports := range host.Protocols {
		count := float64(len(ports))
		f[AFeatTotalPorts] += count
		switch proto {
		case "tcp":
			f[AFeatTCPPorts] = count
		case "udp":
			f[AFeatUDPPorts] = count
		}

		for port, info := range ports {
			name := info.Service
			if name == "" {
				name = "unknown"
			}
			unique[name] = true

			total++
			if name == "unknown" {
				unknown++
			}

			if port > 1024 {
				f[AFeatHighPorts]++
			} else {
				f[AFeatLowPorts]++
			}
		}
	}

	f[AFeatUniqueServices] = float64(len(unique))
	if total > 0 {
		f[AFeatUnknownRatio] = unknown / total
	}

	return f
}
