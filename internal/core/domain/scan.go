package domain

import "time"

// PortState mirrors the scanner's notion of a port state.
const (
	PortOpen     = "open"
	PortClosed   = "closed"
	PortFiltered = "filtered"
)

// PortInfo describes one scanned port on a host.
type PortInfo struct {
	State   string `json:"state"`
	Service string `json:"name"` // service name as reported by the scanner
	Product string `json:"product,omitempty"`
	Version string `json:"version,omitempty"`
}

// OSGuess is the scanner's best operating-system estimate for a host.
type OSGuess struct {
	Name     string `json:"name"`
	Accuracy int    `json:"accuracy,omitempty"`
}

// ScanHost is one host from the external scanner's result document.
// Ports are keyed protocol -> port number -> info. The whole structure is
// read-only input; missing fields default to their zero values.
type ScanHost struct {
	Address   string                   `json:"address"`
	Protocols map[string]map[int]PortInfo `json:"protocols"`
	OS        OSGuess                  `json:"os"`
}

// ScanResult is the full scan document handed over by the scanner collaborator.
type ScanResult struct {
	Target    string              `json:"target,omitempty"`
	StartedAt time.Time           `json:"started_at,omitempty"`
	Hosts     map[string]ScanHost `json:"hosts"`
}

// OpenPortCount counts ports in the open state across all protocols.
func (h ScanHost) OpenPortCount() int {
	n := 0
	for _, ports := range h.Protocols {
		for _, info := range ports {
			if info.State == PortOpen {
				n++
			}
		}
	}
	return n
}
