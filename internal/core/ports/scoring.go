package ports

// ThreatModel scores a host feature vector on the 0-10 threat scale.
// The deterministic weighted heuristic is the default implementation; a
// trained model can be plugged in behind this interface without touching
// the pipeline.
type ThreatModel interface {
	Score(features []float64) float64
}

// AnomalyModel scores a host feature vector on the 0-1 anomaly scale.
// Fitted implementations report Ready() == true once a baseline exists;
// the detector falls back to the threshold heuristic otherwise.
type AnomalyModel interface {
	Score(features []float64) float64
	Ready() bool
}
