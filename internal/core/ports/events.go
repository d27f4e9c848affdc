package ports

// ProgressSink receives coarse pipeline progress events. Implementations
// must be safe for concurrent use; the pipeline calls Publish from the
// goroutine driving the run.
type ProgressSink interface {
	Publish(event ProgressEvent)
}

// ProgressEvent is one stage transition of a running assessment.
type ProgressEvent struct {
	AssessmentID string `json:"assessment_id"`
	Stage        string `json:"stage"`
	Detail       string `json:"detail,omitempty"`
	Count        int    `json:"count,omitempty"`
}
