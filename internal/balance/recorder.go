package balance

// Fetch kinds reported to a Recorder.
const (
	KindNative = "native"
	KindToken  = "token"
)

// Fetch outcomes reported to a Recorder.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Recorder observes fetch outcomes, typically to export metrics.
type Recorder interface {
	RecordFetch(chain, kind, status string)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) RecordFetch(string, string, string) {}
