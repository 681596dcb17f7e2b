package metrics

import "time"

// Outcome enumerates provider attempt results for counters.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeTimeout Outcome = "timeout"
	OutcomeEmpty   Outcome = "empty"
	OutcomeError   Outcome = "error"
)

// Recorder receives generation and review observations. NoopRecorder is the default when
// no metrics file is requested.
type Recorder interface {
	IncProviderAttempt(provider, stage string, outcome Outcome)
	ObserveProviderDuration(provider, stage string, d time.Duration)
	ObserveStageDuration(stage string, d time.Duration)
	IncReviewOutcome(outcome string) // approved_all|discarded_all|manual|auto|empty
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncProviderAttempt(string, string, Outcome) {}
func (NoopRecorder) ObserveProviderDuration(string, string, time.Duration) {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncReviewOutcome(string) {}
