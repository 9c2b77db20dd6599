// Package metrics defines observability hooks for the sync queue, the
// scheduler and the cycle state machine.
package metrics

import "time"

// FlushOutcome labels the result of a queue flush.
type FlushOutcome string

const (
	FlushSuccess FlushOutcome = "success"
	FlushFailure FlushOutcome = "failure"
)

// Recorder receives metric events. Implementations must be safe for concurrent use.
type Recorder interface {
	SetQueueDepth(n int)
	ObserveFlush(outcome FlushOutcome, ops int, d time.Duration)
	IncAlert(offset int)
	IncTransition(to string)
	IncRejected(reason string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) SetQueueDepth(int) {}
func (NoopRecorder) ObserveFlush(FlushOutcome, int, time.Duration) {}
func (NoopRecorder) IncAlert(int) {}
func (NoopRecorder) IncTransition(string) {}
func (NoopRecorder) IncRejected(string) {}
