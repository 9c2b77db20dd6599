package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.SetQueueDepth(3)
	r.ObserveFlush(FlushSuccess, 3, 20*time.Millisecond)
	r.ObserveFlush(FlushFailure, 2, 10*time.Millisecond)
	r.IncAlert(60)
	r.IncAlert(60)
	r.IncTransition("completed")
	r.IncRejected("window_expired")

	assert.Equal(t, 3.0, testutil.ToFloat64(r.queueDepth))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.flushTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.flushTotal.WithLabelValues("failure")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.flushOps), "failed flushes must not count applied ops")
	assert.Equal(t, 2.0, testutil.ToFloat64(r.alerts.WithLabelValues("60")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejected.WithLabelValues("window_expired")))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.SetQueueDepth(1)
	r.ObserveFlush(FlushSuccess, 1, time.Second)
	r.IncAlert(5)
	r.IncTransition("abandoned")
	r.IncRejected("too_early")
}
