package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	queueDepth    prom.Gauge
	flushTotal    *prom.CounterVec
	flushOps      prom.Counter
	flushDuration *prom.HistogramVec
	alerts        *prom.CounterVec
	transitions   *prom.CounterVec
	rejected      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		queueDepth: prom.NewGauge(prom.GaugeOpts{
			Namespace: "mealcycle",
			Name:      "sync_queue_depth",
			Help:      "Mutations waiting to reach the remote store",
		}),
		flushTotal: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mealcycle",
			Name:      "sync_flushes_total",
			Help:      "Queue flush attempts by outcome",
		}, []string{"outcome"}),
		flushOps: prom.NewCounter(prom.CounterOpts{
			Namespace: "mealcycle",
			Name:      "sync_flushed_operations_total",
			Help:      "Mutations applied to the remote store",
		}),
		flushDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mealcycle",
			Name:      "sync_flush_duration_seconds",
			Help:      "Duration of queue flushes",
			Buckets:   prom.DefBuckets,
		}, []string{"outcome"}),
		alerts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mealcycle",
			Name:      "alerts_emitted_total",
			Help:      "Reading-due alerts emitted by slot offset",
		}, []string{"offset"}),
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mealcycle",
			Name:      "cycle_transitions_total",
			Help:      "Cycle lifecycle transitions by target state",
		}, []string{"to"}),
		rejected: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mealcycle",
			Name:      "cycle_rejections_total",
			Help:      "Rejected cycle operations by reason",
		}, []string{"reason"}),
	}
	reg.MustRegister(pr.queueDepth, pr.flushTotal, pr.flushOps, pr.flushDuration, pr.alerts, pr.transitions, pr.rejected)
	reg.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return pr
}

// Handler serves the recorder's registry.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *PrometheusRecorder) SetQueueDepth(n int) {
	p.queueDepth.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveFlush(outcome FlushOutcome, ops int, d time.Duration) {
	p.flushTotal.WithLabelValues(string(outcome)).Inc()
	p.flushDuration.WithLabelValues(string(outcome)).Observe(d.Seconds())
	if outcome == FlushSuccess {
		p.flushOps.Add(float64(ops))
	}
}

func (p *PrometheusRecorder) IncAlert(offset int) {
	p.alerts.WithLabelValues(strconv.Itoa(offset)).Inc()
}

func (p *PrometheusRecorder) IncTransition(to string) {
	p.transitions.WithLabelValues(to).Inc()
}

func (p *PrometheusRecorder) IncRejected(reason string) {
	p.rejected.WithLabelValues(reason).Inc()
}
