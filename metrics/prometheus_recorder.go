package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg              *prom.Registry
	providerAttempts *prom.CounterVec
	providerDuration *prom.HistogramVec
	stageDuration    *prom.HistogramVec
	reviewOutcomes   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the collectors on reg (a fresh registry
// when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		providerAttempts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "readme_genie",
			Name:      "provider_attempts_total",
			Help:      "Provider attempts by provider, stage and outcome",
		}, []string{"provider", "stage", "outcome"}),
		providerDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "readme_genie",
			Name:      "provider_call_duration_seconds",
			Help:      "Duration of individual provider calls",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"provider", "stage"}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "readme_genie",
			Name:      "stage_duration_seconds",
			Help:      "Duration of generation stages including fallback",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		reviewOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "readme_genie",
			Name:      "review_outcomes_total",
			Help:      "Review sessions by final outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.providerAttempts, pr.providerDuration, pr.stageDuration, pr.reviewOutcomes)
	return pr
}

// Registry exposes the underlying registry for gathering.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) IncProviderAttempt(provider, stage string, outcome Outcome) {
	p.providerAttempts.WithLabelValues(provider, stage, string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveProviderDuration(provider, stage string, d time.Duration) {
	p.providerDuration.WithLabelValues(provider, stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncReviewOutcome(outcome string) {
	p.reviewOutcomes.WithLabelValues(outcome).Inc()
}

// WriteTextfile dumps the registry in the text exposition format, suitable for the
// node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
