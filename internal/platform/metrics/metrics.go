package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters exported on /metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// resolved rates by winning source (identity/primary/secondary/offline)
	RateResolutionsTotal *prometheus.CounterVec
	// resolutions where nothing produced a rate
	RateUnavailableTotal prometheus.Counter
	// soft failures of remote providers
	ProviderFailuresTotal *prometheus.CounterVec
	RateResolveDuration   prometheus.Histogram

	// conversions by status (success/invalid_input/rate_unavailable/error)
	ConversionsTotal *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RateResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_rate_resolutions_total",
				Help: "Resolved exchange rates by the source that produced them",
			},
			[]string{"source"},
		),
		RateUnavailableTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fx_rate_unavailable_total",
				Help: "Resolutions where no source knew the currency pair",
			},
		),
		ProviderFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_provider_failures_total",
				Help: "Remote provider calls that failed and fell through to the next source",
			},
			[]string{"provider"},
		),
		RateResolveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fx_rate_resolve_duration_seconds",
				Help:    "Time spent resolving one exchange rate",
				Buckets: prometheus.DefBuckets,
			},
		),
		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_conversions_total",
				Help: "Conversion requests by outcome",
			},
			[]string{"status"},
		),
	}
}

func (m *Metrics) ObserveResolution(source string, startedAt time.Time) {
	if m == nil {
		return
	}
	m.RateResolutionsTotal.WithLabelValues(source).Inc()
	m.RateResolveDuration.Observe(time.Since(startedAt).Seconds())
}

func (m *Metrics) ObserveUnavailable(startedAt time.Time) {
	if m == nil {
		return
	}
	m.RateUnavailableTotal.Inc()
	m.RateResolveDuration.Observe(time.Since(startedAt).Seconds())
}

func (m *Metrics) ProviderFailed(provider string) {
	if m == nil {
		return
	}
	m.ProviderFailuresTotal.WithLabelValues(provider).Inc()
}

func (m *Metrics) ConversionDone(status string) {
	if m == nil {
		return
	}
	m.ConversionsTotal.WithLabelValues(status).Inc()
}
