package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"attrition/internal/models"
)

var (
	predictionOutcomeDesc = prometheus.NewDesc(
		"attrition_predictions_total",
		"Total attrition assessments by outcome",
		[]string{"outcome"},
		nil,
	)
)

// OutcomeStore persists outcome counts across restarts.
type OutcomeStore interface {
	IncrementOutcome(ctx context.Context, outcome string) error
	GetOutcomeCounts(ctx context.Context) ([]models.OutcomeCount, error)
}

// OutcomeCollector is a custom Prometheus collector that reads outcome counts
// from the store on each scrape.
type OutcomeCollector struct {
	store OutcomeStore
}

// Describe sends the metric descriptor to the channel.
func (c *OutcomeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- predictionOutcomeDesc
}

// Collect queries the store for all outcome counts and emits them as counters.
func (c *OutcomeCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.store.GetOutcomeCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect prediction outcome metrics", "error", err)
		return
	}
	for _, oc := range counts {
		ch <- prometheus.MustNewConstMetric(
			predictionOutcomeDesc,
			prometheus.CounterValue,
			float64(oc.Count),
			oc.Outcome,
		)
	}
}

// Recorder records assessment outcomes and scoring latency.
type Recorder struct {
	store    OutcomeStore           // nil keeps counts in outcomes
	outcomes *prometheus.CounterVec // in-memory counts when store is nil
	duration prometheus.Histogram
}

// New registers the recorder's collectors with reg. When store is nil the
// outcome counts live in process memory.
func New(reg prometheus.Registerer, store OutcomeStore) *Recorder {
	r := &Recorder{
		store: store,
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "attrition_prediction_duration_seconds",
			Help:    "Time spent encoding and scoring one assessment",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	reg.MustRegister(r.duration)

	if store != nil {
		reg.MustRegister(&OutcomeCollector{store: store})
	} else {
		r.outcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attrition_predictions_total",
			Help: "Total attrition assessments by outcome",
		}, []string{"outcome"})
		reg.MustRegister(r.outcomes)
	}
	return r
}

// RecordOutcome counts one assessment outcome. Store writes happen in the
// background so a slow database never delays the page.
func (r *Recorder) RecordOutcome(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.duration.Observe(elapsed.Seconds())

	if r.store == nil {
		r.outcomes.WithLabelValues(outcome).Inc()
		return
	}
	go func() {
		if err := r.store.IncrementOutcome(context.Background(), outcome); err != nil {
			slog.Error("failed to record prediction outcome", "outcome", outcome, "error", err)
		}
	}()
}
