package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "diffgate"

// File outcomes
const (
	OutcomeAnalyzed = "analyzed"
	OutcomeDeleted  = "deleted"
	OutcomeSkipped  = "skipped"
)

// Metrics holds analysis collectors
type Metrics struct {
	// files counts processed files. Labels: outcome (analyzed, deleted, skipped)
	files *prometheus.CounterVec
	// changes counts changed units. Labels: classification
	changes *prometheus.CounterVec
	// score is the weighted score of the last run
	score prometheus.Gauge
	// duration measures a whole analysis run
	duration prometheus.Histogram
}

// New creates metrics registered on registerer
func New(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Total diff files processed by outcome",
		}, []string{"outcome"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_total",
			Help:      "Total changed code units by classification",
		}, []string{"classification"}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weighted_score",
			Help:      "Weighted score of the last analysis",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Analysis run duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
	for _, collector := range []prometheus.Collector{m.files, m.changes, m.score, m.duration} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// File records a processed file outcome
func (m *Metrics) File(outcome string) {
	if m == nil {
		return
	}
	m.files.WithLabelValues(outcome).Inc()
}

// Change records a changed unit
func (m *Metrics) Change(classification string) {
	if m == nil {
		return
	}
	m.changes.WithLabelValues(classification).Inc()
}

// Run records the score and duration of a finished run
func (m *Metrics) Run(score int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.score.Set(float64(score))
	m.duration.Observe(elapsed.Seconds())
}

// WriteFile writes gatherer in the text exposition format, for node exporter textfile collection
func WriteFile(path string, gatherer prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, gatherer)
}
