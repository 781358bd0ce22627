package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Vocabulary load sources
const (
	SourceMemory  = "memory"
	SourceCache   = "cache"
	SourceNetwork = "network"
	SourceFailed  = "failed"
)

// Metrics holds the Prometheus metrics for one validation run.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Validation metrics
	FindingsTotal *prometheus.CounterVec
	EntitiesTotal *prometheus.CounterVec
	BlocksTotal   *prometheus.CounterVec

	// Vocabulary metrics
	VocabularyLoadsTotal    *prometheus.CounterVec
	VocabularyFetchDuration prometheus.Histogram
	VocabularyDefinitions   *prometheus.GaugeVec

	// Run outcome
	ExitCode prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		FindingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schema_validator_findings_total",
				Help: "Total number of findings by rule id",
			},
			[]string{"rule"},
		),
		EntitiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schema_validator_entities_total",
				Help: "Total number of entities validated by type",
			},
			[]string{"type"},
		),
		BlocksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schema_validator_blocks_total",
				Help: "Total number of JSON-LD blocks by outcome",
			},
			[]string{"status"},
		),
		VocabularyLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schema_validator_vocabulary_loads_total",
				Help: "Total number of vocabulary loads by source",
			},
			[]string{"source"},
		),
		VocabularyFetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "schema_validator_vocabulary_fetch_duration_seconds",
				Help:    "Vocabulary download duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		VocabularyDefinitions: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "schema_validator_vocabulary_definitions",
				Help: "Number of vocabulary definitions loaded by kind",
			},
			[]string{"kind"},
		),
		ExitCode: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "schema_validator_exit_code",
				Help: "Exit status derived from the last finding",
			},
		),
	}

	registry.MustRegister(
		m.FindingsTotal,
		m.EntitiesTotal,
		m.BlocksTotal,
		m.VocabularyLoadsTotal,
		m.VocabularyFetchDuration,
		m.VocabularyDefinitions,
		m.ExitCode,
	)

	return m
}

// RecordFinding counts a finding
func (m *Metrics) RecordFinding(rule string) {
	if m == nil {
		return
	}
	m.FindingsTotal.WithLabelValues(rule).Inc()
}

// RecordEntity counts a validated entity
func (m *Metrics) RecordEntity(entityType string) {
	if m == nil {
		return
	}
	m.EntitiesTotal.WithLabelValues(entityType).Inc()
}

// RecordBlock counts a JSON-LD block as "ok" or "skipped"
func (m *Metrics) RecordBlock(status string) {
	if m == nil {
		return
	}
	m.BlocksTotal.WithLabelValues(status).Inc()
}

// RecordVocabularyLoad counts a vocabulary load by source
func (m *Metrics) RecordVocabularyLoad(source string) {
	if m == nil {
		return
	}
	m.VocabularyLoadsTotal.WithLabelValues(source).Inc()
}

// ObserveFetch records a vocabulary download duration
func (m *Metrics) ObserveFetch(seconds float64) {
	if m == nil {
		return
	}
	m.VocabularyFetchDuration.Observe(seconds)
}

// SetDefinitions records how many classes and properties were loaded
func (m *Metrics) SetDefinitions(classes, properties int) {
	if m == nil {
		return
	}
	m.VocabularyDefinitions.WithLabelValues("class").Set(float64(classes))
	m.VocabularyDefinitions.WithLabelValues("property").Set(float64(properties))
}

// SetExitCode records the run's exit status
func (m *Metrics) SetExitCode(code int) {
	if m == nil {
		return
	}
	m.ExitCode.Set(float64(code))
}

// WriteTextfile writes the registry in the node_exporter textfile format
func WriteTextfile(registry *prometheus.Registry, path string) error {
	if err := prometheus.WriteToTextfile(path, registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
