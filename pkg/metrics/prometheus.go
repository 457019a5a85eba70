package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus collectors of one aggregation job.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	// Pass throughput
	filesProcessed prometheus.Counter
	recordsTotal   prometheus.Counter
	recordsClean   prometheus.Counter
	recordsDirty   prometheus.Counter
	batchRecords   prometheus.Histogram

	// Data quality
	missingFields *prometheus.CounterVec
	parseFailures prometheus.Counter

	// Pass outcome
	passDuration      prometheus.Gauge
	passLastUnix      prometheus.Gauge
	summarizeDuration prometheus.Gauge
	destinationCities prometheus.Gauge
	originCities      prometheus.Gauge

	// Generator
	generatedFiles   prometheus.Counter
	generatedRecords prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton for package-level helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // backing registry of globalManager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager. Without WithPrometheusRegistry
// it registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "flightstats",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.ExponentialBuckets(10, 4, 8),
		constLabels:      map[string]string{},
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.filesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "files_processed_total",
		Help:        "Corpus files fully decoded and folded",
		ConstLabels: labels,
	})

	m.recordsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_total",
		Help:        "Flight records seen, clean or dirty",
		ConstLabels: labels,
	})

	m.recordsClean = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_clean_total",
		Help:        "Flight records folded into the city indices",
		ConstLabels: labels,
	})

	m.recordsDirty = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "records_dirty_total",
		Help:        "Flight records rejected for missing fields",
		ConstLabels: labels,
	})

	m.batchRecords = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_records",
		Help:        "Number of records per corpus file",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.missingFields = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "missing_fields_total",
			Help:        "Absent or null record fields, by field name",
			ConstLabels: labels,
		},
		[]string{"field"},
	)

	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "parse_failures_total",
		Help:        "Corpus files rejected as structurally malformed",
		ConstLabels: labels,
	})

	m.passDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pass_duration_seconds",
		Help:        "Wall-clock duration of the last aggregation pass",
		ConstLabels: labels,
	})

	m.passLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pass_last_completed_unixtime",
		Help:        "Unix time the last aggregation pass completed",
		ConstLabels: labels,
	})

	m.summarizeDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "summarize_duration_seconds",
		Help:        "Wall-clock duration of the last summarization",
		ConstLabels: labels,
	})

	m.destinationCities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "destination_cities",
		Help:        "Distinct destination cities in the duration index",
		ConstLabels: labels,
	})

	m.originCities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "origin_cities",
		Help:        "Distinct origin cities in the departures index",
		ConstLabels: labels,
	})

	m.generatedFiles = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "generator",
		Name:        "files_written_total",
		Help:        "Synthetic corpus files written",
		ConstLabels: labels,
	})

	m.generatedRecords = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "generator",
		Name:        "records_written_total",
		Help:        "Synthetic flight records written",
		ConstLabels: labels,
	})
}

// ObserveBatch records one decoded file and its record count.
func (m *Manager) ObserveBatch(records int) {
	m.filesProcessed.Inc()
	m.recordsTotal.Add(float64(records))
	m.batchRecords.Observe(float64(records))
}

// RecordClean increments the folded records counter.
func (m *Manager) RecordClean() {
	m.recordsClean.Inc()
}

// RecordDirty counts a rejected record and each of its missing fields.
func (m *Manager) RecordDirty(fields []string) {
	m.recordsDirty.Inc()
	for _, f := range fields {
		m.missingFields.WithLabelValues(f).Inc()
	}
}

// RecordParseFailure increments the malformed file counter.
func (m *Manager) RecordParseFailure() {
	m.parseFailures.Inc()
}

// ObservePass records the outcome of a completed pass.
func (m *Manager) ObservePass(elapsed time.Duration, destinations, origins int) {
	m.passDuration.Set(elapsed.Seconds())
	m.passLastUnix.SetToCurrentTime()
	m.destinationCities.Set(float64(destinations))
	m.originCities.Set(float64(origins))
}

// ObserveSummarize records how long summarization took.
func (m *Manager) ObserveSummarize(elapsed time.Duration) {
	m.summarizeDuration.Set(elapsed.Seconds())
}

// RecordGeneratedFile counts one synthetic file of n records.
func (m *Manager) RecordGeneratedFile(records int) {
	m.generatedFiles.Inc()
	m.generatedRecords.Add(float64(records))
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteTextfile, path, err)
	}
	return nil
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Package-level helpers over the global manager.

// ObserveBatch records one decoded file on the global manager.
func ObserveBatch(records int) { globalManager.ObserveBatch(records) }

// RecordClean increments the global folded records counter.
func RecordClean() { globalManager.RecordClean() }

// RecordDirty counts a rejected record on the global manager.
func RecordDirty(fields []string) { globalManager.RecordDirty(fields) }

// RecordParseFailure increments the global malformed file counter.
func RecordParseFailure() { globalManager.RecordParseFailure() }

// ObservePass records a completed pass on the global manager.
func ObservePass(elapsed time.Duration, destinations, origins int) {
	globalManager.ObservePass(elapsed, destinations, origins)
}

// ObserveSummarize records summarization time on the global manager.
func ObserveSummarize(elapsed time.Duration) { globalManager.ObserveSummarize(elapsed) }

// RecordGeneratedFile counts a synthetic file on the global manager.
func RecordGeneratedFile(records int) { globalManager.RecordGeneratedFile(records) }

// WriteTextfile dumps the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// Default returns the global manager.
func Default() *Manager { return globalManager }

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
