package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Meet program exchange metrics
var (
	ConfigIngestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConfigIngestsTotal,
			Help: HelpTextConfigIngestsTotal,
		},
		[]string{LabelFile, LabelResult},
	)

	SnapshotWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotWritesTotal,
			Help: HelpTextSnapshotWritesTotal,
		},
		[]string{LabelResult},
	)

	SnapshotWriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSnapshotWriteDuration,
			Help:    HelpTextSnapshotWriteDuration,
			Buckets: FileWriteBuckets,
		},
	)

	HeartbeatWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHeartbeatWritesTotal,
			Help: HelpTextHeartbeatWritesTotal,
		},
		[]string{LabelResult},
	)
)

// Business Metrics
var (
	ResultsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResultsSubmitted,
			Help: HelpTextResultsSubmitted,
		},
		[]string{LabelKind},
	)

	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAuthAttemptsTotal,
			Help: HelpTextAuthAttemptsTotal,
		},
		[]string{LabelResult},
	)

	PendingFilesServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePendingFilesServed,
			Help: HelpTextPendingFilesServed,
		},
	)

	ReceiptsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReceiptsRecorded,
			Help: HelpTextReceiptsRecorded,
		},
	)

	CredentialCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCredentialCache,
			Help: HelpTextCredentialCache,
		},
		[]string{LabelResult},
	)
)
