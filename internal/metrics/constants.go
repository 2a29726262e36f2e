package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Meet program exchange metric names
const (
	MetricNameConfigIngestsTotal    = "meet_config_ingests_total"
	MetricNameSnapshotWritesTotal   = "race_snapshot_writes_total"
	MetricNameSnapshotWriteDuration = "race_snapshot_write_duration_seconds"
	MetricNameHeartbeatWritesTotal  = "heartbeat_writes_total"
)

// Business metric names
const (
	MetricNameResultsSubmitted   = "results_submitted_total"
	MetricNameAuthAttemptsTotal  = "sync_auth_attempts_total"
	MetricNamePendingFilesServed = "sync_pending_files_served_total"
	MetricNameReceiptsRecorded   = "sync_receipts_recorded_total"
	MetricNameCredentialCache    = "sync_credential_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Meet program exchange metric help text
const (
	HelpTextConfigIngestsTotal    = "Meet config file parses by file and result"
	HelpTextSnapshotWritesTotal   = "Race snapshot file writes by result"
	HelpTextSnapshotWriteDuration = "Time spent scanning and writing one race snapshot"
	HelpTextHeartbeatWritesTotal  = "Heartbeat file writes by result"
)

// Business metric help text
const (
	HelpTextResultsSubmitted   = "Result mutations by kind"
	HelpTextAuthAttemptsTotal  = "Relay credential checks by result"
	HelpTextPendingFilesServed = "Race files handed to relay agents"
	HelpTextReceiptsRecorded   = "New sync receipts recorded"
	HelpTextCredentialCache    = "Access code lookups answered from the credential cache, by outcome"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelFile   = "file"
	LabelResult = "result"
	LabelKind   = "kind"
)

// Label values
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultRejected  = "rejected"
	ResultThrottled = "throttled"
	ResultHit       = "hit"
	ResultMiss      = "miss"

	KindTime       = "time"
	KindDQ         = "dq"
	KindDQRevision = "dq_revision"
	KindCorrection = "correction"

	// PathUnmatched labels requests no route matched
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// FileWriteBuckets covers local disk writes, 100µs to 1s.
var FileWriteBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
