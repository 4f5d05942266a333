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

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Dig metric names
const (
	MetricNameDigsStarted        = "dig_started_total"
	MetricNameDigsCompleted      = "dig_completed_total"
	MetricNameDigsAbandoned      = "dig_abandoned_total"
	MetricNameItemsDug           = "dig_items_total"
	MetricNameMutations          = "dig_mutations_total"
	MetricNamePityTriggers       = "dig_pity_triggers_total"
	MetricNameShinyHits          = "dig_shiny_hits_total"
	MetricNameResolutionFailures = "dig_resolution_failures_total"
	MetricNameActiveSessions     = "dig_active_sessions"
	MetricNameMoundSlotsInUse    = "dig_mound_slots_in_use"
	MetricNameStaleCallbacks     = "dig_stale_callbacks_total"
	MetricNameGemsAwarded        = "dig_gems_awarded_total"
	MetricNameResolveDuration    = "dig_resolve_duration_seconds"

	MetricNameSSEClients       = "sse_clients"
	MetricNameSSEEventsDropped = "sse_events_dropped_total"

	MetricNameScheduledRuns = "scheduler_runs_total"
	MetricNameWorkerJobs    = "worker_jobs_total"
	MetricNameWorkerQueue   = "worker_queue_depth"
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

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Dig metric help text
const (
	HelpTextDigsStarted        = "Total number of digs started"
	HelpTextDigsCompleted      = "Total number of digs completed by result"
	HelpTextDigsAbandoned      = "Total number of digs abandoned before completion"
	HelpTextItemsDug           = "Total number of items dug by rarity"
	HelpTextMutations          = "Total number of mutated items by mutation id"
	HelpTextPityTriggers       = "Total number of pity-forced resolutions"
	HelpTextShinyHits          = "Total number of shiny spot overrides"
	HelpTextResolutionFailures = "Total number of failed dig resolutions by reason"
	HelpTextActiveSessions     = "Current number of dig sessions awaiting the minigame"
	HelpTextMoundSlotsInUse    = "Current number of reserved mound slots"
	HelpTextStaleCallbacks     = "Total number of scheduled callbacks skipped because their session ended"
	HelpTextGemsAwarded        = "Total gems awarded by dig completions"
	HelpTextResolveDuration    = "Dig resolution latency in seconds"

	HelpTextScheduledRuns = "Scheduled job ticks by job and outcome"
	HelpTextWorkerJobs    = "Background jobs processed by outcome"
	HelpTextWorkerQueue   = "Background jobs waiting for a worker"
)

// ============================================================================
// unmatchedRoute labels requests no chi route matched
const unmatchedRoute = "unmatched"

// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelRarity   = "rarity"
	LabelMutation = "mutation"
	LabelResult   = "result"
	LabelReason   = "reason"
	LabelJob      = "job"
)

// Label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
	ResultPanic   = "panic"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ResolveLatencyBuckets covers in-process resolution, 10µs to 50ms
var ResolveLatencyBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
