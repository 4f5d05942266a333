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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Dig Metrics
var (
	DigsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDigsStarted,
			Help: HelpTextDigsStarted,
		},
	)

	DigsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDigsCompleted,
			Help: HelpTextDigsCompleted,
		},
		[]string{LabelResult},
	)

	DigsAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDigsAbandoned,
			Help: HelpTextDigsAbandoned,
		},
	)

	ItemsDug = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsDug,
			Help: HelpTextItemsDug,
		},
		[]string{LabelRarity},
	)

	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMutations,
			Help: HelpTextMutations,
		},
		[]string{LabelMutation},
	)

	PityTriggers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePityTriggers,
			Help: HelpTextPityTriggers,
		},
	)

	ShinyHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameShinyHits,
			Help: HelpTextShinyHits,
		},
	)

	ResolutionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResolutionFailures,
			Help: HelpTextResolutionFailures,
		},
		[]string{LabelReason},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	MoundSlotsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameMoundSlotsInUse,
			Help: HelpTextMoundSlotsInUse,
		},
	)

	StaleCallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStaleCallbacks,
			Help: HelpTextStaleCallbacks,
		},
	)

	GemsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGemsAwarded,
			Help: HelpTextGemsAwarded,
		},
	)

	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameResolveDuration,
			Help:    HelpTextResolveDuration,
			Buckets: ResolveLatencyBuckets,
		},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: "Connected event stream clients",
		},
	)

	SSEEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSSEEventsDropped,
			Help: "Stream events dropped because a buffer was full",
		},
		[]string{"reason"},
	)
)

// Scheduler Metrics
var (
	ScheduledRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScheduledRuns,
			Help: HelpTextScheduledRuns,
		},
		[]string{LabelJob, LabelResult},
	)

	WorkerJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWorkerJobs,
			Help: HelpTextWorkerJobs,
		},
		[]string{LabelResult},
	)

	WorkerQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWorkerQueue,
			Help: HelpTextWorkerQueue,
		},
	)
)
