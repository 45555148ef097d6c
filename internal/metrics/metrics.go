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
)

// Sync Metrics
var (
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRunsTotal,
			Help: HelpTextSyncRunsTotal,
		},
		[]string{LabelEntity, LabelStatus},
	)

	SyncRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSyncRunDuration,
			Help:    HelpTextSyncRunDuration,
			Buckets: SyncDurationBuckets,
		},
		[]string{LabelEntity},
	)

	SyncRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRecordsTotal,
			Help: HelpTextSyncRecordsTotal,
		},
		[]string{LabelEntity, LabelAction},
	)

	OrphansDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrphansDeletedTotal,
			Help: HelpTextOrphansDeletedTotal,
		},
		[]string{LabelEntity},
	)

	OrphanBatchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOrphanBatchFailures,
			Help: HelpTextOrphanBatchFailures,
		},
		[]string{LabelEntity},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUpstreamRequestsTotal,
			Help: HelpTextUpstreamRequestsTotal,
		},
		[]string{LabelSource, LabelStatus},
	)

	WincplItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWincplItemsTotal,
			Help: HelpTextWincplItemsTotal,
		},
		[]string{LabelType, LabelResult},
	)

	UnresolvedCustomFields = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameUnresolvedCustomFields,
			Help: HelpTextUnresolvedCustomFields,
		},
	)
)
