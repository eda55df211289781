/*
Package metrics exposes Triggr's runtime counters over Prometheus,
mirroring the teacher's metrics package: package-level collectors
registered once in init, a Handler for embedding in pkg/api, and a
Timer helper for histogram observations.
*/
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EventsDecodedTotal counts successful decodes by contract address.
	EventsDecodedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triggr_events_decoded_total",
			Help: "Total number of chain events successfully decoded, by contract address",
		},
		[]string{"contract"},
	)

	// EventsDecodeFailedTotal counts payloads that matched no declared event.
	EventsDecodeFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triggr_events_decode_failed_total",
			Help: "Total number of chain events that failed to decode against any declared event",
		},
		[]string{"contract"},
	)

	DecodeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triggr_decode_duration_seconds",
			Help:    "Time taken to trial-decode one event payload",
			Buckets: prometheus.DefBuckets,
		},
	)

	// TriggersFiredTotal counts execute_trigger invocations by trigger id.
	TriggersFiredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triggr_triggers_fired_total",
			Help: "Total number of times a trigger's rules were evaluated against a matching event",
		},
		[]string{"trigger_id"},
	)

	// ActionsExecutedTotal counts individual actions by kind and outcome.
	ActionsExecutedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triggr_actions_executed_total",
			Help: "Total number of actions executed, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	TriggerExecutionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triggr_trigger_execution_duration_seconds",
			Help:    "Time taken to run execute_trigger to completion",
			Buckets: prometheus.DefBuckets,
		},
	)

	// DispatchQueueDepth tracks the ingestion channel's current backlog.
	DispatchQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "triggr_dispatch_queue_depth",
			Help: "Current number of decoded events waiting in the dispatch channel",
		},
	)

	// PubsubSubscribersTotal tracks active subscriber counts by topic.
	PubsubSubscribersTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "triggr_pubsub_subscribers_total",
			Help: "Current number of active subscribers, by topic",
		},
		[]string{"topic"},
	)

	PubsubPublishDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triggr_pubsub_publish_dropped_total",
			Help: "Total number of publications skipped because a subscriber's buffer was full",
		},
		[]string{"topic"},
	)

	DocumentMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triggr_document_mutations_total",
			Help: "Total number of document store mutations, by collection and kind",
		},
		[]string{"collection", "kind"},
	)

	ProjectsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "triggr_projects_total",
			Help: "Total number of registered projects",
		},
	)

	TriggersTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "triggr_triggers_total",
			Help: "Total number of stored triggers, by active state",
		},
		[]string{"active"},
	)
)

func init() {
	prometheus.MustRegister(EventsDecodedTotal)
	prometheus.MustRegister(EventsDecodeFailedTotal)
	prometheus.MustRegister(DecodeDuration)
	prometheus.MustRegister(TriggersFiredTotal)
	prometheus.MustRegister(ActionsExecutedTotal)
	prometheus.MustRegister(TriggerExecutionDuration)
	prometheus.MustRegister(DispatchQueueDepth)
	prometheus.MustRegister(PubsubSubscribersTotal)
	prometheus.MustRegister(PubsubPublishDroppedTotal)
	prometheus.MustRegister(DocumentMutationsTotal)
	prometheus.MustRegister(ProjectsTotal)
	prometheus.MustRegister(TriggersTotal)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer times a single operation for later observation into a histogram.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time into histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDurationVec records the elapsed time into a labeled histogram.
func (t *Timer) ObserveDurationVec(histogram *prometheus.HistogramVec, labelValues ...string) {
	histogram.WithLabelValues(labelValues...).Observe(time.Since(t.start).Seconds())
}
