// control/prometheus.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus export of sort call outcomes.

package control

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "parsort"
	subsystem = "engine"
)

// PrometheusObserver turns sort snapshots into Prometheus series.
type PrometheusObserver struct {
	sorts      *prometheus.CounterVec
	elements   prometheus.Counter
	partitions prometheus.Counter
	workItems  *prometheus.CounterVec
	duration   prometheus.Histogram
}

var _ Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver creates the collectors and registers them with reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		sorts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sorts_total",
			Help:      "Number of top-level sort calls by result.",
		}, []string{"result"}),
		elements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "elements_total",
			Help:      "Number of elements passed to sort calls.",
		}),
		partitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "partitions_total",
			Help:      "Number of parallel partition steps.",
		}),
		workItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "work_items_total",
			Help:      "Number of work items consumed, by consumer kind.",
		}, []string{"consumer"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sort_duration_seconds",
			Help:      "Wall-clock duration of sort calls.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{o.sorts, o.elements, o.partitions, o.workItems, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// ObserveSort records one call.
func (o *PrometheusObserver) ObserveSort(snap StatsSnapshot, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	o.sorts.WithLabelValues(result).Inc()
	o.elements.Add(float64(snap.Elements))
	o.partitions.Add(float64(snap.Partitions))
	o.workItems.WithLabelValues("worker").Add(float64(snap.PoppedByWorkers))
	o.workItems.WithLabelValues("helper").Add(float64(snap.PoppedByHelpers))
	o.duration.Observe(snap.Duration.Seconds())
}
