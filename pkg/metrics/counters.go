package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SegmentCreates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "community",
		Name:      "segment_creates_total",
		Help:      "Committed segment creation cascades by level.",
	}, []string{"level"})

	SegmentUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "community",
		Name:      "segment_updates_total",
		Help:      "Committed segment updates by level.",
	}, []string{"level"})

	ActivityTypeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "community",
		Name:      "activity_type_mutations_total",
		Help:      "Custom activity-type configuration writes by operation.",
	}, []string{"operation"})
)
