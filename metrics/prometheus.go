package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "orffinder"

// Query outcomes.
const (
	OutcomeHit   = "hit"
	OutcomeEmpty = "empty"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "queries",
		Name:      "total",
		Help:      "Count of find queries by outcome",
	}, []string{"outcome"})
	queryDurations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "queries",
		Name:      "duration_seconds",
		Help:      "Time spent answering find queries",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
	})
	resultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "queries",
		Name:      "results_total",
		Help:      "Count of substrings returned by find queries",
	})

	indexBuildDurations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "index",
		Name:      "build_duration_seconds",
		Help:      "Time spent building the forward and backward tries",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	})
	trieNodes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "index",
		Name:      "trie_nodes",
		Help:      "Number of nodes in each trie of the loaded index",
	}, []string{"direction"})
)

// Outcome classifies a query by its result count.
func Outcome(results int) string {
	if results == 0 {
		return OutcomeEmpty
	}
	return OutcomeHit
}

// ObserveQuery records one answered query with s and Prometheus.
// s may be nil.
func ObserveQuery(s *Scope, d time.Duration, results int) {
	outcome := Outcome(results)
	queriesTotal.WithLabelValues(outcome).Inc()
	queryDurations.Observe(d.Seconds())
	resultsTotal.Add(float64(results))

	if s == nil {
		return
	}
	tags := Tags{"outcome": outcome}
	s.Count("queries", 1, tags)
	s.Count("queries.results", int64(results))
	s.Timing("queries.duration", d, tags)
}

// ObserveIndex records the cost and size of a freshly built index.
// s may be nil.
func ObserveIndex(s *Scope, d time.Duration, forwardNodes, backwardNodes int) {
	indexBuildDurations.Observe(d.Seconds())
	trieNodes.WithLabelValues("forward").Set(float64(forwardNodes))
	trieNodes.WithLabelValues("backward").Set(float64(backwardNodes))

	if s == nil {
		return
	}
	s.Timing("index.build", d)
	s.Gauge("index.trie_nodes", float64(forwardNodes), Tags{"direction": "forward"})
	s.Gauge("index.trie_nodes", float64(backwardNodes), Tags{"direction": "backward"})
}
