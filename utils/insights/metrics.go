package insights

import (
	"tweet-collector/pkg/observer"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tweet_collector"

func NewMetrics() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),
		collected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tweets_collected_total",
			Help:      "Tweets normalized across all fetch cycles",
		}),
		failedQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failed_queries_total",
			Help:      "Handle or keyword queries that could not be fetched",
		}),
		persisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tweets_persisted_total",
			Help:      "Upsert outcomes per record",
		}, []string{"outcome"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed fetch cycles",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Fetch cycle duration",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	metrics.registry.MustRegister(
		metrics.collected,
		metrics.failedQueries,
		metrics.persisted,
		metrics.runs,
		metrics.runDuration,
	)

	return metrics
}

func (metrics *Metrics) OnNotify(e observer.Event) {
	if e.E != observer.RunCompletedEvent {
		return
	}

	report := e.Report
	metrics.runs.Inc()
	metrics.collected.Add(float64(report.Collected))
	metrics.failedQueries.Add(float64(report.FailedQueries()))
	metrics.persisted.WithLabelValues("inserted").Add(float64(report.Saved.Inserted))
	metrics.persisted.WithLabelValues("updated").Add(float64(report.Saved.Updated))
	metrics.persisted.WithLabelValues("ignored").Add(float64(report.Saved.Ignored))
	metrics.persisted.WithLabelValues("failed").Add(float64(report.Saved.Failed))
	metrics.runDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
}
