package workerpool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for worker pools. One Metrics bundle
// can be shared by several pools; series are labeled by pool name.
type Metrics struct {
	TasksSubmitted *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	TasksDiscarded *prometheus.CounterVec
	TaskDuration   *prometheus.HistogramVec
	QueueDepth     *prometheus.GaugeVec
	IdleWorkers    *prometheus.GaugeVec
	WorkerCount    *prometheus.GaugeVec
}

// NewMetrics creates and registers all pool metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates all pool metrics and registers them with
// reg. Useful for tests and for applications with their own registry.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threadpool_tasks_submitted_total",
				Help: "Total number of tasks submitted to the pool",
			},
			[]string{"pool_name"},
		),
		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threadpool_tasks_completed_total",
				Help: "Total number of tasks that completed successfully",
			},
			[]string{"pool_name"},
		),
		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threadpool_tasks_failed_total",
				Help: "Total number of tasks that returned an error or panicked",
			},
			[]string{"pool_name"},
		),
		TasksDiscarded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "threadpool_tasks_discarded_total",
				Help: "Total number of queued tasks discarded by an immediate stop",
			},
			[]string{"pool_name"},
		),
		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "threadpool_task_duration_seconds",
				Help:    "Task execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),
		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "threadpool_queue_depth",
				Help: "Current number of tasks waiting in the queue",
			},
			[]string{"pool_name"},
		),
		IdleWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "threadpool_idle_workers",
				Help: "Current number of workers parked with no task",
			},
			[]string{"pool_name"},
		),
		WorkerCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "threadpool_worker_count",
				Help: "Current number of managed workers",
			},
			[]string{"pool_name"},
		),
	}
}
