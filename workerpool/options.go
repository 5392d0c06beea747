package workerpool

import "log/slog"

// Hooks let you observe pool lifecycle events. All hooks are optional and
// must be fast; they run inline on the submitting or executing goroutine.
type Hooks struct {
	// OnSubmit runs when a task is accepted, before it is queued.
	OnSubmit func()
	// OnStart runs on the worker goroutine just before task execution.
	OnStart func(workerID int)
	// OnFinish runs on the worker goroutine after the task's future has
	// been resolved. err is the task's error, or the captured panic.
	OnFinish func(workerID int, err error)
}

// Options configure the pool.
type Options struct {
	// Name labels the pool in metrics and logs. Defaults to "pool".
	Name string
	// Metrics enables Prometheus instrumentation when non-nil.
	Metrics *Metrics
	// Logger receives task failures and lifecycle events when non-nil.
	Logger *slog.Logger
	// Hooks observe submission and execution.
	Hooks Hooks
}
