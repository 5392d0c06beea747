// Package workerpool provides a resizable pool of worker goroutines that
// consume tasks from a shared FIFO queue and report results through
// future handles, with support for per-worker stop signals, graceful or
// immediate shutdown, backpressure, and Prometheus metrics integration.
//
// Typical usage:
//
//	pool := workerpool.New(4)
//	defer pool.Close()
//
//	fut := pool.Submit(func(workerID int) (any, error) {
//	    return workerID * workerID, nil
//	})
//
//	v, err := fut.Get()
//	if err == nil {
//	    fmt.Println("result:", v)
//	}
//
// Every task receives the id of the worker executing it; extra inputs are
// bound by closure capture at submission time. Task errors and panics are
// captured on the returned Future and never disturb the worker loop.
//
// The pool can grow and shrink at runtime with Resize. Shrunk workers are
// signaled to stop and detached: they finish their current task, notice
// the signal, and retire on their own. Shutdown waits for all queued work
// to finish; ShutdownNow discards queued work and only waits for tasks
// already being executed.
//
// The queue is unbounded. Callers that need backpressure wrap the pool in
// a Bounded, which caps in-flight tasks with a resizable semaphore.
//
// This package is designed for production use: it is safe for concurrent
// submission, supports observability via Prometheus and log/slog, and
// allows graceful or immediate shutdown depending on the caller's delivery
// requirements.
package workerpool
