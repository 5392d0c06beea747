package workerpool

import (
	"sync/atomic"
	"time"
)

// worker is one dispatch goroutine. Its stop flag is shared with the pool
// controller: the controller writes it, the worker reads it. The flag is
// held by pointer so a worker detached by Resize keeps observing it after
// the controller has forgotten the worker.
type worker struct {
	id   int
	pool *Pool
	stop *atomic.Bool
	done chan struct{} // closed when the worker retires; the join handle
}

// run is the dispatch loop: drain the queue while tasks are available and
// the stop flag is unset, otherwise park on the pool's wake condition until
// a task appears or a stop/drain signal fires.
func (w *worker) run() {
	defer close(w.done)

	p := w.pool
	t, ok := p.q.pop()

	for {
		for ok {
			w.execute(t)

			// A stopped worker abandons remaining work even if the queue
			// is non-empty; other workers (or a queue clear) handle it.
			if w.stop.Load() {
				return
			}
			t, ok = p.q.pop()
		}

		// Queue ran dry: park until woken. The pop is retried under the
		// shared lock so a push that signalled before we parked is never
		// missed.
		p.mu.Lock()
		p.waiting++
		p.setIdleGauge()
		for {
			t, ok = p.q.pop()
			if ok || p.draining.Load() || w.stop.Load() {
				break
			}
			p.cond.Wait()
		}
		p.waiting--
		p.setIdleGauge()
		p.mu.Unlock()

		// Woken with nothing to run means the wakeup was a stop or drain
		// notification: retire.
		if !ok {
			return
		}
	}
}

// execute runs one claimed task. Once claimed, a task always runs to
// completion, even if a pool-wide stop fires mid-execution.
func (w *worker) execute(t *task) {
	p := w.pool

	if h := p.opts.Hooks.OnStart; h != nil {
		h(w.id)
	}

	start := time.Now()
	err := t.invoke(w.id)

	if m := p.opts.Metrics; m != nil {
		m.TaskDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
		m.QueueDepth.WithLabelValues(p.name).Set(float64(p.q.size()))
		if err != nil {
			m.TasksFailed.WithLabelValues(p.name).Inc()
		} else {
			m.TasksCompleted.WithLabelValues(p.name).Inc()
		}
	}
	if err != nil && p.opts.Logger != nil {
		p.opts.Logger.Error("task failed", "pool", p.name, "worker", w.id, "err", err)
	}
	if h := p.opts.Hooks.OnFinish; h != nil {
		h(w.id, err)
	}
}

// WorkerHandle is the caller-visible handle to one worker, usable for
// out-of-band observation. It is not part of the dispatch contract.
type WorkerHandle struct {
	w *worker
}

// ID returns the worker's index at spawn time.
func (h *WorkerHandle) ID() int {
	return h.w.id
}

// Stopping reports whether the controller has asked this worker to retire.
func (h *WorkerHandle) Stopping() bool {
	return h.w.stop.Load()
}

// Done returns a channel that is closed once the worker has retired.
func (h *WorkerHandle) Done() <-chan struct{} {
	return h.w.done
}

// Retired reports whether the worker's dispatch loop has exited.
func (h *WorkerHandle) Retired() bool {
	select {
	case <-h.w.done:
		return true
	default:
		return false
	}
}
