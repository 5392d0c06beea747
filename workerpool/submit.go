package workerpool

import "fmt"

// Task is a unit of work. The workerID argument is the index of the worker
// executing it (or the caller-chosen id when run through Pop). Any extra
// inputs are bound by closure capture at submission time; captured pointers
// and references must outlive the task's execution.
type Task func(workerID int) (any, error)

// task pairs a callable with the completion slot its submitter holds. It is
// owned by the queue from push until a worker pops it, then by that worker
// until invoke returns. invoke must be called at most once.
type task struct {
	fn  Task
	fut *Future
}

// invoke runs the callable and resolves the future with its outcome. A
// panic in the callable is captured into the future's error slot instead of
// unwinding into the worker loop.
func (t *task) invoke(workerID int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panic: %v", r)
			t.fut.resolve(nil, err)
		}
	}()

	var value any
	value, err = t.fn(workerID)
	t.fut.resolve(value, err)
	return err
}

// Submit enqueues fn and returns a Future for its result without waiting
// for execution. The queue is unbounded, so Submit never blocks; callers
// that need backpressure should wrap the pool in a Bounded.
//
// Submitting to a draining pool is accepted but pointless: the task may
// never be picked up, in which case its Future never resolves. Once the
// pool has fully stopped the task is not even queued, since nothing would
// ever drain it; the Future is returned unresolved.
func (p *Pool) Submit(fn Task) *Future {
	fut := newFuture()

	if p.terminated.Load() {
		return fut
	}

	if h := p.opts.Hooks.OnSubmit; h != nil {
		h()
	}
	if m := p.opts.Metrics; m != nil {
		m.TasksSubmitted.WithLabelValues(p.name).Inc()
	}

	p.q.push(&task{fn: fn, fut: fut})
	if m := p.opts.Metrics; m != nil {
		m.QueueDepth.WithLabelValues(p.name).Set(float64(p.q.size()))
	}

	// Wake one parked worker, if any.
	p.mu.Lock()
	p.cond.Signal()
	p.mu.Unlock()

	return fut
}
