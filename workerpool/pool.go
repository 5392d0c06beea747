package workerpool

import (
	"sync"
	"sync/atomic"
)

// State is the pool's lifecycle state.
type State int

const (
	// StateRunning accepts submissions and resizes.
	StateRunning State = iota
	// StateDraining runs queued tasks to completion but rejects resizes.
	StateDraining
	// StateStopped is terminal; the pool cannot be resized or restarted.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Pool owns the task queue and the worker set. It is the only component
// that spawns or retires workers, and it drives the shutdown state machine.
//
// Resize, Shutdown, and ShutdownNow serialize against each other; shutdown
// calls are idempotent. Once stopped, a pool cannot be restarted; create a
// new one instead.
type Pool struct {
	name string
	opts Options

	q *taskQueue

	// mu guards cond, waiting, and the worker registry. It is also the
	// lock workers park under.
	mu      sync.Mutex
	cond    *sync.Cond
	waiting int
	workers []*worker

	// lifecycle serializes Resize/Shutdown/ShutdownNow.
	lifecycle sync.Mutex

	draining   atomic.Bool // drain-stop requested
	stopping   atomic.Bool // immediate-stop requested
	terminated atomic.Bool // shutdown finished; terminal

	term     chan struct{} // closed once the pool has fully stopped
	termOnce sync.Once
}

// New creates a pool with the given number of workers. Zero workers is
// valid: tasks queue up until Resize adds workers or Pop drains them
// manually.
func New(workers int) *Pool {
	return NewWithOptions(workers, Options{})
}

// NewWithOptions creates a pool with the given worker count and options.
func NewWithOptions(workers int, opts Options) *Pool {
	if opts.Name == "" {
		opts.Name = "pool"
	}
	if workers < 0 {
		workers = 0
	}

	p := &Pool{
		name: opts.Name,
		opts: opts,
		q:    newTaskQueue(),
		term: make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)

	p.mu.Lock()
	for i := 0; i < workers; i++ {
		p.workers = append(p.workers, p.spawn(i))
	}
	p.setWorkerGauge(len(p.workers))
	p.mu.Unlock()

	return p
}

// spawn starts one worker goroutine with a fresh, unset stop flag.
func (p *Pool) spawn(id int) *worker {
	w := &worker{
		id:   id,
		pool: p,
		stop: new(atomic.Bool),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

// Resize changes the worker count to n. Growing appends new workers at
// increasing indices. Shrinking signals the highest-indexed workers to stop
// and detaches them: they retire on their own once they notice the flag,
// without the pool waiting for them.
//
// Resize is a no-op once the pool is draining or stopped. Overlapping
// Resize calls must be serialized by the caller's coordination path; the
// pool only guarantees Resize does not race its own shutdown.
func (p *Pool) Resize(n int) {
	if n < 0 {
		n = 0
	}

	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	if p.draining.Load() || p.stopping.Load() {
		return
	}

	p.mu.Lock()
	cur := len(p.workers)
	if n >= cur {
		for i := cur; i < n; i++ {
			p.workers = append(p.workers, p.spawn(i))
		}
	} else {
		for i := cur - 1; i >= n; i-- {
			p.workers[i].stop.Store(true)
			p.workers[i] = nil
		}
		p.workers = p.workers[:n]
		// Wake everyone so detached workers parked on the condition
		// notice their flag promptly.
		p.cond.Broadcast()
	}
	p.setWorkerGauge(len(p.workers))
	p.mu.Unlock()

	if l := p.opts.Logger; l != nil {
		l.Debug("pool resized", "pool", p.name, "workers", n)
	}
}

// Shutdown stops the pool after all queued tasks have run (drain mode). It
// blocks until every managed worker has retired. Calling it again, or after
// ShutdownNow, is a no-op.
func (p *Pool) Shutdown() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	if p.draining.Load() || p.stopping.Load() {
		return
	}
	p.draining.Store(true)

	p.mu.Lock()
	workers := p.workers
	p.cond.Broadcast()
	p.mu.Unlock()

	for _, w := range workers {
		<-w.done
	}

	// Tasks pushed after the last worker's final empty-queue check would
	// otherwise linger unexecuted; drop them.
	p.discard()
	p.finish()
}

// ShutdownNow stops the pool immediately: every worker's stop flag is set,
// all queued-but-unexecuted tasks are discarded (their futures never
// resolve), and the call blocks until in-flight tasks finish and every
// managed worker has retired. A task a worker has already claimed always
// runs to completion. Calling ShutdownNow again is a no-op.
func (p *Pool) ShutdownNow() {
	p.lifecycle.Lock()
	defer p.lifecycle.Unlock()

	if p.stopping.Load() || p.terminated.Load() {
		return
	}
	p.stopping.Store(true)

	p.mu.Lock()
	workers := p.workers
	for _, w := range workers {
		w.stop.Store(true)
	}
	p.mu.Unlock()

	p.discard()

	p.mu.Lock()
	p.cond.Broadcast()
	p.mu.Unlock()

	for _, w := range workers {
		<-w.done
	}

	// A submit racing the first clear may have slipped a task in.
	p.discard()
	p.finish()
}

// Close drains and stops the pool, mirroring the guarantee that destroying
// the pool runs all previously submitted tasks. It always returns nil and
// exists so a Pool can sit behind an io.Closer.
func (p *Pool) Close() error {
	p.Shutdown()
	return nil
}

// discard drops all queued tasks, counting them as discarded.
func (p *Pool) discard() {
	n := p.q.clear()
	if m := p.opts.Metrics; m != nil {
		if n > 0 {
			m.TasksDiscarded.WithLabelValues(p.name).Add(float64(n))
		}
		m.QueueDepth.WithLabelValues(p.name).Set(0)
	}
	if n > 0 && p.opts.Logger != nil {
		p.opts.Logger.Debug("discarded queued tasks", "pool", p.name, "count", n)
	}
}

// finish clears the registry and marks the pool terminally stopped.
func (p *Pool) finish() {
	p.mu.Lock()
	p.workers = nil
	p.setWorkerGauge(0)
	p.mu.Unlock()

	p.terminated.Store(true)
	p.termOnce.Do(func() { close(p.term) })

	if l := p.opts.Logger; l != nil {
		l.Debug("pool stopped", "pool", p.name)
	}
}

// Pop removes one task from the queue for manual execution outside the
// worker loop, e.g. for draining a zero-worker pool or in tests. The
// returned callable runs the task (resolving its future) with the given
// worker id; on an empty queue Pop returns a no-op callable and false.
func (p *Pool) Pop() (func(workerID int), bool) {
	t, ok := p.q.pop()
	if m := p.opts.Metrics; m != nil {
		m.QueueDepth.WithLabelValues(p.name).Set(float64(p.q.size()))
	}
	if !ok {
		return func(int) {}, false
	}
	return func(workerID int) { _ = t.invoke(workerID) }, true
}

// Size returns the number of workers the pool currently manages. Workers
// detached by a shrink are no longer counted even if they have not yet
// retired.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// IdleCount returns the number of workers currently parked with no task.
func (p *Pool) IdleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waiting
}

// QueueDepth returns the number of tasks waiting in the queue.
func (p *Pool) QueueDepth() int {
	return p.q.size()
}

// State returns the pool's lifecycle state.
func (p *Pool) State() State {
	switch {
	case p.terminated.Load() || p.stopping.Load():
		return StateStopped
	case p.draining.Load():
		return StateDraining
	default:
		return StateRunning
	}
}

// Worker returns a handle to the i-th managed worker for out-of-band
// observation, or nil if i is out of range.
func (p *Pool) Worker(i int) *WorkerHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.workers) {
		return nil
	}
	return &WorkerHandle{w: p.workers[i]}
}

// Stopped returns a channel that is closed once the pool has fully stopped.
func (p *Pool) Stopped() <-chan struct{} {
	return p.term
}

// setIdleGauge publishes the waiting count. Callers hold p.mu.
func (p *Pool) setIdleGauge() {
	if m := p.opts.Metrics; m != nil {
		m.IdleWorkers.WithLabelValues(p.name).Set(float64(p.waiting))
	}
}

// setWorkerGauge publishes the managed worker count. Callers hold p.mu.
func (p *Pool) setWorkerGauge(n int) {
	if m := p.opts.Metrics; m != nil {
		m.WorkerCount.WithLabelValues(p.name).Set(float64(n))
	}
}
