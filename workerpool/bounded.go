package workerpool

import (
	"context"
	"sync/atomic"

	"github.com/sherifabdlnaby/semaphore"
)

// Bounded adds backpressure on top of a Pool. The pool's queue itself is
// unbounded; Bounded caps the number of in-flight tasks (queued plus
// executing) with a resizable weighted semaphore, so submitters block once
// the cap is reached instead of growing the queue without limit.
type Bounded struct {
	pool *Pool
	sem  *semaphore.Weighted

	// The semaphore only exposes acquire/release, so occupancy is
	// tracked here: inFlight counts held slots, waiters counts
	// submitters inside Acquire.
	inFlight atomic.Int64
	waiters  atomic.Int64
}

// NewBounded wraps pool with an in-flight cap of limit tasks. limit must be
// at least 1.
func NewBounded(pool *Pool, limit int) *Bounded {
	if limit < 1 {
		limit = 1
	}
	return &Bounded{
		pool: pool,
		sem:  semaphore.NewWeighted(int64(limit)),
	}
}

// Submit blocks until an in-flight slot is free or ctx is canceled, then
// submits fn to the wrapped pool. The slot is released when the task's
// future resolves, or when the pool stops without ever running the task.
func (b *Bounded) Submit(ctx context.Context, fn Task) (*Future, error) {
	b.waiters.Add(1)
	err := b.sem.Acquire(ctx, 1)
	b.waiters.Add(-1)
	if err != nil {
		return nil, err
	}
	return b.submit(fn), nil
}

// TrySubmit submits fn only if an in-flight slot is immediately available.
func (b *Bounded) TrySubmit(fn Task) (*Future, bool) {
	if !b.sem.TryAcquire(1) {
		return nil, false
	}
	return b.submit(fn), true
}

func (b *Bounded) submit(fn Task) *Future {
	b.inFlight.Add(1)
	fut := b.pool.Submit(fn)
	go func() {
		select {
		case <-fut.Done():
		case <-b.pool.Stopped():
			// Task abandoned by an immediate stop; its future will
			// never resolve, so free the slot here.
		}
		b.inFlight.Add(-1)
		b.sem.Release(1)
	}()
	return fut
}

// Resize changes the in-flight cap. Growing the cap unblocks waiting
// submitters; shrinking never interrupts tasks already in flight.
func (b *Bounded) Resize(limit int) {
	if limit < 1 {
		limit = 1
	}
	b.sem.Resize(int64(limit))
}

// InFlight returns the number of currently held in-flight slots.
func (b *Bounded) InFlight() int {
	return int(b.inFlight.Load())
}

// Waiters returns the number of submitters currently waiting for a slot.
func (b *Bounded) Waiters() int {
	return int(b.waiters.Load())
}

// Pool returns the wrapped pool.
func (b *Bounded) Pool() *Pool {
	return b.pool
}
