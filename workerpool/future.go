package workerpool

import (
	"fmt"
	"sync"
	"time"
)

// Future represents the eventual result of a submitted task. Exactly one of
// value or error is written, exactly once, by whichever worker executes the
// task. A Future stays valid independently of the pool's lifetime; if its
// task is discarded by ShutdownNow the Future simply never resolves.
type Future struct {
	value any
	err   error
	done  chan struct{}
	once  sync.Once
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve stores the task outcome. Only the first call wins.
func (f *Future) resolve(value any, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Get blocks until the result is available and returns it. Calling Get on a
// task abandoned by ShutdownNow blocks forever; use GetWithTimeout or Done
// if that is a possibility.
func (f *Future) Get() (any, error) {
	<-f.done
	return f.value, f.err
}

// GetWithTimeout waits for the result up to timeout. The third return value
// reports whether the result was available in time.
func (f *Future) GetWithTimeout(timeout time.Duration) (any, error, bool) {
	select {
	case <-f.done:
		return f.value, f.err, true
	case <-time.After(timeout):
		return nil, nil, false
	}
}

// IsDone checks if the task has completed.
func (f *Future) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks on f and asserts the value to T. It returns the task's error
// unchanged, or an error if the resolved value is not a T.
func Await[T any](f *Future) (T, error) {
	v, err := f.Get()
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("workerpool: result is %T, not %T", v, zero)
	}
	return t, nil
}
