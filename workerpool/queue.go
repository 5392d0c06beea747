package workerpool

import "sync"

// taskQueue is an unbounded FIFO queue of pending tasks. Every operation
// holds the queue lock for its full duration and returns immediately;
// blocking until a task is available is the worker's job, not the queue's.
type taskQueue struct {
	mu    sync.Mutex
	head  int
	items []*task
}

func newTaskQueue() *taskQueue {
	return &taskQueue{}
}

// push appends t to the tail of the queue.
func (q *taskQueue) push(t *task) {
	q.mu.Lock()
	q.items = append(q.items, t)
	q.mu.Unlock()
}

// pop removes and returns the oldest task. It never blocks: on an empty
// queue it returns (nil, false).
func (q *taskQueue) pop() (*task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return nil, false
	}

	t := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// Reclaim the consumed prefix once the queue runs dry.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}

	return t, true
}

// empty reports whether the queue currently holds no tasks.
func (q *taskQueue) empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.head == len(q.items)
}

// size returns the number of queued tasks.
func (q *taskQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// clear drops every queued task and returns how many were discarded.
// Discarded tasks never run; their futures are left unresolved.
func (q *taskQueue) clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items) - q.head
	q.items = q.items[:0]
	q.head = 0
	return n
}
