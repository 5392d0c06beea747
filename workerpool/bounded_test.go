package workerpool

import (
	"context"
	"testing"
	"time"
)

func TestBoundedCapsInFlight(t *testing.T) {
	pool := New(1)
	defer pool.ShutdownNow()

	b := NewBounded(pool, 2)

	release := make(chan struct{})
	blocker := func(workerID int) (any, error) {
		<-release
		return nil, nil
	}

	// One executing, one queued: both slots taken.
	if _, err := b.Submit(context.Background(), blocker); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := b.Submit(context.Background(), blocker); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if got := b.InFlight(); got != 2 {
		t.Fatalf("in-flight %d with both slots taken, want 2", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := b.Submit(ctx, blocker); err == nil {
		t.Fatal("third submit should have blocked until the context expired")
	}

	// A canceled submitter must not linger in the waiter count or hold a
	// slot.
	waitFor(t, func() bool { return b.Waiters() == 0 },
		"waiter count stuck after a canceled submit")
	if got := b.InFlight(); got != 2 {
		t.Errorf("in-flight %d after a canceled submit, want 2", got)
	}

	close(release)
	waitFor(t, func() bool { return b.InFlight() == 0 },
		"slots not released after tasks completed")

	fut, err := b.Submit(context.Background(), func(workerID int) (any, error) {
		return "room again", nil
	})
	if err != nil {
		t.Fatalf("submit after release: %v", err)
	}
	if v, _ := fut.Get(); v != "room again" {
		t.Errorf("unexpected result %v", v)
	}
}

func TestBoundedTrySubmit(t *testing.T) {
	pool := New(1)
	defer pool.ShutdownNow()

	b := NewBounded(pool, 1)

	release := make(chan struct{})
	started := make(chan struct{})
	if _, err := b.Submit(context.Background(), func(workerID int) (any, error) {
		close(started)
		<-release
		return nil, nil
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-started

	if _, ok := b.TrySubmit(func(workerID int) (any, error) { return nil, nil }); ok {
		t.Error("TrySubmit succeeded with no free slot")
	}

	close(release)
	waitFor(t, func() bool {
		_, ok := b.TrySubmit(func(workerID int) (any, error) { return nil, nil })
		return ok
	}, "TrySubmit never succeeded after the slot freed up")

	pool.Shutdown()
}

func TestBoundedResizeUnblocksWaiters(t *testing.T) {
	pool := New(2)
	defer pool.ShutdownNow()

	b := NewBounded(pool, 1)

	release := make(chan struct{})
	if _, err := b.Submit(context.Background(), func(workerID int) (any, error) {
		<-release
		return nil, nil
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	unblocked := make(chan struct{})
	go func() {
		if _, err := b.Submit(context.Background(), func(workerID int) (any, error) {
			return nil, nil
		}); err == nil {
			close(unblocked)
		}
	}()

	waitFor(t, func() bool { return b.Waiters() == 1 },
		"submitter never blocked on the cap")

	b.Resize(2)

	select {
	case <-unblocked:
	case <-time.After(2 * time.Second):
		t.Fatal("Resize did not unblock the waiting submitter")
	}

	waitFor(t, func() bool { return b.Waiters() == 0 },
		"waiter count did not drop after the submitter got its slot")

	close(release)
	waitFor(t, func() bool { return b.InFlight() == 0 },
		"in-flight count did not return to zero after completion")
}

func TestBoundedReleasesSlotsOnShutdownNow(t *testing.T) {
	pool := New(0)
	b := NewBounded(pool, 2)

	// Queued on a zero-worker pool: tasks hold slots but never run.
	for i := 0; i < 2; i++ {
		if _, err := b.Submit(context.Background(), func(workerID int) (any, error) {
			return nil, nil
		}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if got := b.InFlight(); got != 2 {
		t.Fatalf("in-flight %d, want 2", got)
	}

	pool.ShutdownNow()

	waitFor(t, func() bool { return b.InFlight() == 0 },
		"abandoned tasks did not release their slots after ShutdownNow")
}
