package workerpool

import (
	"errors"
	"testing"
	"time"
)

func TestFutureGetBlocksUntilResolved(t *testing.T) {
	f := newFuture()

	go func() {
		time.Sleep(20 * time.Millisecond)
		f.resolve("hello", nil)
	}()

	v, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "hello" {
		t.Errorf("expected hello, got %v", v)
	}
}

func TestFutureGetWithTimeout(t *testing.T) {
	f := newFuture()

	if _, _, ok := f.GetWithTimeout(10 * time.Millisecond); ok {
		t.Error("expected timeout on unresolved future")
	}

	f.resolve(7, nil)

	v, err, ok := f.GetWithTimeout(10 * time.Millisecond)
	if !ok {
		t.Fatal("expected result after resolution")
	}
	if err != nil || v != 7 {
		t.Errorf("expected (7, nil), got (%v, %v)", v, err)
	}
}

func TestFutureIsDone(t *testing.T) {
	f := newFuture()
	if f.IsDone() {
		t.Error("fresh future should not be done")
	}
	f.resolve(nil, nil)
	if !f.IsDone() {
		t.Error("resolved future should be done")
	}
}

func TestFutureResolvesExactlyOnce(t *testing.T) {
	f := newFuture()
	first := errors.New("first")

	f.resolve(1, first)
	f.resolve(2, nil)

	v, err := f.Get()
	if v != 1 || err != first {
		t.Errorf("second resolve overwrote the first: got (%v, %v)", v, err)
	}

	// Repeated retrieval returns the same outcome.
	for i := 0; i < 3; i++ {
		if v, err := f.Get(); v != 1 || err != first {
			t.Errorf("retrieval %d changed the outcome: (%v, %v)", i, v, err)
		}
	}
}

func TestAwait(t *testing.T) {
	f := newFuture()
	f.resolve(42, nil)

	n, err := Await[int](f)
	if err != nil || n != 42 {
		t.Errorf("expected (42, nil), got (%d, %v)", n, err)
	}
}

func TestAwaitError(t *testing.T) {
	boom := errors.New("boom")
	f := newFuture()
	f.resolve(nil, boom)

	if _, err := Await[int](f); err != boom {
		t.Errorf("expected the task error, got %v", err)
	}
}

func TestAwaitTypeMismatch(t *testing.T) {
	f := newFuture()
	f.resolve("not an int", nil)

	if _, err := Await[int](f); err == nil {
		t.Error("expected a type mismatch error")
	}
}
