package bridge

import (
	"sync"
	"testing"
	"time"
)

func TestUnboundedRunsTasksConcurrently(t *testing.T) {
	exec := Unbounded()

	a := make(chan struct{})
	b := make(chan struct{})
	done := make(chan struct{}, 2)

	// Each task waits on the other; only true concurrency lets both finish.
	exec.Submit(func() {
		close(a)
		<-b
		done <- struct{}{}
	})
	exec.Submit(func() {
		close(b)
		<-a
		done <- struct{}{}
	})

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(testTimeout):
			t.Fatal("tasks did not run concurrently")
		}
	}
}

func TestFixedPoolLimitsConcurrency(t *testing.T) {
	pool := NewFixedPool(1)

	release := make(chan struct{})
	first := make(chan struct{})
	second := make(chan struct{})

	pool.Submit(func() {
		close(first)
		<-release
	})

	<-first
	pool.Submit(func() { close(second) })

	select {
	case <-second:
		t.Fatal("second task ran while the only slot was held")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-second:
	case <-time.After(testTimeout):
		t.Fatal("second task never ran after slot freed")
	}
}

func TestSerialRunsTasksInOrder(t *testing.T) {
	s := NewSerial()
	defer s.Close()

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})

	for i := 1; i <= 3; i++ {
		i := i
		s.Submit(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if i == 3 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(testTimeout):
		t.Fatal("serial executor never ran all tasks")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected order [1 2 3], got %v", order)
	}
}

func TestBridgeOnSerialExecutor(t *testing.T) {
	s := NewSerial()
	defer s.Close()

	b, err := New[*world](WithExecutor(s))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer b.Close()
	w := &world{}

	got := make(chan uint64, 1)
	b.Spawn(func(ctx *TaskContext[*world]) error {
		v, err := Call(ctx, func(mc MainContext[*world]) uint64 { return mc.Tick })
		if err != nil {
			t.Errorf("Call failed: %v", err)
		}
		got <- v
		return nil
	})

	queued(t, b, 1)
	b.Tick(w)

	select {
	case v := <-got:
		if v != 1 {
			t.Fatalf("expected tick 1, got %d", v)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for result")
	}
}
