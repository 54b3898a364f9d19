package bridge

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Executor decides where spawned background tasks run. Submit must not block
// the caller for longer than it takes to hand the function off.
type Executor interface {
	Submit(fn func())
}

type unbounded struct{}

func (unbounded) Submit(fn func()) { go fn() }

// Unbounded returns the default executor: one goroutine per task, no cap.
func Unbounded() Executor { return unbounded{} }

// FixedPool runs at most a fixed number of tasks at once. Submission never
// blocks; excess tasks wait for a slot. A task that sleeps on ticks holds
// its slot while sleeping, so size the pool for the number of tasks expected
// to be live, not merely runnable.
type FixedPool struct {
	sem *semaphore.Weighted
}

// NewFixedPool returns a pool with the given number of slots.
func NewFixedPool(workers int64) *FixedPool {
	if workers < 1 {
		workers = 1
	}
	return &FixedPool{sem: semaphore.NewWeighted(workers)}
}

func (p *FixedPool) Submit(fn func()) {
	go func() {
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			return
		}
		defer p.sem.Release(1)
		fn()
	}()
}

// Serial runs every task to completion, one at a time, on a single dedicated
// goroutine. It is the moral equivalent of a current-thread runtime: useful
// when tasks touch thread-hostile resources, but a task that never returns
// starves every task behind it.
type Serial struct {
	mu  sync.Mutex
	fns []func()

	wake      chan struct{}
	stop      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewSerial returns a serial executor with its worker goroutine running.
func NewSerial() *Serial {
	s := &Serial{
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Serial) Submit(fn func()) {
	s.mu.Lock()
	s.fns = append(s.fns, fn)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Serial) loop() {
	defer close(s.stopped)
	for {
		for {
			s.mu.Lock()
			if len(s.fns) == 0 {
				s.mu.Unlock()
				break
			}
			fn := s.fns[0]
			s.fns = s.fns[1:]
			s.mu.Unlock()
			fn()
		}
		select {
		case <-s.wake:
		case <-s.stop:
			return
		}
	}
}

// Close stops the worker once the running task returns and waits for it to
// exit. Tasks still queued are discarded, so close the bridge (which waits
// for its tasks) before closing the executor.
func (s *Serial) Close() {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.stopped
}
