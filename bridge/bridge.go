// Package bridge connects a single-threaded, tick-driven main loop to a pool
// of concurrently running background tasks. The main loop owns a mutable
// state object that background goroutines must never touch directly; instead
// they observe a tick counter, sleep until a number of ticks have elapsed,
// and submit callbacks that the main loop executes with exclusive access to
// its state, delivering results back asynchronously.
//
// The host drives everything by calling Tick once per frame. Tick increments
// the counter, wakes sleeping tasks, and drains queued callbacks in FIFO
// submission order. The main loop never blocks on background-task activity.
package bridge

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// live enforces the one-bridge-per-process rule across all state types.
var live atomic.Bool

type options struct {
	exec Executor
	log  zerolog.Logger
}

// Option configures a Bridge at construction.
type Option func(*options)

// WithExecutor selects where spawned tasks run. The caller keeps ownership
// of the executor and is responsible for closing it, after the bridge, if it
// needs closing.
func WithExecutor(exec Executor) Option {
	return func(o *options) { o.exec = exec }
}

// WithLogger attaches a logger for lifecycle diagnostics. The default
// discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// Bridge is the single per-application coordination point between the main
// loop and background tasks. The host keeps exactly one instance alive and
// calls Tick on it once per frame; everything else reaches the main thread
// through TaskContexts minted by Spawn.
type Bridge[S any] struct {
	clock *tickClock
	queue *callbackQueue[S]
	exec  Executor
	log   zerolog.Logger

	done chan struct{}

	mu     sync.Mutex
	closed bool
	tasks  sync.WaitGroup

	spawned atomic.Uint64
}

// New constructs the bridge. Only one bridge may be live per process;
// constructing a second before the first is closed returns
// ErrAlreadyInstalled.
func New[S any](opts ...Option) (*Bridge[S], error) {
	o := options{
		exec: Unbounded(),
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !live.CompareAndSwap(false, true) {
		return nil, ErrAlreadyInstalled
	}
	return &Bridge[S]{
		clock: newTickClock(),
		queue: &callbackQueue[S]{},
		exec:  o.exec,
		log:   o.log,
		done:  make(chan struct{}),
	}, nil
}

// Join observes the completion of one spawned task.
type Join struct {
	done chan struct{}
	err  error
}

// Done is closed when the task has returned.
func (j *Join) Done() <-chan struct{} { return j.done }

// Wait blocks until the task returns and reports its error.
func (j *Join) Wait() error {
	<-j.done
	return j.err
}

// Spawn hands a fresh TaskContext to task and submits it to the executor.
// The task runs concurrently with the main loop and with other tasks from
// the moment Submit accepts it. Spawning against a closed bridge does not
// run the task; the returned Join completes immediately with ErrStopped.
func (b *Bridge[S]) Spawn(task func(*TaskContext[S]) error) *Join {
	j := &Join{done: make(chan struct{})}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		j.err = ErrStopped
		close(j.done)
		return j
	}
	b.tasks.Add(1)
	b.mu.Unlock()

	id := b.spawned.Add(1)
	ctx := &TaskContext[S]{clock: b.clock, queue: b.queue, done: b.done}
	b.log.Debug().Uint64("task", id).Msg("spawning background task")
	b.exec.Submit(func() {
		defer b.tasks.Done()
		defer close(j.done)
		j.err = task(ctx)
		if j.err != nil {
			b.log.Debug().Uint64("task", id).Err(j.err).Msg("background task finished")
		}
	})
	return j
}

// Tick is the per-frame drain routine. It advances the tick counter by one,
// wakes every task sleeping on it, then executes all currently queued
// callbacks in submission order, each with a fresh MainContext around state.
// Callbacks enqueued while the drain runs are picked up opportunistically;
// the drain stops as soon as a swap comes back empty. Tick on a closed
// bridge is a no-op so hosts can keep calling it through shutdown.
//
// Callbacks run at the same trust level as the host's own frame code: a
// panicking callback propagates out of Tick.
func (b *Bridge[S]) Tick(state S) {
	select {
	case <-b.done:
		return
	default:
	}

	tick := b.clock.increment()
	for {
		batch := b.queue.swap()
		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn(MainContext[S]{State: state, Tick: tick})
		}
	}
}

// Close shuts the bridge down: further enqueues fail with ErrStopped,
// sleeping tasks wake early, callbacks still queued are abandoned (their
// callers also get ErrStopped), and Close blocks until every spawned task
// has returned. It releases the process-wide bridge slot and is idempotent.
//
// The host must have stopped calling Tick, or accept that in-flight frames
// see the no-op path.
func (b *Bridge[S]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	abandoned := b.queue.close()
	b.clock.sig.shutdown()
	close(b.done)
	if len(abandoned) > 0 {
		b.log.Warn().Int("callbacks", len(abandoned)).Msg("abandoning queued main-thread callbacks")
	}
	b.tasks.Wait()
	live.Store(false)
	b.log.Debug().Uint64("ticks", b.clock.read()).Msg("bridge closed")
}
