package bridge

// MainContext is the view a main-thread callback gets of the world: the
// state object the main loop owns, and the tick during which the callback is
// executing. A fresh value is built for every callback invocation and must
// not be stored beyond it.
type MainContext[S any] struct {
	// State is the main loop's state object. The callback has it exclusively
	// for the duration of the call.
	State S
	// Tick is the tick current while this callback runs, which is generally
	// later than the tick at which the callback was submitted.
	Tick uint64
}

// TaskContext is handed to every spawned background task. It is the task's
// only line to the main loop: reading the tick counter, sleeping on it, and
// submitting main-thread callbacks. It is safe to copy and to share between
// goroutines of the same task.
type TaskContext[S any] struct {
	clock *tickClock
	queue *callbackQueue[S]
	done  chan struct{}
}

// CurrentTick returns how many main-loop updates have completed. The counter
// advances on the main thread, so the value may be stale by the time the
// caller looks at it.
func (c *TaskContext[S]) CurrentTick() uint64 {
	return c.clock.read()
}

// Done is closed when the bridge shuts down. Tasks that block on their own
// work should select on it to exit promptly.
func (c *TaskContext[S]) Done() <-chan struct{} {
	return c.done
}

// SleepUpdates blocks until n more main-loop updates have completed.
// Wakeups from the update signal coalesce, so the loop re-reads the counter
// each time rather than counting notifications. If the bridge shuts down
// before the target tick, no further updates can ever arrive and the sleep
// returns early with ErrStopped.
func (c *TaskContext[S]) SleepUpdates(n uint64) error {
	target := c.clock.read() + n
	for {
		if tickReached(c.clock.read(), target) {
			return nil
		}
		ch, open := c.clock.sig.watch()
		if !open {
			return ErrStopped
		}
		// A tick between the read above and watch would otherwise be a lost
		// wakeup; the generation channel was grabbed first, so re-check.
		if tickReached(c.clock.read(), target) {
			return nil
		}
		<-ch
	}
}

// RunOnMain submits fn to run on the main thread during a future Tick and
// blocks until it has executed. It returns ErrStopped if the bridge shuts
// down before the callback runs.
func (c *TaskContext[S]) RunOnMain(fn func(MainContext[S])) error {
	_, err := Call(c, func(mc MainContext[S]) struct{} {
		fn(mc)
		return struct{}{}
	})
	return err
}

// Call submits fn to run on the main thread and blocks until its result is
// delivered back to the calling task. The callback runs with exclusive
// access to the main loop's state, in submission order relative to every
// other pending callback. If the bridge shuts down first, Call returns
// ErrStopped instead of a result.
func Call[S, O any](c *TaskContext[S], fn func(MainContext[S]) O) (O, error) {
	out := make(chan O, 1)
	err := c.queue.push(func(mc MainContext[S]) {
		out <- fn(mc)
	})
	if err != nil {
		var zero O
		return zero, err
	}
	select {
	case v := <-out:
		return v, nil
	case <-c.done:
		// The callback may have executed in the same instant the bridge shut
		// down; prefer the result if it made it out.
		select {
		case v := <-out:
			return v, nil
		default:
			var zero O
			return zero, ErrStopped
		}
	}
}
