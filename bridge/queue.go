package bridge

import "sync"

// callback is one unit of main-thread work. It receives a fresh MainContext
// and must not retain it past the call.
type callback[S any] func(MainContext[S])

// callbackQueue is the unbounded multi-producer single-consumer queue of
// main-thread callbacks. Producers append under the mutex; the drain swaps
// the whole batch out, which keeps enqueue cost flat regardless of how much
// work the main thread has backed up.
type callbackQueue[S any] struct {
	mu     sync.Mutex
	fns    []callback[S]
	closed bool
}

// push appends fn. It never blocks; after close it reports ErrStopped.
func (q *callbackQueue[S]) push(fn callback[S]) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrStopped
	}
	q.fns = append(q.fns, fn)
	return nil
}

// swap takes the current batch, leaving the queue empty. Callbacks enqueued
// while a batch executes land in the next swap.
func (q *callbackQueue[S]) swap() []callback[S] {
	q.mu.Lock()
	defer q.mu.Unlock()
	fns := q.fns
	q.fns = nil
	return fns
}

// close rejects further pushes and returns whatever was still queued so the
// owner can account for abandoned work.
func (q *callbackQueue[S]) close() []callback[S] {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	fns := q.fns
	q.fns = nil
	return fns
}
