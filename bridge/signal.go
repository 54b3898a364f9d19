package bridge

import "sync"

// changeSignal is a latest-value-only broadcast. The producer closes the
// current generation channel on each publish and replaces it; consumers grab
// the current channel, re-check whatever state they care about, and block.
// Any number of missed publishes collapse into a single wakeup, so consumers
// must always re-read the authoritative value after waking.
type changeSignal struct {
	mu     sync.Mutex
	ch     chan struct{}
	closed bool
}

func newChangeSignal() *changeSignal {
	return &changeSignal{ch: make(chan struct{})}
}

// publish wakes every current watcher. No-op after shutdown.
func (s *changeSignal) publish() {
	s.mu.Lock()
	if !s.closed {
		close(s.ch)
		s.ch = make(chan struct{})
	}
	s.mu.Unlock()
}

// watch returns the current generation channel and whether the signal is
// still open. The channel is closed on the next publish or at shutdown.
func (s *changeSignal) watch() (<-chan struct{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ch, !s.closed
}

// shutdown closes the final generation without replacing it. Watchers wake
// one last time and observe the signal closed.
func (s *changeSignal) shutdown() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	s.mu.Unlock()
}
