package bridge

import "sync/atomic"

// tickClock counts main-loop updates. The counter is written by exactly one
// goroutine (whichever drives Bridge.Tick) and read from any number of
// background tasks; the single word is the only shared-mutable state, so
// atomic loads are all readers need.
type tickClock struct {
	ticks atomic.Uint64
	sig   *changeSignal
}

func newTickClock() *tickClock {
	return &tickClock{sig: newChangeSignal()}
}

// increment advances the counter by one (wrapping) and wakes all watchers.
// Caller contract: only the drain routine calls this.
func (c *tickClock) increment() uint64 {
	n := c.ticks.Add(1)
	c.sig.publish()
	return n
}

func (c *tickClock) read() uint64 {
	return c.ticks.Load()
}

// tickReached reports whether cur has reached target under wrapping
// arithmetic. The signed distance keeps a sleep started just below the
// counter maximum waking at the right absolute tick instead of stalling or
// waking early once the counter wraps.
func tickReached(cur, target uint64) bool {
	return int64(cur-target) >= 0
}
