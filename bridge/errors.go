package bridge

import "errors"

var (
	// ErrStopped reports that the bridge shut down before the operation could
	// complete. Callbacks enqueued but never executed, sleeps cut short by
	// teardown, and spawns against a closed bridge all return it.
	ErrStopped = errors.New("bridge: stopped")

	// ErrAlreadyInstalled reports that another Bridge is still live in this
	// process. Exactly one bridge may exist at a time; Close releases the slot.
	ErrAlreadyInstalled = errors.New("bridge: another bridge is already installed")
)
