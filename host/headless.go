package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tickbridge/bridge"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig[S any] struct {
	// Hz is the tick rate. Zero means 60.
	Hz int
	// Ticks stops the loop after this many ticks (0 = run forever).
	Ticks uint64
	// Step runs after each bridge tick. Returning Stop ends the loop with a
	// nil error; any other error aborts it.
	Step func(state S) error
}

// RunHeadless ticks the bridge at a fixed rate without opening a window. It
// blocks until the context is cancelled, the tick budget runs out, or a Step
// hook stops the loop.
func RunHeadless[S any](ctx context.Context, b *bridge.Bridge[S], state S, cfg HeadlessConfig[S]) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			b.Tick(state)
			if cfg.Step != nil {
				if err := cfg.Step(state); err != nil {
					if errors.Is(err, Stop) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
