// bridgedemo exercises the bridge end to end: it loads a TOML config, spawns
// a few background tasks, and drives either the windowed or the headless host
// until the tick budget runs out or the process is interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"tickbridge/bridge"
	"tickbridge/host"
	"tickbridge/internal/buildinfo"
	"tickbridge/internal/config"
	"tickbridge/internal/logging"
)

type demoState struct {
	frames   uint64
	messages []string
}

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to a TOML config file.")
	flag.Parse()

	logging.ConfigureRuntime()
	log := logging.L()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Info().
		Str("build", buildinfo.Long()).
		Str("executor", cfg.Executor).
		Int("hz", cfg.Hz).
		Uint64("ticks", cfg.Ticks).
		Msg("bridgedemo starting")

	exec, closeExec := newExecutor(cfg)
	defer closeExec()

	b, err := bridge.New[*demoState](bridge.WithExecutor(exec), bridge.WithLogger(log))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer b.Close()

	// Once per second of ticks, read the frame count back from the main
	// thread and report it.
	b.Spawn(func(ctx *bridge.TaskContext[*demoState]) error {
		for {
			if err := ctx.SleepUpdates(uint64(cfg.Hz)); err != nil {
				return nil
			}
			frames, err := bridge.Call(ctx, func(mc bridge.MainContext[*demoState]) uint64 {
				return mc.State.frames
			})
			if err != nil {
				return nil
			}
			log.Info().Uint64("tick", ctx.CurrentTick()).Uint64("frames", frames).Msg("reporter")
		}
	})

	// A one-shot task that leaves a message in the shared state.
	b.Spawn(func(ctx *bridge.TaskContext[*demoState]) error {
		return ctx.RunOnMain(func(mc bridge.MainContext[*demoState]) {
			mc.State.messages = append(mc.State.messages, fmt.Sprintf("hello from tick %d", mc.Tick))
		})
	})

	st := &demoState{}
	if cfg.Mode == "window" {
		err = host.RunWindow(b, st, host.WindowConfig[*demoState]{
			Title: "bridgedemo",
			TPS:   cfg.Hz,
			Step: func(s *demoState) error {
				s.frames++
				return nil
			},
			Draw: func(screen *ebiten.Image, s *demoState) {
				screen.Fill(color.RGBA{B: uint8(s.frames), A: 0xFF})
			},
		})
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = host.RunHeadless(ctx, b, st, host.HeadlessConfig[*demoState]{
			Hz:    cfg.Hz,
			Ticks: cfg.Ticks,
			Step: func(s *demoState) error {
				s.frames++
				return nil
			},
		})
	}
	b.Close()

	for _, msg := range st.messages {
		log.Info().Str("message", msg).Msg("state")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Info().Uint64("frames", st.frames).Msg("bridgedemo done")
}

func newExecutor(cfg config.Demo) (bridge.Executor, func()) {
	switch cfg.Executor {
	case "pool":
		return bridge.NewFixedPool(cfg.Workers), func() {}
	case "serial":
		s := bridge.NewSerial()
		return s, s.Close
	default:
		return bridge.Unbounded(), func() {}
	}
}
