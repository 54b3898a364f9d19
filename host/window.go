// Package host drives a bridge from an ebiten main loop, either in a desktop
// window or headless at a fixed tick rate. Both runners call Bridge.Tick once
// per frame with exclusive access to the state object; everything else about
// the frame stays under the caller's control through the Step and Draw hooks.
//
// Hosts that need the tick in a different phase of their frame can skip this
// package and call Bridge.Tick themselves from their own loop.
package host

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"tickbridge/bridge"
	"tickbridge/internal/buildinfo"
)

// Stop is returned by a Step hook to end the loop cleanly.
var Stop = errors.New("host: stop")

// WindowConfig configures the windowed runner.
type WindowConfig[S any] struct {
	Title  string
	Width  int
	Height int
	// TPS is the tick rate. Zero means 60.
	TPS int
	// Step runs on the main thread every frame, after the bridge tick.
	// Returning Stop closes the window; any other error aborts the loop.
	Step func(state S) error
	// Draw renders the current state. The main loop owns state here too, so
	// reading it without locks is fine.
	Draw func(screen *ebiten.Image, state S)
}

// RunWindow opens a window and runs the main loop until the window closes or
// a Step hook stops it. It blocks; the caller still owns the bridge and
// closes it afterwards.
func RunWindow[S any](b *bridge.Bridge[S], state S, cfg WindowConfig[S]) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	title := cfg.Title
	if title == "" {
		title = "tickbridge"
	}

	ebiten.SetWindowTitle(title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(&game[S]{b: b, state: state, cfg: cfg})
}

type game[S any] struct {
	b     *bridge.Bridge[S]
	state S
	cfg   WindowConfig[S]
}

func (g *game[S]) Update() error {
	g.b.Tick(g.state)
	if g.cfg.Step != nil {
		if err := g.cfg.Step(g.state); err != nil {
			if errors.Is(err, Stop) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *game[S]) Draw(screen *ebiten.Image) {
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen, g.state)
	}
}

func (g *game[S]) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
