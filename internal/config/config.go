package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Demo is the bridgedemo runner configuration.
type Demo struct {
	// Mode selects the host loop: "headless" or "window".
	Mode string `toml:"mode"`
	// Hz is the tick rate.
	Hz int `toml:"hz"`
	// Ticks stops a headless run after N ticks (0 = run forever).
	Ticks uint64 `toml:"ticks"`
	// Executor selects where background tasks run: "go", "pool" or "serial".
	Executor string `toml:"executor"`
	// Workers sizes the pool executor.
	Workers int64 `toml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() Demo {
	return Demo{
		Mode:     "headless",
		Hz:       60,
		Ticks:    600,
		Executor: "go",
		Workers:  4,
	}
}

// Load reads a TOML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Demo, error) {
	d := Default()
	if path == "" {
		return d, nil
	}
	if _, err := toml.DecodeFile(path, &d); err != nil {
		return Demo{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return Demo{}, fmt.Errorf("config %s: %w", path, err)
	}
	return d, nil
}

func (d Demo) Validate() error {
	switch d.Mode {
	case "headless", "window":
	default:
		return fmt.Errorf("unknown mode %q", d.Mode)
	}
	if d.Hz <= 0 {
		return fmt.Errorf("hz must be positive, got %d", d.Hz)
	}
	switch d.Executor {
	case "go", "serial":
	case "pool":
		if d.Workers < 1 {
			return fmt.Errorf("pool executor needs workers >= 1, got %d", d.Workers)
		}
	default:
		return fmt.Errorf("unknown executor %q", d.Executor)
	}
	return nil
}
