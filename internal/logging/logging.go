package logging

import (
	"os"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "TICKBRIDGE_LOG_LEVEL"
	EnvLogTimestamp = "TICKBRIDGE_LOG_TIMESTAMP"
	EnvLogNoColor   = "TICKBRIDGE_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

var (
	configureOnce sync.Once
	root          = zerolog.Nop()
)

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure builds the process logger once. Later calls, including with a
// different profile, are no-ops.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		level := zerolog.InfoLevel
		timestamp := true
		if profile == ProfileTest {
			level = zerolog.DebugLevel
			timestamp = false
		}
		if s := os.Getenv(EnvLogLevel); s != "" {
			if lvl, err := zerolog.ParseLevel(s); err == nil {
				level = lvl
			}
		}
		if v, err := strconv.ParseBool(os.Getenv(EnvLogTimestamp)); err == nil {
			timestamp = v
		}
		noColor := false
		if v, err := strconv.ParseBool(os.Getenv(EnvLogNoColor)); err == nil {
			noColor = v
		}

		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}).Level(level)
		if timestamp {
			logger = logger.With().Timestamp().Logger()
		}
		root = logger
	})
}

// L returns the configured logger. Before Configure it discards everything.
func L() zerolog.Logger {
	return root
}
