package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. It writes to stderr with default settings
// until Init is called, so packages can log safely from tests.
var Log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures the global logger. Development mode switches to the
// human-readable console writer; everything else emits JSON lines.
func Init(env, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if env == "development" {
		Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(lvl).With().Timestamp().Logger()
		return
	}

	Log = zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
