// Package logger provides the process-wide structured logger backed by
// zerolog. Initialise once at startup with Init; components receive their
// logger by injection and tag themselves with With.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu       sync.Mutex
	instance zerolog.Logger
	ready    bool
)

// Init builds the root logger. level is one of trace, debug, info, warn,
// error (defaults to info). When pretty is true output is human-readable
// console text instead of JSON. A nil out writes to os.Stdout.
//
// Only the first call takes effect; later calls return the existing logger.
func Init(level string, pretty bool, out io.Writer) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	if out == nil {
		out = os.Stdout
	}
	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := parseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	instance = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	ready = true
	return instance
}

// With returns the root logger tagged with a component name. Panics if Init
// has not been called.
func With(component string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		panic("logger: With() called before Init()")
	}
	return instance.With().Str("component", component).Logger()
}

// Reset tears the singleton down so the next Init rebuilds it. For tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
