package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	rootLogger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	subsystemLoggers   = map[string]*zerolog.Logger{}
	subsystemLoggersMu sync.Mutex
)

// GetSubsystemLogger returns the shared logger for name, tagged with
// subsystem=name.
func GetSubsystemLogger(name string) *zerolog.Logger {
	subsystemLoggersMu.Lock()
	defer subsystemLoggersMu.Unlock()

	if l, ok := subsystemLoggers[name]; ok {
		return l
	}
	l := rootLogger.With().Str("subsystem", name).Logger()
	subsystemLoggers[name] = &l
	return &l
}

// GetRootLogger returns the logger every subsystem logger derives from.
func GetRootLogger() *zerolog.Logger {
	return &rootLogger
}

// SetOutput redirects logs written from now on. Existing subsystem loggers
// are rebuilt so they follow.
func SetOutput(w io.Writer, console bool) {
	subsystemLoggersMu.Lock()
	defer subsystemLoggersMu.Unlock()

	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	rootLogger = zerolog.New(w).With().Timestamp().Logger()
	for name, l := range subsystemLoggers {
		*l = rootLogger.With().Str("subsystem", name).Logger()
	}
}

// SetLevel sets the global level from a name such as "debug" or "warn". An
// empty name leaves the level unchanged.
func SetLevel(name string) error {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	return nil
}
