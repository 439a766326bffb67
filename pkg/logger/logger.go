package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Leveled logger used across the service, backed by zerolog.
// Provides Debug/Info/Warn/Error/Fatal variants and Init(level, env).

var (
	mu  sync.RWMutex
	log zerolog.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// Init sets the global log level (case-insensitive: debug, info, warn, error,
// fatal) and the output format. In development a human-readable console
// writer is used, otherwise structured JSON. Call early during startup.
func Init(level, env string) {
	mu.Lock()
	defer mu.Unlock()

	lvl := zerolog.InfoLevel
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn", "warning":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	case "fatal":
		lvl = zerolog.FatalLevel
	}

	out := zerolog.New(os.Stdout)
	if env == "development" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log = out.Level(lvl).With().Timestamp().Logger()
}

func get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// The zerolog level starters have pointer receivers, so the snapshot from
// get() must land in a variable before the call.

func Debugf(format string, v ...interface{}) { l := get(); l.Debug().Msgf(format, v...) }
func Infof(format string, v ...interface{})  { l := get(); l.Info().Msgf(format, v...) }
func Warnf(format string, v ...interface{})  { l := get(); l.Warn().Msgf(format, v...) }
func Errorf(format string, v ...interface{}) { l := get(); l.Error().Msgf(format, v...) }

// Fatalf logs the message and exits the process.
func Fatalf(format string, v ...interface{}) { l := get(); l.Fatal().Msgf(format, v...) }

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	return get().GetLevel().String()
}
