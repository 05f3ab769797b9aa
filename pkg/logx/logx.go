package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a textual level to a Level, defaulting to LevelInfo
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// SetLevel sets the minimum level written by the package logger
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level.zerolog())
}

// SetOutput replaces the destination of the package logger.
// With console=true records are rendered for humans instead of JSON.
func SetOutput(w io.Writer, console bool) {
	mu.Lock()
	defer mu.Unlock()

	level := logger.GetLevel()
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	logger = zerolog.New(w).With().Timestamp().Logger().Level(level)
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func Debug(msg string) { current().Debug().Msg(msg) }
func Info(msg string)  { current().Info().Msg(msg) }
func Warn(msg string)  { current().Warn().Msg(msg) }
func Error(msg string) { current().Error().Msg(msg) }

func Debugf(format string, args ...any) { current().Debug().Msg(fmt.Sprintf(format, args...)) }
func Infof(format string, args ...any)  { current().Info().Msg(fmt.Sprintf(format, args...)) }
func Warnf(format string, args ...any)  { current().Warn().Msg(fmt.Sprintf(format, args...)) }
func Errorf(format string, args ...any) { current().Error().Msg(fmt.Sprintf(format, args...)) }

// Fatalf logs and exits the process
func Fatalf(format string, args ...any) {
	current().Fatal().Msg(fmt.Sprintf(format, args...))
}
