package glkit

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// logLevel gates every logger created by this module. Default is LevelInfo,
// which suppresses Debug messages. SetVerbose(true) sets it to LevelDebug.
var logLevel = new(slog.LevelVar)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(defaultLogger())
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// SetVerbose enables or disables debug logging.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

// SetLogger replaces the logger used by glkit and its backends.
// Passing nil restores the default stderr text logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = defaultLogger()
	}
	logger.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logger.Load()
}
