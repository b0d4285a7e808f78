package logger

import corelogger "github.com/kilianp07/dispatch-trainer/core/logger"

// Logger mirrors the core logger interface so callers only import infra.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods. Useful in tests and as a
// default before configuration is loaded.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns a Logger for the given component. Output format is selected by
// the APP_ENV variable and the minimum level by LOG_LEVEL.
func New(component string) Logger {
	return NewZerologLogger(component)
}
