// Package log provides the default slog-backed logger provider.
//
// This file contains the global provider registry and the slog adapter that
// backs it. Library code obtains loggers through GetLogger or
// GetLoggerWithName; tests can swap the provider for a TestLoggerProvider to
// capture output.

package log

import (
	"context"
	"log/slog"
	"sync"
)

// slogLogger adapts a *slog.Logger to the Logger interface.
// A shared LevelVar provides provider-level filtering on top of
// whatever filtering the underlying handler performs.
type slogLogger struct {
	logger *slog.Logger
	min    *slog.LevelVar
}

func (l *slogLogger) log(level slog.Level, msg string, fields ...any) {
	if l.min != nil && level < l.min.Level() {
		return
	}
	l.logger.Log(context.Background(), level, msg, fields...)
}

// Debug implements Logger.Debug.
func (l *slogLogger) Debug(msg string, fields ...any) {
	l.log(slog.LevelDebug, msg, fields...)
}

// Info implements Logger.Info.
func (l *slogLogger) Info(msg string, fields ...any) {
	l.log(slog.LevelInfo, msg, fields...)
}

// Warn implements Logger.Warn.
func (l *slogLogger) Warn(msg string, fields ...any) {
	l.log(slog.LevelWarn, msg, fields...)
}

// Error implements Logger.Error.
// If the first field is an error value it is re-keyed as the standard error
// attribute so that ErrFmtHandler can extract its stack trace.
func (l *slogLogger) Error(msg string, fields ...any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			args := make([]any, 0, len(fields))
			args = append(args, ErrAttr(err))
			args = append(args, fields[1:]...)
			l.log(slog.LevelError, msg, args...)
			return
		}
	}
	l.log(slog.LevelError, msg, fields...)
}

// With implements Logger.With.
func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: l.logger.With(fields...), min: l.min}
}

// Enabled implements Logger.Enabled.
func (l *slogLogger) Enabled(ctx context.Context, level Level) bool {
	if l.min != nil && slog.Level(level) < l.min.Level() {
		return false
	}
	return l.logger.Enabled(ctx, slog.Level(level))
}

// defaultProvider is the slog-backed LoggerProvider used until a caller
// installs a different one. It resolves slog.Default() at call time, so
// SetupLogger takes effect for loggers obtained afterwards.
type defaultProvider struct {
	level slog.LevelVar
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *defaultProvider) GetLogger() Logger {
	return &slogLogger{logger: slog.Default(), min: &p.level}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *defaultProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *defaultProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = &defaultProvider{}
)

// SetLoggerProvider replaces the global logger provider.
// Passing nil restores the default slog-backed provider.
//
// Example:
//
//	testProvider, buffer := log.NewTestLoggerProvider(log.LevelDebug)
//	log.SetLoggerProvider(testProvider)
//	defer log.SetLoggerProvider(nil)
func SetLoggerProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	if p == nil {
		p = &defaultProvider{}
	}
	provider = p
}

// GetLogger returns the default logger from the current provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with a component name.
//
// Example:
//
//	logger := log.GetLoggerWithName("naive_bayes")
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	)
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// SetLevel sets the minimum level on the current provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	provider.SetLevel(level)
}
