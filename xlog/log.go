// Package xlog provides the leveled logging wrapper used across the
// simulator. It stays on the standard "log" package (log.Printf/
// log.Panicf), only adding a level gate and a component prefix so a
// cycle-accurate trace can be silenced by default.
package xlog

import (
	"log"
	"os"
)

// Level gates which messages reach the underlying log.Logger.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// Logger is a component-scoped, level-gated logger.
type Logger struct {
	component string
	level     Level
	std       *log.Logger
}

// New creates a Logger prefixed with component, writing to stderr at the
// given level.
func New(component string, level Level) *Logger {
	return &Logger{
		component: component,
		level:     level,
		std:       log.New(os.Stderr, "", log.LstdFlags),
	}
}

// With returns a copy of l scoped to a sub-component name, e.g.
// log.With("lsu") for a per-unit logger under a per-core one.
func (l *Logger) With(component string) *Logger {
	return &Logger{component: l.component + "." + component, level: l.level, std: l.std}
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level > l.level {
		return
	}
	l.std.Printf("[%s] %s: "+format, append([]interface{}{level, l.component}, args...)...)
}

// Debugf logs at LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }

// Infof logs at LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) { l.logf(LevelInfo, format, args...) }

// Warnf logs at LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) { l.logf(LevelWarn, format, args...) }

// Errorf logs at LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

// Fatalf logs unconditionally and panics, for unrecoverable simulator
// invariant violations.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.std.Panicf("[%s] %s: "+format, append([]interface{}{LevelError, l.component}, args...)...)
}
