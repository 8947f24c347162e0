// Package logx is a small leveled wrapper around the standard logger.
package logx

import (
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel is case-insensitive and defaults to info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
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

type Logger struct {
	level Level
	out   *log.Logger
}

func New(w io.Writer, level string) *Logger {
	return &Logger{level: ParseLevel(level), out: log.New(w, "", log.LstdFlags)}
}

// Discard drops everything; for tests and quiet commands.
func Discard() *Logger {
	return New(io.Discard, "error")
}

func (l *Logger) Level() Level { return l.level }

func (l *Logger) logf(level Level, tag, format string, v ...any) {
	if level >= l.level {
		l.out.Printf(tag+format, v...)
	}
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, "[DEBUG] ", format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(LevelInfo, "[INFO] ", format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(LevelWarn, "[WARN] ", format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, "[ERROR] ", format, v...) }
