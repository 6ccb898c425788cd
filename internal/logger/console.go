// Package logger provides the leveled console logger used by tisearch.
//
// Messages are written as "[HH:MM:SS] [LEVEL] message" lines. Level names are
// colorized when the destination is a terminal. The logger is safe for
// concurrent use, so the scan goroutine and the CLI can share one instance.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level is a log severity. Messages below the configured level are dropped.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (case-insensitive) to a Level. Empty or
// unknown names yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
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

// ConsoleLogger writes timestamped, leveled lines to a writer.
type ConsoleLogger struct {
	writer      io.Writer
	level       Level
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger that writes to w. A nil writer
// discards everything. Color is enabled for os.Stdout/os.Stderr unless
// color.NoColor is set (NO_COLOR, non-TTY, or --no-color).
func NewConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       ParseLevel(level),
		colorOutput: isTerminal(w),
		now:         time.Now,
	}
}

// Discard returns a logger that drops every message.
func Discard() *ConsoleLogger {
	return NewConsoleLogger(nil, "error")
}

func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

// Level returns the minimum level that is written.
func (cl *ConsoleLogger) Level() Level {
	return cl.level
}

// Enabled reports whether messages at l would be written.
func (cl *ConsoleLogger) Enabled(l Level) bool {
	return cl.writer != nil && l >= cl.level
}

func (cl *ConsoleLogger) Tracef(format string, args ...any) { cl.logf(LevelTrace, format, args...) }
func (cl *ConsoleLogger) Debugf(format string, args ...any) { cl.logf(LevelDebug, format, args...) }
func (cl *ConsoleLogger) Infof(format string, args ...any)  { cl.logf(LevelInfo, format, args...) }
func (cl *ConsoleLogger) Warnf(format string, args ...any)  { cl.logf(LevelWarn, format, args...) }
func (cl *ConsoleLogger) Errorf(format string, args ...any) { cl.logf(LevelError, format, args...) }

func (cl *ConsoleLogger) logf(level Level, format string, args ...any) {
	if !cl.Enabled(level) {
		return
	}
	message := fmt.Sprintf(format, args...)

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.now().Format("15:04:05")
	name := level.String()
	if cl.colorOutput {
		name = colorLevel(level).Sprint(name)
	}
	_, _ = fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, name, message)
}

func colorLevel(level Level) *color.Color {
	switch level {
	case LevelTrace:
		return color.New(color.FgHiBlack)
	case LevelDebug:
		return color.New(color.FgCyan)
	case LevelInfo:
		return color.New(color.FgBlue)
	case LevelWarn:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
