package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)
}

func TestConsoleLogger_FormatAndLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, "info")
	l.now = fixedClock

	l.Debugf("hidden %d", 1)
	l.Infof("scanning %s", "/tmp")
	l.Warnf("skipped %d files", 2)

	assert.Equal(t, "[09:05:07] [INFO] scanning /tmp\n[09:05:07] [WARN] skipped 2 files\n", buf.String())
}

func TestConsoleLogger_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, "trace")
	l.Errorf("boom")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestConsoleLogger_NilWriterDiscards(t *testing.T) {
	l := NewConsoleLogger(nil, "trace")
	assert.False(t, l.Enabled(LevelError))
	l.Errorf("nothing happens")

	d := Discard()
	assert.False(t, d.Enabled(LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace":   LevelTrace,
		"DEBUG":   LevelDebug,
		" info ":  LevelInfo,
		"warning": LevelWarn,
		"Warn":    LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "TRACE", LevelTrace.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestConsoleLogger_ConcurrentWritesStayLineAtomic(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, "debug")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Debugf("worker %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Contains(t, line, "[DEBUG] worker ")
	}
}
