package engine

// Logger receives diagnostics about skipped files. Implementations must be
// safe for use from the scan goroutine.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
