// Package common holds small ambient helpers shared by every layer of sqler:
// the logging interface, environment lookups, and nothing domain-specific.
package common

// Logger is the common interface every sqler component logs through. It is
// deliberately small and leveled, so any backend (zap, a test spy, silence)
// can stand in behind it.
type Logger interface {
	Info(args ...any)
	Infof(format string, args ...any)
	Infoln(args ...any)

	Warn(args ...any)
	Warnf(format string, args ...any)
	Warnln(args ...any)

	Error(args ...any)
	Errorf(format string, args ...any)
	Errorln(args ...any)

	Debug(args ...any)
	Debugf(format string, args ...any)
	Debugln(args ...any)

	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Fatalln(args ...any)

	// WithFields returns a new Logger that attaches the given key/value pairs
	// to every subsequent entry. The receiver is left unchanged.
	WithFields(fields ...any) Logger

	// Sync flushes any buffered log entries. Safe to call on process exit.
	Sync() error
}
