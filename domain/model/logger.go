package model

// Logger defines the interface for structured logging operations.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	UpdateLevel(logLvl string)
	Shutdown()
}

// WarnLogger is the subset of Logger a TextResource reports stale reads to.
type WarnLogger interface {
	Warn(msg string, args ...any)
}
