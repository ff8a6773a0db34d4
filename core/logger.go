package core

// Logger is any leveled logging service.
// Implementations may special-case known argument types (eg. a logged-in user)
// to enrich the reported entries.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
