// Package testdoubles provides spies for the observability interfaces of the eventstore package
// and a slog.Handler that records log records. They are meant for tests only.
package testdoubles
