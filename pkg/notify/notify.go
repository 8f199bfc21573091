// Package notify defines the capability interface for user-facing
// notifications. The core never blocks on a notifier; a no-op notifier
// is acceptable for headless use.
package notify

import (
	"log/slog"
)

// Notifier delivers user-facing messages about job outcomes. How the
// messages are rendered (dialogs, logs, nothing) is the adapter's
// concern.
type Notifier interface {
	Info(title, message string)
	Warn(title, message string)
	Error(title, message string)
}

// Nop is a Notifier that discards all messages.
type Nop struct{}

func (Nop) Info(title, message string)  {}
func (Nop) Warn(title, message string)  {}
func (Nop) Error(title, message string) {}

// logNotifier forwards notifications to a slog.Logger.
type logNotifier struct {
	l *slog.Logger
}

// NewLog returns a Notifier backed by the given logger. A nil logger
// uses slog.Default().
func NewLog(l *slog.Logger) Notifier {
	if l == nil {
		l = slog.Default()
	}
	return &logNotifier{l: l}
}

func (n *logNotifier) Info(title, message string) {
	n.l.Info(title, "message", message)
}

func (n *logNotifier) Warn(title, message string) {
	n.l.Warn(title, "message", message)
}

func (n *logNotifier) Error(title, message string) {
	n.l.Error(title, "message", message)
}
