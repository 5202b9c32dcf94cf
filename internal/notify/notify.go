// Package notify carries user-facing messages (the toast sink) from the data
// layer to whatever renders them.
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Severity of a notification.
type Severity string

// Severities
const (
	Info    Severity = "info"
	Success Severity = "success"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Notifier receives user-facing messages.
type Notifier interface {
	Notify(severity Severity, message string)
}

// Func adapts a function to Notifier.
type Func func(severity Severity, message string)

// Notify calls f.
func (f Func) Notify(severity Severity, message string) { f(severity, message) }

// Discard drops every message.
var Discard Notifier = Func(func(Severity, string) {})

// Log returns a notifier that writes messages to log at a matching level.
func Log(log logrus.FieldLogger) Notifier {
	return Func(func(severity Severity, message string) {
		entry := log.WithField("notify", string(severity))
		switch severity {
		case Error:
			entry.Error(message)
		case Warning:
			entry.Warn(message)
		default:
			entry.Info(message)
		}
	})
}

// Message is one recorded notification.
type Message struct {
	Severity Severity
	Text     string
}

// Recorder keeps every message it receives. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// Notify records the message.
func (r *Recorder) Notify(severity Severity, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Severity: severity, Text: message})
}

// Messages returns a copy of what was recorded.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
