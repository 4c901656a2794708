// Package notify is the notification sink for mutation outcomes. Messages are
// fire-and-forget: the service emits them and moves on, nothing awaits or
// retries delivery.
package notify

import (
	"github.com/rs/zerolog"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is one user-facing message.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives user-facing messages about mutation outcomes.
// Implementations must not block the caller on delivery.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// LogNotifier writes notifications to a structured logger. It is the default
// sink for the CLI and the server.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a log-backed notification sink.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(message string) {
	n.log.Info().Str("level", string(LevelSuccess)).Msg(message)
}

func (n *LogNotifier) Error(message string) {
	n.log.Warn().Str("level", string(LevelError)).Msg(message)
}

func (n *LogNotifier) Info(message string) {
	n.log.Info().Str("level", string(LevelInfo)).Msg(message)
}

// Multi fans one notification out to several sinks.
type Multi struct {
	sinks []Notifier
}

// NewMulti creates a notifier that forwards to every given sink in order.
func NewMulti(sinks ...Notifier) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Success(message string) {
	for _, s := range m.sinks {
		s.Success(message)
	}
}

func (m *Multi) Error(message string) {
	for _, s := range m.sinks {
		s.Error(message)
	}
}

func (m *Multi) Info(message string) {
	for _, s := range m.sinks {
		s.Info(message)
	}
}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*Multi)(nil)
)
