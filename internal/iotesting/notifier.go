package iotesting

import (
	"sync"
)

// Message is one recorded notification.
type Message struct {
	Title string
	Body  string
}

// RecordingNotifier keeps every notification for later inspection.
// It is safe for concurrent use.
type RecordingNotifier struct {
	mu     sync.Mutex
	Infos  []Message
	Warns  []Message
	Errors []Message
}

// NewNotifier creates an empty recording notifier.
func NewNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) Info(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Infos = append(n.Infos, Message{Title: title, Body: message})
}

func (n *RecordingNotifier) Warn(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Warns = append(n.Warns, Message{Title: title, Body: message})
}

func (n *RecordingNotifier) Error(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, Message{Title: title, Body: message})
}
