package events

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// LogrusSink writes events through a logrus logger
type LogrusSink struct {
	logger *log.Logger
}

// NewLogrusSink wraps logger; a nil logger uses the logrus standard logger
func NewLogrusSink(logger *log.Logger) *LogrusSink {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogrusSink{logger: logger}
}

// Publish implements Publisher
func (s *LogrusSink) Publish(event Event) {
	fields := make(log.Fields, len(event.Fields)+2)
	for k, v := range event.Fields {
		fields[k] = v
	}
	fields["event"] = string(event.Type)
	if event.Actor != "" {
		fields["actor"] = event.Actor
	}
	entry := s.logger.WithFields(fields)

	msg := event.Message
	if msg == "" {
		msg = string(event.Type)
	}

	switch event.Severity {
	case SeverityDebug:
		entry.Debug(msg)
	case SeverityWarn:
		entry.Warn(msg)
	case SeverityError:
		entry.Error(msg)
	default:
		entry.Info(msg)
	}
}

// MemorySink keeps every event it receives, for tests and post-mortems
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{events: make([]Event, 0)}
}

// Publish implements Publisher
func (s *MemorySink) Publish(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns a copy of everything published so far
func (s *MemorySink) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := make([]Event, len(s.events))
	copy(copied, s.events)
	return copied
}

// OfType returns the recorded events with the given type
func (s *MemorySink) OfType(t Type) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []Event
	for _, e := range s.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = s.events[:0]
}
