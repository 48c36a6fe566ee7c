// Package events carries observability notifications out of the
// simulation. Components publish to an injected Publisher and never
// depend on what the sink does with them.
package events

// Type names an event
type Type string

// Severity ranks events for sinks that filter
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a single notification
type Event struct {
	Type     Type
	Severity Severity
	// Actor identifies who the event is about, e.g. "soldier#3"
	Actor   string
	Message string
	Fields  map[string]any
}

// With returns a copy of e with key set
func (e Event) With(key string, value any) Event {
	fields := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[key] = value
	e.Fields = fields
	return e
}

// Publisher receives events
type Publisher interface {
	Publish(event Event)
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(event Event)

func (f PublisherFunc) Publish(event Event) {
	if f == nil {
		return
	}
	f(event)
}

type nop struct{}

func (nop) Publish(Event) {}

// Nop returns a publisher that drops everything
func Nop() Publisher {
	return nop{}
}

// OrNop returns p, or Nop when p is nil
func OrNop(p Publisher) Publisher {
	if p == nil {
		return Nop()
	}
	return p
}

// Fanout publishes every event to each of the given publishers in order
func Fanout(pubs ...Publisher) Publisher {
	return PublisherFunc(func(event Event) {
		for _, p := range pubs {
			if p != nil {
				p.Publish(event)
			}
		}
	})
}
