package log

import "sync/atomic"

// errorCounter is implemented by sinks that count failed writes, such as
// FileLogger.
type errorCounter interface {
	Errors() int
}

// MultiLogger fans capture events out to several sinks, typically a
// FileLogger and a SlogAdapter. A sink that panics is skipped for that event
// and counted; the remaining sinks still receive it.
type MultiLogger struct {
	sinks  []Logger
	panics []atomic.Int64
}

// NewMultiLogger creates a MultiLogger over sinks. Nil sinks are ignored.
func NewMultiLogger(sinks ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	m.panics = make([]atomic.Int64, len(m.sinks))
	return m
}

// Log sends the event to every sink.
func (m *MultiLogger) Log(event Event) {
	for i, s := range m.sinks {
		m.logTo(i, s, event)
	}
}

func (m *MultiLogger) logTo(i int, s Logger, event Event) {
	defer func() {
		if recover() != nil {
			m.panics[i].Add(1)
		}
	}()
	s.Log(event)
}

// SinkErrors returns the failure count of each sink, in construction order:
// panics while logging plus the sink's own Errors() when it reports them.
func (m *MultiLogger) SinkErrors() []int {
	out := make([]int, len(m.sinks))
	for i, s := range m.sinks {
		out[i] = int(m.panics[i].Load())
		if ec, ok := s.(errorCounter); ok {
			out[i] += ec.Errors()
		}
	}
	return out
}

// Errors returns the total failure count across all sinks.
func (m *MultiLogger) Errors() int {
	n := 0
	for _, e := range m.SinkErrors() {
		n += e
	}
	return n
}

var (
	_ Logger       = (*MultiLogger)(nil)
	_ errorCounter = (*MultiLogger)(nil)
	_ errorCounter = (*FileLogger)(nil)
)
