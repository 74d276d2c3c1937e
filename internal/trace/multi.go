package trace

import "errors"

// MultiTracer fans events out to several tracers.
type MultiTracer struct {
	sinks []Tracer
	level Level
}

func NewMultiTracer(level Level, sinks ...Tracer) *MultiTracer {
	return &MultiTracer{sinks: sinks, level: level}
}

// Emit hands each sink its own copy: sinks stamp Seq on the event.
func (t *MultiTracer) Emit(ev *Event) {
	for _, s := range t.sinks {
		cp := *ev
		s.Emit(&cp)
	}
}

func (t *MultiTracer) each(op func(Tracer) error) error {
	errs := make([]error, 0, len(t.sinks))
	for _, s := range t.sinks {
		errs = append(errs, op(s))
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Flush() error { return t.each(Tracer.Flush) }

func (t *MultiTracer) Close() error { return t.each(Tracer.Close) }

func (t *MultiTracer) Level() Level { return t.level }

func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }

// Ring returns the first ring sink, if any.
func (t *MultiTracer) Ring() (*RingTracer, bool) {
	for _, s := range t.sinks {
		if r, ok := s.(*RingTracer); ok {
			return r, true
		}
	}
	return nil, false
}
