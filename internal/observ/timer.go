package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer records the phases of one driver run. Safe for concurrent use;
// a nil *Timer records nothing.
type Timer struct {
	mu     sync.Mutex
	now    func() time.Time
	phases []phase
}

func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Start opens a phase. The returned stop func closes it with a note; only
// the first call counts.
func (t *Timer) Start(name string) (stop func(note string)) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, phase{name: name, start: t.now()})
	t.mu.Unlock()

	var once sync.Once
	return func(note string) {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			p := &t.phases[idx]
			p.dur, p.note = t.now().Sub(p.start), note
		})
	}
}

// Measure times fn as phase name. fn's note becomes the phase note
// ("failed" when fn errs without one); its error is returned as is.
func (t *Timer) Measure(name string, fn func() (string, error)) error {
	stop := t.Start(name)
	note, err := fn()
	if err != nil && note == "" {
		note = "failed"
	}
	stop(note)
	return err
}

type PhaseReport struct {
	Name       string  `json:"name" yaml:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	Note       string  `json:"note,omitempty" yaml:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms" yaml:"total_ms"`
	Phases  []PhaseReport `json:"phases" yaml:"phases"`
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Report lists the phases in start order. Phases still open count as zero.
func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.dur), Note: p.note})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders Report as an aligned table.
func (t *Timer) Summary() string {
	r := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			fmt.Fprintf(&b, "  // %s", note)
		}
		b.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return b.String()
}
