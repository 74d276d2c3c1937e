package diag

import "danube/internal/source"

type reportKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// DedupReporter forwards each (code, severity, span, message) once.
// Not safe for concurrent use; wrap it in a SyncReporter.
type DedupReporter struct {
	next       Reporter
	seen       map[reportKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[reportKey]struct{}{}}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	k := reportKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[k]; dup {
		r.suppressed++
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// Suppressed counts the reports dropped as duplicates.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
