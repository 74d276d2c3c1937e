package diag

import (
	"sync"

	"danube/internal/source"
)

// Reporter receives diagnostics from the phases.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// Emit sends d to r; a nil r drops it.
func Emit(r Reporter, d Diagnostic) {
	if r != nil {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
	}
}

// ReportBuilder attaches notes and fixes before the diagnostic is sent.
// Emit sends it at most once; a nil builder is a no-op.
type ReportBuilder struct {
	to   Reporter
	d    Diagnostic
	sent bool
}

func report(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return report(r, SevError, code, primary, msg)
}

func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return report(r, SevWarning, code, primary, msg)
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

func (b *ReportBuilder) WithFix(title string, edits ...FixEdit) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithFix(title, edits...)
	}
	return b
}

func (b *ReportBuilder) Emit() {
	if b == nil || b.sent {
		return
	}
	b.sent = true
	Emit(b.to, b.d)
}

// BagReporter appends to Bag, honoring its cap.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes, Fixes: fixes})
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note, []Fix) {}

// SyncReporter serializes Report calls; parser and check workers share one.
type SyncReporter struct {
	mu   sync.Mutex
	next Reporter
}

func NewSyncReporter(next Reporter) *SyncReporter { return &SyncReporter{next: next} }

func (r *SyncReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}
