package ast

// Visibility is recorded for tooling; resolution ignores it.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPublic
	// VisCrate covers pub(crate), pub(super) and pub(in path).
	VisCrate
)

var visibilityNames = [...]string{VisPrivate: "private", VisPublic: "public", VisCrate: "restricted"}

func (v Visibility) String() string {
	if int(v) < len(visibilityNames) {
		return visibilityNames[v]
	}
	return visibilityNames[VisPrivate]
}
