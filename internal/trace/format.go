package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format is the output encoding of a stream tracer.
type Format uint8

const (
	FormatAuto Format = iota // NDJSON for *.ndjson and *.jsonl outputs, text otherwise
	FormatText
	FormatNDJSON
)

var formatNames = names[Format]{"auto", "text", "ndjson"}

// ParseFormat accepts auto, text, ndjson or json.
func ParseFormat(s string) (Format, error) {
	switch f, ok := formatNames.lookup(s); {
	case ok:
		return f, nil
	case strings.TrimSpace(s) == "":
		return FormatAuto, nil
	case strings.EqualFold(s, "json"):
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: %s)", s, formatNames.choices())
}

// FormatEvent renders ev as one newline-terminated line.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendJSON(nil, ev)
	}
	return appendText(nil, ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

const jsonTime = "2006-01-02T15:04:05.000000Z07:00"

func appendJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time: ev.Time.Format(jsonTime), Seq: ev.Seq,
		Kind: ev.Kind.String(), Scope: ev.Scope.String(),
		SpanID: ev.SpanID, ParentID: ev.ParentID, GID: ev.GID,
		Name: ev.Name, Detail: ev.Detail, Extra: ev.Extra,
	})
	if err != nil {
		return dst
	}
	return append(append(dst, data...), '\n')
}

var kindArrows = [...]string{KindSpanBegin: "→ ", KindSpanEnd: "← ", KindPoint: "• "}

// appendText writes "#seq scope → name (detail) {k=v, ...}"; children are
// indented by two spaces and extras are sorted by key.
func appendText(dst []byte, ev *Event) []byte {
	dst = fmt.Appendf(dst, "#%-5d %-6s ", ev.Seq, ev.Scope)
	if ev.ParentID > 0 {
		dst = append(dst, "  "...)
	}
	if int(ev.Kind) < len(kindArrows) {
		dst = append(dst, kindArrows[ev.Kind]...)
	}
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = fmt.Appendf(dst, " (%s)", ev.Detail)
	}
	for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
		sep := ", "
		if i == 0 {
			sep = " {"
		}
		dst = fmt.Appendf(dst, "%s%s=%s", sep, k, ev.Extra[k])
	}
	if len(ev.Extra) > 0 {
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}
