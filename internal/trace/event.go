package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = names[Kind]{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string { return kindNames.of(k) }

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command
	ScopePass                    // load, collect, check
	ScopeModule                  // one module file or collection wave
	ScopeNode                    // one declaration
)

var scopeNames = names[Scope]{ScopeDriver: "driver", ScopePass: "pass", ScopeModule: "module", ScopeNode: "node"}

func (s Scope) String() string { return scopeNames.of(s) }

// Event is one trace record. Seq is assigned by the tracer that stores it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 у корневых
	GID      uint64
	Name     string // "collect", "parse:src/a.dn"
	Detail   string
	Extra    map[string]string
}
