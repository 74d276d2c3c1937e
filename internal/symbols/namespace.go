package symbols

import "fmt"

// Namespace selects one of the two disjoint symbol tables of a scope.
type Namespace uint8

const (
	TypeNS Namespace = iota
	ValueNS

	namespaceCount = 2
)

func (ns Namespace) String() string {
	switch ns {
	case TypeNS:
		return "type"
	case ValueNS:
		return "value"
	default:
		return fmt.Sprintf("Namespace(%d)", ns)
	}
}

// ParseNamespace accepts "type"/"t" and "value"/"v".
func ParseNamespace(s string) (Namespace, error) {
	switch s {
	case "type", "t":
		return TypeNS, nil
	case "value", "v":
		return ValueNS, nil
	}
	return TypeNS, fmt.Errorf("unknown namespace %q (want type or value)", s)
}
