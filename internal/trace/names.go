package trace

import "strings"

// names maps small enum values to their flag spellings; the index is the value.
type names[T ~uint8] []string

func (n names[T]) of(v T) string {
	if int(v) < len(n) && n[v] != "" {
		return n[v]
	}
	return "unknown"
}

// lookup is case-insensitive and ignores surrounding blanks.
func (n names[T]) lookup(s string) (T, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range n {
		if name != "" && name == s {
			return T(i), true // #nosec G115 -- tables are far shorter than 256
		}
	}
	return 0, false
}

func (n names[T]) choices() string {
	var out []string
	for _, name := range n {
		if name != "" {
			out = append(out, name)
		}
	}
	return strings.Join(out, "|")
}
