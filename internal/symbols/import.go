package symbols

import "danube/internal/source"

type ImportKind uint8

const (
	ImportDirect ImportKind = iota
	ImportAliased
	ImportGlob
)

func (k ImportKind) String() string {
	switch k {
	case ImportDirect:
		return "direct"
	case ImportAliased:
		return "aliased"
	case ImportGlob:
		return "glob"
	default:
		return "invalid"
	}
}

// Import is one `use` leaf attached to a scope. For a glob, Path names the
// scope whose names become visible.
type Import struct {
	Path  []source.StringID
	Kind  ImportKind
	Alias source.StringID
	Span  source.Span
}

// Binding is the name a direct or aliased import introduces; NoStringID
// for globs and empty paths.
func (imp Import) Binding() source.StringID {
	switch imp.Kind {
	case ImportAliased:
		return imp.Alias
	case ImportDirect:
		if len(imp.Path) > 0 {
			return imp.Path[len(imp.Path)-1]
		}
	}
	return source.NoStringID
}
