package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"danube/internal/collect"
	"danube/internal/source"
	"danube/internal/symbols"
)

// ScopeOptions controls RenderScopes.
type ScopeOptions struct {
	Color bool
	// NameWidth truncates definition names; 0 keeps them whole.
	NameWidth int
	// Locate turns a span into a location; nil omits locations.
	Locate func(source.Span) string
	// Depth limits how far below the root scopes are printed; 0 means no limit.
	Depth int
}

type scopeStyles struct {
	scope, ns, name, kind, imp, loc lipgloss.Style
}

func newScopeStyles(color bool) scopeStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return scopeStyles{plain, plain, plain, plain, plain, plain}
	}
	return scopeStyles{
		scope: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		ns:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		name:  lipgloss.NewStyle().Bold(true),
		kind:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		imp:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		loc:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

type scopeRow struct {
	prefix string
	ns     string
	name   string
	kind   string
	loc    string
}

// RenderScopes prints root and the scopes below it: every definition with
// its namespace and kind, then the imports of the scope.
func RenderScopes(w io.Writer, env *collect.Env, strs *source.Interner, root symbols.ScopeID, opts ScopeOptions) error {
	st := newScopeStyles(opts.Color)
	name := func(id source.StringID) string {
		s, ok := strs.Lookup(id)
		if !ok || id == source.NoStringID {
			return "_"
		}
		return truncate(s, opts.NameWidth)
	}

	var b strings.Builder
	env.Walk(root, func(id symbols.ScopeID, depth int, s *symbols.Scope) bool {
		indent := strings.Repeat("│  ", depth)
		header := fmt.Sprintf("%s #%d", s.Kind, id)
		b.WriteString(indent + st.scope.Render(header))
		if opts.Locate != nil && s.Kind != symbols.RibPrelude {
			b.WriteString(" " + st.loc.Render(opts.Locate(s.Span)))
		}
		b.WriteByte('\n')

		rows := make([]scopeRow, 0, len(s.Nodes))
		for _, nid := range s.Nodes {
			n := env.Node(nid)
			if n == nil {
				continue
			}
			row := scopeRow{
				prefix: indent + "├─ ",
				ns:     n.Namespace.String(),
				name:   name(n.Name),
				kind:   n.Def.Kind.String(),
			}
			if n.Child.IsValid() {
				row.kind += fmt.Sprintf(" → #%d", n.Child)
			}
			if opts.Locate != nil && n.Def.Kind != collect.DefBuiltin {
				row.loc = opts.Locate(n.Def.Span)
			}
			rows = append(rows, row)
		}
		writeRows(&b, rows, st)

		for _, imp := range s.Imports {
			line := "use " + joinPath(imp.Path, name)
			switch imp.Kind {
			case symbols.ImportGlob:
				line += "::*"
			case symbols.ImportAliased:
				line += " as " + name(imp.Alias)
			}
			b.WriteString(indent + "├─ " + st.imp.Render(line) + "\n")
		}
		return opts.Depth == 0 || depth < opts.Depth
	})
	_, err := io.WriteString(w, b.String())
	return err
}

// writeRows aligns the namespace and name columns by display width.
func writeRows(b *strings.Builder, rows []scopeRow, st scopeStyles) {
	nsWidth, nameWidth := 0, 0
	for _, r := range rows {
		nsWidth = max(nsWidth, runewidth.StringWidth(r.ns))
		nameWidth = max(nameWidth, runewidth.StringWidth(r.name))
	}
	for _, r := range rows {
		b.WriteString(r.prefix)
		b.WriteString(st.ns.Render(runewidth.FillRight(r.ns, nsWidth)))
		b.WriteString("  ")
		b.WriteString(st.name.Render(runewidth.FillRight(r.name, nameWidth)))
		b.WriteString("  ")
		b.WriteString(st.kind.Render(r.kind))
		if r.loc != "" {
			b.WriteString("  " + st.loc.Render(r.loc))
		}
		b.WriteByte('\n')
	}
}

func joinPath(path []source.StringID, name func(source.StringID) string) string {
	parts := make([]string, len(path))
	for i, seg := range path {
		parts[i] = name(seg)
	}
	return strings.Join(parts, "::")
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
