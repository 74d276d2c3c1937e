package diagfmt

import (
	"strings"

	"danube/internal/ast"
	"danube/internal/source"
)

// formatTypeExprInline renders typeID as source-like text. Missing parts
// print as placeholders such as "<inferred>" or "<invalid>".
func formatTypeExprInline(b *ast.Builder, strs *source.Interner, typeID ast.TypeID) string {
	if !typeID.IsValid() {
		return "<inferred>"
	}
	typ := b.Types.Get(typeID)
	if typ == nil {
		return "<invalid>"
	}
	sub := func(i int) string {
		if i >= len(typ.Elems) {
			return "<invalid>"
		}
		return formatTypeExprInline(b, strs, typ.Elems[i])
	}
	list := func(ids []ast.TypeID, sep string) string {
		parts := make([]string, len(ids))
		for i, id := range ids {
			parts[i] = formatTypeExprInline(b, strs, id)
		}
		return strings.Join(parts, sep)
	}

	switch typ.Kind {
	case ast.TypeExprPath:
		path := formatPathSegments(b, strs, typ.Path)
		if !typ.Qualified {
			return path
		}
		qual := "<" + sub(0)
		if len(typ.Elems) > 1 {
			qual += " as " + sub(1)
		}
		return qual + ">::" + path
	case ast.TypeExprRef:
		if typ.Mutable {
			return "&mut " + sub(0)
		}
		return "&" + sub(0)
	case ast.TypeExprPtr:
		if typ.Mutable {
			return "*mut " + sub(0)
		}
		return "*const " + sub(0)
	case ast.TypeExprTuple:
		if len(typ.Elems) == 1 {
			return "(" + sub(0) + ",)"
		}
		return "(" + list(typ.Elems, ", ") + ")"
	case ast.TypeExprArray:
		return "[" + sub(0) + "; _]"
	case ast.TypeExprSlice:
		return "[" + sub(0) + "]"
	case ast.TypeExprFn:
		n := len(typ.Elems)
		if n == 0 {
			return "fn()"
		}
		return "fn(" + list(typ.Elems[:n-1], ", ") + ") -> " + sub(n-1)
	case ast.TypeExprNever:
		return "!"
	case ast.TypeExprInfer:
		return "_"
	case ast.TypeExprTraitObject:
		return "dyn " + list(typ.Elems, " + ")
	}
	return "<unknown-type>"
}

func formatPathSegments(b *ast.Builder, strs *source.Interner, segs []ast.PathSegment) string {
	parts := make([]string, len(segs))
	for i, seg := range segs {
		name := strs.MustLookup(seg.Name)
		if len(seg.Args) > 0 {
			args := make([]string, len(seg.Args))
			for j, a := range seg.Args {
				args[j] = formatTypeExprInline(b, strs, a)
			}
			name += "<" + strings.Join(args, ", ") + ">"
		}
		parts[i] = name
	}
	return strings.Join(parts, "::")
}
