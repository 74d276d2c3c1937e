package collect

import (
	"strings"

	"fortio.org/safecast"

	"danube/internal/source"
	"danube/internal/symbols"
)

// builtinTypes is the default set of primitive types visible from every module.
var builtinTypes = []string{
	"bool", "char", "str",
	"i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize",
	"f32", "f64",
}

// PreludeSource is the text of the virtual prelude file: one builtin per
// line. Prelude definitions carry spans into it.
func PreludeSource() string {
	return strings.Join(builtinTypes, "\n") + "\n"
}

// InstallPrelude creates the prelude scope and registers the builtin types
// in it. file is the FileID of PreludeSource in the caller's FileSet.
func InstallPrelude(env *Env, strs *source.Interner, file source.FileID) symbols.ScopeID {
	text := PreludeSource()
	scope := env.AddScope(symbols.RibPrelude, symbols.NoScopeID, source.Span{
		File: file,
		End:  spanOffset(len(text)),
	})
	var off uint32
	for _, name := range builtinTypes {
		sym := strs.Intern(name)
		sp := source.Span{File: file, Start: off, End: off + spanOffset(len(name))}
		off = sp.End + 1
		if _, err := env.AddDefinition(scope, symbols.TypeNS, sym, Definition{
			Kind: DefBuiltin,
			Name: sym,
			File: file,
			Span: sp,
		}, symbols.NoScopeID); err != nil {
			panic(err) // builtin names are distinct
		}
	}
	return scope
}

func spanOffset(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	return v
}
