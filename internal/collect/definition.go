package collect

import (
	"danube/internal/ast"
	"danube/internal/source"
	"danube/internal/symbols"
)

// DefKind tells what kind of declaration a Definition came from.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefModule
	DefStruct
	DefField
	DefEnum
	DefVariant
	DefTrait
	DefImpl
	DefFn
	DefParam
	DefConst
	DefStatic
	DefTypeAlias
	DefTypeParam
	DefConstParam
	DefSelfType
	DefItems   // the associated-item scope of a trait or impl
	DefBuiltin // prelude primitive
)

func (k DefKind) String() string {
	switch k {
	case DefModule:
		return "module"
	case DefStruct:
		return "struct"
	case DefField:
		return "field"
	case DefEnum:
		return "enum"
	case DefVariant:
		return "variant"
	case DefTrait:
		return "trait"
	case DefImpl:
		return "impl"
	case DefFn:
		return "fn"
	case DefParam:
		return "param"
	case DefConst:
		return "const"
	case DefStatic:
		return "static"
	case DefTypeAlias:
		return "type alias"
	case DefTypeParam:
		return "type param"
	case DefConstParam:
		return "const param"
	case DefSelfType:
		return "Self"
	case DefItems:
		return "items"
	case DefBuiltin:
		return "builtin"
	default:
		return "invalid"
	}
}

// Definition is the payload stored in every environment node. Item refers
// into the AST of File; it is ast.NoItemID for builtins and for entries
// that are not items themselves (fields, params).
type Definition struct {
	Kind DefKind
	Name source.StringID
	File source.FileID
	Item ast.ItemID
	Span source.Span
}

// Env is the environment instantiated with collector definitions.
type Env = symbols.Env[Definition]

// PathUse is a path in type position, recorded with the scope it must be
// resolved from.
type PathUse struct {
	Scope     symbols.ScopeID
	Namespace symbols.Namespace
	Path      []source.StringID
	Span      source.Span
}
