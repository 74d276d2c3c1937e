package ast

import (
	"danube/internal/source"
)

type TypeExprKind uint8

const (
	TypeExprPath TypeExprKind = iota
	TypeExprRef
	TypeExprPtr
	TypeExprTuple
	TypeExprArray
	TypeExprSlice
	TypeExprFn
	TypeExprNever
	TypeExprInfer
	TypeExprTraitObject // dyn A + B, impl A + B
)

// TypeExpr is a type in declaration position. Path is set for TypeExprPath,
// Elems holds the element(s) of every other composite kind, and for
// TypeExprFn the last element is the return type.
//
// A qualified path `<T as Tr>::Item` is a TypeExprPath with Qualified set:
// Path holds the segments after `>::` and Elems holds T and, if present, Tr.
type TypeExpr struct {
	Kind      TypeExprKind
	Span      source.Span
	Path      []PathSegment
	Elems     []TypeID
	Mutable   bool
	Qualified bool
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{
		Arena: NewArena[TypeExpr](capHint),
	}
}

func (t *TypeExprs) New(expr TypeExpr) TypeID {
	return TypeID(t.Arena.Allocate(expr))
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

// Walk calls fn for id and every type nested in it, outermost first,
// including generic arguments of path segments.
func (t *TypeExprs) Walk(id TypeID, fn func(TypeID, *TypeExpr)) {
	stack := []TypeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		expr := t.Get(cur)
		if expr == nil {
			continue
		}
		fn(cur, expr)
		var nested []TypeID
		for _, seg := range expr.Path {
			nested = append(nested, seg.Args...)
		}
		nested = append(nested, expr.Elems...)
		for k := len(nested) - 1; k >= 0; k-- {
			stack = append(stack, nested[k])
		}
	}
}
