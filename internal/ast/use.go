package ast

import "danube/internal/source"

// UseTreeKind is the shape of the tail of a use tree.
type UseTreeKind uint8

const (
	// UseTreeInvalid marks a tree the parser could not complete.
	UseTreeInvalid UseTreeKind = iota
	// UseTreeSimple is `a::b` or `a::b as c`.
	UseTreeSimple
	// UseTreeGlob is `a::b::*`.
	UseTreeGlob
	// UseTreeNested is `a::b::{...}`.
	UseTreeNested
)

// PathSegment is one `::`-separated element of a path.
type PathSegment struct {
	Name source.StringID
	Span source.Span
	// Args are the generic arguments written after the segment (`Vec<T>`).
	Args []TypeID
}

// UseTree is one node of a `use` declaration. Prefix holds the segments
// written before the tail.
type UseTree struct {
	Kind      UseTreeKind
	Prefix    []PathSegment
	Alias     source.StringID
	AliasSpan source.Span
	Children  []UseTreeID
	Span      source.Span
}

type UseItem struct {
	Tree UseTreeID
}

func (i *Items) Use(id ItemID) (*UseItem, bool) {
	p, ok := i.payload(id, ItemUse)
	if !ok {
		return nil, false
	}
	return i.Uses.Get(p), true
}

func (i *Items) UseTree(id UseTreeID) *UseTree {
	return i.UseTrees.Get(uint32(id))
}

func (i *Items) NewUseTree(tree UseTree) UseTreeID {
	return UseTreeID(i.UseTrees.Allocate(tree))
}

func (i *Items) NewUse(h ItemHeader, tree UseTreeID) ItemID {
	payload := i.Uses.Allocate(UseItem{Tree: tree})
	return i.New(ItemUse, h, PayloadID(payload))
}
