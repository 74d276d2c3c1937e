package ast

import "danube/internal/source"

type TraitItem struct {
	Generics    []GenericParamID
	Supertraits []TypeID
	Items       []ItemID
	BodySpan    source.Span
}

// ImplItem is `impl<G> Trait for Self {}` or `impl<G> Self {}` (Trait == NoTypeID).
type ImplItem struct {
	Generics []GenericParamID
	Trait    TypeID
	SelfType TypeID
	Items    []ItemID
	BodySpan source.Span
}

func (i *Items) Trait(id ItemID) (*TraitItem, bool) {
	p, ok := i.payload(id, ItemTrait)
	if !ok {
		return nil, false
	}
	return i.Traits.Get(p), true
}

func (i *Items) Impl(id ItemID) (*ImplItem, bool) {
	p, ok := i.payload(id, ItemImpl)
	if !ok {
		return nil, false
	}
	return i.Impls.Get(p), true
}

func (i *Items) NewTrait(h ItemHeader, t TraitItem) ItemID {
	payload := i.Traits.Allocate(t)
	return i.New(ItemTrait, h, PayloadID(payload))
}

func (i *Items) NewImpl(h ItemHeader, im ImplItem) ItemID {
	payload := i.Impls.Allocate(im)
	return i.New(ItemImpl, h, PayloadID(payload))
}
