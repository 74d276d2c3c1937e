package ast

import "danube/internal/source"

// FnParam is a value parameter. Only identifier patterns are named; `_` and
// destructuring patterns leave Name empty.
type FnParam struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
	IsSelf   bool
	Span     source.Span
}

// FnItem keeps only the signature; the body is skipped by the parser and
// recorded as BodySpan.
type FnItem struct {
	Generics   []GenericParamID
	Params     []FnParamID
	ReturnType TypeID
	HasBody    bool
	BodySpan   source.Span
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	p, ok := i.payload(id, ItemFn)
	if !ok {
		return nil, false
	}
	return i.Fns.Get(p), true
}

func (i *Items) FnParam(id FnParamID) *FnParam {
	return i.FnParams.Get(uint32(id))
}

func (i *Items) NewFnParam(p FnParam) FnParamID {
	return FnParamID(i.FnParams.Allocate(p))
}

func (i *Items) NewFn(h ItemHeader, fn FnItem) ItemID {
	payload := i.Fns.Allocate(fn)
	return i.New(ItemFn, h, PayloadID(payload))
}
