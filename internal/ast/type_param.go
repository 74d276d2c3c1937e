package ast

import "danube/internal/source"

type GenericParamKind uint8

const (
	GenericType GenericParamKind = iota
	GenericConst
	GenericLifetime
)

// GenericParam is one entry of `<'a, T: Bound = Default, const N: usize>`.
type GenericParam struct {
	Kind      GenericParamKind
	Name      source.StringID
	NameSpan  source.Span
	Bounds    []TypeID
	ConstType TypeID
	Default   TypeID
	Span      source.Span
}

func (i *Items) GenericParam(id GenericParamID) *GenericParam {
	return i.GenericParams.Get(uint32(id))
}

func (i *Items) NewGenericParam(p GenericParam) GenericParamID {
	return GenericParamID(i.GenericParams.Allocate(p))
}
