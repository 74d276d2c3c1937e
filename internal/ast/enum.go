package ast

import "danube/internal/source"

// Variant is one enum variant. Shape FieldsUnit covers both `A` and
// `A = 1`; HasDiscriminant tells them apart.
type Variant struct {
	Name            source.StringID
	NameSpan        source.Span
	Shape           FieldsShape
	Fields          []FieldID
	HasDiscriminant bool
	Span            source.Span
}

type EnumItem struct {
	Generics []GenericParamID
	Variants []VariantID
}

func (i *Items) Enum(id ItemID) (*EnumItem, bool) {
	p, ok := i.payload(id, ItemEnum)
	if !ok {
		return nil, false
	}
	return i.Enums.Get(p), true
}

func (i *Items) Variant(id VariantID) *Variant {
	return i.Variants.Get(uint32(id))
}

func (i *Items) NewVariant(v Variant) VariantID {
	return VariantID(i.Variants.Allocate(v))
}

func (i *Items) NewEnum(h ItemHeader, e EnumItem) ItemID {
	payload := i.Enums.Allocate(e)
	return i.New(ItemEnum, h, PayloadID(payload))
}
