package ast

import "danube/internal/source"

// FieldsShape distinguishes `{ a: T }`, `(T)` and no fields at all.
type FieldsShape uint8

const (
	FieldsUnit FieldsShape = iota
	FieldsNamed
	FieldsTuple
)

// Field is a struct or variant field. Tuple fields have no Name.
type Field struct {
	Name       source.StringID
	NameSpan   source.Span
	Type       TypeID
	Visibility Visibility
	Span       source.Span
}

type StructItem struct {
	Generics []GenericParamID
	Shape    FieldsShape
	Fields   []FieldID
}

func (i *Items) Struct(id ItemID) (*StructItem, bool) {
	p, ok := i.payload(id, ItemStruct)
	if !ok {
		return nil, false
	}
	return i.Structs.Get(p), true
}

func (i *Items) Field(id FieldID) *Field {
	return i.Fields.Get(uint32(id))
}

func (i *Items) NewField(f Field) FieldID {
	return FieldID(i.Fields.Allocate(f))
}

func (i *Items) NewStruct(h ItemHeader, s StructItem) ItemID {
	payload := i.Structs.Allocate(s)
	return i.New(ItemStruct, h, PayloadID(payload))
}
