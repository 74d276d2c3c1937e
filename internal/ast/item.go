package ast

import (
	"danube/internal/source"
)

type ItemKind uint8

const (
	ItemUse ItemKind = iota
	ItemMod
	ItemStruct
	ItemEnum
	ItemTrait
	ItemImpl
	ItemFn
	ItemConst
	ItemStatic
	ItemTypeAlias
)

func (k ItemKind) String() string {
	switch k {
	case ItemUse:
		return "use"
	case ItemMod:
		return "mod"
	case ItemStruct:
		return "struct"
	case ItemEnum:
		return "enum"
	case ItemTrait:
		return "trait"
	case ItemImpl:
		return "impl"
	case ItemFn:
		return "fn"
	case ItemConst:
		return "const"
	case ItemStatic:
		return "static"
	case ItemTypeAlias:
		return "type"
	}
	return "item(?)"
}

// Item is the common header of every declaration. Name is NoStringID when
// the declaration has no name (use, impl) or the parser could not find one.
type Item struct {
	Kind       ItemKind
	Span       source.Span
	Name       source.StringID
	NameSpan   source.Span
	Visibility Visibility
	Payload    PayloadID
}

// ItemHeader carries the parts of Item that the parser knows before the payload.
type ItemHeader struct {
	Span       source.Span
	Name       source.StringID
	NameSpan   source.Span
	Visibility Visibility
}

type Items struct {
	Arena         *Arena[Item]
	Uses          *Arena[UseItem]
	UseTrees      *Arena[UseTree]
	Mods          *Arena[ModItem]
	Structs       *Arena[StructItem]
	Fields        *Arena[Field]
	Enums         *Arena[EnumItem]
	Variants      *Arena[Variant]
	Traits        *Arena[TraitItem]
	Impls         *Arena[ImplItem]
	Fns           *Arena[FnItem]
	FnParams      *Arena[FnParam]
	Consts        *Arena[ConstItem]
	TypeAliases   *Arena[TypeAliasItem]
	GenericParams *Arena[GenericParam]
}

// NewItems creates an *Items with every per-kind arena sized to capHint
// (1<<8 when capHint is 0).
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:         NewArena[Item](capHint),
		Uses:          NewArena[UseItem](capHint),
		UseTrees:      NewArena[UseTree](capHint),
		Mods:          NewArena[ModItem](capHint),
		Structs:       NewArena[StructItem](capHint),
		Fields:        NewArena[Field](capHint),
		Enums:         NewArena[EnumItem](capHint),
		Variants:      NewArena[Variant](capHint),
		Traits:        NewArena[TraitItem](capHint),
		Impls:         NewArena[ImplItem](capHint),
		Fns:           NewArena[FnItem](capHint),
		FnParams:      NewArena[FnParam](capHint),
		Consts:        NewArena[ConstItem](capHint),
		TypeAliases:   NewArena[TypeAliasItem](capHint),
		GenericParams: NewArena[GenericParam](capHint),
	}
}

func (i *Items) New(kind ItemKind, h ItemHeader, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:       kind,
		Span:       h.Span,
		Name:       h.Name,
		NameSpan:   h.NameSpan,
		Visibility: h.Visibility,
		Payload:    payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// payload returns the payload index if id names an item of the given kind.
func (i *Items) payload(id ItemID, kind ItemKind) (uint32, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != kind {
		return 0, false
	}
	return uint32(item.Payload), true
}
