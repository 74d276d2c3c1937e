package ast

// ConstItem backs both `const` and `static` items.
type ConstItem struct {
	Type     TypeID
	Mutable  bool // static mut
	HasValue bool
}

// Const returns the payload of a const or static item.
func (i *Items) Const(id ItemID) (*ConstItem, bool) {
	item := i.Get(id)
	if item == nil || (item.Kind != ItemConst && item.Kind != ItemStatic) {
		return nil, false
	}
	return i.Consts.Get(uint32(item.Payload)), true
}

func (i *Items) NewConst(kind ItemKind, h ItemHeader, c ConstItem) ItemID {
	payload := i.Consts.Allocate(c)
	return i.New(kind, h, PayloadID(payload))
}

// TypeAliasItem is `type Name<G> = T;`. Inside traits Type may be NoTypeID.
type TypeAliasItem struct {
	Generics []GenericParamID
	Bounds   []TypeID
	Type     TypeID
}

func (i *Items) TypeAlias(id ItemID) (*TypeAliasItem, bool) {
	p, ok := i.payload(id, ItemTypeAlias)
	if !ok {
		return nil, false
	}
	return i.TypeAliases.Get(p), true
}

func (i *Items) NewTypeAlias(h ItemHeader, a TypeAliasItem) ItemID {
	payload := i.TypeAliases.Allocate(a)
	return i.New(ItemTypeAlias, h, PayloadID(payload))
}
