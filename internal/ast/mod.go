package ast

import "danube/internal/source"

// ModItem is `mod name { ... }` (Inline) or `mod name;`.
type ModItem struct {
	Inline   bool
	Items    []ItemID
	BodySpan source.Span
}

func (i *Items) Mod(id ItemID) (*ModItem, bool) {
	p, ok := i.payload(id, ItemMod)
	if !ok {
		return nil, false
	}
	return i.Mods.Get(p), true
}

func (i *Items) NewMod(h ItemHeader, mod ModItem) ItemID {
	payload := i.Mods.Allocate(mod)
	return i.New(ItemMod, h, PayloadID(payload))
}
