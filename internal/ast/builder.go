package ast

import (
	"danube/internal/source"
)

type Hints struct{ Files, Items, Types uint }

// Builder owns every arena produced while parsing one or more files.
type Builder struct {
	Files *Files
	Items *Items
	Types *TypeExprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 3
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Types == 0 {
		hints.Types = 1 << 8
	}
	return &Builder{
		Files: NewFiles(hints.Files),
		Items: NewItems(hints.Items),
		Types: NewTypeExprs(hints.Types),
	}
}

func (b *Builder) NewFile(src source.FileID, sp source.Span) FileID {
	return b.Files.New(src, sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}
