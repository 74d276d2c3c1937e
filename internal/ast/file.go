package ast

import (
	"danube/internal/source"
)

// File is the root of one parsed source file.
type File struct {
	Source source.FileID
	Span   source.Span
	Items  []ItemID
}

type Files struct{ arena *Arena[File] }

func NewFiles(capHint uint) *Files {
	return &Files{arena: NewArena[File](capHint)}
}

func (f *Files) New(src source.FileID, sp source.Span) FileID {
	return FileID(f.arena.Allocate(File{Source: src, Span: sp}))
}

func (f *Files) Get(id FileID) *File { return f.arena.Get(uint32(id)) }
