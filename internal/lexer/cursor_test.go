package lexer

import (
	"testing"

	"danube/internal/source"
)

func TestCursorMarksAndSpans(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("c.dn", []byte("abc"))))

	m := c.Mark()
	if c.Bump() != 'a' || !c.Eat('b') || c.Eat('x') {
		t.Fatalf("unexpected cursor movement")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 must fail with one byte left")
	}
	c.Reset(m)
	if c.Peek() != 'a' {
		t.Fatalf("Reset did not rewind")
	}
	c.Off = 3
	if !c.EOF() || c.Bump() != 0 {
		t.Fatalf("expected EOF")
	}
}
