package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"danube/internal/source"
)

// Cursor walks the bytes of one file. Off is the next unread byte.
type Cursor struct {
	src  []byte
	file source.FileID
	end  uint32
	Off  uint32
}

// Mark is a saved offset; SpanFrom turns it into a span.
type Mark uint32

// NewCursor positions a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file %s too large: %w", f.Path, err))
	}
	return Cursor{src: f.Content, file: f.ID, end: end}
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

// at returns the byte n positions ahead, or 0 past the end.
func (c *Cursor) at(n uint32) (byte, bool) {
	if c.Off+n >= c.end {
		return 0, false
	}
	return c.src[c.Off+n], true
}

// Peek returns the next byte, 0 at EOF.
func (c *Cursor) Peek() byte {
	b, _ := c.at(0)
	return b
}

// Peek2 returns the next two bytes; ok is false if fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if _, ok = c.at(1); !ok {
		return 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], true
}

// Peek3 is Peek2 for three bytes.
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if _, ok = c.at(2); !ok {
		return 0, 0, 0, false
	}
	return c.src[c.Off], c.src[c.Off+1], c.src[c.Off+2], true
}

// Bump consumes and returns one byte, 0 at EOF.
func (c *Cursor) Bump() byte {
	b, ok := c.at(0)
	if ok {
		c.Off++
	}
	return b
}

// Eat consumes the next byte if it is b.
func (c *Cursor) Eat(b byte) bool {
	if next, ok := c.at(0); ok && next == b {
		c.Off++
		return true
	}
	return false
}

// eatAll consumes bytes while pred holds.
func (c *Cursor) eatAll(pred func(byte) bool) {
	for c.Off < c.end && pred(c.src[c.Off]) {
		c.Off++
	}
}

// skipToEnd moves the cursor to EOF.
func (c *Cursor) skipToEnd() { c.Off = c.end }

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}

// rest is the unread input.
func (c *Cursor) rest() []byte { return c.src[c.Off:c.end] }
