package source

import "strconv"

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.End == s.Start }

func (s Span) Len() uint32 { return s.End - s.Start }

// String renders "file:start-end".
func (s Span) String() string {
	b := strconv.AppendUint(nil, uint64(s.File), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(s.Start), 10)
	b = append(b, '-')
	return string(strconv.AppendUint(b, uint64(s.End), 10))
}

// Cover widens s to include other; spans of other files leave s unchanged.
func (s Span) Cover(other Span) Span {
	if other.File == s.File {
		s.Start, s.End = min(s.Start, other.Start), max(s.End, other.End)
	}
	return s
}
