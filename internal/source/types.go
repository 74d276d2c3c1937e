package source

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags records how a file got into the set.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // добавлен из памяти: prelude, тесты
	FileHadBOM                               // UTF-8 BOM был срезан
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// File is one immutable source text plus its newline index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the byte offset of every '\n' in Content.
	LineIdx []uint32
	// Hash is the xxh3 of Content after BOM and CRLF normalization.
	Hash  uint64
	Flags FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}
