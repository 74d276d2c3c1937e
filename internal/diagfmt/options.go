package diagfmt

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // basename for long absolute paths
	PathModeAbsolute
	PathModeRelative // relative to the FileSet base directory
	PathModeBasename
)

var pathModeNames = [...]string{"auto", "absolute", "relative", "basename"}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return pathModeNames[PathModeAuto]
}

// ParsePathMode accepts the String forms; "" means auto.
func ParsePathMode(s string) (PathMode, bool) {
	if s == "" {
		return PathModeAuto, true
	}
	for i, name := range pathModeNames {
		if name == s {
			return PathMode(i), true // #nosec G115 -- four entries
		}
	}
	return PathModeAuto, false
}

type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста вокруг основной строки
	PathMode  PathMode
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts serves both JSON and YAML output.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	Max              int // обрезает вывод, Bag не трогает
	IncludeNotes     bool
	IncludeFixes     bool
}
