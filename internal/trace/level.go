package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // только driver: для дампа ring при ошибке
	LevelPhase        // + проходы
	LevelDetail       // + модули и волны
	LevelDebug        // всё
)

var levelNames = names[Level]{"off", "error", "phase", "detail", "debug"}

// levelCeiling is the finest scope each level keeps.
var levelCeiling = [...]Scope{
	LevelError:  ScopeDriver,
	LevelPhase:  ScopePass,
	LevelDetail: ScopeModule,
	LevelDebug:  ^Scope(0),
}

func (l Level) String() string { return levelNames.of(l) }

// ParseLevel accepts a level name in any case; "" means off.
func ParseLevel(s string) (Level, error) {
	if strings.TrimSpace(s) == "" {
		return LevelOff, nil
	}
	if l, ok := levelNames.lookup(s); ok {
		return l, nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, levelNames.choices())
}

// ShouldEmit reports whether events of scope are kept at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelCeiling) && scope <= levelCeiling[l]
}
