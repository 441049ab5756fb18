package trace

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{"unknown", "begin", "end", "point"}

func (k Kind) String() string { return nameOf(kindNames[:], k) }

// Scope indicates the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one CLI command
	ScopePass                    // load, declare, outline
	ScopeModule                  // one module block or input file
	ScopeNode                    // one declaration
)

var scopeNames = [...]string{"unknown", "driver", "pass", "module", "node"}

func (s Scope) String() string { return nameOf(scopeNames[:], s) }

// Level controls tracing verbosity. Each level admits every scope up to
// and including its own granularity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // driver spans only
	LevelPhase        // driver and pass spans
	LevelDetail       // plus module spans
	LevelDebug        // plus one point per declaration
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// finest is the coarsest scope each level still admits.
var finest = [...]Scope{0, ScopeDriver, ScopePass, ScopeModule, ScopeNode}

func (l Level) String() string { return nameOf(levelNames[:], l) }

// ParseLevel converts a case-insensitive level name.
func ParseLevel(s string) (Level, error) {
	i := slices.Index(levelNames[:], strings.ToLower(s))
	if i < 0 {
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
	}
	return Level(i), nil
}

// ShouldEmit reports whether events of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(finest) {
		return false
	}
	return scope != 0 && scope <= finest[l]
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer, monotonic per process
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "declare", "module:base", "macro:Add"
	Detail   string
	Extra    map[string]string
}

func nameOf[T ~uint8](names []string, v T) string {
	if int(v) < len(names) {
		return names[v]
	}
	return "unknown"
}
