package decl

import (
	"declc/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // root of the table, holds the prelude
	ScopeModule             // body of a Module
	ScopeCallable           // body of a Macro, Builtin or RuntimeFunction
	ScopeBlock              // nested block, generic instantiation frame
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeModule:
		return "module"
	case ScopeCallable:
		return "callable"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is one namespace level. Registrations are append-only: a name maps
// to every declarable ever added under it, in insertion order.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     ID // module or callable whose body this is, NoID otherwise
	Span      source.Span
	NameIndex map[source.StringID][]ID
	Names     []source.StringID // first-registration order
	Children  []ScopeID
}
