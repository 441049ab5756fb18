package decl

import "declc/internal/types"

// TypeAlias binds a name to a resolved type.
type TypeAlias struct {
	header
	name          string
	typ           types.TypeID
	redeclaration bool
}

func (a *TypeAlias) Name() string       { return a.name }
func (a *TypeAlias) Type() types.TypeID { return a.typ }

// IsRedeclaration reports whether this alias repeats an earlier declaration
// of the same name, e.g. in a reopened module.
func (a *TypeAlias) IsRedeclaration() bool { return a.redeclaration }
