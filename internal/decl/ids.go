package decl

// ID identifies a declarable in the table arena.
type ID uint32

// NoID marks the absence of a declarable.
const NoID ID = 0

// IsValid reports whether the ID refers to an allocated declarable.
func (id ID) IsValid() bool { return id != NoID }

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

// NoScopeID marks the absence of a scope reference.
const NoScopeID ScopeID = 0

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }
