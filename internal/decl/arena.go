package decl

import (
	"fmt"

	"fortio.org/safecast"

	"declc/internal/source"
)

// Scopes stores all allocated scopes in a compact slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a new scope and links it under parent.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner ID, span source.Span) ScopeID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	id := ScopeID(value)
	s.data = append(s.data, Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[source.StringID][]ID),
	})
	if parentScope := s.Get(parent); parentScope != nil {
		parentScope.Children = append(parentScope.Children, id)
	}
	return id
}

// Get returns the scope pointer or nil if ID is invalid. The pointer is only
// valid until the next New.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Decls stores every declarable of a compilation.
type Decls struct {
	data []Declarable
}

// NewDecls creates a declarable arena with optional capacity hint.
func NewDecls(capacity uint32) *Decls {
	if capacity == 0 {
		capacity = 64
	}
	return &Decls{
		data: make([]Declarable, 1, capacity+1), // index 0 reserved for NoID
	}
}

// New stores d, stamps its ID and returns it.
func (s *Decls) New(d Declarable) ID {
	if d == nil {
		panic("decls.New: nil declarable")
	}
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("decls arena overflow: %w", err))
	}
	id := ID(value)
	d.base().id = id
	s.data = append(s.data, d)
	return id
}

// Get returns the declarable or nil for an invalid ID.
func (s *Decls) Get(id ID) Declarable {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return s.data[id]
}

// Len reports number of stored declarables excluding sentinel.
func (s *Decls) Len() int { return len(s.data) - 1 }

// All returns the declarables in allocation order.
func (s *Decls) All() []Declarable {
	if len(s.data) <= 1 {
		return nil
	}
	return s.data[1:]
}
