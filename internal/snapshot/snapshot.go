// Package snapshot exports a finished, read-only declaration table.
package snapshot

import (
	"declc/internal/decl"
	"declc/internal/source"
	"declc/internal/types"
)

// Schema is bumped whenever the encoded layout changes.
const Schema uint16 = 1

// Snapshot is a self-contained copy of a table: scopes with their bindings
// and every declarable, addressed by the table's IDs.
type Snapshot struct {
	Schema uint16
	Scopes []Scope
	Decls  []Entry
}

// Scope mirrors decl.Scope with names resolved.
type Scope struct {
	ID       uint32
	Kind     string
	Parent   uint32
	Owner    uint32
	Bindings []Binding
}

// Binding lists the declarables registered under one name, in order.
type Binding struct {
	Name  string
	Decls []uint32
}

// Entry describes one declarable.
type Entry struct {
	ID          uint32
	Kind        string
	Name        string
	Scope       uint32
	Pos         source.Span
	Description string

	// Modules
	BodyScope uint32
	Header    string
	Source    string

	// Constants
	Value    string
	HasValue bool

	// Callables
	External      bool
	Returns       int
	Redeclaration bool

	// Generics
	Specializations []Specialization
}

// Specialization names a cached instantiation.
type Specialization struct {
	TypeArgs string
	Decl     uint32
}

// Build copies t. It only reads the table.
func Build(t *decl.Table) *Snapshot {
	s := &Snapshot{Schema: Schema}
	for id := decl.ScopeID(1); int(id) <= t.Scopes.Len(); id++ {
		sc := t.Scopes.Get(id)
		out := Scope{
			ID:     uint32(id),
			Kind:   sc.Kind.String(),
			Parent: uint32(sc.Parent),
			Owner:  uint32(sc.Owner),
		}
		for _, name := range t.Names(id) {
			b := Binding{Name: name}
			for _, d := range t.LookupShallow(id, name) {
				b.Decls = append(b.Decls, uint32(d.ID()))
			}
			out.Bindings = append(out.Bindings, b)
		}
		s.Scopes = append(s.Scopes, out)
	}
	for _, d := range t.Decls.All() {
		s.Decls = append(s.Decls, entry(t.Types, d))
	}
	return s
}

func entry(typesIn *types.Interner, d decl.Declarable) Entry {
	e := Entry{
		ID:          uint32(d.ID()),
		Kind:        d.Kind().String(),
		Scope:       uint32(d.ParentScope()),
		Pos:         d.Pos(),
		Description: decl.Describe(typesIn, d),
	}
	switch v := d.(type) {
	case *decl.Module:
		e.Name = v.Name()
		e.BodyScope = uint32(v.Scope())
		e.Header = v.Header()
		e.Source = v.Source()
	case *decl.TypeAlias:
		e.Name = v.Name()
		e.Redeclaration = v.IsRedeclaration()
	case decl.Value:
		e.Name = v.Name()
		if r, ok := v.Value(); ok {
			e.Value, e.HasValue = r.Text, true
		}
	case decl.Callable:
		e.Name = v.Name()
		e.BodyScope = uint32(v.BodyScope())
		e.External = v.IsExternal()
		e.Returns = v.Returns()
	case *decl.Generic:
		e.Name = v.Name()
		for _, sp := range v.Specializations() {
			e.Specializations = append(e.Specializations, Specialization{
				TypeArgs: sp.TypeArgs.Label(typesIn),
				Decl:     uint32(sp.Callable.ID()),
			})
		}
	}
	return e
}
