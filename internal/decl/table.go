package decl

import (
	"fmt"

	"fortio.org/safecast"

	"declc/internal/source"
	"declc/internal/types"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Decls uint }

// Table owns all scopes and declarables of one compilation.
type Table struct {
	Scopes  *Scopes
	Decls   *Decls
	Strings *source.Interner
	Types   *types.Interner
	root    ScopeID
}

// NewTable builds a table with a fresh global scope. Nil interners are
// replaced by new ones.
func NewTable(h Hints, strings *source.Interner, typesIn *types.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	declCap, err := safecast.Conv[uint32](h.Decls)
	if err != nil {
		panic(fmt.Errorf("decl capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	if typesIn == nil {
		typesIn = types.NewInterner()
	}
	t := &Table{
		Scopes:  NewScopes(scopeCap),
		Decls:   NewDecls(declCap),
		Strings: strings,
		Types:   typesIn,
	}
	t.root = t.Scopes.New(ScopeGlobal, NoScopeID, NoID, source.Span{})
	return t
}

// Root returns the global scope.
func (t *Table) Root() ScopeID { return t.root }

// Get returns the declarable with the given ID, or nil.
func (t *Table) Get(id ID) Declarable { return t.Decls.Get(id) }

// Parent returns the enclosing scope, NoScopeID for the root.
func (t *Table) Parent(scope ScopeID) ScopeID {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoScopeID
	}
	return s.Parent
}

// Owner returns the module or callable whose body scope is, if any.
func (t *Table) Owner(scope ScopeID) Declarable {
	s := t.Scopes.Get(scope)
	if s == nil {
		return nil
	}
	return t.Decls.Get(s.Owner)
}

// NewBlockScope opens a nested block scope under parent.
func (t *Table) NewBlockScope(parent ScopeID, span source.Span) ScopeID {
	t.mustScope("NewBlockScope", parent)
	return t.Scopes.New(ScopeBlock, parent, NoID, span)
}

// LookupShallow returns the declarables registered in scope itself under
// name, in registration order. Unknown names yield an empty result.
func (t *Table) LookupShallow(scope ScopeID, name string) []Declarable {
	id, ok := t.Strings.Find(name)
	if !ok {
		return nil
	}
	return t.lookupLocal(scope, id, nil)
}

// Lookup returns the parent chain's matches followed by the local ones:
// Lookup(s, n) == Lookup(parent(s), n) ++ LookupShallow(s, n). Whether an
// inner entry shadows or extends an outer one is for the caller to decide.
func (t *Table) Lookup(scope ScopeID, name string) []Declarable {
	id, ok := t.Strings.Find(name)
	if !ok {
		return nil
	}
	chain := make([]ScopeID, 0, 8)
	for cur := scope; cur.IsValid(); cur = t.Parent(cur) {
		chain = append(chain, cur)
	}
	var result []Declarable
	for i := len(chain) - 1; i >= 0; i-- {
		result = t.lookupLocal(chain[i], id, result)
	}
	return result
}

func (t *Table) lookupLocal(scope ScopeID, name source.StringID, dst []Declarable) []Declarable {
	s := t.Scopes.Get(scope)
	if s == nil {
		return dst
	}
	for _, id := range s.NameIndex[name] {
		dst = append(dst, t.Decls.Get(id))
	}
	return dst
}

// AddDeclarable appends d under name in scope and returns d. Repeated names
// are expected: overload sets and specializations share a name.
func (t *Table) AddDeclarable(scope ScopeID, name string, d Declarable) Declarable {
	s := t.mustScope("AddDeclarable", scope)
	if d == nil || t.Decls.Get(d.ID()) != d {
		panic(invariantf("AddDeclarable", "declarable %q does not belong to this table", name))
	}
	id := t.Strings.Intern(name)
	if _, seen := s.NameIndex[id]; !seen {
		s.Names = append(s.Names, id)
	}
	s.NameIndex[id] = append(s.NameIndex[id], d.ID())
	return d
}

// Names lists the names registered in scope, in first-registration order.
func (t *Table) Names(scope ScopeID) []string {
	s := t.Scopes.Get(scope)
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Names))
	for _, id := range s.Names {
		names = append(names, t.Strings.MustLookup(id))
	}
	return names
}

// ModuleOf returns the nearest module whose scope encloses scope.
func (t *Table) ModuleOf(scope ScopeID) (*Module, bool) {
	for cur := scope; cur.IsValid(); cur = t.Parent(cur) {
		s := t.Scopes.Get(cur)
		if s.Kind != ScopeModule {
			continue
		}
		if m, ok := DynamicCast[*Module](t.Decls.Get(s.Owner)); ok {
			return m, true
		}
	}
	return nil, false
}

// Modules returns all modules in declaration order.
func (t *Table) Modules() []*Module {
	var out []*Module
	for _, d := range t.Decls.All() {
		if m, ok := DynamicCast[*Module](d); ok {
			out = append(out, m)
		}
	}
	return out
}

func (t *Table) mustScope(op string, id ScopeID) *Scope {
	s := t.Scopes.Get(id)
	if s == nil {
		panic(invariantf(op, "unknown scope %d", id))
	}
	return s
}
