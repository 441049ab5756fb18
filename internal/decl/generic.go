package decl

import (
	"slices"

	"declc/internal/ast"
	"declc/internal/types"
)

// Generic is a callable template plus the cache of its specializations.
type Generic struct {
	header
	name            string
	declaration     *ast.GenericDecl
	specializations map[types.VectorKey]Callable
	order           []Specialization
}

// Specialization is one cached instantiation.
type Specialization struct {
	TypeArgs types.Vector
	Callable Callable
}

// SpecializationKey pairs a generic with concrete type arguments.
type SpecializationKey struct {
	Generic  *Generic
	TypeArgs types.Vector
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Declaration() *ast.GenericDecl { return g.declaration }

// GenericParameters returns the ordered type-parameter names.
func (g *Generic) GenericParameters() []string {
	if g.declaration == nil {
		return nil
	}
	return slices.Clone(g.declaration.TypeParams)
}

// AddSpecialization caches c for typeArgs. Each vector may be cached once.
func (g *Generic) AddSpecialization(typeArgs types.Vector, c Callable) {
	if c == nil {
		panic(invariantf("AddSpecialization", "nil specialization for generic %q", g.name))
	}
	key := typeArgs.Key()
	if _, exists := g.specializations[key]; exists {
		panic(invariantf("AddSpecialization", "generic %q already specialized for [%s]", g.name, key))
	}
	if g.specializations == nil {
		g.specializations = make(map[types.VectorKey]Callable)
	}
	g.specializations[key] = c
	g.order = append(g.order, Specialization{TypeArgs: typeArgs.Clone(), Callable: c})
}

// GetSpecialization returns the cached callable for typeArgs, if any. It
// never instantiates anything.
func (g *Generic) GetSpecialization(typeArgs types.Vector) (Callable, bool) {
	c, ok := g.specializations[typeArgs.Key()]
	return c, ok
}

// Specializations lists the cache in insertion order.
func (g *Generic) Specializations() []Specialization {
	return slices.Clone(g.order)
}
