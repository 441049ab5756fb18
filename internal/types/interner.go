package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types every compilation starts with.
type Builtins struct {
	Void    TypeID
	Never   TypeID
	Bool    TypeID
	Int32   TypeID
	Int64   TypeID
	Uint32  TypeID
	Float64 TypeID
	String  TypeID
	Object  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		types: make([]Type, 1, 32), // index 0 reserved for NoTypeID
		index: make(map[typeKey]TypeID, 32),
	}
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Never = in.Intern(Type{Kind: KindNever})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int32 = in.Intern(MakeInt(Width32))
	in.builtins.Int64 = in.Intern(MakeInt(Width64))
	in.builtins.Uint32 = in.Intern(MakeUint(Width32))
	in.builtins.Float64 = in.Intern(MakeFloat(Width64))
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Object = in.Intern(Type{Kind: KindObject})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// BuiltinNames lists the primitive types by their declaration-file spelling,
// in a stable order.
func (in *Interner) BuiltinNames() []NamedType {
	b := in.builtins
	return []NamedType{
		{"void", b.Void},
		{"never", b.Never},
		{"bool", b.Bool},
		{"int32", b.Int32},
		{"int64", b.Int64},
		{"uint32", b.Uint32},
		{"float64", b.Float64},
		{"string", b.String},
		{"object", b.Object},
	}
}

// NamedType pairs a spelling with its TypeID.
type NamedType struct {
	Name string
	ID   TypeID
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// RegisterAbstract interns a named type. Redeclaring the same name with the
// same parent yields the same TypeID.
func (in *Interner) RegisterAbstract(name string, parent TypeID) TypeID {
	return in.Intern(MakeAbstract(name, parent))
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// IsVoidOrNever reports whether values of id can never be produced by a call:
// the void-like unit type or the uninhabited bottom type.
func (in *Interner) IsVoidOrNever(id TypeID) bool {
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	return tt.Kind == KindVoid || tt.Kind == KindNever
}

// IsNever reports whether id is the bottom type.
func (in *Interner) IsNever(id TypeID) bool {
	tt, ok := in.Lookup(id)
	return ok && tt.Kind == KindNever
}

// Len reports the number of interned types excluding the sentinel.
func (in *Interner) Len() int { return len(in.types) - 1 }

type typeKey struct {
	Kind   Kind
	Width  Width
	Name   string
	Parent TypeID
}
