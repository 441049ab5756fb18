package types

import (
	"slices"
	"strconv"
	"strings"
)

// Vector is an ordered list of type arguments, e.g. the concrete arguments
// of a generic specialization.
type Vector []TypeID

// VectorKey is the comparable form of a Vector. Two vectors naming the same
// types in the same order have equal keys.
type VectorKey string

// Key renders the vector as "#"-joined decimal type IDs.
func (v Vector) Key() VectorKey {
	if len(v) == 0 {
		return ""
	}
	var b strings.Builder
	for i, arg := range v {
		if i > 0 {
			b.WriteByte('#')
		}
		b.WriteString(strconv.FormatUint(uint64(arg), 10))
	}
	return VectorKey(b.String())
}

// Equal compares two vectors element by element.
func (v Vector) Equal(other Vector) bool {
	return slices.Equal(v, other)
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	if len(v) == 0 {
		return nil
	}
	return slices.Clone(v)
}

// Label joins the labels of each element, e.g. "int32, Smi".
func (v Vector) Label(typesIn *Interner) string {
	parts := make([]string, len(v))
	for i, id := range v {
		parts[i] = Label(typesIn, id)
	}
	return strings.Join(parts, ", ")
}
