package decl

import (
	"fmt"
	"strings"

	"declc/internal/types"
)

// Describe renders a one-line human description of d for diagnostics and
// table dumps.
func Describe(typesIn *types.Interner, d Declarable) string {
	switch v := d.(type) {
	case nil:
		return "<nil>"
	case *Module:
		return "module " + v.name
	case *TypeAlias:
		s := fmt.Sprintf("type %s = %s", v.name, types.Label(typesIn, v.typ))
		if v.redeclaration {
			s += " (redeclaration)"
		}
		return s
	case Value:
		s := fmt.Sprintf("const %s: %s", v.Name(), types.Label(typesIn, v.Type()))
		if r, ok := v.Value(); ok {
			s += " = " + r.Text
		}
		return s
	case Callable:
		var b strings.Builder
		if v.IsTransitioning() {
			b.WriteString("transitioning ")
		}
		b.WriteString(v.TypeName())
		if bi, ok := v.(*Builtin); ok && !bi.IsStub() {
			b.WriteString(" (")
			b.WriteString(bi.convention.String())
			b.WriteByte(')')
		}
		b.WriteByte(' ')
		b.WriteString(v.Name())
		b.WriteString(v.callable().sig.Format(typesIn))
		if v.IsExternal() {
			b.WriteString(" external")
		}
		return b.String()
	case *Generic:
		params := strings.Join(v.GenericParameters(), ", ")
		return fmt.Sprintf("generic %s<%s> (%d specializations)", v.name, params, len(v.order))
	default:
		return d.TypeName()
	}
}
