package types

import (
	"fmt"
)

// Label returns a user-friendly label for a TypeID.
func Label(typesIn *Interner, id TypeID) string {
	if id == NoTypeID || typesIn == nil {
		return "?"
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindVoid:
		return "void"
	case KindNever:
		return "never"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindInt:
		return formatNumeric("int", tt.Width)
	case KindUint:
		return formatNumeric("uint", tt.Width)
	case KindFloat:
		return formatNumeric("float", tt.Width)
	case KindAbstract:
		return tt.Name
	default:
		return fmt.Sprintf("<%s>", tt.Kind)
	}
}

func formatNumeric(base string, width Width) string {
	if width == WidthAny {
		return base
	}
	return fmt.Sprintf("%s%d", base, width)
}
