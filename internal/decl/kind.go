package decl

import "fmt"

// Kind enumerates the concrete declarable kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindModule
	KindMacro
	KindBuiltin
	KindRuntimeFunction
	KindGeneric
	KindTypeAlias
	KindExternConstant
	KindModuleConstant
)

func (k Kind) IsModule() bool          { return k == KindModule }
func (k Kind) IsMacro() bool           { return k == KindMacro }
func (k Kind) IsBuiltin() bool         { return k == KindBuiltin }
func (k Kind) IsRuntimeFunction() bool { return k == KindRuntimeFunction }
func (k Kind) IsGeneric() bool         { return k == KindGeneric }
func (k Kind) IsTypeAlias() bool       { return k == KindTypeAlias }
func (k Kind) IsExternConstant() bool  { return k == KindExternConstant }
func (k Kind) IsModuleConstant() bool  { return k == KindModuleConstant }

// IsValue reports whether the kind belongs to the Value family.
func (k Kind) IsValue() bool { return k.IsExternConstant() || k.IsModuleConstant() }

// IsCallable reports whether the kind belongs to the Callable family.
func (k Kind) IsCallable() bool {
	return k.IsMacro() || k.IsBuiltin() || k.IsRuntimeFunction()
}

// TypeName is the name used for the kind in diagnostics.
func (k Kind) TypeName() string {
	switch k {
	case KindModule:
		return "module"
	case KindMacro:
		return "macro"
	case KindBuiltin:
		return "builtin"
	case KindRuntimeFunction:
		return "runtime"
	case KindGeneric:
		return "generic"
	case KindTypeAlias:
		return "type_alias"
	case KindExternConstant, KindModuleConstant:
		return "constant"
	default:
		return "<<unknown>>"
	}
}

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "Module"
	case KindMacro:
		return "Macro"
	case KindBuiltin:
		return "Builtin"
	case KindRuntimeFunction:
		return "RuntimeFunction"
	case KindGeneric:
		return "Generic"
	case KindTypeAlias:
		return "TypeAlias"
	case KindExternConstant:
		return "ExternConstant"
	case KindModuleConstant:
		return "ModuleConstant"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}
