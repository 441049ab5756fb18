package decl

import (
	"declc/internal/ast"
	"declc/internal/types"
)

// Result is the value of a constant: its type and the expression text that
// produces it in generated code.
type Result struct {
	Type types.TypeID
	Text string
}

// Value is the family of named, typed, write-once-valued declarables.
type Value interface {
	Declarable
	Name() string
	Type() types.TypeID
	IsConst() bool
	// Value returns the value and whether it has been set.
	Value() (Result, bool)
	// SetValue may be called exactly once per instance.
	SetValue(v Result)

	slot() *valueSlot
}

type valueSlot struct {
	header
	typ   types.TypeID
	name  string
	value Result
	set   bool
}

func (v *valueSlot) Name() string          { return v.name }
func (v *valueSlot) Type() types.TypeID    { return v.typ }
func (v *valueSlot) IsConst() bool         { return true }
func (v *valueSlot) Value() (Result, bool) { return v.value, v.set }
func (v *valueSlot) slot() *valueSlot      { return v }

func (v *valueSlot) SetValue(r Result) {
	if v.set {
		panic(invariantf("SetValue", "value of %s %q is already set", v.kind.TypeName(), v.name))
	}
	v.value = r
	v.set = true
}

// ModuleConstant is a constant whose value is computed from an expression on
// first use by an external evaluator.
type ModuleConstant struct {
	valueSlot
	body ast.ExprID
}

func (c *ModuleConstant) ConstantName() string { return c.name }

// Body is the unevaluated expression.
func (c *ModuleConstant) Body() ast.ExprID { return c.body }

// IsEvaluated reports whether the evaluator has populated the value.
func (c *ModuleConstant) IsEvaluated() bool { return c.set }

// ExternConstant binds a name to a literal supplied by the host runtime. Its
// value is set during construction.
type ExternConstant struct {
	valueSlot
}
