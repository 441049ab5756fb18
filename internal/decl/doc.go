// Package decl is the declaration model of the compiler: which named
// entities exist, in which lexical scope, with which type or signature, and
// which concrete callables each generic has been specialized into.
//
// # Declarables
//
// Declarable is a closed sum type over eight kinds: Module, Macro, Builtin,
// RuntimeFunction, Generic, TypeAlias, ExternConstant and ModuleConstant.
// Kind answers capability queries (IsCallable, IsValue, ...). Cast converts to
// a concrete kind or family and panics on mismatch; DynamicCast reports the
// mismatch through its second result instead.
//
// # Ownership
//
// A Table owns every declarable and every scope for the whole compilation.
// Both live in slice arenas addressed by ID and ScopeID; index 0 of each arena
// is a sentinel. Scopes refer to their parent and to registered declarables by
// ID only, so nothing is ever freed or moved out from under a reader.
//
// # Ambient context
//
// Every declarable records the scope and source position that were current
// when it was constructed. Context carries both. EnterScope and EnterPosition
// return a restore function meant for defer, so the previous values come back
// on every exit path of the construct being processed:
//
//	defer ctx.EnterScope(mod.Scope())()
//	defer ctx.EnterPosition(item.Span)()
//	ctx.DeclareMacro(...)
//
// Constructors (New*) live on Context and capture the ambient values;
// Declare* variants also register the result in the current scope.
//
// # Errors
//
// Two tiers. A broken contract between the core and its caller (a second
// SetValue, a repeated specialization key, a mismatched Cast, no enclosing
// module) panics with *InvariantError; drivers turn that into an internal
// compiler error with Recover. A problem in the input program (a variadic
// macro) is reported through the Context's diag.Reporter and the pass goes on.
// Absence (unknown name, cache miss, DynamicCast mismatch) is a normal result.
//
// # Concurrency
//
// A Table is built by one goroutine. Once the declaration pass is over the
// table is only read, and readers may run in parallel without locking.
package decl
