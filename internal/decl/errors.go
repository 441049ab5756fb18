package decl

import (
	"errors"
	"fmt"
)

var (
	// ErrVarArgsMacro is returned by NewMacro for a variadic signature.
	ErrVarArgsMacro = errors.New("varargs are not supported for macros")
	// ErrSinkFinalized is returned by writes to a finalized module buffer.
	ErrSinkFinalized = errors.New("module buffer is finalized")
)

// InvariantError is the panic value for a broken core contract. It signals
// a bug in the caller, never a problem in the input program.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("decl: invariant violation in %s: %s", e.Op, e.Msg)
}

func invariantf(op, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Recover stores an InvariantError panic into *errp and re-panics anything
// else. It must be deferred directly:
//
//	defer decl.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if ie, ok := r.(*InvariantError); ok {
		if errp != nil {
			*errp = ie
		}
		return
	}
	panic(r)
}

// IsInvariant reports whether err is (or wraps) an InvariantError.
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
