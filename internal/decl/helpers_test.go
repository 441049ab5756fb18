package decl

import (
	"errors"
	"testing"

	"declc/internal/diag"
	"declc/internal/source"
	"declc/internal/types"
)

func newTestContext(t *testing.T) (*Context, *diag.Bag) {
	t.Helper()
	table := NewTable(Hints{}, nil, nil)
	bag := diag.NewBag(32)
	ctx := NewContext(table, ContextOptions{Reporter: diag.BagReporter{Bag: bag}})
	return ctx, bag
}

func span(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func sigReturning(ret types.TypeID, params ...types.TypeID) Signature {
	names := make([]string, len(params))
	for i := range params {
		names[i] = string(rune('a' + i))
	}
	return Signature{
		ParameterNames: names,
		ParameterTypes: ParameterTypes{Types: params},
		ReturnType:     ret,
	}
}

// mustPanic runs fn and returns the InvariantError it panicked with.
func mustPanic(t *testing.T, fn func()) *InvariantError {
	t.Helper()
	var err error
	func() {
		defer Recover(&err)
		fn()
	}()
	if err == nil {
		t.Fatalf("expected invariant panic")
	}
	var ie *InvariantError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InvariantError, got %T", err)
	}
	return ie
}
