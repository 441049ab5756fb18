package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Void == NoTypeID || b.Int32 == NoTypeID || b.Object == NoTypeID {
		t.Fatalf("builtins not initialized: %+v", b)
	}
	tt, _ := in.Lookup(b.Int32)
	if tt.Kind != KindInt || tt.Width != Width32 {
		t.Fatalf("expected int32 descriptor, got %+v", tt)
	}
	if got := len(in.BuiltinNames()); got != 9 {
		t.Fatalf("expected 9 builtin names, got %d", got)
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	obj := in.Builtins().Object
	smi1 := in.RegisterAbstract("Smi", obj)
	smi2 := in.RegisterAbstract("Smi", obj)
	if smi1 != smi2 {
		t.Fatalf("abstract types should be deduplicated")
	}
	if other := in.RegisterAbstract("HeapObject", obj); other == smi1 {
		t.Fatalf("distinct names must not share an ID")
	}
	if in.Intern(Type{}) != NoTypeID {
		t.Fatalf("invalid descriptor must intern to NoTypeID")
	}
}

func TestIsVoidOrNever(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	tests := []struct {
		id   TypeID
		want bool
	}{
		{b.Void, true},
		{b.Never, true},
		{b.Int32, false},
		{b.Object, false},
		{NoTypeID, false},
	}
	for _, tt := range tests {
		if got := in.IsVoidOrNever(tt.id); got != tt.want {
			t.Errorf("IsVoidOrNever(%s) = %v, want %v", Label(in, tt.id), got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	smi := in.RegisterAbstract("Smi", b.Object)
	for id, want := range map[TypeID]string{
		b.Int32:   "int32",
		b.Float64: "float64",
		b.Never:   "never",
		smi:       "Smi",
		NoTypeID:  "?",
	} {
		if got := Label(in, id); got != want {
			t.Errorf("Label(%d) = %q, want %q", id, got, want)
		}
	}
}
