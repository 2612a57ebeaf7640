package value

import (
	"reflect"
	"strings"
	"testing"

	"github.com/wippyai/dynvalue/bits"
)

func sampleTree() Value[struct{}] {
	return NamedComposite(
		Field("id", U32(7)),
		Field("payload", Variant("Transfer", Unnamed[struct{}]{
			Str("alice"),
			U128(U128FromU64(1000)),
		})),
		Field("flags", BitSequence(bits.FromBools(true, false, true))),
		Field("raw", UnnamedComposite(U8(1), U8(2), U8(3))),
	)
}

func TestMapContext_IdentityPreservesStructure(t *testing.T) {
	v := sampleTree()
	got := MapContext(v, func(c struct{}) struct{} { return c })
	if !reflect.DeepEqual(v, got) {
		t.Errorf("identity MapContext changed the tree:\n got %#v\nwant %#v", got, v)
	}
}

func TestMapContext_RewritesEveryNode(t *testing.T) {
	n := 0
	v := sampleTree()
	got := MapContext(v, func(struct{}) int { n++; return n })

	// Shape must be preserved; only contexts differ.
	if StripContext(got).String() != v.String() {
		t.Errorf("MapContext changed rendering: %s vs %s", StripContext(got), v)
	}
	// Root + 4 fields + 2 variant payload values + 3 raw bytes = 10 nodes.
	if n != 10 {
		t.Errorf("transform ran %d times, want 10", n)
	}
	if got.Context == 0 {
		t.Error("root context not rewritten")
	}
}

func TestMapContext_PreservesFieldOrder(t *testing.T) {
	v := NamedComposite(
		Field("b", Bool(true)),
		Field("a", U8(1)),
	)
	got := MapContext(v, func(struct{}) string { return "ctx" })
	fields := got.Shape.(Named[string])
	if fields[0].Name != "b" || fields[1].Name != "a" {
		t.Errorf("field order changed: %v, %v", fields[0].Name, fields[1].Name)
	}
}

func TestComposite_Values(t *testing.T) {
	n := Named[struct{}]{
		{Name: "x", Value: U8(1)},
		{Name: "y", Value: U8(2)},
	}
	vals := n.Values()
	if len(vals) != 2 {
		t.Fatalf("Values len = %d, want 2", len(vals))
	}
	if vals[0].Shape.(Prim[struct{}]).Value != PrimU8(1) {
		t.Errorf("values out of order")
	}

	u := Unnamed[struct{}]{U8(9)}
	if u.Len() != 1 || u.IsEmpty() {
		t.Error("unexpected Len/IsEmpty for unnamed composite")
	}
	if (Named[struct{}]{}).IsEmpty() != true {
		t.Error("empty named composite should be empty")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		v    Value[struct{}]
		want string
	}{
		{"named", NamedComposite(Field("a", U8(1)), Field("b", Bool(true))), "{ a: 1, b: true }"},
		{"empty named", NamedComposite(), "{}"},
		{"unnamed", UnnamedComposite(U8(1), Str("hi")), `(1, "hi")`},
		{"unit tuple", UnnamedComposite(), "()"},
		{"variant", Variant("Foo", Unnamed[struct{}]{Bool(false)}), "Foo (false)"},
		{"bitseq", BitSequence(bits.FromBools(false, true, true, false)), "0b0110"},
		{"char", Char('x'), "'x'"},
		{"i64", I64(-42), "-42"},
		{"u128 small", U128(U128FromU64(99)), "99"},
		{"i128 negative", I128(I128FromI64(-5)), "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHex256(t *testing.T) {
	var b [32]byte
	b[0] = 0x01 // little-endian: low byte first
	b[31] = 0xab
	got := PrimitiveString(PrimU256(b))
	want := "0x" + "ab" + strings.Repeat("00", 30) + "01"
	if got != want {
		t.Errorf("PrimitiveString(u256) = %q, want %q", got, want)
	}
}

func TestShapeNames(t *testing.T) {
	tests := []struct {
		s    Shape[struct{}]
		want string
	}{
		{Named[struct{}]{}, "named composite"},
		{Unnamed[struct{}]{}, "unnamed composite"},
		{VariantShape[struct{}]{Name: "X", Fields: Unnamed[struct{}]{}}, "variant"},
		{BitSeq[struct{}]{}, "bit sequence"},
		{Prim[struct{}]{Value: PrimU64(1)}, "u64"},
		{Prim[struct{}]{Value: PrimI256{}}, "i256"},
	}
	for _, tt := range tests {
		if got := Name[struct{}](tt.s); got != tt.want {
			t.Errorf("Name = %q, want %q", got, tt.want)
		}
	}
}

func TestI128FromI64(t *testing.T) {
	if v := I128FromI64(5); v.Hi != 0 || v.Lo != 5 {
		t.Errorf("I128FromI64(5) = %+v", v)
	}
	if v := I128FromI64(-1); v.Hi != ^uint64(0) || v.Lo != ^uint64(0) {
		t.Errorf("I128FromI64(-1) = %+v", v)
	}
}
