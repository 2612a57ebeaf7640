package decode

import (
	goerrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/dynvalue/bits"
	"github.com/wippyai/dynvalue/errors"
	"github.com/wippyai/dynvalue/value"
)

func TestUnmarshal_Scalars(t *testing.T) {
	var u8 uint8
	if err := Unmarshal(value.U8(123), &u8); err != nil {
		t.Fatalf("u8: %v", err)
	}
	if u8 != 123 {
		t.Errorf("u8 = %d, want 123", u8)
	}

	var b bool
	if err := Unmarshal(value.Bool(true), &b); err != nil {
		t.Fatalf("bool: %v", err)
	}
	if !b {
		t.Error("bool not set")
	}

	var s string
	if err := Unmarshal(value.Str("hello"), &s); err != nil {
		t.Fatalf("string: %v", err)
	}
	if s != "hello" {
		t.Errorf("string = %q", s)
	}

	var i64 int64
	if err := Unmarshal(value.I64(-9), &i64); err != nil {
		t.Fatalf("i64: %v", err)
	}
	if i64 != -9 {
		t.Errorf("i64 = %d", i64)
	}

	var u128 value.PrimU128
	if err := Unmarshal(value.U128(value.PrimU128{Hi: 1, Lo: 2}), &u128); err != nil {
		t.Fatalf("u128: %v", err)
	}
	if u128.Hi != 1 || u128.Lo != 2 {
		t.Errorf("u128 = %+v", u128)
	}
}

func TestUnmarshal_NoWidthCoercion(t *testing.T) {
	var u16 uint16
	err := Unmarshal(value.U8(5), &u16)
	wantKind(t, err, errors.KindShapeMismatch)

	var i8 int8
	err = Unmarshal(value.U8(5), &i8)
	wantKind(t, err, errors.KindShapeMismatch)
}

func TestUnmarshal_RuneAcceptsCharAndI32(t *testing.T) {
	var r rune
	if err := Unmarshal(value.Char('x'), &r); err != nil {
		t.Fatalf("char: %v", err)
	}
	if r != 'x' {
		t.Errorf("rune = %q", r)
	}
	if err := Unmarshal(value.I32(121), &r); err != nil {
		t.Fatalf("i32: %v", err)
	}
	if r != 'y' {
		t.Errorf("rune = %q", r)
	}
}

func TestUnmarshal_Bytes(t *testing.T) {
	v := value.UnnamedComposite(value.U8(1), value.U8(2), value.U8(3))

	var buf []byte
	if err := Unmarshal(v, &buf); err != nil {
		t.Fatalf("[]byte: %v", err)
	}
	if !reflect.DeepEqual(buf, []byte{1, 2, 3}) {
		t.Errorf("buf = %v", buf)
	}

	mixed := value.UnnamedComposite(value.Str("a"), value.Bool(true))
	err := Unmarshal(mixed, &buf)
	wantKind(t, err, errors.KindNotAllBytes)
}

func TestUnmarshal_SliceAndArray(t *testing.T) {
	v := value.UnnamedComposite(value.U16(10), value.U16(20), value.U16(30))

	var sl []uint16
	if err := Unmarshal(v, &sl); err != nil {
		t.Fatalf("slice: %v", err)
	}
	if !reflect.DeepEqual(sl, []uint16{10, 20, 30}) {
		t.Errorf("slice = %v", sl)
	}

	var arr [3]uint16
	if err := Unmarshal(v, &arr); err != nil {
		t.Fatalf("array: %v", err)
	}
	if arr != [3]uint16{10, 20, 30} {
		t.Errorf("array = %v", arr)
	}

	var short [2]uint16
	err := Unmarshal(v, &short)
	wantKind(t, err, errors.KindLengthMismatch)
}

func TestUnmarshal_ByteArrayFrom256Bit(t *testing.T) {
	var raw [32]byte
	raw[0] = 0xaa
	var out [32]byte
	if err := Unmarshal(value.U256(raw), &out); err != nil {
		t.Fatalf("u256: %v", err)
	}
	if out != raw {
		t.Errorf("out = %x", out)
	}
}

func TestUnmarshal_Map(t *testing.T) {
	v := value.NamedComposite(
		value.Field("x", value.U8(1)),
		value.Field("y", value.U8(2)),
	)
	var m map[string]uint8
	if err := Unmarshal(v, &m); err != nil {
		t.Fatalf("map: %v", err)
	}
	if !reflect.DeepEqual(m, map[string]uint8{"x": 1, "y": 2}) {
		t.Errorf("m = %v", m)
	}

	unnamed := value.UnnamedComposite(value.U8(1))
	err := Unmarshal(unnamed, &m)
	wantKind(t, err, errors.KindNotAMap)
}

func TestUnmarshal_Struct(t *testing.T) {
	type target struct {
		A uint8
		B bool
	}

	// Name order in the composite does not matter.
	v := value.NamedComposite(
		value.Field("b", value.Bool(true)),
		value.Field("a", value.U8(123)),
	)
	var out target
	if err := Unmarshal(v, &out); err != nil {
		t.Fatalf("struct: %v", err)
	}
	if out.A != 123 || out.B != true {
		t.Errorf("out = %+v", out)
	}
}

func TestUnmarshal_StructTagAndSnakeCase(t *testing.T) {
	type target struct {
		BlockNumber uint32
		Who         string `value:"account_id"`
	}
	v := value.NamedComposite(
		value.Field("block_number", value.U32(99)),
		value.Field("account_id", value.Str("alice")),
	)
	var out target
	if err := Unmarshal(v, &out); err != nil {
		t.Fatalf("struct: %v", err)
	}
	if out.BlockNumber != 99 || out.Who != "alice" {
		t.Errorf("out = %+v", out)
	}
}

func TestUnmarshal_StructSurplusTolerated(t *testing.T) {
	type target struct {
		A uint8
	}
	v := value.NamedComposite(
		value.Field("a", value.U8(1)),
		value.Field("extra", value.Str("ignored")),
		value.Field("more", value.Variant("X", value.Unnamed[ctx]{value.Bool(true)})),
	)
	var out target
	if err := Unmarshal(v, &out); err != nil {
		t.Fatalf("struct: %v", err)
	}
	if out.A != 1 {
		t.Errorf("out = %+v", out)
	}
}

func TestUnmarshal_StructMissingField(t *testing.T) {
	type target struct {
		A uint8
		B bool
	}
	v := value.NamedComposite(value.Field("a", value.U8(1)))
	var out target
	err := Unmarshal(v, &out)
	wantKind(t, err, errors.KindUnknownField)
}

func TestUnmarshal_StructPositional(t *testing.T) {
	type target struct {
		Name string
		OK   bool
	}
	v := value.UnnamedComposite(value.Str("hello"), value.Bool(true))
	var out target
	if err := Unmarshal(v, &out); err != nil {
		t.Fatalf("struct: %v", err)
	}
	if out.Name != "hello" || !out.OK {
		t.Errorf("out = %+v", out)
	}

	// Positional decoding is strict about arity.
	var short target
	err := Unmarshal(value.UnnamedComposite(value.Str("x")), &short)
	wantKind(t, err, errors.KindLengthMismatch)
}

func TestUnmarshal_VariantIntoTuple(t *testing.T) {
	// The case name is discarded when the target asks for the payload shape.
	v := value.Variant("Foo", value.Unnamed[ctx]{
		value.Str("hello"),
		value.Bool(true),
	})
	type pair struct {
		S string
		B bool
	}
	var out pair
	if err := Unmarshal(v, &out); err != nil {
		t.Fatalf("variant: %v", err)
	}
	if out.S != "hello" || !out.B {
		t.Errorf("out = %+v", out)
	}
}

func TestUnmarshal_VariantIntoStruct(t *testing.T) {
	v := value.Variant("Transfer", value.Named[ctx]{
		{Name: "to", Value: value.Str("bob")},
		{Name: "amount", Value: value.U64(500)},
	})
	type transfer struct {
		To     string
		Amount uint64
	}
	var out transfer
	if err := Unmarshal(v, &out); err != nil {
		t.Fatalf("variant: %v", err)
	}
	if out.To != "bob" || out.Amount != 500 {
		t.Errorf("out = %+v", out)
	}
}

func TestUnmarshal_PointerOption(t *testing.T) {
	var p *uint8

	none := value.Variant("None", value.Unnamed[ctx]{})
	if err := Unmarshal(none, &p); err != nil {
		t.Fatalf("None: %v", err)
	}
	if p != nil {
		t.Errorf("p = %v, want nil", p)
	}

	some := value.Variant("Some", value.Unnamed[ctx]{value.U8(5)})
	if err := Unmarshal(some, &p); err != nil {
		t.Fatalf("Some: %v", err)
	}
	if p == nil || *p != 5 {
		t.Errorf("p = %v, want 5", p)
	}

	// A plain value fills the pointee directly.
	var q *uint8
	if err := Unmarshal(value.U8(9), &q); err != nil {
		t.Fatalf("plain: %v", err)
	}
	if q == nil || *q != 9 {
		t.Errorf("q = %v, want 9", q)
	}

	// Other case names do not masquerade as options.
	var r *uint8
	err := Unmarshal(value.Variant("Maybe", value.Unnamed[ctx]{value.U8(1)}), &r)
	wantKind(t, err, errors.KindShapeMismatch)
}

func TestUnmarshal_Any(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value[ctx]
		want any
	}{
		{"scalar", value.U64(7), uint64(7)},
		{"named", value.NamedComposite(value.Field("a", value.U8(1))), map[string]any{"a": uint8(1)}},
		{"unnamed", value.UnnamedComposite(value.Bool(true), value.Str("x")), []any{true, "x"}},
		{"variant", value.Variant("Foo", value.Unnamed[ctx]{value.U8(3)}), map[string]any{"Foo": []any{uint8(3)}}},
		{"unit variant", value.Variant("Nothing", value.Unnamed[ctx]{}), map[string]any{"Nothing": nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out any
			if err := Unmarshal(tt.v, &out); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(out, tt.want) {
				t.Errorf("out = %#v, want %#v", out, tt.want)
			}
		})
	}
}

func TestUnmarshal_BitsSeq(t *testing.T) {
	src := bits.FromBools(true, false, true, true, false)
	var out bits.Seq
	if err := Unmarshal(value.BitSequence(src), &out); err != nil {
		t.Fatalf("bits: %v", err)
	}
	if !out.Equal(src) {
		t.Errorf("out = %s, want %s", out, src)
	}
}

func TestUnmarshal_Nested(t *testing.T) {
	type inner struct {
		Flag  bool
		Bytes []byte
	}
	type outer struct {
		ID    uint32
		Items []inner
	}
	v := value.NamedComposite(
		value.Field("id", value.U32(7)),
		value.Field("items", value.UnnamedComposite(
			value.NamedComposite(
				value.Field("flag", value.Bool(true)),
				value.Field("bytes", value.UnnamedComposite(value.U8(1), value.U8(2))),
			),
			value.NamedComposite(
				value.Field("flag", value.Bool(false)),
				value.Field("bytes", value.UnnamedComposite()),
			),
		)),
	)
	var out outer
	if err := Unmarshal(v, &out); err != nil {
		t.Fatalf("nested: %v", err)
	}
	want := outer{
		ID: 7,
		Items: []inner{
			{Flag: true, Bytes: []byte{1, 2}},
			{Flag: false, Bytes: []byte{}},
		},
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("out = %+v, want %+v", out, want)
	}
}

func TestUnmarshal_TargetValidation(t *testing.T) {
	var x uint8
	if err := Unmarshal(value.U8(1), x); err == nil {
		t.Error("non-pointer target accepted")
	}
	var p *uint8
	if err := Unmarshal[struct{}](value.U8(1), p); err == nil {
		t.Error("nil pointer target accepted")
	}
	var f float64
	err := Unmarshal(value.U64(1), &f)
	var e *errors.Error
	if !goerrors.As(err, &e) {
		t.Fatalf("expected structured error for float target, got %v", err)
	}
}
