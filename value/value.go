package value

import (
	"github.com/wippyai/dynvalue/bits"
)

// Value holds the shape of one decoded node along with some arbitrary
// context of type T. Context is carried through every operation but never
// interpreted by the library.
type Value[T any] struct {
	Shape   Shape[T]
	Context T
}

// Shape is the closed set of forms a decoded value can take. Exactly five
// types implement it: Named, Unnamed, VariantShape, BitSeq and Prim.
type Shape[T any] interface {
	isShape()
}

// Composite is the closed subset of shapes that aggregate child values:
// Named and Unnamed.
type Composite[T any] interface {
	Shape[T]
	// Len returns the number of values in the composite.
	Len() int
	// IsEmpty reports whether the composite holds no values.
	IsEmpty() bool
	// Values returns the child values in order, dropping any field names.
	Values() []Value[T]
	isComposite()
}

// NamedField is one entry of a Named composite.
type NamedField[T any] struct {
	Name  string
	Value Value[T]
}

// Named is a composite whose values carry field names, e.g. { foo: 2, bar: false }.
// Insertion order is preserved but matching is by name; names are unique.
type Named[T any] []NamedField[T]

func (Named[T]) isShape()     {}
func (Named[T]) isComposite() {}

func (n Named[T]) Len() int      { return len(n) }
func (n Named[T]) IsEmpty() bool { return len(n) == 0 }

func (n Named[T]) Values() []Value[T] {
	vals := make([]Value[T], len(n))
	for i, f := range n {
		vals[i] = f.Value
	}
	return vals
}

// Unnamed is a composite of positional values, e.g. (2, false). Order is
// significant.
type Unnamed[T any] []Value[T]

func (Unnamed[T]) isShape()     {}
func (Unnamed[T]) isComposite() {}

func (u Unnamed[T]) Len() int           { return len(u) }
func (u Unnamed[T]) IsEmpty() bool      { return len(u) == 0 }
func (u Unnamed[T]) Values() []Value[T] { return u }

// VariantShape is one named case of a sum type, carrying the named or
// unnamed values associated with that case.
type VariantShape[T any] struct {
	Name   string
	Fields Composite[T]
}

func (VariantShape[T]) isShape() {}

// BitSeq is a sequence of bits.
type BitSeq[T any] struct {
	Bits bits.Seq
}

func (BitSeq[T]) isShape() {}

// Prim is a single scalar value.
type Prim[T any] struct {
	Value Primitive
}

func (Prim[T]) isShape() {}

// Constructors for context-free values, mirroring each shape.

// NamedComposite creates a named composite value without additional context.
func NamedComposite(fields ...NamedField[struct{}]) Value[struct{}] {
	return Value[struct{}]{Shape: Named[struct{}](fields)}
}

// UnnamedComposite creates an unnamed composite value without additional context.
func UnnamedComposite(values ...Value[struct{}]) Value[struct{}] {
	return Value[struct{}]{Shape: Unnamed[struct{}](values)}
}

// Field pairs a name with a value for use in NamedComposite.
func Field(name string, v Value[struct{}]) NamedField[struct{}] {
	return NamedField[struct{}]{Name: name, Value: v}
}

// Variant creates a variant value without additional context.
func Variant(name string, fields Composite[struct{}]) Value[struct{}] {
	return Value[struct{}]{Shape: VariantShape[struct{}]{Name: name, Fields: fields}}
}

// BitSequence creates a bit-sequence value without additional context.
func BitSequence(s bits.Seq) Value[struct{}] {
	return Value[struct{}]{Shape: BitSeq[struct{}]{Bits: s}}
}

// FromPrimitive creates a primitive value without additional context.
func FromPrimitive(p Primitive) Value[struct{}] {
	return Value[struct{}]{Shape: Prim[struct{}]{Value: p}}
}

func Bool(v bool) Value[struct{}]     { return FromPrimitive(PrimBool(v)) }
func Char(v rune) Value[struct{}]     { return FromPrimitive(PrimChar(v)) }
func Str(v string) Value[struct{}]    { return FromPrimitive(PrimStr(v)) }
func U8(v uint8) Value[struct{}]      { return FromPrimitive(PrimU8(v)) }
func U16(v uint16) Value[struct{}]    { return FromPrimitive(PrimU16(v)) }
func U32(v uint32) Value[struct{}]    { return FromPrimitive(PrimU32(v)) }
func U64(v uint64) Value[struct{}]    { return FromPrimitive(PrimU64(v)) }
func U128(v PrimU128) Value[struct{}] { return FromPrimitive(v) }
func U256(v [32]byte) Value[struct{}] { return FromPrimitive(PrimU256(v)) }
func I8(v int8) Value[struct{}]       { return FromPrimitive(PrimI8(v)) }
func I16(v int16) Value[struct{}]     { return FromPrimitive(PrimI16(v)) }
func I32(v int32) Value[struct{}]     { return FromPrimitive(PrimI32(v)) }
func I64(v int64) Value[struct{}]     { return FromPrimitive(PrimI64(v)) }
func I128(v PrimI128) Value[struct{}] { return FromPrimitive(v) }
func I256(v [32]byte) Value[struct{}] { return FromPrimitive(PrimI256(v)) }

// WithContext creates a value carrying the given context.
func WithContext[T any](shape Shape[T], ctx T) Value[T] {
	return Value[T]{Shape: shape, Context: ctx}
}

// MapContext produces a new tree with every node's context transformed by f.
// Shape, field names, ordering and primitive payloads are preserved exactly.
// Go methods cannot introduce type parameters, so this is a free function.
func MapContext[T, U any](v Value[T], f func(T) U) Value[U] {
	return Value[U]{Shape: mapShape(v.Shape, f), Context: f(v.Context)}
}

// StripContext discards the context at every node.
func StripContext[T any](v Value[T]) Value[struct{}] {
	return MapContext(v, func(T) struct{} { return struct{}{} })
}

func mapShape[T, U any](s Shape[T], f func(T) U) Shape[U] {
	switch sh := s.(type) {
	case Named[T]:
		fields := make(Named[U], len(sh))
		for i, fld := range sh {
			fields[i] = NamedField[U]{Name: fld.Name, Value: MapContext(fld.Value, f)}
		}
		return fields
	case Unnamed[T]:
		vals := make(Unnamed[U], len(sh))
		for i, v := range sh {
			vals[i] = MapContext(v, f)
		}
		return vals
	case VariantShape[T]:
		return VariantShape[U]{
			Name:   sh.Name,
			Fields: mapShape(sh.Fields, f).(Composite[U]),
		}
	case BitSeq[T]:
		return BitSeq[U]{Bits: sh.Bits}
	case Prim[T]:
		return Prim[U]{Value: sh.Value}
	default:
		panic("value: unknown shape")
	}
}
