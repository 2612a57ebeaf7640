package value

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the value in a compact debug form: named composites as
// { a: 1, b: true }, unnamed composites as (1, true), variants as
// Name { .. } or Name(..), bit sequences as 0b0110, primitives naturally.
func (v Value[T]) String() string {
	return ShapeString[T](v.Shape)
}

// ShapeString renders a shape the same way Value.String does.
func ShapeString[T any](s Shape[T]) string {
	switch sh := s.(type) {
	case Named[T]:
		if len(sh) == 0 {
			return "{}"
		}
		var b strings.Builder
		b.WriteString("{ ")
		for i, f := range sh {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteString(": ")
			b.WriteString(f.Value.String())
		}
		b.WriteString(" }")
		return b.String()
	case Unnamed[T]:
		var b strings.Builder
		b.WriteByte('(')
		for i, v := range sh {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.String())
		}
		b.WriteByte(')')
		return b.String()
	case VariantShape[T]:
		return sh.Name + " " + ShapeString[T](Shape[T](sh.Fields))
	case BitSeq[T]:
		return sh.Bits.String()
	case Prim[T]:
		return PrimitiveString(sh.Value)
	default:
		return "<unknown shape>"
	}
}

// PrimitiveString renders a single primitive.
func PrimitiveString(p Primitive) string {
	switch v := p.(type) {
	case PrimBool:
		return strconv.FormatBool(bool(v))
	case PrimChar:
		return strconv.QuoteRune(rune(v))
	case PrimStr:
		return strconv.Quote(string(v))
	case PrimU8:
		return strconv.FormatUint(uint64(v), 10)
	case PrimU16:
		return strconv.FormatUint(uint64(v), 10)
	case PrimU32:
		return strconv.FormatUint(uint64(v), 10)
	case PrimU64:
		return strconv.FormatUint(uint64(v), 10)
	case PrimI8:
		return strconv.FormatInt(int64(v), 10)
	case PrimI16:
		return strconv.FormatInt(int64(v), 10)
	case PrimI32:
		return strconv.FormatInt(int64(v), 10)
	case PrimI64:
		return strconv.FormatInt(int64(v), 10)
	case PrimU128:
		if v.Hi == 0 {
			return strconv.FormatUint(v.Lo, 10)
		}
		return fmt.Sprintf("0x%016x%016x", v.Hi, v.Lo)
	case PrimI128:
		if v.Hi == 0 || v.Hi == ^uint64(0) {
			return strconv.FormatInt(int64(v.Lo), 10)
		}
		return fmt.Sprintf("0x%016x%016x", v.Hi, v.Lo)
	case PrimU256:
		return hex256(v)
	case PrimI256:
		return hex256(v)
	default:
		return "<unknown primitive>"
	}
}

// hex256 renders 32 little-endian bytes as a big-endian hex literal.
func hex256(b [32]byte) string {
	var s strings.Builder
	s.WriteString("0x")
	for i := len(b) - 1; i >= 0; i-- {
		fmt.Fprintf(&s, "%02x", b[i])
	}
	return s.String()
}

// Name returns a short label for a shape, used in error messages.
func Name[T any](s Shape[T]) string {
	switch sh := s.(type) {
	case Named[T]:
		return "named composite"
	case Unnamed[T]:
		return "unnamed composite"
	case VariantShape[T]:
		return "variant"
	case BitSeq[T]:
		return "bit sequence"
	case Prim[T]:
		return PrimitiveName(sh.Value)
	default:
		return "unknown"
	}
}

// PrimitiveName returns the scalar kind name, used in error messages.
func PrimitiveName(p Primitive) string {
	switch p.(type) {
	case PrimBool:
		return "bool"
	case PrimChar:
		return "char"
	case PrimStr:
		return "str"
	case PrimU8:
		return "u8"
	case PrimU16:
		return "u16"
	case PrimU32:
		return "u32"
	case PrimU64:
		return "u64"
	case PrimU128:
		return "u128"
	case PrimU256:
		return "u256"
	case PrimI8:
		return "i8"
	case PrimI16:
		return "i16"
	case PrimI32:
		return "i32"
	case PrimI64:
		return "i64"
	case PrimI128:
		return "i128"
	case PrimI256:
		return "i256"
	default:
		return "unknown"
	}
}
