package decode

import (
	"github.com/wippyai/dynvalue/errors"
	"github.com/wippyai/dynvalue/value"
)

// MaxDepth bounds value-tree nesting during a decode. Trees deeper than this
// fail with a recursion_limit error instead of exhausting the stack.
const MaxDepth = 256

// Decode negotiates the value into the representation requested by hint and
// hands it to vis. Exactly one Visit method runs per call; nested values are
// consumed through the accessors the visitor receives.
//
// The value is consumed by the attempt: accessors hand out subtrees once.
// Callers that may retry keep their own copy of the tree.
func Decode[T any](v value.Value[T], hint Hint, vis Visitor[T]) (any, error) {
	return decodeShape(v.Shape, hint, vis, 0)
}

func decodeShape[T any](s value.Shape[T], hint Hint, vis Visitor[T], depth int) (any, error) {
	if depth > MaxDepth {
		return nil, errors.RecursionLimit(errors.PhaseDecode, MaxDepth)
	}
	debugf("decode: hint=%s shape=%s depth=%d", hint, value.Name[T](s), depth)
	switch sh := s.(type) {
	case value.Named[T]:
		return decodeComposite[T](sh, hint, vis, depth)
	case value.Unnamed[T]:
		return decodeComposite[T](sh, hint, vis, depth)
	case value.VariantShape[T]:
		return decodeVariant(sh, hint, vis, depth)
	case value.BitSeq[T]:
		return decodeBitSeq[T](sh.Bits, hint, vis, depth)
	case value.Prim[T]:
		return decodePrimitive[T](sh.Value, hint, vis, depth)
	default:
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "unrecognized value shape")
	}
}

// decodeComposite negotiates a named or unnamed composite. Named composites
// naturally present as maps, unnamed as sequences; hints pull them toward
// other representations where the contents allow it.
func decodeComposite[T any](c value.Composite[T], hint Hint, vis Visitor[T], depth int) (any, error) {
	named, isNamed := c.(value.Named[T])

	switch hint.kind {
	case hintSeq:
		return vis.VisitSeq(&valueSeq[T]{items: c.Values(), depth: depth})

	case hintTuple, hintTupleNamed:
		if c.Len() != hint.len {
			return nil, errors.LengthMismatch(errors.PhaseDecode, nil, hint.len, c.Len())
		}
		return vis.VisitSeq(&valueSeq[T]{items: c.Values(), depth: depth})

	case hintMap:
		if !isNamed {
			return nil, errors.NotAMap(errors.PhaseDecode, nil)
		}
		return vis.VisitMap(&MapAccess[T]{fields: named, depth: depth})

	case hintStruct:
		if isNamed {
			return vis.VisitMap(&MapAccess[T]{fields: named, depth: depth})
		}
		return vis.VisitSeq(&valueSeq[T]{items: c.Values(), depth: depth})

	case hintUnit, hintUnitNamed:
		if !c.IsEmpty() {
			return nil, errors.NotUnit(errors.PhaseDecode, nil, c.Len())
		}
		return vis.VisitUnit()

	case hintBytes:
		buf, ok := compositeBytes(c)
		if !ok {
			return nil, errors.NotAllBytes(errors.PhaseDecode, nil, value.Name[T](value.Shape[T](c)))
		}
		return vis.VisitBytes(buf)

	case hintNewtype:
		return vis.VisitSeq(&singletonSeq[T]{shape: c, depth: depth})

	case hintEnum:
		return nil, errors.ShapeMismatch(errors.PhaseDecode, nil, hint.String(), value.Name[T](value.Shape[T](c)))

	default:
		// any, option and every scalar hint: present the natural
		// representation and let the visitor decide.
		if isNamed {
			return vis.VisitMap(&MapAccess[T]{fields: named, depth: depth})
		}
		return vis.VisitSeq(&valueSeq[T]{items: c.Values(), depth: depth})
	}
}

// compositeBytes flattens a composite into a byte buffer. It fails unless
// every element is a u8 primitive.
func compositeBytes[T any](c value.Composite[T]) ([]byte, bool) {
	vals := c.Values()
	buf := make([]byte, 0, len(vals))
	for _, v := range vals {
		p, ok := v.Shape.(value.Prim[T])
		if !ok {
			return nil, false
		}
		b, ok := p.Value.(value.PrimU8)
		if !ok {
			return nil, false
		}
		buf = append(buf, byte(b))
	}
	return buf, true
}

// decodeVariant negotiates one case of a sum value. Enum-shaped targets get
// the case name; aggregate hints fall through to the payload with the case
// name discarded, so a variant can stand in wherever its payload fits.
func decodeVariant[T any](v value.VariantShape[T], hint Hint, vis Visitor[T], depth int) (any, error) {
	switch hint.kind {
	case hintSeq, hintTuple, hintTupleNamed, hintMap, hintStruct, hintUnit, hintUnitNamed:
		return decodeComposite(v.Fields, hint, vis, depth)

	case hintNewtype:
		return vis.VisitSeq(&singletonSeq[T]{shape: v, depth: depth})

	case hintBytes:
		return nil, errors.ShapeMismatch(errors.PhaseDecode, nil, hint.String(), "variant")

	default:
		// any, enum, option and scalar hints all present the variant itself.
		return vis.VisitEnum(&EnumAccess[T]{name: v.Name, fields: v.Fields, depth: depth})
	}
}

// decodePrimitive hands a scalar to its matching callback. There is no width
// coercion: a u8 value arrives through VisitU8 whatever integer the hint
// asked for, and the visitor accepts or rejects it.
func decodePrimitive[T any](p value.Primitive, hint Hint, vis Visitor[T], depth int) (any, error) {
	if hint.kind == hintNewtype {
		return vis.VisitSeq(&singletonSeq[T]{shape: value.Prim[T]{Value: p}, depth: depth})
	}
	switch pv := p.(type) {
	case value.PrimBool:
		return vis.VisitBool(bool(pv))
	case value.PrimChar:
		return vis.VisitChar(rune(pv))
	case value.PrimStr:
		return vis.VisitStr(string(pv))
	case value.PrimU8:
		return vis.VisitU8(uint8(pv))
	case value.PrimU16:
		return vis.VisitU16(uint16(pv))
	case value.PrimU32:
		return vis.VisitU32(uint32(pv))
	case value.PrimU64:
		return vis.VisitU64(uint64(pv))
	case value.PrimU128:
		return vis.VisitU128(pv)
	case value.PrimI8:
		return vis.VisitI8(int8(pv))
	case value.PrimI16:
		return vis.VisitI16(int16(pv))
	case value.PrimI32:
		return vis.VisitI32(int32(pv))
	case value.PrimI64:
		return vis.VisitI64(int64(pv))
	case value.PrimI128:
		return vis.VisitI128(pv)
	case value.PrimU256:
		return vis.VisitBytes(append([]byte(nil), pv[:]...))
	case value.PrimI256:
		return vis.VisitBytes(append([]byte(nil), pv[:]...))
	default:
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "unrecognized primitive")
	}
}
