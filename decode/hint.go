package decode

import (
	"strconv"
	"strings"
)

type hintKind uint8

const (
	hintAny hintKind = iota
	hintBool
	hintChar
	hintStr
	hintBytes
	hintU8
	hintU16
	hintU32
	hintU64
	hintU128
	hintI8
	hintI16
	hintI32
	hintI64
	hintI128
	hintOption
	hintUnit
	hintUnitNamed
	hintNewtype
	hintSeq
	hintTuple
	hintTupleNamed
	hintMap
	hintStruct
	hintEnum
)

// Hint is a target's declared expectation when asking for data. The set is
// closed; values are built from the package-level constructors below.
//
// A hint is a request, not a contract: the negotiation answers with the best
// representation the actual value shape supports, and the visitor decides
// whether to accept it.
type Hint struct {
	kind     hintKind
	name     string
	fields   []string
	variants []string
	len      int
}

// Scalar and structural hints with no parameters.
var (
	HintAny    = Hint{kind: hintAny}
	HintBool   = Hint{kind: hintBool}
	HintChar   = Hint{kind: hintChar}
	HintStr    = Hint{kind: hintStr}
	HintBytes  = Hint{kind: hintBytes}
	HintU8     = Hint{kind: hintU8}
	HintU16    = Hint{kind: hintU16}
	HintU32    = Hint{kind: hintU32}
	HintU64    = Hint{kind: hintU64}
	HintU128   = Hint{kind: hintU128}
	HintI8     = Hint{kind: hintI8}
	HintI16    = Hint{kind: hintI16}
	HintI32    = Hint{kind: hintI32}
	HintI64    = Hint{kind: hintI64}
	HintI128   = Hint{kind: hintI128}
	HintOption = Hint{kind: hintOption}
	HintUnit   = Hint{kind: hintUnit}
	HintSeq    = Hint{kind: hintSeq}
	HintMap    = Hint{kind: hintMap}
)

// UnitNamedHint requests a named unit wrapper (a no-field struct).
func UnitNamedHint(name string) Hint {
	return Hint{kind: hintUnitNamed, name: name}
}

// NewtypeHint requests a named single-field wrapper around one value.
func NewtypeHint(name string) Hint {
	return Hint{kind: hintNewtype, name: name}
}

// TupleHint requests a fixed-arity positional aggregate.
func TupleHint(n int) Hint {
	return Hint{kind: hintTuple, len: n}
}

// TupleNamedHint requests a named fixed-arity positional wrapper.
func TupleNamedHint(name string, n int) Hint {
	return Hint{kind: hintTupleNamed, name: name, len: n}
}

// StructHint requests a named aggregate resolved field-by-field. The
// declared field names are advisory: named composites are matched by name
// with surplus entries ignored, unnamed composites positionally.
func StructHint(name string, fields ...string) Hint {
	return Hint{kind: hintStruct, name: name, fields: fields}
}

// EnumHint requests one case of a sum type. Case-name validation is the
// caller's responsibility; the hint's case list is advisory.
func EnumHint(name string, cases ...string) Hint {
	return Hint{kind: hintEnum, name: name, variants: cases}
}

// Arity returns the requested tuple length, or -1 for non-tuple hints.
func (h Hint) Arity() int {
	if h.kind == hintTuple || h.kind == hintTupleNamed {
		return h.len
	}
	return -1
}

// TypeName returns the target type name carried by named hints.
func (h Hint) TypeName() string { return h.name }

// Fields returns the declared field names of a struct hint.
func (h Hint) Fields() []string { return h.fields }

// Cases returns the declared case names of an enum hint.
func (h Hint) Cases() []string { return h.variants }

func (h Hint) String() string {
	switch h.kind {
	case hintAny:
		return "any"
	case hintBool:
		return "bool"
	case hintChar:
		return "char"
	case hintStr:
		return "str"
	case hintBytes:
		return "bytes"
	case hintU8:
		return "u8"
	case hintU16:
		return "u16"
	case hintU32:
		return "u32"
	case hintU64:
		return "u64"
	case hintU128:
		return "u128"
	case hintI8:
		return "i8"
	case hintI16:
		return "i16"
	case hintI32:
		return "i32"
	case hintI64:
		return "i64"
	case hintI128:
		return "i128"
	case hintOption:
		return "option"
	case hintUnit:
		return "unit"
	case hintUnitNamed:
		return "unit " + h.name
	case hintNewtype:
		return "newtype " + h.name
	case hintSeq:
		return "seq"
	case hintTuple:
		return "tuple(" + strconv.Itoa(h.len) + ")"
	case hintTupleNamed:
		return h.name + "(" + strconv.Itoa(h.len) + ")"
	case hintMap:
		return "map"
	case hintStruct:
		return "struct " + h.name
	case hintEnum:
		if len(h.variants) == 0 {
			return "enum " + h.name
		}
		return "enum " + h.name + "[" + strings.Join(h.variants, "|") + "]"
	default:
		return "unknown"
	}
}
