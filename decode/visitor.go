package decode

import (
	"github.com/wippyai/dynvalue/errors"
	"github.com/wippyai/dynvalue/value"
)

// Visitor receives the representation the negotiation settled on. Exactly one
// Visit method is called per Decode; which one depends on both the hint and
// the actual shape of the value.
//
// Implementations embed Base and override only the methods for
// representations they accept.
type Visitor[T any] interface {
	VisitBool(v bool) (any, error)
	VisitChar(v rune) (any, error)
	VisitStr(v string) (any, error)
	VisitU8(v uint8) (any, error)
	VisitU16(v uint16) (any, error)
	VisitU32(v uint32) (any, error)
	VisitU64(v uint64) (any, error)
	VisitU128(v value.PrimU128) (any, error)
	VisitI8(v int8) (any, error)
	VisitI16(v int16) (any, error)
	VisitI32(v int32) (any, error)
	VisitI64(v int64) (any, error)
	VisitI128(v value.PrimI128) (any, error)
	VisitBytes(v []byte) (any, error)
	VisitUnit() (any, error)
	VisitSeq(seq SeqAccess[T]) (any, error)
	VisitMap(m *MapAccess[T]) (any, error)
	VisitEnum(e *EnumAccess[T]) (any, error)
}

// Base rejects every representation with a shape mismatch naming Want as the
// requested target. Embed it and override the accepting methods.
type Base[T any] struct {
	Want string
}

func (b Base[T]) reject(offered string) (any, error) {
	want := b.Want
	if want == "" {
		want = "target"
	}
	return nil, errors.ShapeMismatch(errors.PhaseDecode, nil, want, offered)
}

func (b Base[T]) VisitBool(bool) (any, error)           { return b.reject("bool") }
func (b Base[T]) VisitChar(rune) (any, error)           { return b.reject("char") }
func (b Base[T]) VisitStr(string) (any, error)          { return b.reject("str") }
func (b Base[T]) VisitU8(uint8) (any, error)            { return b.reject("u8") }
func (b Base[T]) VisitU16(uint16) (any, error)          { return b.reject("u16") }
func (b Base[T]) VisitU32(uint32) (any, error)          { return b.reject("u32") }
func (b Base[T]) VisitU64(uint64) (any, error)          { return b.reject("u64") }
func (b Base[T]) VisitU128(value.PrimU128) (any, error) { return b.reject("u128") }
func (b Base[T]) VisitI8(int8) (any, error)             { return b.reject("i8") }
func (b Base[T]) VisitI16(int16) (any, error)           { return b.reject("i16") }
func (b Base[T]) VisitI32(int32) (any, error)           { return b.reject("i32") }
func (b Base[T]) VisitI64(int64) (any, error)           { return b.reject("i64") }
func (b Base[T]) VisitI128(value.PrimI128) (any, error) { return b.reject("i128") }
func (b Base[T]) VisitBytes([]byte) (any, error)        { return b.reject("bytes") }
func (b Base[T]) VisitUnit() (any, error)               { return b.reject("unit") }
func (b Base[T]) VisitSeq(SeqAccess[T]) (any, error)    { return b.reject("sequence") }
func (b Base[T]) VisitMap(*MapAccess[T]) (any, error)   { return b.reject("map") }
func (b Base[T]) VisitEnum(*EnumAccess[T]) (any, error) { return b.reject("enum") }
