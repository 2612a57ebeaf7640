package value

// Primitive is the closed set of scalar values. Sixteen types implement it.
//
// PrimU256 and PrimI256 carry no native wide-integer representation; they
// hold 32 little-endian bytes and are only ever handed to targets as bytes.
type Primitive interface {
	isPrimitive()
}

type (
	PrimBool bool
	PrimChar rune
	PrimStr  string
	PrimU8   uint8
	PrimU16  uint16
	PrimU32  uint32
	PrimU64  uint64
	PrimI8   int8
	PrimI16  int16
	PrimI32  int32
	PrimI64  int64
)

// PrimU128 is an unsigned 128-bit integer split into two 64-bit halves.
type PrimU128 struct {
	Hi uint64
	Lo uint64
}

// PrimI128 is a signed 128-bit integer in two's complement, split into two
// 64-bit halves (Hi carries the sign bit).
type PrimI128 struct {
	Hi uint64
	Lo uint64
}

// PrimU256 holds a 256-bit unsigned integer as 32 little-endian bytes.
type PrimU256 [32]byte

// PrimI256 holds a 256-bit signed integer as 32 little-endian bytes.
type PrimI256 [32]byte

func (PrimBool) isPrimitive() {}
func (PrimChar) isPrimitive() {}
func (PrimStr) isPrimitive()  {}
func (PrimU8) isPrimitive()   {}
func (PrimU16) isPrimitive()  {}
func (PrimU32) isPrimitive()  {}
func (PrimU64) isPrimitive()  {}
func (PrimU128) isPrimitive() {}
func (PrimU256) isPrimitive() {}
func (PrimI8) isPrimitive()   {}
func (PrimI16) isPrimitive()  {}
func (PrimI32) isPrimitive()  {}
func (PrimI64) isPrimitive()  {}
func (PrimI128) isPrimitive() {}
func (PrimI256) isPrimitive() {}

// U128FromU64 builds a PrimU128 from a 64-bit value.
func U128FromU64(v uint64) PrimU128 {
	return PrimU128{Lo: v}
}

// I128FromI64 builds a PrimI128 from a 64-bit value, sign-extending into
// the high half.
func I128FromI64(v int64) PrimI128 {
	hi := uint64(0)
	if v < 0 {
		hi = ^uint64(0)
	}
	return PrimI128{Hi: hi, Lo: uint64(v)}
}
