package bits

import (
	"strings"

	"github.com/wippyai/dynvalue/errors"
)

// Seq is an ordered string of bits backed by byte storage. Bits are stored
// least-significant-bit first within each byte, and the first head bits of
// the first byte are padding, not part of the sequence.
type Seq struct {
	data []byte
	bits uint64
	head uint8
}

// FromParts reconstructs a Seq from its three backing fields: the bit offset
// into the first byte (0-7), the total bit count, and the backing bytes.
// The backing buffer length must be exactly ceil((head+bits)/8).
func FromParts(head uint8, bits uint64, data []byte) (Seq, error) {
	if head > 7 {
		return Seq{}, errors.InvalidData(errors.PhaseDecode, nil, "bit offset must be 0-7")
	}
	if want := ByteLen(head, bits); uint64(len(data)) != want {
		return Seq{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Detail("backing buffer holds %d bytes, need %d for %d bits at offset %d", len(data), want, bits, head).
			Build()
	}
	return Seq{head: head, bits: bits, data: data}, nil
}

// FromBools builds a Seq with zero head offset from individual bit values.
func FromBools(vals ...bool) Seq {
	s := Seq{}
	for _, v := range vals {
		s = s.Append(v)
	}
	return s
}

// ByteLen returns the backing buffer length required for a sequence of the
// given bit count starting at the given offset.
func ByteLen(head uint8, bits uint64) uint64 {
	return (uint64(head) + bits + 7) / 8
}

// Head returns the bit offset into the first backing byte.
func (s Seq) Head() uint8 { return s.head }

// Len returns the total number of bits in the sequence.
func (s Seq) Len() uint64 { return s.bits }

// Bytes returns the backing byte storage. The slice is shared, not copied.
func (s Seq) Bytes() []byte { return s.data }

// Bit returns the i-th bit of the sequence. It panics if i >= Len().
func (s Seq) Bit(i uint64) bool {
	if i >= s.bits {
		panic("bits: index out of range")
	}
	pos := uint64(s.head) + i
	return s.data[pos/8]&(1<<(pos%8)) != 0
}

// Append returns a sequence with one more bit at the end. The receiver's
// backing storage is reused when it has spare capacity in its last byte.
func (s Seq) Append(bit bool) Seq {
	pos := uint64(s.head) + s.bits
	if pos/8 >= uint64(len(s.data)) {
		s.data = append(s.data, 0)
	}
	if bit {
		s.data[pos/8] |= 1 << (pos % 8)
	}
	s.bits++
	return s
}

// Bools expands the sequence into individual bit values.
func (s Seq) Bools() []bool {
	out := make([]bool, s.bits)
	for i := uint64(0); i < s.bits; i++ {
		out[i] = s.Bit(i)
	}
	return out
}

// Equal reports whether two sequences hold the same bits, ignoring any
// difference in head offset or padding.
func (s Seq) Equal(o Seq) bool {
	if s.bits != o.bits {
		return false
	}
	for i := uint64(0); i < s.bits; i++ {
		if s.Bit(i) != o.Bit(i) {
			return false
		}
	}
	return true
}

// String renders the sequence as "0b" followed by the bits in order.
func (s Seq) String() string {
	var b strings.Builder
	b.Grow(int(s.bits) + 2)
	b.WriteString("0b")
	for i := uint64(0); i < s.bits; i++ {
		if s.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
