// Package bits provides the compact bit-sequence representation carried by
// decoded values.
//
// A Seq is an ordered string of bits with least-significant-bit-first
// convention, backed by bytes. Its wire-side representation is three fields
// consumed in a fixed order:
//
//	head  one byte, bit offset into the first backing byte (0-7)
//	bits  64-bit unsigned total bit count
//	data  backing bytes, length = ceil((head+bits)/8)
//
// FromParts and the Head/Len/Bytes accessors expose exactly this triple so
// that no indirect extraction is needed when converting to or from foreign
// bit-vector layouts.
package bits
