package bits

import (
	"errors"
	"testing"

	dverr "github.com/wippyai/dynvalue/errors"
)

func TestFromBools(t *testing.T) {
	s := FromBools(false, true, true, false, true, false, true, false)
	if s.Len() != 8 {
		t.Fatalf("Len = %d, want 8", s.Len())
	}
	if s.Head() != 0 {
		t.Fatalf("Head = %d, want 0", s.Head())
	}
	// LSB0: bit i lives at 1<<i, so 0,1,1,0,1,0,1,0 packs to 0b01010110.
	if got := s.Bytes(); len(got) != 1 || got[0] != 0x56 {
		t.Fatalf("Bytes = %x, want [56]", got)
	}
	want := []bool{false, true, true, false, true, false, true, false}
	for i, w := range want {
		if s.Bit(uint64(i)) != w {
			t.Errorf("Bit(%d) = %v, want %v", i, s.Bit(uint64(i)), w)
		}
	}
}

func TestFromParts(t *testing.T) {
	s, err := FromParts(0, 12, []byte{0xFF, 0x0F})
	if err != nil {
		t.Fatalf("FromParts failed: %v", err)
	}
	if s.Len() != 12 {
		t.Fatalf("Len = %d, want 12", s.Len())
	}
	for i := uint64(0); i < 12; i++ {
		if !s.Bit(i) {
			t.Errorf("Bit(%d) = false, want true", i)
		}
	}
}

func TestFromParts_HeadOffset(t *testing.T) {
	// 3 bits starting at offset 6 straddle a byte boundary.
	s, err := FromParts(6, 3, []byte{0x40, 0x01})
	if err != nil {
		t.Fatalf("FromParts failed: %v", err)
	}
	want := []bool{true, false, true}
	for i, w := range want {
		if s.Bit(uint64(i)) != w {
			t.Errorf("Bit(%d) = %v, want %v", i, s.Bit(uint64(i)), w)
		}
	}
}

func TestFromParts_Validation(t *testing.T) {
	if _, err := FromParts(8, 1, []byte{0, 0}); err == nil {
		t.Error("head > 7 should fail")
	}
	if _, err := FromParts(0, 9, []byte{0}); err == nil {
		t.Error("short buffer should fail")
	}
	if _, err := FromParts(0, 8, []byte{0, 0}); err == nil {
		t.Error("oversized buffer should fail")
	}
	_, err := FromParts(0, 9, []byte{0})
	if !errors.Is(err, &dverr.Error{Phase: dverr.PhaseDecode, Kind: dverr.KindInvalidData}) {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestByteLen(t *testing.T) {
	tests := []struct {
		head uint8
		bits uint64
		want uint64
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 8, 1},
		{0, 9, 2},
		{7, 1, 1},
		{7, 2, 2},
		{1, 17, 3},
	}
	for _, tt := range tests {
		if got := ByteLen(tt.head, tt.bits); got != tt.want {
			t.Errorf("ByteLen(%d, %d) = %d, want %d", tt.head, tt.bits, got, tt.want)
		}
	}
}

func TestAppendRoundTrip(t *testing.T) {
	want := []bool{true, true, false, true, false, false, false, true, true, false, true}
	s := Seq{}
	for _, b := range want {
		s = s.Append(b)
	}
	got := s.Bools()
	if len(got) != len(want) {
		t.Fatalf("Bools len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bit %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEqual(t *testing.T) {
	a := FromBools(true, false, true)
	// Same bits at a nonzero head offset: 1,0,1 from offset 2 -> byte 0b00010100.
	b, err := FromParts(2, 3, []byte{0x14})
	if err != nil {
		t.Fatalf("FromParts failed: %v", err)
	}
	if !a.Equal(b) {
		t.Errorf("%s and %s should be equal", a, b)
	}
	if a.Equal(FromBools(true, false)) {
		t.Error("different lengths should not be equal")
	}
	if a.Equal(FromBools(true, false, false)) {
		t.Error("different bits should not be equal")
	}
}

func TestString(t *testing.T) {
	s := FromBools(false, true, true, false)
	if s.String() != "0b0110" {
		t.Errorf("String = %q, want 0b0110", s.String())
	}
	if (Seq{}).String() != "0b" {
		t.Errorf("empty String = %q, want 0b", (Seq{}).String())
	}
}
