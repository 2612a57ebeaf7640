package decode

import (
	"fmt"

	"github.com/wippyai/dynvalue/bits"
	"github.com/wippyai/dynvalue/errors"
)

// decodeBitSeq presents a bit sequence as its three transport pieces: the
// head offset as u8, the bit count as u64 and the backing bytes. Consumers
// that understand the encoding rebuild the sequence from those; everything
// else is a mismatch.
func decodeBitSeq[T any](s bits.Seq, hint Hint, vis Visitor[T], depth int) (any, error) {
	switch hint.kind {
	case hintAny, hintSeq:
		if err := checkSeqPieces(s); err != nil {
			return nil, err
		}
		return vis.VisitSeq(&bitSeqPieces[T]{seq: s, depth: depth})
	default:
		return nil, errors.ShapeMismatch(errors.PhaseDecode, nil, hint.String(), "bit sequence")
	}
}

// checkSeqPieces re-validates the sequence invariants before replay. The
// constructors enforce them, so a failure here means the pieces were
// assembled inconsistently.
func checkSeqPieces(s bits.Seq) error {
	if s.Head() > 7 {
		return errors.BitSeqField(errors.PhaseDecode,
			fmt.Sprintf("bit offset %d exceeds 7", s.Head()))
	}
	if want := bits.ByteLen(s.Head(), s.Len()); uint64(len(s.Bytes())) != want {
		return errors.BitSeqField(errors.PhaseDecode,
			fmt.Sprintf("bit store holds %d bytes, %d bits at offset %d need %d",
				len(s.Bytes()), s.Len(), s.Head(), want))
	}
	return nil
}

// bitSeqPieces replays a bit sequence as a strict three-element sequence.
// The hint passed to Next is ignored; each piece arrives through its natural
// callback and the visitor decides.
type bitSeqPieces[T any] struct {
	seq   bits.Seq
	stage int
	depth int
}

func (b *bitSeqPieces[T]) Len() int   { return 3 - b.stage }
func (b *bitSeqPieces[T]) More() bool { return b.stage < 3 }

func (b *bitSeqPieces[T]) Next(_ Hint, vis Visitor[T]) (any, error) {
	if b.depth >= MaxDepth {
		return nil, errors.RecursionLimit(errors.PhaseDecode, MaxDepth)
	}
	stage := b.stage
	b.stage++
	switch stage {
	case 0:
		return vis.VisitU8(b.seq.Head())
	case 1:
		return vis.VisitU64(b.seq.Len())
	case 2:
		return vis.VisitBytes(append([]byte(nil), b.seq.Bytes()...))
	default:
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "bit sequence pieces exhausted")
	}
}
