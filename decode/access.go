package decode

import (
	"github.com/wippyai/dynvalue/errors"
	"github.com/wippyai/dynvalue/value"
)

// SeqAccess walks the elements of a sequence representation one at a time.
// Each Next drives a nested negotiation for the current element.
type SeqAccess[T any] interface {
	// Len returns the number of elements not yet consumed.
	Len() int
	// More reports whether another element remains.
	More() bool
	// Next decodes the next element with the given hint and visitor.
	Next(hint Hint, vis Visitor[T]) (any, error)
}

// valueSeq adapts a slice of values as a SeqAccess.
type valueSeq[T any] struct {
	items []value.Value[T]
	idx   int
	depth int
}

func (s *valueSeq[T]) Len() int   { return len(s.items) - s.idx }
func (s *valueSeq[T]) More() bool { return s.idx < len(s.items) }

func (s *valueSeq[T]) Next(hint Hint, vis Visitor[T]) (any, error) {
	if !s.More() {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "sequence exhausted")
	}
	v := s.items[s.idx]
	s.idx++
	return decodeShape(v.Shape, hint, vis, s.depth+1)
}

// singletonSeq presents one shape as a one-element sequence. Newtype targets
// receive their inner value through it.
type singletonSeq[T any] struct {
	shape value.Shape[T]
	depth int
	done  bool
}

func (s *singletonSeq[T]) Len() int {
	if s.done {
		return 0
	}
	return 1
}

func (s *singletonSeq[T]) More() bool { return !s.done }

func (s *singletonSeq[T]) Next(hint Hint, vis Visitor[T]) (any, error) {
	if s.done {
		return nil, errors.InvalidData(errors.PhaseDecode, nil, "sequence exhausted")
	}
	s.done = true
	return decodeShape(s.shape, hint, vis, s.depth+1)
}

// MapAccess walks the entries of a named composite in declaration order.
// Keys are always strings; duplicates are handed out as stored.
type MapAccess[T any] struct {
	fields value.Named[T]
	idx    int
	depth  int
}

// Len returns the number of entries not yet consumed.
func (m *MapAccess[T]) Len() int { return len(m.fields) - m.idx }

// More reports whether another entry remains.
func (m *MapAccess[T]) More() bool { return m.idx < len(m.fields) }

// Peek returns the next entry's key without consuming it, so consumers can
// pick a hint for the value before calling Next.
func (m *MapAccess[T]) Peek() (string, bool) {
	if !m.More() {
		return "", false
	}
	return m.fields[m.idx].Name, true
}

// Next decodes the next entry's value with the given hint and visitor,
// returning the entry's key alongside the decoded result.
func (m *MapAccess[T]) Next(hint Hint, vis Visitor[T]) (string, any, error) {
	if !m.More() {
		return "", nil, errors.InvalidData(errors.PhaseDecode, nil, "map exhausted")
	}
	f := m.fields[m.idx]
	m.idx++
	out, err := decodeShape(f.Value.Shape, hint, vis, m.depth+1)
	if err != nil {
		return f.Name, nil, errors.Prefix(errors.PhaseDecode, err, f.Name)
	}
	return f.Name, out, nil
}

// EnumAccess exposes one variant of a sum value. Name identifies the case;
// exactly one of the payload methods should then be called, matching the
// target's declaration for that case.
type EnumAccess[T any] struct {
	name   string
	fields value.Composite[T]
	depth  int
}

// Name returns the case name carried by the variant.
func (e *EnumAccess[T]) Name() string { return e.name }

// Unit accepts the variant as payload-free. It fails unless the variant's
// field list is empty.
func (e *EnumAccess[T]) Unit() error {
	if !e.fields.IsEmpty() {
		return errors.NotUnit(errors.PhaseDecode, []string{e.name}, e.fields.Len())
	}
	return nil
}

// Newtype decodes the variant's payload as a single wrapped value using the
// given hint.
func (e *EnumAccess[T]) Newtype(hint Hint, vis Visitor[T]) (any, error) {
	out, err := decodeComposite(e.fields, hint, vis, e.depth+1)
	if err != nil {
		return nil, errors.Prefix(errors.PhaseDecode, err, e.name)
	}
	return out, nil
}

// Tuple decodes the variant's payload as a positional aggregate of n values.
func (e *EnumAccess[T]) Tuple(n int, vis Visitor[T]) (any, error) {
	out, err := decodeComposite(e.fields, TupleHint(n), vis, e.depth+1)
	if err != nil {
		return nil, errors.Prefix(errors.PhaseDecode, err, e.name)
	}
	return out, nil
}

// Struct decodes the variant's payload field-by-field. Named payloads are
// presented as a map, unnamed payloads as a sequence.
func (e *EnumAccess[T]) Struct(fields []string, vis Visitor[T]) (any, error) {
	out, err := decodeComposite(e.fields, StructHint(e.name, fields...), vis, e.depth+1)
	if err != nil {
		return nil, errors.Prefix(errors.PhaseDecode, err, e.name)
	}
	return out, nil
}
