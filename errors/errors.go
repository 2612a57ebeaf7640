package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode    Phase = "decode"    // shape negotiation
	PhaseUnmarshal Phase = "unmarshal" // reflect-driven target construction
	PhaseParse     Phase = "parse"     // value-tree text parsing
)

// Kind categorizes the error
type Kind string

const (
	KindShapeMismatch  Kind = "shape_mismatch"
	KindLengthMismatch Kind = "length_mismatch"
	KindNotAMap        Kind = "not_a_map"
	KindNotUnit        Kind = "not_unit"
	KindNotAllBytes    Kind = "not_all_bytes"
	KindUnknownField   Kind = "unknown_field"
	KindBitSeqField    Kind = "bitseq_field"
	KindRecursionLimit Kind = "recursion_limit"
	KindInvalidData    Kind = "invalid_data"
	KindCustom         Kind = "custom"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Hint   string // the requested shape hint
	Shape  string // the actual value shape
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Hint != "" || e.Shape != "" {
		b.WriteString(": ")
		if e.Hint != "" && e.Shape != "" {
			b.WriteString("requested ")
			b.WriteString(e.Hint)
			b.WriteString(", value is ")
			b.WriteString(e.Shape)
		} else if e.Hint != "" {
			b.WriteString("requested ")
			b.WriteString(e.Hint)
		} else {
			b.WriteString("value is ")
			b.WriteString(e.Shape)
		}
	}

	if e.Detail != "" {
		if e.Hint != "" || e.Shape != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Hint sets the requested shape hint
func (b *Builder) Hint(h string) *Builder {
	b.err.Hint = h
	return b
}

// Shape sets the actual value shape
func (b *Builder) Shape(s string) *Builder {
	b.err.Shape = s
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ShapeMismatch creates an error for a hint the actual shape cannot satisfy
func ShapeMismatch(phase Phase, path []string, hint, shape string) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindShapeMismatch,
		Path:  path,
		Hint:  hint,
		Shape: shape,
	}
}

// LengthMismatch creates an error for a fixed-arity target of the wrong size
func LengthMismatch(phase Phase, path []string, expected, actual int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthMismatch,
		Path:   path,
		Detail: fmt.Sprintf("expected %d values, have %d", expected, actual),
		Value:  actual,
	}
}

// NotAMap creates an error for an unnamed composite decoded as a map
func NotAMap(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotAMap,
		Path:   path,
		Detail: "unnamed composite has no keys",
	}
}

// NotUnit creates an error for a non-empty composite decoded as unit
func NotUnit(phase Phase, path []string, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotUnit,
		Path:   path,
		Detail: fmt.Sprintf("composite of %d values is not unit", length),
		Value:  length,
	}
}

// NotAllBytes creates an error for a byte-buffer target over non-U8 elements
func NotAllBytes(phase Phase, path []string, shape string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotAllBytes,
		Path:   path,
		Shape:  shape,
		Detail: "composite is not entirely u8 values",
	}
}

// UnknownField creates an error for a required field with no named entry
func UnknownField(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownField,
		Path:   path,
		Detail: fmt.Sprintf("no value for required field %q", fieldName),
	}
}

// BitSeqField creates an internal-consistency error during bit-sequence extraction
func BitSeqField(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBitSeqField,
		Detail: detail,
	}
}

// RecursionLimit creates an error for values nested beyond the depth bound
func RecursionLimit(phase Phase, depth int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRecursionLimit,
		Detail: fmt.Sprintf("value nesting exceeds depth limit %d", depth),
		Value:  depth,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Custom creates an error carrying a target-side validation message
func Custom(phase Phase, msg string, args ...any) *Error {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindCustom,
		Detail: msg,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Prefix prepends a path segment to a structured error so failures deep in a
// value tree report where they happened. Plain errors are wrapped as custom.
func Prefix(phase Phase, err error, segment string) error {
	if e, ok := err.(*Error); ok {
		e.Path = append([]string{segment}, e.Path...)
		return e
	}
	return &Error{
		Phase: phase,
		Kind:  KindCustom,
		Path:  []string{segment},
		Cause: err,
	}
}
