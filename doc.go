// Package dynvalue provides a self-describing runtime value model for
// binary-decoded data and a negotiation protocol that converts those values
// into arbitrary statically-typed Go targets.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	dynvalue/            Root package, documentation only
//	├── value/           The Value model: shapes, primitives, context mapping
//	├── bits/            Compact ordered-bit sequences
//	├── decode/          Hint/Visitor negotiation protocol and Unmarshal
//	├── valuejson/       JSON/JSONC bridge for materializing value trees
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Build a value tree and decode it into a Go struct:
//
//	v := value.NamedComposite(
//	    value.Field("id", value.U32(7)),
//	    value.Field("who", value.Str("alice")),
//	)
//
//	var out struct {
//	    ID  uint32
//	    Who string
//	}
//	if err := decode.Unmarshal(v, &out); err != nil {
//	    log.Fatal(err)
//	}
//
// Targets with richer needs implement decode.Visitor directly and drive the
// negotiation with explicit hints.
//
// # Thread Safety
//
// Value trees are immutable once built and safe to share for reading. A
// decode attempt consumes the tree it is given; callers that may retry keep
// their own copy.
package dynvalue
