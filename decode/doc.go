// Package decode negotiates value trees into statically-typed targets.
//
// Neither side knows the other's concrete type. The target states what it
// wants as a Hint; the engine answers with the best representation the
// actual value shape supports, calling exactly one method of the target's
// Visitor. Aggregates are walked through Seq/Map/Enum accessors, each step
// running the same negotiation one level down.
//
// A value is consumed by a decode attempt: accessors hand out each subtree
// once. Callers that may retry keep their own copy of the tree. Nesting is
// bounded by MaxDepth.
//
// Unmarshal layers a reflection-driven convenience on top, deriving hints
// from an ordinary Go target and filling it in place.
package decode
