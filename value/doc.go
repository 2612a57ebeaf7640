// Package value provides the self-describing runtime representation of
// decoded data, much like encoding/json's generic document types are a
// runtime representation of JSON.
//
// A Value is a tree: composites (named or unnamed) and variants carry child
// values, bit sequences and primitives are leaves. Every node also carries
// an arbitrary context of type T (provenance, source type ids, anything the
// producer wants); the library propagates context but never interprets it.
//
// Values are immutable once built and owned by their parent: no sharing, no
// cycles. MapContext is the only whole-tree transformation; it rewrites
// context at every node and is guaranteed to preserve shape, field names,
// ordering and primitive payloads exactly.
//
// The decode package consumes Value trees and negotiates them into
// statically-typed targets.
package value
