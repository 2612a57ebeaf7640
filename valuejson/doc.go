// Package valuejson builds value trees from JSON or JSONC text.
//
// The binary front-ends that normally produce value trees are out of scope
// for this library, so tools and tests use this bridge to materialize trees
// from a human-editable form. Comments and trailing commas are accepted;
// variants and bit sequences, which plain JSON cannot express, use the
// $variant and $bits escape forms described on Parse.
package valuejson
