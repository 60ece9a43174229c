// Package ir provides the resolved intermediate representation produced
// by the FML front-end and consumed by code generators.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the IR the
// foundational layer with no circular dependencies.
//
// Two sealed unions anchor the model:
//   - TypeRef: the recursive type model for declared variable types
//   - Value: opaque structured default values, carried through unvalidated
//
// Canonical JSON serialization (RFC 8785 key ordering, NFC-normalized
// strings) and content-addressed manifest hashing also live here, since
// both are defined purely in terms of IR values.
package ir
