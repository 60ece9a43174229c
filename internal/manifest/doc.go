// Package manifest implements the FML front-end: it reads a YAML manifest
// document declaring enums, objects, and features, and lowers it into the
// resolved ir.FeatureManifest consumed by code generators.
//
// Lowering is a single synchronous pass with one-way data flow: enums and
// objects are lowered directly, a symbol table is built from their names,
// then features are lowered with the symbol table as a fallback for
// variable types that are not built-in constructors. Declaration order is
// preserved everywhere, which is what makes lowering deterministic.
//
// Every failure path returns a typed, recoverable error; nothing in this
// package terminates the process.
package manifest
