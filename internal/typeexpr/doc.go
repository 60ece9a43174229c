// Package typeexpr parses and resolves FML type expressions.
//
// A type expression is a short generic-looking string such as
// "Map<String, Object<Button>>". Parsing and resolution are split: Parse
// turns the string into an expression tree over an explicit token stream
// (identifier, '<', '>', ','), and Resolve interprets the tree into an
// ir.TypeRef. Resolution is pure: it consults no external state, so a
// user-declared type name is not an error here - it surfaces as an
// unrecognized constructor for the caller to resolve against its symbol
// table.
package typeexpr
