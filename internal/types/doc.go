// Package types implements the type algebra: a canonical, structural
// automaton over node kinds {void, any, null, bool, byte, int, real, char,
// string, meta, nominal, record, tuple, list, set, map, reference, function,
// method, union, intersection, negation}.
//
// Types are built through the New* constructors, which canonicalize on
// construction (minimize unions/intersections, sort record fields, push
// negation through De Morgan) so that two structurally equal types compare
// equal by value after construction, never by a separate deep-equality walk.
package types
