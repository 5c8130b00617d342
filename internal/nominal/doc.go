// Package nominal implements the thin external-collaborator boundary the
// spec calls the NominalResolver: expanding a nominal type's qualified name
// to its structural definition, optionally lazily, and memoizing the
// result. The core (SubtypeEngine, Resolver) only ever talks to this
// package through the types.NominalExpander interface.
package nominal
