package types

// Expand returns the structural type underlying a nominal type, via its
// resolver hook. It panics if called on a non-nominal type; callers (the
// subtype engine, the resolver) only ever call it after checking Kind().
func (t *Type) Expand() *Type {
	if t.kind != KindNominal {
		panic("types: Expand called on non-nominal type " + t.kind.String())
	}
	return t.expander.Expand(t.Name)
}

// IsOpenNominal reports whether the nominal's expansion is an open record,
// consulted without forcing a full expansion when the expander can answer
// cheaply (internal/nominal memoizes both).
func (t *Type) IsOpenNominal() bool {
	if t.kind != KindNominal {
		panic("types: IsOpenNominal called on non-nominal type " + t.kind.String())
	}
	return t.expander.IsOpen(t.Name)
}
