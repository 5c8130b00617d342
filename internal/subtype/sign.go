package subtype

// Sign encodes whether a query term is taken as-is (normal) or negated, per
// the spec's isInhabited(A, sA, B, sB) contract.
type Sign uint8

const (
	Normal Sign = iota
	Negated
)

func flip(s Sign) Sign {
	if s == Normal {
		return Negated
	}
	return Normal
}

// assumptionKey packs (idA, signA, idB, signB) into one comparable value for
// the assumption cache — the spec calls this a bitset; a Go map keyed on a
// packed uint64 gives the same O(1) membership test/insert without hand-
// rolling a dense bit array indexed by type id, which would need resizing
// logic a map already gives us for free.
type assumptionKey uint64

func makeKey(idA int64, sa Sign, idB int64, sb Sign) assumptionKey {
	return assumptionKey(uint64(idA)<<33 | uint64(sa)<<32 | uint64(idB)<<1 | uint64(sb))
}

// assumptions is the per-query cache: entries added during a call to
// isInhabited are never removed within that call (coinductive fixpoint —
// once assumed, the assumption stands for the rest of that top-level
// query), but a fresh assumptions set is created for every call into
// IsSubtype/IsSupertype so queries never leak state into each other.
type assumptions map[assumptionKey]struct{}

func newAssumptions() assumptions { return make(assumptions) }

func (a assumptions) inProgress(k assumptionKey) bool {
	_, ok := a[k]
	return ok
}

func (a assumptions) mark(k assumptionKey) { a[k] = struct{}{} }
