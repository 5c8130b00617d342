package subtype

import "github.com/coldfront-lang/corefront/internal/types"

// perKind handles the case where a and b have already been stripped of
// negation/union/intersection/nominal/any/void wrapping (isInhabited deals
// with those before calling here).
func (e *Engine) perKind(a *types.Type, sa Sign, b *types.Type, sb Sign, assumed assumptions) bool {
	if a == b {
		return sa == sb
	}

	if a.Kind() != b.Kind() {
		// Explicit tie-break: the empty list/set inhabits the intersection
		// of a list-type and a set-type regardless of element type, so two
		// differently-kinded container types are not simply disjoint.
		if isListSetPair(a, b) && sa == Normal && sb == Normal {
			return true
		}
		if sa == Normal && sb == Normal {
			return false // distinct kinds never share a positively-typed value
		}
		return true // one side excluded ⇒ always room for a witness
	}

	switch a.Kind() {
	case types.KindList, types.KindSet:
		return e.isInhabited(a.Elem(), sa, b.Elem(), sb, assumed)

	case types.KindReference:
		return e.combine(sa, sb, []pair{{a.Elem(), b.Elem(), covariant}}, assumed)

	case types.KindMap:
		return e.combine(sa, sb, []pair{
			{a.Key(), b.Key(), covariant},
			{a.Value(), b.Value(), covariant},
		}, assumed)

	case types.KindTuple:
		ac, bc := a.Children(), b.Children()
		if len(ac) != len(bc) {
			return false
		}
		pairs := make([]pair, len(ac))
		for i := range ac {
			pairs[i] = pair{ac[i], bc[i], covariant}
		}
		return e.combine(sa, sb, pairs, assumed)

	case types.KindFunction, types.KindMethod:
		ap, bp := a.Params(), b.Params()
		if len(ap) != len(bp) {
			// Different arities are disjoint, like distinct kinds above.
			return !(sa == Normal && sb == Normal)
		}
		pairs := make([]pair, 0, 2+len(ap))
		pairs = append(pairs,
			pair{a.Return(), b.Return(), covariant},
			pair{a.Throws(), b.Throws(), covariant},
		)
		for i := range ap {
			pairs = append(pairs, pair{ap[i], bp[i], contravariant})
		}
		return e.combine(sa, sb, pairs, assumed)

	case types.KindRecord:
		return e.recordInhabited(a, sa, b, sb, assumed)

	default:
		// Two distinct interned values of the same leaf kind cannot occur
		// (primitives are singletons), so reaching here for a leaf kind
		// would mean a == b, already handled above.
		return false
	}
}

func isListSetPair(a, b *types.Type) bool {
	return (a.Kind() == types.KindList && b.Kind() == types.KindSet) ||
		(a.Kind() == types.KindSet && b.Kind() == types.KindList)
}

type variance uint8

const (
	covariant variance = iota
	contravariant
)

type pair struct {
	a, b *types.Type
	v    variance
}

// combine applies the spec's "conjunction when both positive, disjunction
// when at least one negative" rule to a structural position list, honoring
// each position's variance (contravariant positions swap which sign goes
// with which operand before recursing).
func (e *Engine) combine(sa, sb Sign, pairs []pair, assumed assumptions) bool {
	useAnd := sa == Normal && sb == Normal
	for _, p := range pairs {
		childSA, childSB := sa, sb
		if p.v == contravariant {
			childSA, childSB = sb, sa
		}
		res := e.isInhabited(p.a, childSA, p.b, childSB, assumed)
		if useAnd && !res {
			return false
		}
		if !useAnd && res {
			return true
		}
	}
	return useAnd
}

// recordInhabited implements §4.2.1: walk the two sorted field lists in
// lockstep; common fields recurse covariantly; a field present on only one
// side tests against the other side's openness.
func (e *Engine) recordInhabited(a *types.Type, sa Sign, b *types.Type, sb Sign, assumed assumptions) bool {
	af, bf := a.Fields, b.Fields
	ac, bc := a.Children(), b.Children()

	var pairs []pair
	i, j := 0, 0
	for i < len(af) && j < len(bf) {
		switch {
		case af[i] == bf[j]:
			pairs = append(pairs, pair{ac[i], bc[j], covariant})
			i++
			j++
		case af[i] < bf[j]:
			pairs = append(pairs, fieldOnlyIn(ac[i], sb, b.Open))
			i++
		default:
			pairs = append(pairs, fieldOnlyIn(bc[j], sa, a.Open))
			j++
		}
	}
	for ; i < len(af); i++ {
		pairs = append(pairs, fieldOnlyIn(ac[i], sb, b.Open))
	}
	for ; j < len(bf); j++ {
		pairs = append(pairs, fieldOnlyIn(bc[j], sa, a.Open))
	}

	return e.combine(sa, sb, pairs, assumed)
}

// fieldOnlyIn builds the pseudo-pair for a field present on only one side of
// a record intersection. otherSign is the sign of the side the field is
// missing from; otherOpen is whether that side is open.
func fieldOnlyIn(present *types.Type, otherSign Sign, otherOpen bool) pair {
	if otherOpen {
		return pair{present, types.Any, covariant}
	}
	// Closed and missing the field: the two record types are disjoint, so
	// the position is inhabited exactly when the signs are not both Normal.
	// Two distinct leaf kinds give that result under every sign pair.
	return pair{types.Int, types.String, covariant}
}
