package subtype

import "github.com/coldfront-lang/corefront/internal/types"

// Engine decides subtyping queries. It holds no per-query state itself
// (every call builds its own assumptions set) and is safe to share across
// goroutines compiling distinct declarations concurrently, per §5.
type Engine struct {
	// assumptionCacheHint pre-sizes the per-query assumptions map; zero
	// means "let the map grow as needed" (set by NewWithCacheHint).
	assumptionCacheHint int
}

// New returns a SubtypeEngine with no cache pre-sizing hint.
func New() *Engine { return &Engine{} }

// NewWithCacheHint returns a SubtypeEngine that pre-sizes each query's
// assumption cache to hint entries.
func NewWithCacheHint(hint int) *Engine { return &Engine{assumptionCacheHint: hint} }

// IsSubtype reports whether every value denoted by a is also denoted by b:
// A <: B. Implemented as ¬inhabited(A ∧ ¬B).
func (e *Engine) IsSubtype(a, b *types.Type) bool {
	assumed := e.newAssumptions()
	return !e.isInhabited(a, Normal, b, Negated, assumed)
}

// IsSupertype is IsSubtype with operands swapped: A :> B ⇔ B <: A.
func (e *Engine) IsSupertype(a, b *types.Type) bool {
	return e.IsSubtype(b, a)
}

// IsInhabited exposes the raw inhabitation test for callers (such as the
// tests) that need to reason about A ∩ ¬B directly rather than through the
// subtype/supertype convenience wrappers.
func (e *Engine) IsInhabited(a *types.Type, sa Sign, b *types.Type, sb Sign) bool {
	return e.isInhabited(a, sa, b, sb, e.newAssumptions())
}

func (e *Engine) newAssumptions() assumptions {
	if e.assumptionCacheHint <= 0 {
		return newAssumptions()
	}
	return make(assumptions, e.assumptionCacheHint)
}

// isInhabited is the coinductive core: is there a value simultaneously of
// sign sa w.r.t. a and sign sb w.r.t. b?
func (e *Engine) isInhabited(a *types.Type, sa Sign, b *types.Type, sb Sign, assumed assumptions) bool {
	// Sign normalization: peel top-level negation by flipping the sign and
	// recursing on the operand (§4.2 "sign normalization").
	if a.Kind() == types.KindNegation {
		return e.isInhabited(a.Elem(), flip(sa), b, sb, assumed)
	}
	if b.Kind() == types.KindNegation {
		return e.isInhabited(a, sa, b.Elem(), flip(sb), assumed)
	}

	k := makeKey(a.ID(), sa, b.ID(), sb)
	if assumed.inProgress(k) {
		// Re-entering a query already being decided: sound under the
		// coinductive reading to report "not inhabited" (this is what
		// breaks cycles through mutually recursive nominal types).
		return false
	}
	assumed.mark(k)

	// Nominal expansion (lazy structural substitution).
	if a.Kind() == types.KindNominal {
		return e.isInhabited(a.Expand(), sa, b, sb, assumed)
	}
	if b.Kind() == types.KindNominal {
		return e.isInhabited(a, sa, b.Expand(), sb, assumed)
	}

	// Union/intersection distribution — union is existential, intersection
	// is universal over members, tested pairwise against the other operand
	// (§4.2 "sign normalization ... union of inhabitant tests is
	// existential; intersection is universal"). Under a negated sign the
	// roles swap by De Morgan: ¬(A|B) is universal, ¬(A&B) existential.
	if (a.Kind() == types.KindUnion && sa == Normal) || (a.Kind() == types.KindIntersection && sa == Negated) {
		for _, m := range a.Children() {
			if e.isInhabited(m, sa, b, sb, assumed) {
				return true
			}
		}
		return false
	}
	if (b.Kind() == types.KindUnion && sb == Normal) || (b.Kind() == types.KindIntersection && sb == Negated) {
		for _, m := range b.Children() {
			if e.isInhabited(a, sa, m, sb, assumed) {
				return true
			}
		}
		return false
	}
	if a.Kind() == types.KindIntersection || a.Kind() == types.KindUnion {
		for _, m := range a.Children() {
			if !e.isInhabited(m, sa, b, sb, assumed) {
				return false
			}
		}
		return true
	}
	if b.Kind() == types.KindIntersection || b.Kind() == types.KindUnion {
		for _, m := range b.Children() {
			if !e.isInhabited(a, sa, m, sb, assumed) {
				return false
			}
		}
		return true
	}

	// any/void short-circuit (§4.2: "void/any: uninhabitable/inhabitable
	// trivially under signs").
	if a == types.Void {
		return sa == Negated
	}
	if b == types.Void {
		return sb == Negated
	}
	if a == types.Any {
		if sa == Negated {
			return false
		}
		return e.selfInhabited(b, sb, assumed)
	}
	if b == types.Any {
		if sb == Negated {
			return false
		}
		return e.selfInhabited(a, sa, assumed)
	}

	return e.perKind(a, sa, b, sb, assumed)
}

// selfInhabited reports whether (T, sign) alone denotes a nonempty set,
// used once Any has absorbed the other operand out of the conjunction.
func (e *Engine) selfInhabited(t *types.Type, s Sign, assumed assumptions) bool {
	switch {
	case t.Kind() == types.KindNegation:
		return e.selfInhabited(t.Elem(), flip(s), assumed)
	case t.Kind() == types.KindNominal:
		return e.selfInhabited(t.Expand(), s, assumed)
	case t == types.Void:
		return s == Negated
	case t == types.Any:
		return s == Normal
	case t.Kind() == types.KindUnion && s == Normal:
		for _, m := range t.Children() {
			if e.selfInhabited(m, Normal, assumed) {
				return true
			}
		}
		return false
	case t.Kind() == types.KindIntersection && s == Normal:
		children := t.Children()
		for i := 0; i < len(children); i++ {
			for j := i + 1; j < len(children); j++ {
				if !e.isInhabited(children[i], Normal, children[j], Normal, assumed) {
					return false
				}
			}
		}
		return true
	default:
		// A concrete leaf or composite kind, taken on its own, always has
		// at least one value; its complement is inhabited too as long as
		// the kind is not Any itself (handled above) — some other value of
		// a different kind always exists in the universe.
		return true
	}
}
