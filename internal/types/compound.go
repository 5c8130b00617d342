package types

import (
	"sort"
	"strconv"
)

// NewNegation builds ¬t, pushing negation through unions/intersections via
// De Morgan and collapsing ¬¬T to T, so that a Negation node is never
// constructed with a Union, Intersection, or Negation child (invariant 2).
func (tb *Table) NewNegation(t *Type) *Type {
	switch t.kind {
	case KindNegation:
		return t.children[0]
	case KindUnion:
		negated := make([]*Type, len(t.children))
		for i, c := range t.children {
			negated[i] = tb.NewNegation(c)
		}
		return tb.NewIntersection(negated...)
	case KindIntersection:
		negated := make([]*Type, len(t.children))
		for i, c := range t.children {
			negated[i] = tb.NewNegation(c)
		}
		return tb.NewUnion(negated...)
	default:
		return tb.intern("neg:"+strconv.FormatInt(t.id, 10), func() *Type {
			return &Type{kind: KindNegation, children: []*Type{t}}
		})
	}
}

// flattenDedup flattens nested nodes of the same kind into members and
// removes duplicates (by pointer, which is sound because types are
// interned), returning a canonically sorted slice by id for a stable key.
func flattenDedup(kind Kind, members []*Type) []*Type {
	seen := make(map[*Type]bool)
	var out []*Type
	var walk func(*Type)
	walk = func(m *Type) {
		if m.kind == kind {
			for _, c := range m.children {
				walk(c)
			}
			return
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	for _, m := range members {
		walk(m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// NewUnion builds the least upper bound of members: flattens nested unions,
// dedupes, and collapses to the single member directly when fewer than two
// distinct members remain (invariant 1 — a union always has >= 2 children,
// so a 1-element "union" is simply that element, never wrapped).
func (tb *Table) NewUnion(members ...*Type) *Type {
	flat := flattenDedup(KindUnion, members)
	if len(flat) == 0 {
		return Void
	}
	if len(flat) == 1 {
		return flat[0]
	}
	if containsAny(flat) {
		return Any
	}
	return tb.intern("union:"+childKey(flat), func() *Type {
		return &Type{kind: KindUnion, children: flat}
	})
}

// NewIntersection builds the greatest lower bound of members, with the same
// flatten/dedupe/collapse treatment as NewUnion.
func (tb *Table) NewIntersection(members ...*Type) *Type {
	flat := flattenDedup(KindIntersection, members)
	if len(flat) == 0 {
		return Void
	}
	if len(flat) == 1 {
		return flat[0]
	}
	filtered := flat[:0:0]
	for _, m := range flat {
		if m != Any {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) == 0 {
		return Any
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return tb.intern("intersection:"+childKey(filtered), func() *Type {
		return &Type{kind: KindIntersection, children: filtered}
	})
}

func containsAny(ts []*Type) bool {
	for _, t := range ts {
		if t == Any {
			return true
		}
	}
	return false
}
