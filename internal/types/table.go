package types

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Table interns composite types so that structurally equal types built at
// different points in a compilation collapse to the same pointer. One Table
// is shared by every declaration compiled by a single call site; per §5 of
// the spec, if declarations are compiled concurrently each goroutine should
// own its own Table, or callers must guard it externally (Table's internal
// lock makes concurrent use safe either way, at the cost of contention).
type Table struct {
	mu       sync.Mutex
	interned map[string]*Type
	nextID   int64
}

// NewTable creates an empty interning table. Primitive types are not stored
// here; they are the package-level singletons (Void, Any, Int, ...).
func NewTable() *Table {
	return &Table{
		interned: make(map[string]*Type),
		nextID:   firstCompositeID,
	}
}

func (tb *Table) intern(key string, build func() *Type) *Type {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if existing, ok := tb.interned[key]; ok {
		return existing
	}
	t := build()
	t.id = tb.nextID
	tb.nextID++
	tb.interned[key] = t
	return t
}

func childKey(children []*Type) string {
	var sb strings.Builder
	for i, c := range children {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(c.id, 10))
	}
	return sb.String()
}

// NewNominal returns the (interned) nominal type named name. Two calls with
// the same name and the same expander return the same pointer; the expander
// is only consulted lazily, by the subtype engine, via Expand/IsOpen.
func (tb *Table) NewNominal(name string, expander NominalExpander) *Type {
	key := "nominal:" + name
	return tb.intern(key, func() *Type {
		return &Type{kind: KindNominal, Name: name, expander: expander}
	})
}

// RecordField is one field of a record type under construction.
type RecordField struct {
	Name string
	Type *Type
}

// NewRecord builds a canonical record type: fields are sorted by name
// (invariant 3 — "record field lists are strictly sorted"), duplicate field
// names are an error the caller must have already rejected (the resolver
// does so before calling this constructor).
func (tb *Table) NewRecord(fields []RecordField, open bool) *Type {
	sorted := append([]RecordField(nil), fields...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	names := make([]string, len(sorted))
	children := make([]*Type, len(sorted))
	for i, f := range sorted {
		names[i] = f.Name
		children[i] = f.Type
	}

	var sb strings.Builder
	sb.WriteString("record:")
	if open {
		sb.WriteString("open:")
	}
	for i, n := range names {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(n)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatInt(children[i].id, 10))
	}
	return tb.intern(sb.String(), func() *Type {
		return &Type{kind: KindRecord, children: children, Fields: names, Open: open}
	})
}

// NewTuple builds a canonical tuple type over elems in order (tuple
// positions are significant, unlike record fields, so no sorting).
func (tb *Table) NewTuple(elems []*Type) *Type {
	children := append([]*Type(nil), elems...)
	key := "tuple:" + childKey(children)
	return tb.intern(key, func() *Type {
		return &Type{kind: KindTuple, children: children}
	})
}

// NewList builds list(elem).
func (tb *Table) NewList(elem *Type) *Type {
	return tb.intern("list:"+strconv.FormatInt(elem.id, 10), func() *Type {
		return &Type{kind: KindList, children: []*Type{elem}}
	})
}

// NewSet builds set(elem).
func (tb *Table) NewSet(elem *Type) *Type {
	return tb.intern("set:"+strconv.FormatInt(elem.id, 10), func() *Type {
		return &Type{kind: KindSet, children: []*Type{elem}}
	})
}

// NewMap builds map(key, value).
func (tb *Table) NewMap(key, value *Type) *Type {
	k := "map:" + strconv.FormatInt(key.id, 10) + "," + strconv.FormatInt(value.id, 10)
	return tb.intern(k, func() *Type {
		return &Type{kind: KindMap, children: []*Type{key, value}}
	})
}

// NewReference builds ref(target).
func (tb *Table) NewReference(target *Type) *Type {
	return tb.intern("ref:"+strconv.FormatInt(target.id, 10), func() *Type {
		return &Type{kind: KindReference, children: []*Type{target}}
	})
}

func (tb *Table) newCallable(kind Kind, ret, throws *Type, params []*Type) *Type {
	if throws == nil {
		throws = Void
	}
	children := make([]*Type, 0, 2+len(params))
	children = append(children, ret, throws)
	children = append(children, params...)
	prefix := "function:"
	if kind == KindMethod {
		prefix = "method:"
	}
	key := prefix + childKey(children)
	return tb.intern(key, func() *Type {
		return &Type{kind: kind, children: children}
	})
}

// NewFunction builds a function type (ret, throws, params...). Parameters
// are contravariant and return/throws covariant under subtyping (§4.2,
// invariant 4).
func (tb *Table) NewFunction(ret, throws *Type, params []*Type) *Type {
	return tb.newCallable(KindFunction, ret, throws, params)
}

// NewMethod is NewFunction's counterpart for bound methods; it is a
// distinct Kind so a function type is never a subtype of a method type
// purely by structural coincidence.
func (tb *Table) NewMethod(ret, throws *Type, params []*Type) *Type {
	return tb.newCallable(KindMethod, ret, throws, params)
}
