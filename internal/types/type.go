package types

import "strings"

// NominalExpander is the resolver hook a nominal Type carries: calling
// Expand yields the underlying structural type for the nominal's name.
// internal/nominal supplies the concrete implementation; this package only
// depends on the interface so that it never imports the resolver.
type NominalExpander interface {
	Expand(name string) *Type
	IsOpen(name string) bool
}

// Type is a value in the canonicalized structural automaton described in
// SPEC_FULL.md §3. Every Type returned by a constructor in this package has
// already been canonicalized and interned, so two structurally equal types
// are the same pointer: comparing types for equality is `a == b`.
type Type struct {
	id       int64
	kind     Kind
	children []*Type

	// record-only: Fields is sorted and parallel to children; Open marks an
	// open record (permits unspecified additional fields).
	Fields []string
	Open   bool

	// nominal-only.
	Name     string
	expander NominalExpander
}

func (t *Type) Kind() Kind          { return t.kind }
func (t *Type) TypeKind() string    { return t.kind.String() }
func (t *Type) Children() []*Type   { return t.children }
func (t *Type) ID() int64           { return t.id }
func (t *Type) Expander() NominalExpander { return t.expander }

// Primitive singletons. These never go through the interning table: there is
// exactly one instance of each by construction, so pointer equality holds
// trivially.
var (
	Void   = &Type{id: 0, kind: KindVoid}
	Any    = &Type{id: 1, kind: KindAny}
	Null   = &Type{id: 2, kind: KindNull}
	Bool   = &Type{id: 3, kind: KindBool}
	Byte   = &Type{id: 4, kind: KindByte}
	Int    = &Type{id: 5, kind: KindInt}
	Real   = &Type{id: 6, kind: KindReal}
	Char   = &Type{id: 7, kind: KindChar}
	String = &Type{id: 8, kind: KindString}
	Meta   = &Type{id: 9, kind: KindMeta}
)

const firstCompositeID = 10

func (t *Type) String() string {
	switch t.kind {
	case KindVoid:
		return "Void"
	case KindAny:
		return "Any"
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindByte:
		return "Byte"
	case KindInt:
		return "Int"
	case KindReal:
		return "Real"
	case KindChar:
		return "Char"
	case KindString:
		return "String"
	case KindMeta:
		return "Meta"
	case KindNominal:
		return t.Name
	case KindRecord:
		var sb strings.Builder
		sb.WriteString("record(")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f)
			sb.WriteString(": ")
			sb.WriteString(t.children[i].String())
		}
		if t.Open {
			if len(t.Fields) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("...")
		}
		sb.WriteString(")")
		return sb.String()
	case KindTuple:
		return "(" + joinTypes(t.children, ", ") + ")"
	case KindList:
		return "list(" + t.children[0].String() + ")"
	case KindSet:
		return "set(" + t.children[0].String() + ")"
	case KindMap:
		return "map(" + t.children[0].String() + ", " + t.children[1].String() + ")"
	case KindReference:
		return "ref(" + t.children[0].String() + ")"
	case KindFunction, KindMethod:
		name := "function"
		if t.kind == KindMethod {
			name = "method"
		}
		params := joinTypes(t.children[2:], ", ")
		s := name + "(" + params + "): " + t.children[0].String()
		if t.children[1] != Void {
			s += " throws " + t.children[1].String()
		}
		return s
	case KindUnion:
		return joinTypes(t.children, " | ")
	case KindIntersection:
		return joinTypes(t.children, " & ")
	case KindNegation:
		return "!" + t.children[0].String()
	}
	return "?"
}

func joinTypes(ts []*Type, sep string) string {
	var sb strings.Builder
	for i, c := range ts {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

// IsPrimitive reports whether t is one of the ten leaf kinds.
func (t *Type) IsPrimitive() bool { return t.kind.isLeaf() }

// Return/Throws/Params are convenience accessors for function/method types.
// Children layout is fixed: [0]=return, [1]=throws, [2:]=params.
func (t *Type) Return() *Type    { return t.children[0] }
func (t *Type) Throws() *Type    { return t.children[1] }
func (t *Type) Params() []*Type  { return t.children[2:] }

// Elem returns the element type of a list/set/reference.
func (t *Type) Elem() *Type { return t.children[0] }

// Key/Value return the key/value element types of a map.
func (t *Type) Key() *Type   { return t.children[0] }
func (t *Type) Value() *Type { return t.children[1] }
