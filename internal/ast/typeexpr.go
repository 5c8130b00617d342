package ast

// NamedTypeExpr is a reference to a nominal type by qualified name, or a
// primitive spelled as an identifier ("int", "real", "string", ...).
type NamedTypeExpr struct {
	TypeExprBase
	Name string
}

func (t *NamedTypeExpr) String() string { return t.Name }

// RecordFieldTypeExpr is one named field inside a RecordTypeExpr.
type RecordFieldTypeExpr struct {
	Name string
	Type TypeExpr
}

// RecordTypeExpr spells a record type, open or closed.
type RecordTypeExpr struct {
	TypeExprBase
	Fields []RecordFieldTypeExpr
	Open   bool
}

func (t *RecordTypeExpr) String() string {
	s := "record("
	for i, f := range t.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + f.Type.String()
	}
	if t.Open {
		if len(t.Fields) > 0 {
			s += ", "
		}
		s += "..."
	}
	return s + ")"
}

// TupleTypeExpr spells a fixed-arity tuple type.
type TupleTypeExpr struct {
	TypeExprBase
	Elems []TypeExpr
}

func (t *TupleTypeExpr) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// ListTypeExpr spells list(Elem).
type ListTypeExpr struct {
	TypeExprBase
	Elem TypeExpr
}

func (t *ListTypeExpr) String() string { return "list(" + t.Elem.String() + ")" }

// SetTypeExpr spells set(Elem).
type SetTypeExpr struct {
	TypeExprBase
	Elem TypeExpr
}

func (t *SetTypeExpr) String() string { return "set(" + t.Elem.String() + ")" }

// MapTypeExpr spells map(Key, Value).
type MapTypeExpr struct {
	TypeExprBase
	Key   TypeExpr
	Value TypeExpr
}

func (t *MapTypeExpr) String() string { return "map(" + t.Key.String() + ", " + t.Value.String() + ")" }

// ReferenceTypeExpr spells ref(Target).
type ReferenceTypeExpr struct {
	TypeExprBase
	Target TypeExpr
}

func (t *ReferenceTypeExpr) String() string { return "ref(" + t.Target.String() + ")" }

// FunctionTypeExpr spells a function or method signature; IsMethod
// distinguishes the two (they are distinct Kinds in internal/types, so a
// structurally-identical function and method type are never interchangeable).
type FunctionTypeExpr struct {
	TypeExprBase
	Params   []TypeExpr
	Return   TypeExpr
	Throws   TypeExpr // nil if the signature declares no throws clause
	IsMethod bool
}

func (t *FunctionTypeExpr) String() string {
	name := "function"
	if t.IsMethod {
		name = "method"
	}
	s := name + "("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	s += "): " + t.Return.String()
	if t.Throws != nil {
		s += " throws " + t.Throws.String()
	}
	return s
}

// UnionTypeExpr spells A | B | ...
type UnionTypeExpr struct {
	TypeExprBase
	Members []TypeExpr
}

func (t *UnionTypeExpr) String() string { return joinTypeExprs(t.Members, " | ") }

// IntersectionTypeExpr spells A & B & ...
type IntersectionTypeExpr struct {
	TypeExprBase
	Members []TypeExpr
}

func (t *IntersectionTypeExpr) String() string { return joinTypeExprs(t.Members, " & ") }

// NegationTypeExpr spells !A.
type NegationTypeExpr struct {
	TypeExprBase
	Operand TypeExpr
}

func (t *NegationTypeExpr) String() string { return "!" + t.Operand.String() }

func joinTypeExprs(ts []TypeExpr, sep string) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += sep
		}
		s += t.String()
	}
	return s
}
