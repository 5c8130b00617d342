package ast

// FieldAccess reads a named field off a record-typed expression.
type FieldAccess struct {
	ExprBase
	Source Expression
	Field  string
}

func (f *FieldAccess) String() string { return f.Source.String() + "." + f.Field }

// IndexOf is the abstract `src[i]` form the parser produces. The Resolver
// rewrites every IndexOf node in place into a ListAccess, StringAccess, or
// MapAccess once Source's resolved type is known (§4.4 disambiguation
// rewrites); no fully-resolved AST should still contain an IndexOf node.
type IndexOf struct {
	ExprBase
	Source Expression
	Index  Expression
}

func (i *IndexOf) String() string { return i.Source.String() + "[" + i.Index.String() + "]" }

// ListAccess is IndexOf disambiguated to a list-typed source.
type ListAccess struct {
	ExprBase
	Source Expression
	Index  Expression
}

func (l *ListAccess) String() string { return l.Source.String() + "[" + l.Index.String() + "]" }

// StringAccess is IndexOf disambiguated to a string-typed source.
type StringAccess struct {
	ExprBase
	Source Expression
	Index  Expression
}

func (s *StringAccess) String() string { return s.Source.String() + "[" + s.Index.String() + "]" }

// MapAccess is IndexOf disambiguated to a map-typed source.
type MapAccess struct {
	ExprBase
	Source Expression
	Key    Expression
}

func (m *MapAccess) String() string { return m.Source.String() + "[" + m.Key.String() + "]" }

// SubRange is the abstract `src[lo..hi]` form, disambiguated by the Resolver
// into SubList or SubString exactly as IndexOf is.
type SubRange struct {
	ExprBase
	Source Expression
	Lo, Hi Expression
}

func (s *SubRange) String() string {
	return s.Source.String() + "[" + s.Lo.String() + ".." + s.Hi.String() + "]"
}

// SubList is SubRange disambiguated to a list-typed source.
type SubList struct {
	ExprBase
	Source Expression
	Lo, Hi Expression
}

func (s *SubList) String() string {
	return s.Source.String() + "[" + s.Lo.String() + ".." + s.Hi.String() + "]"
}

// SubString is SubRange disambiguated to a string-typed source.
type SubString struct {
	ExprBase
	Source Expression
	Lo, Hi Expression
}

func (s *SubString) String() string {
	return s.Source.String() + "[" + s.Lo.String() + ".." + s.Hi.String() + "]"
}

// LengthOf is the abstract `#src`/`length(src)` form. The Resolver splits it
// into StringLength, ListLength, SetLength, or MapLength (§4.4).
type LengthOf struct {
	ExprBase
	Source Expression
}

func (l *LengthOf) String() string { return "#" + l.Source.String() }

type StringLength struct {
	ExprBase
	Source Expression
}

func (l *StringLength) String() string { return "#" + l.Source.String() }

type ListLength struct {
	ExprBase
	Source Expression
}

func (l *ListLength) String() string { return "#" + l.Source.String() }

type SetLength struct {
	ExprBase
	Source Expression
}

func (l *SetLength) String() string { return "#" + l.Source.String() }

type MapLength struct {
	ExprBase
	Source Expression
}

func (l *MapLength) String() string { return "#" + l.Source.String() }

// Dereference loads the value pointed to by a reference-typed expression.
type Dereference struct {
	ExprBase
	Source Expression
}

func (d *Dereference) String() string { return "*" + d.Source.String() }

// Cast explicitly coerces Source to Target.
type Cast struct {
	ExprBase
	Source Expression
	Target TypeExpr
}

func (c *Cast) String() string { return c.Source.String() + " as " + c.Target.String() }

// NewExpr allocates a fresh reference cell holding Init's value.
type NewExpr struct {
	ExprBase
	Target TypeExpr
	Init   Expression
}

func (n *NewExpr) String() string { return "new " + n.Target.String() + "(" + n.Init.String() + ")" }
