package ast

// LeafPattern binds (or, if Name is empty, discards) a single destructured
// value directly to a register — the base case of pattern recursion.
type LeafPattern struct {
	PatBase
	Name string
}

func (p *LeafPattern) String() string {
	if p.Name == "" {
		return "_"
	}
	return p.Name
}

// RecordFieldPattern is one named sub-pattern inside a RecordPattern.
type RecordFieldPattern struct {
	Name    string
	Pattern Pattern
}

// RecordPattern destructures a record value field-by-field.
type RecordPattern struct {
	PatBase
	Fields []RecordFieldPattern
}

func (p *RecordPattern) String() string {
	s := "{"
	for i, f := range p.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + f.Pattern.String()
	}
	return s + "}"
}

// TuplePattern destructures a tuple value position-by-position.
type TuplePattern struct {
	PatBase
	Elems []Pattern
}

func (p *TuplePattern) String() string {
	s := "("
	for i, e := range p.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// RationalPattern destructures a rational value into numerator/denominator
// sub-patterns, each re-typed as int (§4.5.4).
type RationalPattern struct {
	PatBase
	Num Pattern
	Den Pattern
}

func (p *RationalPattern) String() string { return p.Num.String() + "/" + p.Den.String() }
