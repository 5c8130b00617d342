package types

import "testing"

func TestPrimitiveTypes(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		str  string
		kind string
	}{
		{"Int", Int, "Int", "INT"},
		{"Real", Real, "Real", "REAL"},
		{"String", String, "String", "STRING"},
		{"Bool", Bool, "Bool", "BOOL"},
		{"Null", Null, "Null", "NULL"},
		{"Void", Void, "Void", "VOID"},
		{"Any", Any, "Any", "ANY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.str {
				t.Errorf("String() = %v, want %v", got, tt.str)
			}
			if got := tt.typ.TypeKind(); got != tt.kind {
				t.Errorf("TypeKind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestPrimitiveIdentity(t *testing.T) {
	if Int != Int {
		t.Fatal("Int should be a stable singleton")
	}
	if Int == Real {
		t.Fatal("distinct primitives must not compare equal")
	}
}

func TestListInterning(t *testing.T) {
	tb := NewTable()
	a := tb.NewList(Int)
	b := tb.NewList(Int)
	if a != b {
		t.Fatal("two lists of Int should intern to the same pointer")
	}
	c := tb.NewList(String)
	if a == c {
		t.Fatal("list(Int) and list(String) must not be the same pointer")
	}
}

func TestRecordFieldsSorted(t *testing.T) {
	tb := NewTable()
	r := tb.NewRecord([]RecordField{
		{Name: "z", Type: Int},
		{Name: "a", Type: String},
	}, false)
	if r.Fields[0] != "a" || r.Fields[1] != "z" {
		t.Fatalf("record fields must be sorted, got %v", r.Fields)
	}
	if r.Children()[0] != String || r.Children()[1] != Int {
		t.Fatalf("record children must follow sorted field order")
	}
}

func TestRecordInterningIgnoresInputOrder(t *testing.T) {
	tb := NewTable()
	r1 := tb.NewRecord([]RecordField{{Name: "a", Type: Int}, {Name: "b", Type: String}}, false)
	r2 := tb.NewRecord([]RecordField{{Name: "b", Type: String}, {Name: "a", Type: Int}}, false)
	if r1 != r2 {
		t.Fatal("records with the same fields in different construction order must intern identically")
	}
}

func TestUnionCollapsesSingleMember(t *testing.T) {
	tb := NewTable()
	u := tb.NewUnion(Int, Int)
	if u != Int {
		t.Fatalf("union of a single distinct member must collapse to that member, got %v", u)
	}
}

func TestUnionFlattensNested(t *testing.T) {
	tb := NewTable()
	inner := tb.NewUnion(Int, String)
	outer := tb.NewUnion(inner, Bool)
	flat := tb.NewUnion(Int, String, Bool)
	if outer != flat {
		t.Fatal("nested unions must flatten to the same canonical type as the flat construction")
	}
}

func TestIntersectionWithAnyIsIdentity(t *testing.T) {
	tb := NewTable()
	i := tb.NewIntersection(Int, Any)
	if i != Int {
		t.Fatalf("intersection with Any must collapse to the other member, got %v", i)
	}
}

func TestUnionWithAnyIsAny(t *testing.T) {
	tb := NewTable()
	u := tb.NewUnion(Int, Any)
	if u != Any {
		t.Fatalf("union with Any must collapse to Any, got %v", u)
	}
}

func TestDoubleNegationCollapses(t *testing.T) {
	tb := NewTable()
	n := tb.NewNegation(tb.NewNegation(Int))
	if n != Int {
		t.Fatalf("!!T must equal T, got %v", n)
	}
}

func TestNegationDeMorganOverUnion(t *testing.T) {
	tb := NewTable()
	u := tb.NewUnion(Int, String)
	n := tb.NewNegation(u)
	if n.Kind() != KindIntersection {
		t.Fatalf("!(A|B) must be an intersection, got kind %v", n.Kind())
	}
	for _, c := range n.Children() {
		if c.Kind() != KindNegation {
			t.Fatalf("!(A|B) children must themselves be negations, got %v", c)
		}
	}
}

func TestFunctionAccessors(t *testing.T) {
	tb := NewTable()
	fn := tb.NewFunction(Int, Void, []*Type{String, Bool})
	if fn.Return() != Int {
		t.Fatal("Return() mismatch")
	}
	if len(fn.Params()) != 2 || fn.Params()[0] != String || fn.Params()[1] != Bool {
		t.Fatal("Params() mismatch")
	}
	if fn.Kind() != KindFunction {
		t.Fatal("expected KindFunction")
	}
}

func TestFunctionAndMethodAreDistinctKinds(t *testing.T) {
	tb := NewTable()
	fn := tb.NewFunction(Int, Void, nil)
	m := tb.NewMethod(Int, Void, nil)
	if fn == m {
		t.Fatal("a function and a method with identical signatures must not be the same Type")
	}
}
