package codegen

import (
	"testing"

	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

func countOp(instrs []ir.Instr, op ir.Op) int {
	n := 0
	for _, in := range instrs {
		if in.Op == op {
			n++
		}
	}
	return n
}

func TestLowerExprConstant(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()
	r, err := c.lowerExpr(constant(int64(42)))
	if err != nil {
		t.Fatal(err)
	}
	if c.block.RegType(r) != types.Int {
		t.Fatalf("expected Int-typed register, got %v", c.block.RegType(r))
	}
	if countOp(c.block.Instrs(), ir.OpConst) != 1 {
		t.Fatal("expected exactly one OpConst")
	}
}

func TestLowerExprArithmetic(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()
	c.bindParam("x", types.Int)

	expr := binary(ast.OpAdd, variable("x"), constant(int64(1)))
	r, err := c.lowerExpr(expr)
	if err != nil {
		t.Fatal(err)
	}
	if c.block.RegType(r) != types.Int {
		t.Fatalf("expected Int result, got %v", c.block.RegType(r))
	}
	instrs := c.block.Instrs()
	if countOp(instrs, ir.OpBinArithOp) != 1 {
		t.Fatal("expected exactly one OpBinArithOp")
	}
	last := instrs[len(instrs)-1]
	if last.Arith != ir.ArithAdd {
		t.Fatalf("expected ArithAdd, got %v", last.Arith)
	}
}

func TestLowerExprComparisonMaterializesBool(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()
	c.bindParam("x", types.Int)

	expr := binary(ast.OpLt, variable("x"), constant(int64(10)))
	r, err := c.lowerExpr(expr)
	if err != nil {
		t.Fatal(err)
	}
	if c.block.RegType(r) != types.Bool {
		t.Fatalf("expected Bool result, got %v", c.block.RegType(r))
	}
	instrs := c.block.Instrs()
	if countOp(instrs, ir.OpIf) != 1 {
		t.Fatal("expected a single OpIf branch on the comparison")
	}
	if countOp(instrs, ir.OpConst) != 3 {
		t.Fatal("expected the comparison's constant operand plus true/false constants materialized at each branch target")
	}
}

func TestLowerExprShortCircuitAnd(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()
	c.bindParam("a", types.Bool)
	c.bindParam("b", types.Bool)

	expr := binary(ast.OpAnd, variable("a"), variable("b"))
	_, err := c.lowerExpr(expr)
	if err != nil {
		t.Fatal(err)
	}
	instrs := c.block.Instrs()
	// Two truthiness tests (one per operand) plus the two constant
	// materializations, never an explicit OpBinArithOp/boolean-op instruction.
	if countOp(instrs, ir.OpIf) != 2 {
		t.Fatalf("expected 2 OpIf truthiness tests for &&'s two operands, got %d", countOp(instrs, ir.OpIf))
	}
}

func TestLowerExprListLiteralAndLength(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()

	list := &ast.ListLiteral{Elems: []ast.Expression{constant(int64(1)), constant(int64(2))}}
	_, err := c.lowerExpr(list)
	if err != nil {
		t.Fatal(err)
	}
	if countOp(c.block.Instrs(), ir.OpNewList) != 1 {
		t.Fatal("expected exactly one OpNewList")
	}

	length := &ast.ListLength{Source: list}
	r, err := c.lowerExpr(length)
	if err != nil {
		t.Fatal(err)
	}
	if c.block.RegType(r) != types.Int {
		t.Fatalf("expected Int length, got %v", c.block.RegType(r))
	}
	if countOp(c.block.Instrs(), ir.OpLengthOf) != 1 {
		t.Fatal("expected exactly one OpLengthOf")
	}
}

func TestLowerRecordLiteralSortsFieldsByName(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()

	rec := &ast.RecordLiteral{Fields: []ast.RecordFieldValue{
		{Name: "z", Value: constant(int64(1))},
		{Name: "a", Value: constant(int64(2))},
	}}
	r, err := c.lowerExpr(rec)
	if err != nil {
		t.Fatal(err)
	}
	instrs := c.block.Instrs()
	last := instrs[len(instrs)-1]
	if last.Op != ir.OpNewRecord || last.Target != r {
		t.Fatal("expected the final instruction to be the record's OpNewRecord")
	}
	// "a"'s OpConst (value 2) must be evaluated before "z"'s (value 1),
	// since fields are lowered in sorted-name order, not source order.
	var firstConst, secondConst ir.Instr
	found := 0
	for _, in := range instrs {
		if in.Op == ir.OpConst {
			if found == 0 {
				firstConst = in
			} else if found == 1 {
				secondConst = in
			}
			found++
		}
	}
	if found != 2 {
		t.Fatalf("expected 2 OpConst instructions, got %d", found)
	}
	if firstConst.Value != int64(2) || secondConst.Value != int64(1) {
		t.Fatalf("expected sorted-by-name evaluation order (a=2 then z=1), got %v then %v", firstConst.Value, secondConst.Value)
	}
}
