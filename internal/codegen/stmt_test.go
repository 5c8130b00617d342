package codegen

import (
	"testing"

	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

func TestLowerVarDeclAndAssign(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()

	decl := &ast.VarDeclStmt{
		Pattern: &ast.LeafPattern{Name: "x"},
		Type:    namedType("int"),
		Init:    constant(int64(1)),
	}
	if err := c.lowerStmt(decl); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.regs["x"]; !ok {
		t.Fatal("expected x to be bound to a register")
	}
	if countOp(c.block.Instrs(), ir.OpAssign) != 1 {
		t.Fatal("expected the declaration's initializer to land via an Assign into a fresh root register")
	}

	assign := &ast.AssignStmt{
		Target: &ast.VarLValue{Name: "x"},
		Value:  constant(int64(2)),
	}
	if err := c.lowerStmt(assign); err != nil {
		t.Fatal(err)
	}
	if countOp(c.block.Instrs(), ir.OpAssign) != 2 {
		t.Fatal("expected one more OpAssign for the reassignment")
	}
}

func TestLowerIfJoinsEnv(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()
	c.bindParam("x", types.Int)

	stmt := &ast.IfStmt{
		Cond: binary(ast.OpLt, variable("x"), constant(int64(0))),
		Then: []ast.Statement{&ast.ReturnStmt{Value: constant(int64(0))}},
		Else: []ast.Statement{&ast.ReturnStmt{Value: constant(int64(1))}},
	}
	c.retType = types.Int
	if err := c.lowerStmt(stmt); err != nil {
		t.Fatal(err)
	}
	instrs := c.block.Instrs()
	if countOp(instrs, ir.OpReturn) != 2 {
		t.Fatal("expected a Return in both branches")
	}
	if countOp(instrs, ir.OpLabel) < 3 {
		t.Fatal("expected then/else/end labels")
	}
}

func TestLowerWhileEmitsLoopBracket(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()
	c.bindParam("x", types.Int)

	stmt := &ast.WhileStmt{
		Cond: binary(ast.OpLt, variable("x"), constant(int64(10))),
		Body: []ast.Statement{
			&ast.AssignStmt{Target: &ast.VarLValue{Name: "x"}, Value: binary(ast.OpAdd, variable("x"), constant(int64(1)))},
		},
	}
	if err := c.lowerStmt(stmt); err != nil {
		t.Fatal(err)
	}
	instrs := c.block.Instrs()
	if countOp(instrs, ir.OpLoop) != 1 || countOp(instrs, ir.OpLoopEnd) != 1 {
		t.Fatal("expected a matching OpLoop/OpLoopEnd bracket")
	}
}

func TestBreakOutsideLoopFails(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()
	if err := c.lowerStmt(&ast.BreakStmt{}); err == nil {
		t.Fatal("expected an error breaking outside any loop")
	}
}

func TestLowerSwitchRejectsDuplicateCaseLabels(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()

	stmt := &ast.SwitchStmt{
		Subject: constant(int64(1)),
		Cases: []ast.SwitchCase{
			{Values: []ast.Expression{constant(int64(1))}, Body: nil},
			{Values: []ast.Expression{constant(int64(1))}, Body: nil},
		},
	}
	if err := c.lowerStmt(stmt); err == nil {
		t.Fatal("expected a duplicate case label error")
	}
}

func TestLowerSwitchRejectsDefaultNotLast(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()

	stmt := &ast.SwitchStmt{
		Subject: constant(int64(1)),
		Cases: []ast.SwitchCase{
			{IsDefault: true},
			{Values: []ast.Expression{constant(int64(1))}},
		},
	}
	if err := c.lowerStmt(stmt); err == nil {
		t.Fatal("expected a default-not-last error")
	}
}

func TestLowerTupleLValueDestructures(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()

	tuple := &ast.TupleLiteral{Elems: []ast.Expression{constant(int64(1)), constant(true)}}
	assign := &ast.AssignStmt{
		Target: &ast.TupleLValue{Elems: []string{"a", "b"}},
		Value:  tuple,
	}
	if err := c.lowerStmt(assign); err != nil {
		t.Fatal(err)
	}
	if countOp(c.block.Instrs(), ir.OpTupleLoad) != 2 {
		t.Fatal("expected one OpTupleLoad per destructured element")
	}
	if _, ok := c.regs["a"]; !ok {
		t.Fatal("expected a bound")
	}
	if _, ok := c.regs["b"]; !ok {
		t.Fatal("expected b bound")
	}
}
