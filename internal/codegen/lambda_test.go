package codegen

import (
	"testing"

	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

func TestLowerLambdaCapturesFreeVariable(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()
	c.bindParam("y", types.Int)

	lambda := &ast.Lambda{
		Params: []*ast.Param{{Name: "x", Type: namedType("int")}},
		Body:   binary(ast.OpAdd, variable("x"), variable("y")),
	}
	r, err := c.lowerExpr(lambda)
	if err != nil {
		t.Fatal(err)
	}
	if countOp(c.block.Instrs(), ir.OpLambda) != 1 {
		t.Fatal("expected exactly one OpLambda at the call site")
	}
	if len(c.lambdas) != 1 {
		t.Fatalf("expected one synthesized decl, got %d", len(c.lambdas))
	}
	synth := c.lambdas[0]
	if len(synth.Params) != 2 {
		t.Fatalf("expected 2 params (declared x + captured y), got %d", len(synth.Params))
	}

	var lambdaInstr ir.Instr
	for _, in := range c.block.Instrs() {
		if in.Op == ir.OpLambda {
			lambdaInstr = in
		}
	}
	if lambdaInstr.Target != r {
		t.Fatal("expected lowerExpr to return the OpLambda's target register")
	}
	if len(lambdaInstr.Operands) != 1 || lambdaInstr.Operands[0] != c.regs["y"] {
		t.Fatal("expected the call site to capture y's current register")
	}
}

func TestFreeVarsExcludesLambdaOwnParams(t *testing.T) {
	lambda := &ast.Lambda{
		Params: []*ast.Param{{Name: "x"}},
		Body:   binary(ast.OpAdd, variable("x"), variable("y")),
	}
	free := freeVars(lambda.Body, map[string]bool{"x": true}, nil)
	if len(free) != 1 || free[0] != "y" {
		t.Fatalf("expected only y free, got %v", free)
	}
}

func TestQuantifierSomeShortCircuitsOnFirstMatch(t *testing.T) {
	g := newTestGenerator(t, nil)
	c := g.newFuncCtx()
	c.bindParam("xs", g.Types.NewList(types.Int))

	cmp := &ast.Comprehension{
		Kind:    ast.CompSome,
		Sources: []ast.ComprehensionSource{{Var: "v", Source: variable("xs")}},
		Cond:    binary(ast.OpGt, variable("v"), constant(int64(0))),
	}
	r, err := c.lowerComprehension(cmp)
	if err != nil {
		t.Fatal(err)
	}
	if c.block.RegType(r) != types.Bool {
		t.Fatalf("expected Bool result, got %v", c.block.RegType(r))
	}
	if countOp(c.block.Instrs(), ir.OpForAll) != 1 {
		t.Fatal("expected a single OpForAll loop for the one source")
	}
}
