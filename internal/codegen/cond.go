package codegen

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

// lowerBranch emits jump code for e under sign: control reaches trueLabel
// when e evaluates to sign, falseLabel otherwise. This is the "jump code"
// half of §4.5.1's boolean lowering — &&/||/not/is/comparisons never
// materialize an intermediate bool register here, they just wire labels
// together, mirroring resolver.resolveCondition's sign-threaded refinement
// one level down in the same recursion.
//
// OpIf's truthiness convention: when B == ir.NullReg the instruction tests A
// for truthiness (nonzero/true); otherwise A is compared against B via Cmp.
func (c *funcCtx) lowerBranch(e ast.Expression, sign bool, trueLabel, falseLabel ir.Label) error {
	resolved, newEnv, err := c.gen.Resolver.ResolveCondition(e, sign, c.env)
	if err != nil {
		return err
	}
	c.env = newEnv

	switch n := resolved.(type) {
	case *ast.Constant:
		if b, ok := n.Value.(bool); ok {
			if b == sign {
				c.block.Emit(ir.Instr{Op: ir.OpGoto, Pos: n.Pos(), Label: trueLabel})
			} else {
				c.block.Emit(ir.Instr{Op: ir.OpGoto, Pos: n.Pos(), Label: falseLabel})
			}
			return nil
		}

	case *ast.UnaryExpr:
		if n.Op == ast.UnNot {
			return c.lowerBranch(n.Operand, !sign, trueLabel, falseLabel)
		}

	case *ast.BinaryExpr:
		switch n.Op {
		case ast.OpAnd, ast.OpOr:
			sequential := (n.Op == ast.OpAnd) == sign
			mid := c.block.NewLabel()
			if sequential {
				if err := c.lowerBranch(n.Left, sign, mid, falseLabel); err != nil {
					return err
				}
			} else {
				if err := c.lowerBranch(n.Left, sign, trueLabel, mid); err != nil {
					return err
				}
			}
			c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: mid})
			return c.lowerBranch(n.Right, sign, trueLabel, falseLabel)

		case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
			left, err := c.lowerExpr(n.Left)
			if err != nil {
				return err
			}
			right, err := c.lowerExpr(n.Right)
			if err != nil {
				return err
			}
			t, f := trueLabel, falseLabel
			if !sign {
				t, f = falseLabel, trueLabel
			}
			c.block.Emit(ir.Instr{Op: ir.OpIf, Pos: n.Pos(), A: left, B: right, Cmp: cmpFor(n.Op), Label: t, Label2: f})
			return nil

		case ast.OpSubset, ast.OpSubsetEq, ast.OpElementOf:
			left, err := c.lowerExpr(n.Left)
			if err != nil {
				return err
			}
			right, err := c.lowerExpr(n.Right)
			if err != nil {
				return err
			}
			target := c.block.AllocReg(n.ResolvedType())
			c.block.Emit(ir.Instr{Op: ir.OpBinSetOp, Pos: n.Pos(), Target: target, A: left, B: right, SetOp: setOpFor(n.Op)})
			t, f := trueLabel, falseLabel
			if !sign {
				t, f = falseLabel, trueLabel
			}
			c.block.Emit(ir.Instr{Op: ir.OpIf, Pos: n.Pos(), A: target, B: ir.NullReg, Label: t, Label2: f})
			return nil
		}

	case *ast.IsExpr:
		operand, err := c.lowerExpr(n.Operand)
		if err != nil {
			return err
		}
		target, err := c.gen.Resolver.ResolveTypeExpr(n.Target)
		if err != nil {
			return err
		}
		t, f := trueLabel, falseLabel
		if !sign {
			t, f = falseLabel, trueLabel
		}
		c.block.Emit(ir.Instr{Op: ir.OpIfIs, Pos: n.Pos(), A: operand, Type: target, Label: t, Label2: f})
		return nil

	case *ast.Comprehension:
		if n.Kind == ast.CompSome || n.Kind == ast.CompAll || n.Kind == ast.CompNone {
			r, err := c.lowerComprehension(n)
			if err != nil {
				return err
			}
			t, f := trueLabel, falseLabel
			if !sign {
				t, f = falseLabel, trueLabel
			}
			c.block.Emit(ir.Instr{Op: ir.OpIf, Pos: n.Pos(), A: r, B: ir.NullReg, Label: t, Label2: f})
			return nil
		}
	}

	// Fallback: an ordinary boolean-valued expression (variable, call, field
	// access, ...) tested for truthiness.
	r, err := c.lowerExpr(resolved)
	if err != nil {
		return err
	}
	t, f := trueLabel, falseLabel
	if !sign {
		t, f = falseLabel, trueLabel
	}
	c.block.Emit(ir.Instr{Op: ir.OpIf, Pos: resolved.Pos(), A: r, B: ir.NullReg, Label: t, Label2: f})
	return nil
}

func setOpFor(op ast.BinaryOp) ir.SetOp {
	switch op {
	case ast.OpSubsetEq:
		return ir.SetSubsetEq
	case ast.OpElementOf:
		return ir.SetElementOf
	}
	return ir.SetSubset
}

// lowerBoolValue materializes e's boolean result into a register for use as
// an ordinary value (e.g. `x = a && b`), by running the jump-code lowering
// against two labels and assigning a constant at each (§4.5.1). The
// refinement lowerBranch threads into c.env along the way is discarded once
// the value is materialized — refinement only matters for control-flow
// bodies, not for a plain sub-expression's value.
func (c *funcCtx) lowerBoolValue(e ast.Expression) (ir.Reg, error) {
	savedEnv := c.env
	trueLabel := c.block.NewLabel()
	falseLabel := c.block.NewLabel()
	endLabel := c.block.NewLabel()

	if err := c.lowerBranch(e, true, trueLabel, falseLabel); err != nil {
		return ir.NullReg, err
	}
	c.env = savedEnv

	target := c.block.AllocReg(types.Bool)
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: trueLabel})
	c.block.Emit(ir.Instr{Op: ir.OpConst, Target: target, Type: types.Bool, Value: true})
	c.block.Emit(ir.Instr{Op: ir.OpGoto, Label: endLabel})
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: falseLabel})
	c.block.Emit(ir.Instr{Op: ir.OpConst, Target: target, Type: types.Bool, Value: false})
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: endLabel})
	return target, nil
}
