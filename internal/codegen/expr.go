package codegen

import (
	"sort"

	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

// lowerExpr resolves e against the current flow environment and emits the
// instructions that compute its value, returning the register holding the
// result. Boolean-typed expressions whose natural lowering is jump code
// (comparisons, is, not, &&/||) are materialized into a register via
// lowerBoolValue rather than duplicated here.
func (c *funcCtx) lowerExpr(expr ast.Expression) (ir.Reg, error) {
	resolved, err := c.resolve(expr)
	if err != nil {
		return ir.NullReg, err
	}
	t := resolved.ResolvedType()

	switch e := resolved.(type) {
	case *ast.Constant:
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpConst, Pos: e.Pos(), Target: target, Type: t, Value: e.Value})
		return target, nil

	case *ast.Variable:
		r, ok := c.regs[e.Name]
		if !ok {
			return ir.NullReg, c.internal(e.Pos(), "variable resolved but never bound to a register: "+e.Name)
		}
		return r, nil

	case *ast.FunctionRef:
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpConst, Pos: e.Pos(), Target: target, Type: t, Name: e.Name})
		return target, nil

	case *ast.TypeValue:
		target := c.block.AllocReg(types.Meta)
		c.block.Emit(ir.Instr{Op: ir.OpConst, Pos: e.Pos(), Target: target, Type: types.Meta, Name: e.Denoted.String()})
		return target, nil

	case *ast.UnaryExpr:
		return c.lowerUnary(e, t)

	case *ast.BinaryExpr:
		return c.lowerBinary(e, t)

	case *ast.IsExpr:
		return c.lowerBoolValue(e)

	case *ast.RecordLiteral:
		// Field order must match the resolved record type's sorted Fields
		// (types.Table.NewRecord sorts by name), not source order (§4.5.3).
		sorted := append([]ast.RecordFieldValue(nil), e.Fields...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
		operands := make([]ir.Reg, len(sorted))
		for i, f := range sorted {
			r, err := c.lowerExpr(f.Value)
			if err != nil {
				return ir.NullReg, err
			}
			operands[i] = r
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpNewRecord, Pos: e.Pos(), Target: target, Type: t, Operands: operands})
		return target, nil

	case *ast.TupleLiteral:
		operands, err := c.lowerExprList(e.Elems)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpNewTuple, Pos: e.Pos(), Target: target, Type: t, Operands: operands})
		return target, nil

	case *ast.ListLiteral:
		operands, err := c.lowerExprList(e.Elems)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpNewList, Pos: e.Pos(), Target: target, Type: t, Operands: operands})
		return target, nil

	case *ast.SetLiteral:
		operands, err := c.lowerExprList(e.Elems)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpNewSet, Pos: e.Pos(), Target: target, Type: t, Operands: operands})
		return target, nil

	case *ast.MapLiteral:
		operands := make([]ir.Reg, 0, len(e.Entries)*2)
		for _, entry := range e.Entries {
			kr, err := c.lowerExpr(entry.Key)
			if err != nil {
				return ir.NullReg, err
			}
			vr, err := c.lowerExpr(entry.Value)
			if err != nil {
				return ir.NullReg, err
			}
			operands = append(operands, kr, vr)
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpNewMap, Pos: e.Pos(), Target: target, Type: t, Operands: operands})
		return target, nil

	case *ast.FieldAccess:
		src, err := c.lowerExpr(e.Source)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpFieldLoad, Pos: e.Pos(), Target: target, Type: t, A: src, Name: e.Field})
		return target, nil

	case *ast.ListAccess:
		return c.lowerIndexed(ir.OpIndexOf, e.Source, e.Index, t, e.Pos())
	case *ast.StringAccess:
		return c.lowerIndexed(ir.OpIndexOf, e.Source, e.Index, t, e.Pos())
	case *ast.MapAccess:
		return c.lowerIndexed(ir.OpIndexOf, e.Source, e.Key, t, e.Pos())

	case *ast.SubList:
		return c.lowerSubRange(ir.OpSubList, e.Source, e.Lo, e.Hi, t, e.Pos())
	case *ast.SubString:
		return c.lowerSubRange(ir.OpSubString, e.Source, e.Lo, e.Hi, t, e.Pos())

	case *ast.StringLength, *ast.ListLength, *ast.SetLength, *ast.MapLength:
		return c.lowerLengthOf(e, t)

	case *ast.Dereference:
		src, err := c.lowerExpr(e.Source)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpDereference, Pos: e.Pos(), Target: target, Type: t, A: src})
		return target, nil

	case *ast.Cast:
		src, err := c.lowerExpr(e.Source)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpConvert, Pos: e.Pos(), Target: target, Type: t, A: src})
		return target, nil

	case *ast.NewExpr:
		init, err := c.lowerExpr(e.Init)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpNewObject, Pos: e.Pos(), Target: target, Type: t, A: init})
		return target, nil

	case *ast.DirectCall:
		args, err := c.lowerExprList(e.Args)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpInvoke, Pos: e.Pos(), Target: target, Type: t, Name: e.Callee.Name, Operands: args})
		return target, nil

	case *ast.MethodCall:
		recv, err := c.lowerExpr(e.Receiver)
		if err != nil {
			return ir.NullReg, err
		}
		args, err := c.lowerExprList(e.Args)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpInvoke, Pos: e.Pos(), Target: target, Type: t, A: recv, Name: e.Method.TypeName + "." + e.Method.Name, Operands: args})
		return target, nil

	case *ast.IndirectCall:
		fn, err := c.lowerExpr(e.Callee)
		if err != nil {
			return ir.NullReg, err
		}
		args, err := c.lowerExprList(e.Args)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpIndirectInvoke, Pos: e.Pos(), Target: target, Type: t, A: fn, Operands: args})
		return target, nil

	case *ast.FieldIndirectCall:
		recv, err := c.lowerExpr(e.Receiver)
		if err != nil {
			return ir.NullReg, err
		}
		fieldTarget := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpFieldLoad, Pos: e.Pos(), Target: fieldTarget, A: recv, Name: e.Field})
		args, err := c.lowerExprList(e.Args)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpIndirectInvoke, Pos: e.Pos(), Target: target, Type: t, A: fieldTarget, Operands: args})
		return target, nil

	case *ast.MessageSend:
		recv, err := c.lowerExpr(e.Receiver)
		if err != nil {
			return ir.NullReg, err
		}
		args, err := c.lowerExprList(e.Args)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpInvoke, Pos: e.Pos(), Target: target, Type: t, A: recv, Name: e.Selector, Operands: args})
		return target, nil

	case *ast.Lambda:
		return c.lowerLambda(e)

	case *ast.Comprehension:
		return c.lowerComprehension(e)
	}

	return ir.NullReg, c.internal(resolved.Pos(), "codegen: no lowering for this resolved Expression shape")
}

func (c *funcCtx) lowerExprList(exprs []ast.Expression) ([]ir.Reg, error) {
	out := make([]ir.Reg, len(exprs))
	for i, e := range exprs {
		r, err := c.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (c *funcCtx) lowerIndexed(op ir.Op, source, index ast.Expression, t *types.Type, pos ast.Position) (ir.Reg, error) {
	src, err := c.lowerExpr(source)
	if err != nil {
		return ir.NullReg, err
	}
	idx, err := c.lowerExpr(index)
	if err != nil {
		return ir.NullReg, err
	}
	target := c.block.AllocReg(t)
	c.block.Emit(ir.Instr{Op: op, Pos: pos, Target: target, Type: t, A: src, B: idx})
	return target, nil
}

func (c *funcCtx) lowerSubRange(op ir.Op, source, lo, hi ast.Expression, t *types.Type, pos ast.Position) (ir.Reg, error) {
	src, err := c.lowerExpr(source)
	if err != nil {
		return ir.NullReg, err
	}
	loReg, err := c.lowerExpr(lo)
	if err != nil {
		return ir.NullReg, err
	}
	hiReg, err := c.lowerExpr(hi)
	if err != nil {
		return ir.NullReg, err
	}
	target := c.block.AllocReg(t)
	c.block.Emit(ir.Instr{Op: op, Pos: pos, Target: target, Type: t, A: src, B: loReg, C: hiReg})
	return target, nil
}

func (c *funcCtx) lowerLengthOf(e ast.Expression, t *types.Type) (ir.Reg, error) {
	var source ast.Expression
	switch n := e.(type) {
	case *ast.StringLength:
		source = n.Source
	case *ast.ListLength:
		source = n.Source
	case *ast.SetLength:
		source = n.Source
	case *ast.MapLength:
		source = n.Source
	}
	src, err := c.lowerExpr(source)
	if err != nil {
		return ir.NullReg, err
	}
	target := c.block.AllocReg(t)
	c.block.Emit(ir.Instr{Op: ir.OpLengthOf, Pos: e.Pos(), Target: target, Type: t, A: src})
	return target, nil
}

func (c *funcCtx) lowerUnary(e *ast.UnaryExpr, t *types.Type) (ir.Reg, error) {
	switch e.Op {
	case ast.UnNeg:
		operand, err := c.lowerExpr(e.Operand)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpUnArithOp, Pos: e.Pos(), Target: target, Type: t, A: operand, Arith: ir.ArithNeg})
		return target, nil
	case ast.UnInvert:
		operand, err := c.lowerExpr(e.Operand)
		if err != nil {
			return ir.NullReg, err
		}
		target := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpInvert, Pos: e.Pos(), Target: target, Type: t, A: operand})
		return target, nil
	case ast.UnNot:
		return c.lowerBoolValue(e)
	}
	return ir.NullReg, c.internal(e.Pos(), "unknown unary operator in codegen")
}

func (c *funcCtx) lowerBinary(e *ast.BinaryExpr, t *types.Type) (ir.Reg, error) {
	if e.Op.IsComparison() {
		return c.lowerBoolValue(e)
	}

	left, err := c.lowerExpr(e.Left)
	if err != nil {
		return ir.NullReg, err
	}
	right, err := c.lowerExpr(e.Right)
	if err != nil {
		return ir.NullReg, err
	}
	target := c.block.AllocReg(t)

	switch {
	case t == types.String && e.Op == ast.OpAdd:
		c.block.Emit(ir.Instr{Op: ir.OpBinStringOp, Pos: e.Pos(), Target: target, Type: t, A: left, B: right, String: ir.StringAppend})
	case t.Kind() == types.KindList && e.Op == ast.OpAdd:
		c.block.Emit(ir.Instr{Op: ir.OpBinListOp, Pos: e.Pos(), Target: target, Type: t, A: left, B: right})
	case t.Kind() == types.KindSet:
		c.block.Emit(ir.Instr{Op: ir.OpBinSetOp, Pos: e.Pos(), Target: target, Type: t, A: left, B: right, SetOp: ir.SetUnion})
	default:
		c.block.Emit(ir.Instr{Op: ir.OpBinArithOp, Pos: e.Pos(), Target: target, Type: t, A: left, B: right, Arith: arithOpFor(e.Op)})
	}
	return target, nil
}

func arithOpFor(op ast.BinaryOp) ir.ArithOp {
	switch op {
	case ast.OpSub:
		return ir.ArithSub
	case ast.OpMul:
		return ir.ArithMul
	case ast.OpDiv:
		return ir.ArithDiv
	case ast.OpMod:
		return ir.ArithMod
	}
	return ir.ArithAdd
}

func cmpFor(op ast.BinaryOp) ir.Cmp {
	switch op {
	case ast.OpNeq:
		return ir.CmpNeq
	case ast.OpLt:
		return ir.CmpLt
	case ast.OpLte:
		return ir.CmpLte
	case ast.OpGt:
		return ir.CmpGt
	case ast.OpGte:
		return ir.CmpGte
	}
	return ir.CmpEq
}
