package codegen

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

// lowerAssign lowers `target = value`, dispatching on target's concrete
// LValue shape as §4.5 directs: Assign for a plain variable, a numerator/
// denominator pair for a rational destructure, per-position TupleLoad for a
// tuple destructure, or a single Update for a path through fields/indices.
func (c *funcCtx) lowerAssign(target ast.LValue, value ast.Expression) error {
	resolvedValue, err := c.resolve(value)
	if err != nil {
		return err
	}
	valReg, err := c.lowerExpr(resolvedValue)
	if err != nil {
		return err
	}
	vt := resolvedValue.ResolvedType()

	switch tgt := target.(type) {
	case *ast.VarLValue:
		c.assignVar(tgt.Name, valReg, vt, tgt.Pos())
		return nil

	case *ast.RationalLValue:
		numReg := c.block.AllocReg(types.Int)
		c.block.Emit(ir.Instr{Op: ir.OpUnArithOp, Pos: tgt.Pos(), Target: numReg, Type: types.Int, A: valReg, Arith: ir.ArithNumerator})
		denReg := c.block.AllocReg(types.Int)
		c.block.Emit(ir.Instr{Op: ir.OpUnArithOp, Pos: tgt.Pos(), Target: denReg, Type: types.Int, A: valReg, Arith: ir.ArithDenominator})
		c.assignVar(tgt.Num, numReg, types.Int, tgt.Pos())
		c.assignVar(tgt.Den, denReg, types.Int, tgt.Pos())
		return nil

	case *ast.TupleLValue:
		ut := c.gen.Resolver.Underlying(vt)
		children := ut.Children()
		for i, name := range tgt.Elems {
			et := types.Any
			if i < len(children) {
				et = children[i]
			}
			elemReg := c.block.AllocReg(et)
			c.block.Emit(ir.Instr{Op: ir.OpTupleLoad, Pos: tgt.Pos(), Target: elemReg, Type: et, A: valReg, Value: i})
			c.assignVar(name, elemReg, et, tgt.Pos())
		}
		return nil

	case *ast.PathLValue:
		return c.lowerPathAssign(tgt, valReg, tgt.Pos())
	}

	return c.internal(target.Pos(), "codegen: unknown LValue shape")
}

// assignVar writes val into name's register, allocating one on first use,
// and keeps the flow environment's tracked type current.
func (c *funcCtx) assignVar(name string, val ir.Reg, t *types.Type, pos ast.Position) {
	r, ok := c.regs[name]
	if !ok {
		r = c.block.AllocReg(t)
		c.regs[name] = r
	}
	c.block.Emit(ir.Instr{Op: ir.OpAssign, Pos: pos, Target: r, Type: t, A: val})
	c.env = c.env.Put(name, t)
}

// lowerPathAssign walks all but the last segment of a field/index chain to
// materialize the containing value, then emits a single Update against that
// container for the final segment (§4.5 "path lval -> single Update").
// Intermediate containers are read with types.Any register types since no
// static type is tracked through a path chain at codegen time; this only
// affects trace-output fidelity, never the emitted operand registers.
func (c *funcCtx) lowerPathAssign(tgt *ast.PathLValue, valReg ir.Reg, pos ast.Position) error {
	base, ok := c.regs[tgt.Base]
	if !ok {
		return c.internal(pos, "path assignment base variable never bound: "+tgt.Base)
	}
	if len(tgt.Segments) == 0 {
		c.assignVar(tgt.Base, valReg, c.block.RegType(base), pos)
		return nil
	}

	container := base
	for _, seg := range tgt.Segments[:len(tgt.Segments)-1] {
		next := c.block.AllocReg(types.Any)
		if seg.Field != "" {
			c.block.Emit(ir.Instr{Op: ir.OpFieldLoad, Pos: pos, Target: next, A: container, Name: seg.Field})
		} else {
			idx, err := c.lowerExpr(seg.Index)
			if err != nil {
				return err
			}
			c.block.Emit(ir.Instr{Op: ir.OpIndexOf, Pos: pos, Target: next, A: container, B: idx})
		}
		container = next
	}

	last := tgt.Segments[len(tgt.Segments)-1]
	if last.Field != "" {
		c.block.Emit(ir.Instr{Op: ir.OpUpdate, Pos: pos, A: container, B: ir.NullReg, C: valReg, Name: last.Field})
		return nil
	}
	idx, err := c.lowerExpr(last.Index)
	if err != nil {
		return err
	}
	c.block.Emit(ir.Instr{Op: ir.OpUpdate, Pos: pos, A: container, B: idx, C: valReg})
	return nil
}

// bindPattern destructures a value already sitting in root (of type t) into
// the names Pattern names, allocating/ binding registers as it recurses
// (used by VarDeclStmt and ForAllStmt's map-destructuring form).
func (c *funcCtx) bindPattern(p ast.Pattern, root ir.Reg, t *types.Type) error {
	switch pat := p.(type) {
	case *ast.LeafPattern:
		if pat.Name == "" {
			return nil
		}
		c.regs[pat.Name] = root
		c.env = c.env.Put(pat.Name, t)
		return nil

	case *ast.RationalPattern:
		numReg := c.block.AllocReg(types.Int)
		c.block.Emit(ir.Instr{Op: ir.OpUnArithOp, Pos: pat.Pos(), Target: numReg, Type: types.Int, A: root, Arith: ir.ArithNumerator})
		denReg := c.block.AllocReg(types.Int)
		c.block.Emit(ir.Instr{Op: ir.OpUnArithOp, Pos: pat.Pos(), Target: denReg, Type: types.Int, A: root, Arith: ir.ArithDenominator})
		if err := c.bindPattern(pat.Num, numReg, types.Int); err != nil {
			return err
		}
		return c.bindPattern(pat.Den, denReg, types.Int)

	case *ast.TuplePattern:
		ut := c.gen.Resolver.Underlying(t)
		children := ut.Children()
		for i, elem := range pat.Elems {
			et := types.Any
			if i < len(children) {
				et = children[i]
			}
			r := c.block.AllocReg(et)
			c.block.Emit(ir.Instr{Op: ir.OpTupleLoad, Pos: pat.Pos(), Target: r, Type: et, A: root, Value: i})
			if err := c.bindPattern(elem, r, et); err != nil {
				return err
			}
		}
		return nil

	case *ast.RecordPattern:
		ut := c.gen.Resolver.Underlying(t)
		for _, f := range pat.Fields {
			ft := fieldType(ut, f.Name)
			r := c.block.AllocReg(ft)
			c.block.Emit(ir.Instr{Op: ir.OpFieldLoad, Pos: pat.Pos(), Target: r, Type: ft, A: root, Name: f.Name})
			if err := c.bindPattern(f.Pattern, r, ft); err != nil {
				return err
			}
		}
		return nil
	}
	return c.internal(p.Pos(), "codegen: unknown Pattern shape")
}

func fieldType(rec *types.Type, name string) *types.Type {
	if rec == nil || rec.Kind() != types.KindRecord {
		return types.Any
	}
	for i, f := range rec.Fields {
		if f == name {
			return rec.Children()[i]
		}
	}
	return types.Any
}
