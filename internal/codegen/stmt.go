package codegen

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/cerrors"
	"github.com/coldfront-lang/corefront/internal/flowenv"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

func (c *funcCtx) lowerStmts(stmts []ast.Statement) error {
	for _, s := range stmts {
		if err := c.lowerStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *funcCtx) lowerStmt(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.VarDeclStmt:
		return c.lowerVarDecl(s)
	case *ast.AssignStmt:
		return c.lowerAssign(s.Target, s.Value)
	case *ast.AssertStmt:
		r, err := c.lowerExpr(s.Cond)
		if err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpAssert, Pos: s.Pos(), A: r, Msg: s.Message})
		return nil
	case *ast.AssumeStmt:
		resolved, err := c.resolve(s.Cond)
		if err != nil {
			return err
		}
		if !c.gen.Resolver.Sub.IsSubtype(resolved.ResolvedType(), types.Bool) {
			return c.fail(cerrors.InvalidBooleanExpression, s.Pos(), "assume condition must be bool")
		}
		return nil
	case *ast.ReturnStmt:
		return c.lowerReturn(s)
	case *ast.DebugStmt:
		regs := make([]ir.Reg, len(s.Exprs))
		for i, e := range s.Exprs {
			r, err := c.lowerExpr(e)
			if err != nil {
				return err
			}
			regs[i] = r
		}
		c.block.Emit(ir.Instr{Op: ir.OpDebug, Pos: s.Pos(), Operands: regs, Msg: s.Label})
		return nil
	case *ast.IfStmt:
		return c.lowerIf(s)
	case *ast.SwitchStmt:
		return c.lowerSwitch(s)
	case *ast.TryCatchStmt:
		return c.lowerTryCatch(s)
	case *ast.BreakStmt:
		if len(c.breakLabels) == 0 {
			return c.fail(cerrors.BreakOutsideLoop, s.Pos(), "break outside of any loop")
		}
		c.block.Emit(ir.Instr{Op: ir.OpGoto, Pos: s.Pos(), Label: c.breakLabels[len(c.breakLabels)-1]})
		return nil
	case *ast.ThrowStmt:
		r, err := c.lowerExpr(s.Value)
		if err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpThrow, Pos: s.Pos(), A: r})
		return nil
	case *ast.WhileStmt:
		return c.lowerWhile(s)
	case *ast.DoWhileStmt:
		return c.lowerDoWhile(s)
	case *ast.ForAllStmt:
		return c.lowerForAll(s)
	case *ast.SkipStmt:
		return nil
	case *ast.ExprStmt:
		return c.lowerExprStmt(s)
	}
	return c.internal(stmt.Pos(), "codegen: no lowering for this Statement shape")
}

// lowerExprStmt lowers an expression evaluated for effect. A call form gets
// its invoke instruction's Target set directly to NullReg rather than
// allocating a throwaway result register (§4.5 "target = NULL_REG").
func (c *funcCtx) lowerExprStmt(s *ast.ExprStmt) error {
	resolved, err := c.resolve(s.Expr)
	if err != nil {
		return err
	}
	switch e := resolved.(type) {
	case *ast.DirectCall:
		args, err := c.lowerExprList(e.Args)
		if err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpInvoke, Pos: e.Pos(), Target: ir.NullReg, Name: e.Callee.Name, Operands: args})
		return nil
	case *ast.MethodCall:
		recv, err := c.lowerExpr(e.Receiver)
		if err != nil {
			return err
		}
		args, err := c.lowerExprList(e.Args)
		if err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpInvoke, Pos: e.Pos(), Target: ir.NullReg, A: recv, Name: e.Method.TypeName + "." + e.Method.Name, Operands: args})
		return nil
	case *ast.MessageSend:
		recv, err := c.lowerExpr(e.Receiver)
		if err != nil {
			return err
		}
		args, err := c.lowerExprList(e.Args)
		if err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpInvoke, Pos: e.Pos(), Target: ir.NullReg, A: recv, Name: e.Selector, Operands: args})
		return nil
	case *ast.IndirectCall:
		fn, err := c.lowerExpr(e.Callee)
		if err != nil {
			return err
		}
		args, err := c.lowerExprList(e.Args)
		if err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpIndirectInvoke, Pos: e.Pos(), Target: ir.NullReg, A: fn, Operands: args})
		return nil
	}
	_, err = c.lowerExpr(resolved)
	return err
}

func (c *funcCtx) lowerVarDecl(s *ast.VarDeclStmt) error {
	if s.Init != nil {
		resolvedInit, err := c.resolve(s.Init)
		if err != nil {
			return err
		}
		reg, err := c.lowerExpr(resolvedInit)
		if err != nil {
			return err
		}
		t := resolvedInit.ResolvedType()
		if s.Type != nil {
			declared, err := c.gen.Resolver.ResolveTypeExpr(s.Type)
			if err != nil {
				return err
			}
			t = declared
		}
		root := c.block.AllocReg(t)
		c.block.Emit(ir.Instr{Op: ir.OpAssign, Pos: s.Pos(), Target: root, Type: t, A: reg})
		return c.bindPattern(s.Pattern, root, t)
	}

	t, err := c.gen.Resolver.ResolveTypeExpr(s.Type)
	if err != nil {
		return err
	}
	return c.declarePattern(s.Pattern, t)
}

// declarePattern allocates registers reflecting a pattern's shape without
// reading any value, for a VarDeclStmt with no initializer (§4.5
// "registers are reserved but no code is emitted").
func (c *funcCtx) declarePattern(p ast.Pattern, t *types.Type) error {
	switch pat := p.(type) {
	case *ast.LeafPattern:
		if pat.Name == "" {
			return nil
		}
		c.regs[pat.Name] = c.block.AllocReg(t)
		c.env = c.env.Put(pat.Name, t)
		return nil
	case *ast.RationalPattern:
		if err := c.declarePattern(pat.Num, types.Int); err != nil {
			return err
		}
		return c.declarePattern(pat.Den, types.Int)
	case *ast.TuplePattern:
		ut := c.gen.Resolver.Underlying(t)
		children := ut.Children()
		for i, elem := range pat.Elems {
			et := types.Any
			if i < len(children) {
				et = children[i]
			}
			if err := c.declarePattern(elem, et); err != nil {
				return err
			}
		}
		return nil
	case *ast.RecordPattern:
		ut := c.gen.Resolver.Underlying(t)
		for _, f := range pat.Fields {
			if err := c.declarePattern(f.Pattern, fieldType(ut, f.Name)); err != nil {
				return err
			}
		}
		return nil
	}
	return c.internal(p.Pos(), "codegen: unknown Pattern shape")
}

func (c *funcCtx) lowerReturn(s *ast.ReturnStmt) error {
	if s.Value == nil {
		c.block.Emit(ir.Instr{Op: ir.OpReturn, Pos: s.Pos(), A: ir.NullReg})
		return nil
	}
	resolved, err := c.resolve(s.Value)
	if err != nil {
		return err
	}
	r, err := c.lowerExpr(resolved)
	if err != nil {
		return err
	}
	if c.retType != nil && resolved.ResolvedType() != c.retType {
		converted := c.block.AllocReg(c.retType)
		c.block.Emit(ir.Instr{Op: ir.OpConvert, Pos: s.Pos(), Target: converted, Type: c.retType, A: r})
		r = converted
	}
	c.block.Emit(ir.Instr{Op: ir.OpReturn, Pos: s.Pos(), A: r})
	return nil
}

func (c *funcCtx) lowerIf(s *ast.IfStmt) error {
	thenLabel := c.block.NewLabel()
	elseLabel := c.block.NewLabel()
	endLabel := c.block.NewLabel()

	origEnv := c.env
	if err := c.lowerBranch(s.Cond, true, thenLabel, elseLabel); err != nil {
		return err
	}
	thenEnv := c.env
	_, elseEnv, err := c.gen.Resolver.ResolveCondition(s.Cond, false, origEnv)
	if err != nil {
		return err
	}

	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: thenLabel})
	c.env = thenEnv
	if err := c.lowerStmts(s.Then); err != nil {
		return err
	}
	thenExit := c.env
	c.block.Emit(ir.Instr{Op: ir.OpGoto, Label: endLabel})

	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: elseLabel})
	c.env = elseEnv
	if s.Else != nil {
		if err := c.lowerStmts(s.Else); err != nil {
			return err
		}
	}
	elseExit := c.env

	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: endLabel})
	c.env = flowenv.Join(thenExit, elseExit)
	return nil
}

func (c *funcCtx) lowerWhile(s *ast.WhileStmt) error {
	startLabel := c.block.NewLabel()
	bodyLabel := c.block.NewLabel()
	endLabel := c.block.NewLabel()

	envBeforeLoop := c.env
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: startLabel})
	if err := c.lowerBranch(s.Cond, true, bodyLabel, endLabel); err != nil {
		return err
	}

	c.block.Emit(ir.Instr{Op: ir.OpLoop, Label: bodyLabel})
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: bodyLabel})
	c.breakLabels = append(c.breakLabels, endLabel)
	if err := c.lowerStmts(s.Body); err != nil {
		return err
	}
	c.breakLabels = c.breakLabels[:len(c.breakLabels)-1]
	bodyExit := c.env
	c.block.Emit(ir.Instr{Op: ir.OpGoto, Label: startLabel})

	c.block.Emit(ir.Instr{Op: ir.OpNop, Pos: s.Pos()})
	c.block.Emit(ir.Instr{Op: ir.OpLoopEnd})
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: endLabel})
	c.env = flowenv.Join(envBeforeLoop, bodyExit)
	return nil
}

func (c *funcCtx) lowerDoWhile(s *ast.DoWhileStmt) error {
	bodyLabel := c.block.NewLabel()
	endLabel := c.block.NewLabel()

	envBeforeLoop := c.env
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: bodyLabel})
	c.breakLabels = append(c.breakLabels, endLabel)
	if err := c.lowerStmts(s.Body); err != nil {
		return err
	}
	c.breakLabels = c.breakLabels[:len(c.breakLabels)-1]

	if err := c.lowerBranch(s.Cond, true, bodyLabel, endLabel); err != nil {
		return err
	}
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: endLabel})
	c.env = flowenv.Join(envBeforeLoop, c.env)
	return nil
}

func (c *funcCtx) lowerForAll(s *ast.ForAllStmt) error {
	resolvedSrc, err := c.resolve(s.Source)
	if err != nil {
		return err
	}
	srcReg, err := c.lowerExpr(resolvedSrc)
	if err != nil {
		return err
	}
	ust := c.gen.Resolver.Underlying(resolvedSrc.ResolvedType())

	bodyLabel := c.block.NewLabel()
	endLabel := c.block.NewLabel()

	var elemType, valType *types.Type
	isMap := ust.Kind() == types.KindMap
	if isMap {
		elemType, valType = ust.Key(), ust.Value()
	} else {
		elemType = ust.Elem()
	}

	elemReg := c.block.AllocReg(elemType)
	instr := ir.Instr{Op: ir.OpForAll, Pos: s.Pos(), A: srcReg, Target: elemReg, Label: bodyLabel, Label2: endLabel}
	c.regs[s.Var] = elemReg
	c.env = c.env.Put(s.Var, elemType)
	if isMap && s.Var2 != "" {
		valReg := c.block.AllocReg(valType)
		instr.C = valReg
		c.regs[s.Var2] = valReg
		c.env = c.env.Put(s.Var2, valType)
	}
	c.block.Emit(instr)

	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: bodyLabel})
	c.breakLabels = append(c.breakLabels, endLabel)
	if err := c.lowerStmts(s.Body); err != nil {
		return err
	}
	c.breakLabels = c.breakLabels[:len(c.breakLabels)-1]
	c.block.Emit(ir.Instr{Op: ir.OpNop, Pos: s.Pos()})
	c.block.Emit(ir.Instr{Op: ir.OpLoopEnd})
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: endLabel})
	return nil
}

// lowerSwitch builds Subject's case dispatch table and reserves the
// OpSwitch instruction's slot until every case body's label is known
// (§4.5 "reserve space ... insert at that reserved position").
func (c *funcCtx) lowerSwitch(s *ast.SwitchStmt) error {
	subject, err := c.lowerExpr(s.Subject)
	if err != nil {
		return err
	}
	reserved := c.block.Reserve(s.Pos())
	endLabel := c.block.NewLabel()

	var cases []ir.CaseEntry
	defaultLabel := ir.NoLabel
	seen := make(map[any]bool)

	for i, cs := range s.Cases {
		if cs.IsDefault {
			if i != len(s.Cases)-1 {
				return c.fail(cerrors.DefaultNotLast, s.Pos(), "default case must be last")
			}
			label := c.block.NewLabel()
			defaultLabel = label
			c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: label})
			if err := c.lowerStmts(cs.Body); err != nil {
				return err
			}
			c.block.Emit(ir.Instr{Op: ir.OpGoto, Label: endLabel})
			continue
		}

		label := c.block.NewLabel()
		for _, ve := range cs.Values {
			resolved, err := c.resolve(ve)
			if err != nil {
				return err
			}
			lit, ok := resolved.(*ast.Constant)
			if !ok {
				return c.internal(ve.Pos(), "switch case label must be a constant")
			}
			if seen[lit.Value] {
				return c.fail(cerrors.DuplicateCaseLabel, ve.Pos(), "duplicate case label")
			}
			seen[lit.Value] = true
			cases = append(cases, ir.CaseEntry{Value: lit.Value, Label: label})
		}
		c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: label})
		if err := c.lowerStmts(cs.Body); err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpGoto, Label: endLabel})
	}

	if defaultLabel == ir.NoLabel {
		defaultLabel = endLabel
	}
	c.block.ReplaceAt(reserved, ir.Instr{Op: ir.OpSwitch, Pos: s.Pos(), A: subject, Cases: cases, Label: defaultLabel})
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: endLabel})
	return nil
}

// lowerTryCatch mirrors lowerSwitch's reserve/replace pattern for the
// catch-type dispatch table (§4.5).
func (c *funcCtx) lowerTryCatch(s *ast.TryCatchStmt) error {
	reserved := c.block.Reserve(s.Pos())
	endLabel := c.block.NewLabel()

	if err := c.lowerStmts(s.Body); err != nil {
		return err
	}
	c.block.Emit(ir.Instr{Op: ir.OpTryEnd})
	c.block.Emit(ir.Instr{Op: ir.OpGoto, Label: endLabel})

	catches := make([]ir.CatchEntry, 0, len(s.Catches))
	for _, cc := range s.Catches {
		excType, err := c.gen.Resolver.ResolveTypeExpr(cc.Type)
		if err != nil {
			return err
		}
		label := c.block.NewLabel()
		catches = append(catches, ir.CatchEntry{Type: excType, Label: label})

		c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: label})
		if cc.Name != "" {
			excReg := c.block.AllocReg(excType)
			// The runtime binds the caught exception value into excReg as
			// part of dispatching to this handler label; there is no value
			// to compute here, only the register to reserve for it.
			c.regs[cc.Name] = excReg
			c.env = c.env.Put(cc.Name, excType)
		}
		if err := c.lowerStmts(cc.Body); err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpGoto, Label: endLabel})
	}

	c.block.ReplaceAt(reserved, ir.Instr{Op: ir.OpTryCatch, Pos: s.Pos(), Catches: catches})
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: endLabel})
	return nil
}
