package codegen

import (
	"github.com/google/uuid"

	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

// lowerLambda synthesizes a new top-level ir.Decl for l (appended to
// c.lambdas) whose parameters are l's own declared params followed by its
// captured free variables, then emits the call-site OpLambda instruction
// capturing those free variables' current registers (§4.5.2).
func (c *funcCtx) lowerLambda(l *ast.Lambda) (ir.Reg, error) {
	bound := make(map[string]bool, len(l.Params))
	for _, p := range l.Params {
		bound[p.Name] = true
	}
	captured := freeVars(l.Body, bound, nil)

	// Each synthesized lambda gets a globally unique name so concurrently
	// compiled declarations (§5) never collide, namespaced under the
	// configured prefix so it cannot shadow a user-declared function.
	name := c.gen.Options.LambdaNamePrefix + uuid.NewString()

	sub := c.gen.newFuncCtx()
	sub.env = c.env
	params := make([]ir.Reg, 0, len(l.Params)+len(captured))
	for _, p := range l.Params {
		pt, err := c.gen.Resolver.ResolveTypeExpr(p.Type)
		if err != nil {
			return ir.NullReg, err
		}
		params = append(params, sub.bindParam(p.Name, pt))
	}
	captureRegs := make([]ir.Reg, len(captured))
	for i, name := range captured {
		t, ok := c.env.Lookup(name)
		if !ok {
			return ir.NullReg, c.internal(l.Pos(), "lambda captures free variable with no known type: "+name)
		}
		params = append(params, sub.bindParam(name, t))
		captureRegs[i] = c.regs[name]
	}

	bodyReg, err := sub.lowerExpr(l.Body)
	if err != nil {
		return ir.NullReg, err
	}
	sub.block.Emit(ir.Instr{Op: ir.OpReturn, Pos: l.Pos(), A: bodyReg})

	decl := &ir.Decl{Name: name, Params: params, Return: l.Body.ResolvedType(), Block: sub.block, Synthetic: true}
	c.lambdas = append(c.lambdas, decl)

	target := c.block.AllocReg(l.ResolvedType())
	c.block.Emit(ir.Instr{Op: ir.OpLambda, Pos: l.Pos(), Target: target, Type: l.ResolvedType(), Name: name, Operands: captureRegs})
	return target, nil
}

// freeVars collects the names Variable nodes reachable from e reference
// that are not in bound, passing extended copies of bound (with the names
// nested lambdas/comprehensions introduce) down the walk without mutating
// bound itself.
func freeVars(e ast.Expression, bound map[string]bool, out []string) []string {
	if e == nil {
		return out
	}
	isBound := func(name string) bool { return bound[name] }

	switch n := e.(type) {
	case *ast.Variable:
		if !isBound(n.Name) {
			out = appendUnique(out, n.Name)
		}
	case *ast.Constant, *ast.FunctionRef, *ast.MethodRef, *ast.TypeValue:
		// leaves; nothing to capture
	case *ast.UnaryExpr:
		out = freeVars(n.Operand, bound, out)
	case *ast.BinaryExpr:
		out = freeVars(n.Left, bound, out)
		out = freeVars(n.Right, bound, out)
	case *ast.IsExpr:
		out = freeVars(n.Operand, bound, out)
	case *ast.RecordLiteral:
		for _, f := range n.Fields {
			out = freeVars(f.Value, bound, out)
		}
	case *ast.TupleLiteral:
		out = freeVarsList(n.Elems, bound, out)
	case *ast.ListLiteral:
		out = freeVarsList(n.Elems, bound, out)
	case *ast.SetLiteral:
		out = freeVarsList(n.Elems, bound, out)
	case *ast.MapLiteral:
		for _, entry := range n.Entries {
			out = freeVars(entry.Key, bound, out)
			out = freeVars(entry.Value, bound, out)
		}
	case *ast.FieldAccess:
		out = freeVars(n.Source, bound, out)
	case *ast.ListAccess:
		out = freeVars(n.Source, bound, out)
		out = freeVars(n.Index, bound, out)
	case *ast.StringAccess:
		out = freeVars(n.Source, bound, out)
		out = freeVars(n.Index, bound, out)
	case *ast.MapAccess:
		out = freeVars(n.Source, bound, out)
		out = freeVars(n.Key, bound, out)
	case *ast.SubList:
		out = freeVars(n.Source, bound, out)
		out = freeVars(n.Lo, bound, out)
		out = freeVars(n.Hi, bound, out)
	case *ast.SubString:
		out = freeVars(n.Source, bound, out)
		out = freeVars(n.Lo, bound, out)
		out = freeVars(n.Hi, bound, out)
	case *ast.StringLength:
		out = freeVars(n.Source, bound, out)
	case *ast.ListLength:
		out = freeVars(n.Source, bound, out)
	case *ast.SetLength:
		out = freeVars(n.Source, bound, out)
	case *ast.MapLength:
		out = freeVars(n.Source, bound, out)
	case *ast.Dereference:
		out = freeVars(n.Source, bound, out)
	case *ast.Cast:
		out = freeVars(n.Source, bound, out)
	case *ast.NewExpr:
		out = freeVars(n.Init, bound, out)
	case *ast.DirectCall:
		out = freeVarsList(n.Args, bound, out)
	case *ast.IndirectCall:
		out = freeVars(n.Callee, bound, out)
		out = freeVarsList(n.Args, bound, out)
	case *ast.MethodCall:
		out = freeVars(n.Receiver, bound, out)
		out = freeVarsList(n.Args, bound, out)
	case *ast.FieldIndirectCall:
		out = freeVars(n.Receiver, bound, out)
		out = freeVarsList(n.Args, bound, out)
	case *ast.MessageSend:
		out = freeVars(n.Receiver, bound, out)
		out = freeVarsList(n.Args, bound, out)
	case *ast.Lambda:
		inner := extend(bound, paramNames(n.Params))
		out = freeVars(n.Body, inner, out)
	case *ast.Comprehension:
		inner := bound
		for _, src := range n.Sources {
			out = freeVars(src.Source, inner, out)
			names := []string{src.Var}
			if src.Var2 != "" {
				names = append(names, src.Var2)
			}
			inner = extend(inner, names)
		}
		out = freeVars(n.Cond, inner, out)
		out = freeVars(n.Yield, inner, out)
	}
	return out
}

func freeVarsList(es []ast.Expression, bound map[string]bool, out []string) []string {
	for _, e := range es {
		out = freeVars(e, bound, out)
	}
	return out
}

func paramNames(params []*ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func extend(bound map[string]bool, names []string) map[string]bool {
	out := make(map[string]bool, len(bound)+len(names))
	for k := range bound {
		out[k] = true
	}
	for _, n := range names {
		out[n] = true
	}
	return out
}

func appendUnique(out []string, name string) []string {
	for _, n := range out {
		if n == name {
			return out
		}
	}
	return append(out, name)
}

// lowerComprehension lowers a list/set comprehension into an accumulation
// loop over its sources, or a quantifier comprehension into a short-
// circuiting OpForAll scan that stops as soon as the predicate's truth
// value is decided (§4.5.3).
func (c *funcCtx) lowerComprehension(cmp *ast.Comprehension) (ir.Reg, error) {
	switch cmp.Kind {
	case ast.CompList, ast.CompSet:
		return c.lowerAccumulatingComprehension(cmp)
	default:
		return c.lowerQuantifierComprehension(cmp)
	}
}

func (c *funcCtx) lowerAccumulatingComprehension(cmp *ast.Comprehension) (ir.Reg, error) {
	resultType := cmp.ResolvedType()
	acc := c.block.AllocReg(resultType)
	op := ir.OpNewList
	if cmp.Kind == ast.CompSet {
		op = ir.OpNewSet
	}
	c.block.Emit(ir.Instr{Op: op, Pos: cmp.Pos(), Target: acc, Type: resultType})

	_, err := c.lowerComprehensionSources(cmp.Sources, 0, func() error {
		if cmp.Cond != nil {
			skip := c.block.NewLabel()
			cont := c.block.NewLabel()
			if err := c.lowerBranch(cmp.Cond, true, cont, skip); err != nil {
				return err
			}
			c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: cont})
			yield, err := c.lowerExpr(cmp.Yield)
			if err != nil {
				return err
			}
			c.block.Emit(ir.Instr{Op: ir.OpUpdate, Pos: cmp.Pos(), A: acc, C: yield})
			c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: skip})
			return nil
		}
		yield, err := c.lowerExpr(cmp.Yield)
		if err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpUpdate, Pos: cmp.Pos(), A: acc, C: yield})
		return nil
	})
	if err != nil {
		return ir.NullReg, err
	}
	return acc, nil
}

func (c *funcCtx) lowerQuantifierComprehension(cmp *ast.Comprehension) (ir.Reg, error) {
	result := c.block.AllocReg(types.Bool)

	// want is the Cond truth value that stops the scan early, assigning
	// triggerValue into result: ALL stops on the first false (fails);
	// SOME/NONE stop on the first true (SOME succeeds, NONE fails).
	var defaultValue, want, triggerValue bool
	switch cmp.Kind {
	case ast.CompAll:
		defaultValue, want, triggerValue = true, false, false
	case ast.CompNone:
		defaultValue, want, triggerValue = true, true, false
	default: // CompSome
		defaultValue, want, triggerValue = false, true, true
	}

	c.block.Emit(ir.Instr{Op: ir.OpConst, Pos: cmp.Pos(), Target: result, Type: types.Bool, Value: defaultValue})
	doneLabel := c.block.NewLabel()

	_, err := c.lowerComprehensionSources(cmp.Sources, 0, func() error {
		hold := c.block.NewLabel()
		trigger := c.block.NewLabel()
		if err := c.lowerBranch(cmp.Cond, want, trigger, hold); err != nil {
			return err
		}
		c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: trigger})
		c.block.Emit(ir.Instr{Op: ir.OpConst, Pos: cmp.Pos(), Target: result, Type: types.Bool, Value: triggerValue})
		c.block.Emit(ir.Instr{Op: ir.OpGoto, Label: doneLabel})
		c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: hold})
		return nil
	})
	if err != nil {
		return ir.NullReg, err
	}
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: doneLabel})
	return result, nil
}

// lowerComprehensionSources recursively emits nested OpForAll loops for
// cmp.Sources[idx:], binding each source's loop variable(s), and calls body
// once all sources are bound (the comprehension's innermost iteration).
func (c *funcCtx) lowerComprehensionSources(sources []ast.ComprehensionSource, idx int, body func() error) (ir.Label, error) {
	if idx == len(sources) {
		return ir.NoLabel, body()
	}
	src := sources[idx]
	resolvedSrc, err := c.resolve(src.Source)
	if err != nil {
		return ir.NoLabel, err
	}
	srcReg, err := c.lowerExpr(resolvedSrc)
	if err != nil {
		return ir.NoLabel, err
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
	instr := ir.Instr{Op: ir.OpForAll, A: srcReg, Target: elemReg, Label: bodyLabel, Label2: endLabel}
	c.regs[src.Var] = elemReg
	c.env = c.env.Put(src.Var, elemType)
	if isMap && src.Var2 != "" {
		valReg := c.block.AllocReg(valType)
		instr.C = valReg
		c.regs[src.Var2] = valReg
		c.env = c.env.Put(src.Var2, valType)
	}
	c.block.Emit(instr)
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: bodyLabel})

	if _, err := c.lowerComprehensionSources(sources, idx+1, body); err != nil {
		return ir.NoLabel, err
	}

	c.block.Emit(ir.Instr{Op: ir.OpLoopEnd})
	c.block.Emit(ir.Instr{Op: ir.OpLabel, Label: endLabel})
	return endLabel, nil
}
