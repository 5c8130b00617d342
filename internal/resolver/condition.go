package resolver

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/cerrors"
	"github.com/coldfront-lang/corefront/internal/flowenv"
	"github.com/coldfront-lang/corefront/internal/types"
)

// resolveCondition types expr in boolean-condition position and computes the
// environment implied by expr evaluating to sign (§4.4 flow-sensitive
// refinement). Leaf comparisons carry no refinement information and simply
// type-check against the incoming env.
func (r *Resolver) resolveCondition(expr ast.Expression, sign bool, env *flowenv.Env) (ast.Expression, *flowenv.Env, error) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		if e.Op == ast.OpAnd {
			return r.resolveAndOr(e, true, sign, env)
		}
		if e.Op == ast.OpOr {
			return r.resolveAndOr(e, false, sign, env)
		}
		if e.Op == ast.OpEq || e.Op == ast.OpNeq {
			if refined, newEnv, ok, err := r.resolveNullComparison(e, sign, env); ok || err != nil {
				return refined, newEnv, err
			}
		}

	case *ast.UnaryExpr:
		if e.Op == ast.UnNot {
			operand, newEnv, err := r.resolveCondition(e.Operand, !sign, env)
			if err != nil {
				return nil, nil, err
			}
			e.Operand = operand
			e.SetResolvedType(types.Bool)
			return e, newEnv, nil
		}

	case *ast.IsExpr:
		return r.resolveIsCondition(e, sign, env)
	}

	resolved, t, err := r.resolveExpr(expr, env)
	if err != nil {
		return nil, nil, err
	}
	if !r.Sub.IsSubtype(t, types.Bool) {
		return nil, nil, r.fail(cerrors.InvalidBooleanExpression, expr.Pos(), "condition must be bool")
	}
	return resolved, env, nil
}

// resolveAndOr resolves both sides of a short-circuit operator. isAnd
// distinguishes && from ||; the two are De Morgan duals of one another once
// sign is taken into account: "a && b" is true only when both are true
// (sequential refinement), and false when at least one is false (joined
// refinement); "a || b" is the mirror image.
func (r *Resolver) resolveAndOr(e *ast.BinaryExpr, isAnd, sign bool, env *flowenv.Env) (ast.Expression, *flowenv.Env, error) {
	sequential := isAnd == sign

	if sequential {
		left, leftEnv, err := r.resolveCondition(e.Left, sign, env)
		if err != nil {
			return nil, nil, err
		}
		e.Left = left
		right, rightEnv, err := r.resolveCondition(e.Right, sign, leftEnv)
		if err != nil {
			return nil, nil, err
		}
		e.Right = right
		e.SetResolvedType(types.Bool)
		return e, rightEnv, nil
	}

	left, leftEnv, err := r.resolveCondition(e.Left, sign, env)
	if err != nil {
		return nil, nil, err
	}
	e.Left = left

	// b is only reached when a takes the value that would let evaluation
	// continue past it (true for &&, false for ||, i.e. isAnd itself) — §4.4
	// requires b to be resolved under that refinement of a, not under the
	// env from before a was examined at all.
	_, continueEnv, err := r.resolveCondition(e.Left, isAnd, env)
	if err != nil {
		return nil, nil, err
	}
	right, rightEnv, err := r.resolveCondition(e.Right, sign, continueEnv)
	if err != nil {
		return nil, nil, err
	}
	e.Right = right
	e.SetResolvedType(types.Bool)
	return e, flowenv.Join(leftEnv, rightEnv), nil
}

func (r *Resolver) resolveIsCondition(e *ast.IsExpr, sign bool, env *flowenv.Env) (ast.Expression, *flowenv.Env, error) {
	operand, ot, err := r.resolveExpr(e.Operand, env)
	if err != nil {
		return nil, nil, err
	}
	e.Operand = operand
	target, err := r.ResolveTypeExpr(e.Target)
	if err != nil {
		return nil, nil, err
	}
	e.SetResolvedType(types.Bool)

	v, ok := e.Operand.(*ast.Variable)
	if !ok {
		return e, env, nil
	}
	refined := r.Types.NewIntersection(ot, target)
	if !sign {
		refined = r.Types.NewIntersection(ot, r.Types.NewNegation(target))
	}
	return e, env.Put(v.Name, refined), nil
}

// resolveNullComparison handles `x == null` / `x != null` as sugar for
// `x is null` / `!(x is null)` (§4.4), returning ok=false when expr is not
// of that shape so the caller falls through to plain leaf type-checking.
func (r *Resolver) resolveNullComparison(e *ast.BinaryExpr, sign bool, env *flowenv.Env) (ast.Expression, *flowenv.Env, bool, error) {
	var v *ast.Variable
	var other ast.Expression
	if lv, ok := e.Left.(*ast.Variable); ok {
		v, other = lv, e.Right
	} else if rv, ok := e.Right.(*ast.Variable); ok {
		v, other = rv, e.Left
	} else {
		return nil, nil, false, nil
	}
	c, ok := other.(*ast.Constant)
	if !ok || c.Value != nil {
		return nil, nil, false, nil
	}

	ot, ok := env.Lookup(v.Name)
	if !ok {
		return nil, nil, false, nil
	}
	effectiveSign := sign
	if e.Op == ast.OpNeq {
		effectiveSign = !sign
	}
	refined := r.Types.NewIntersection(ot, types.Null)
	if !effectiveSign {
		refined = r.Types.NewIntersection(ot, r.Types.NewNegation(types.Null))
	}
	e.Left, e.Right = v, c
	v.SetResolvedType(ot)
	c.SetResolvedType(types.Null)
	e.SetResolvedType(types.Bool)
	return e, env.Put(v.Name, refined), true, nil
}
