package resolver

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/cerrors"
	"github.com/coldfront-lang/corefront/internal/flowenv"
	"github.com/coldfront-lang/corefront/internal/types"
)

func (r *Resolver) resolveLambda(l *ast.Lambda, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	inner := env
	paramTypes := make([]*types.Type, len(l.Params))
	for i, p := range l.Params {
		pt, err := r.ResolveTypeExpr(p.Type)
		if err != nil {
			return nil, nil, err
		}
		paramTypes[i] = pt
		inner = inner.Put(p.Name, pt)
	}
	body, bt, err := r.resolveExpr(l.Body, inner)
	if err != nil {
		return nil, nil, err
	}
	l.Body = body
	fn := r.Types.NewFunction(bt, types.Void, paramTypes)
	l.SetResolvedType(fn)
	return l, fn, nil
}

// sourceElemType reports the loop-variable binding(s) a comprehension source
// of type st yields: (keyOrElemType, valueType, isMap, ok), with ok false
// when st is not a list, set, or map.
func sourceElemType(r *Resolver, st *types.Type) (*types.Type, *types.Type, bool, bool) {
	ust := r.underlying(st)
	switch {
	case ust.Kind() == types.KindMap:
		return ust.Key(), ust.Value(), true, true
	case ust.Kind() == types.KindList, ust.Kind() == types.KindSet:
		return ust.Elem(), nil, false, true
	}
	return nil, nil, false, false
}

func (r *Resolver) resolveComprehension(c *ast.Comprehension, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	cur := env
	for i, src := range c.Sources {
		resolved, st, err := r.resolveExpr(src.Source, cur)
		if err != nil {
			return nil, nil, err
		}
		c.Sources[i].Source = resolved

		first, second, isMap, ok := sourceElemType(r, st)
		if !ok {
			return nil, nil, r.fail(cerrors.IncomparableOperands, src.Source.Pos(), "comprehension source must be a list, set, or map")
		}
		cur = cur.Put(src.Var, first)
		if isMap && src.Var2 != "" {
			cur = cur.Put(src.Var2, second)
		}
	}

	if c.Cond != nil {
		cond, ct, err := r.resolveExpr(c.Cond, cur)
		if err != nil {
			return nil, nil, err
		}
		c.Cond = cond
		if !r.Sub.IsSubtype(ct, types.Bool) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, c.Cond.Pos(), "comprehension filter must be bool")
		}
	}

	switch c.Kind {
	case ast.CompList, ast.CompSet:
		yield, yt, err := r.resolveExpr(c.Yield, cur)
		if err != nil {
			return nil, nil, err
		}
		c.Yield = yield
		var result *types.Type
		if c.Kind == ast.CompList {
			result = r.Types.NewList(yt)
		} else {
			result = r.Types.NewSet(yt)
		}
		c.SetResolvedType(result)
		return c, result, nil

	case ast.CompSome, ast.CompAll, ast.CompNone:
		if c.Cond == nil {
			return nil, nil, r.internal(c.Position, "quantifier comprehension is missing its predicate")
		}
		c.SetResolvedType(types.Bool)
		return c, types.Bool, nil
	}
	return nil, nil, r.internal(c.Position, "unknown comprehension kind")
}
