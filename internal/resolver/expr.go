package resolver

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/cerrors"
	"github.com/coldfront-lang/corefront/internal/flowenv"
	"github.com/coldfront-lang/corefront/internal/types"
)

// resolveExpr types expr bottom-up, returning the (possibly rewritten) node
// and its resolved type. Every concrete case must call SetResolvedType
// before returning (§8 property 7: resolvedType is always non-nil afterward).
func (r *Resolver) resolveExpr(expr ast.Expression, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	switch e := expr.(type) {
	case *ast.Variable:
		return r.resolveVariable(e, env)
	case *ast.Constant:
		t := constantType(e.Value)
		e.SetResolvedType(t)
		return e, t, nil
	case *ast.UnaryExpr:
		return r.resolveUnary(e, env)
	case *ast.BinaryExpr:
		return r.resolveBinary(e, env)
	case *ast.IsExpr:
		return r.resolveIs(e, env)
	case *ast.TypeValue:
		if _, err := r.ResolveTypeExpr(e.Denoted); err != nil {
			return nil, nil, err
		}
		e.SetResolvedType(types.Meta)
		return e, types.Meta, nil

	case *ast.RecordLiteral:
		return r.resolveRecordLiteral(e, env)
	case *ast.TupleLiteral:
		return r.resolveTupleLiteral(e, env)
	case *ast.ListLiteral:
		return r.resolveListLiteral(e, env)
	case *ast.SetLiteral:
		return r.resolveSetLiteral(e, env)
	case *ast.MapLiteral:
		return r.resolveMapLiteral(e, env)

	case *ast.FieldAccess:
		return r.resolveFieldAccess(e, env)
	case *ast.IndexOf:
		return r.resolveIndexOf(e, env)
	case *ast.SubRange:
		return r.resolveSubRange(e, env)
	case *ast.LengthOf:
		return r.resolveLengthOf(e, env)
	case *ast.Dereference:
		return r.resolveDereference(e, env)
	case *ast.Cast:
		return r.resolveCast(e, env)
	case *ast.NewExpr:
		return r.resolveNew(e, env)

	case *ast.AbstractInvoke:
		return r.resolveAbstractInvoke(e, env)

	case *ast.Lambda:
		return r.resolveLambda(e, env)
	case *ast.Comprehension:
		return r.resolveComprehension(e, env)

	// A split length form is always an Int, whether or not a prior pass
	// typed it.
	case *ast.StringLength, *ast.ListLength, *ast.SetLength, *ast.MapLength:
		expr.SetResolvedType(types.Int)
		return expr, types.Int, nil

	// Other already-disambiguated nodes: a second resolve pass simply keeps
	// the type a prior pass computed.
	case *ast.ListAccess, *ast.StringAccess, *ast.MapAccess,
		*ast.SubList, *ast.SubString,
		*ast.DirectCall, *ast.IndirectCall, *ast.MethodCall,
		*ast.FieldIndirectCall, *ast.MessageSend:
		return expr, expr.ResolvedType(), nil
	}
	return nil, nil, r.internal(expr.Pos(), "unknown Expression kind")
}

func (r *Resolver) resolveVariable(v *ast.Variable, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	if t, ok := env.Lookup(v.Name); ok {
		v.SetResolvedType(t)
		return v, t, nil
	}
	if r.Loader != nil {
		if sig, ok := r.Loader.LookupFunction(v.Name); ok {
			ref := &ast.FunctionRef{ExprBase: ast.ExprBase{Position: v.Position}, Name: v.Name}
			ref.SetResolvedType(sig)
			return ref, sig, nil
		}
	}
	return nil, nil, r.fail(cerrors.UnknownName, v.Position, "unknown name "+v.Name)
}

func constantType(v any) *types.Type {
	switch v.(type) {
	case bool:
		return types.Bool
	case byte:
		return types.Byte
	case int64, int:
		return types.Int
	case float64:
		return types.Real
	case rune:
		return types.Char
	case string:
		return types.String
	case nil:
		return types.Null
	}
	return types.Any
}

// isIntLike reports whether a resolved type is int-compatible, treating char
// (and byte) as promotable to int per §4.4; isRealLike widens this to reals.
func (r *Resolver) isIntLike(t *types.Type) bool {
	return t == types.Int || t == types.Char || t == types.Byte || r.Sub.IsSubtype(t, types.Int)
}

func (r *Resolver) isRealLike(t *types.Type) bool {
	return r.isIntLike(t) || t == types.Real || r.Sub.IsSubtype(t, types.Real)
}

func (r *Resolver) resolveUnary(u *ast.UnaryExpr, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	operand, ot, err := r.resolveExpr(u.Operand, env)
	if err != nil {
		return nil, nil, err
	}
	u.Operand = operand

	var result *types.Type
	switch u.Op {
	case ast.UnNeg:
		if !r.isRealLike(ot) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, u.Position, "unary - requires a numeric operand")
		}
		if r.isIntLike(ot) {
			result = types.Int
		} else {
			result = types.Real
		}
	case ast.UnNot:
		if !r.Sub.IsSubtype(ot, types.Bool) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, u.Position, "not requires a bool operand")
		}
		result = types.Bool
	case ast.UnInvert:
		if !r.isIntLike(ot) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, u.Position, "~ requires an int operand")
		}
		result = types.Int
	default:
		return nil, nil, r.internal(u.Position, "unknown unary operator")
	}
	u.SetResolvedType(result)
	return u, result, nil
}

// underlying strips nominal wrappers so callers can safely inspect a type's
// structural shape (Elem/Key/Value/Fields) without risking a nominal type
// (whose own Children are empty) being mistaken for a leaf composite.
func (r *Resolver) underlying(t *types.Type) *types.Type {
	for t.Kind() == types.KindNominal {
		t = t.Expander().Expand(t.Name)
	}
	return t
}

// Underlying exports underlying for callers outside the package (codegen's
// pattern destructuring needs the same nominal-stripped structural view).
func (r *Resolver) Underlying(t *types.Type) *types.Type {
	return r.underlying(t)
}

func (r *Resolver) isEffectiveSet(t *types.Type) bool {
	return r.underlying(t).Kind() == types.KindSet
}

func (r *Resolver) isEffectiveList(t *types.Type) bool {
	return r.underlying(t).Kind() == types.KindList
}

func (r *Resolver) isEffectiveString(t *types.Type) bool {
	return r.underlying(t) == types.String
}

func (r *Resolver) resolveBinary(b *ast.BinaryExpr, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	left, lt, err := r.resolveExpr(b.Left, env)
	if err != nil {
		return nil, nil, err
	}
	b.Left = left
	right, rt, err := r.resolveExpr(b.Right, env)
	if err != nil {
		return nil, nil, err
	}
	b.Right = right

	var result *types.Type
	switch {
	case b.Op == ast.OpAnd || b.Op == ast.OpOr:
		if !r.Sub.IsSubtype(lt, types.Bool) || !r.Sub.IsSubtype(rt, types.Bool) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, b.Position, "&&/|| require bool operands")
		}
		result = types.Bool

	case b.Op == ast.OpAdd:
		switch {
		case r.isEffectiveString(lt) || r.isEffectiveString(rt):
			result = types.String
		case r.isEffectiveList(lt) && r.isEffectiveList(rt):
			result = r.Types.NewList(r.Types.NewUnion(r.underlying(lt).Elem(), r.underlying(rt).Elem()))
		case r.isEffectiveSet(lt) && r.isEffectiveSet(rt):
			result = r.Types.NewSet(r.Types.NewUnion(r.underlying(lt).Elem(), r.underlying(rt).Elem()))
		case r.isRealLike(lt) && r.isRealLike(rt):
			result = arithResultType(r, lt, rt)
		default:
			return nil, nil, r.fail(cerrors.IncomparableOperands, b.Position, "+ requires numeric, string, list, or set operands")
		}

	case b.Op == ast.OpSub || b.Op == ast.OpMul || b.Op == ast.OpDiv || b.Op == ast.OpMod:
		if !r.isRealLike(lt) || !r.isRealLike(rt) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, b.Position, "arithmetic operator requires numeric operands")
		}
		result = arithResultType(r, lt, rt)

	case b.Op == ast.OpSubset || b.Op == ast.OpSubsetEq || b.Op == ast.OpElementOf:
		if !r.isEffectiveSet(lt) || !r.isEffectiveSet(rt) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, b.Position, "set operator requires set operands")
		}
		result = types.Bool

	default: // comparisons
		if !r.Sub.IsSubtype(lt, rt) && !r.Sub.IsSubtype(rt, lt) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, b.Position, "operands are not comparable")
		}
		result = types.Bool
	}
	b.SetResolvedType(result)
	return b, result, nil
}

func arithResultType(r *Resolver, lt, rt *types.Type) *types.Type {
	if r.isIntLike(lt) && r.isIntLike(rt) {
		return types.Int
	}
	return types.Real
}

func (r *Resolver) resolveIs(e *ast.IsExpr, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	operand, _, err := r.resolveExpr(e.Operand, env)
	if err != nil {
		return nil, nil, err
	}
	e.Operand = operand
	if _, err := r.ResolveTypeExpr(e.Target); err != nil {
		return nil, nil, err
	}
	e.SetResolvedType(types.Bool)
	return e, types.Bool, nil
}
