package resolver

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/cerrors"
	"github.com/coldfront-lang/corefront/internal/flowenv"
	"github.com/coldfront-lang/corefront/internal/types"
)

// resolveArgs resolves each argument expression in turn, in place.
func (r *Resolver) resolveArgs(args []ast.Expression, env *flowenv.Env) ([]ast.Expression, []*types.Type, error) {
	argTypes := make([]*types.Type, len(args))
	for i, a := range args {
		resolved, at, err := r.resolveExpr(a, env)
		if err != nil {
			return nil, nil, err
		}
		args[i] = resolved
		argTypes[i] = at
	}
	return args, argTypes, nil
}

// checkCall validates argTypes against sig's declared parameter list
// (§4.4 arity/subtype checks preceding a call) and returns sig's Return.
func (r *Resolver) checkCall(sig *types.Type, argTypes []*types.Type, pos ast.Position) (*types.Type, error) {
	params := sig.Params()
	if len(params) != len(argTypes) {
		return nil, r.fail(cerrors.ArityMismatch, pos, "call supplies the wrong number of arguments")
	}
	for i, p := range params {
		if !r.Sub.IsSubtype(argTypes[i], p) {
			return nil, r.fail(cerrors.IncomparableOperands, pos, "argument is not a subtype of the declared parameter type")
		}
	}
	return sig.Return(), nil
}

func (r *Resolver) resolveAbstractInvoke(e *ast.AbstractInvoke, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	args, argTypes, err := r.resolveArgs(e.Args, env)
	if err != nil {
		return nil, nil, err
	}

	switch callee := e.Callee.(type) {
	case *ast.Variable:
		if t, ok := env.Lookup(callee.Name); ok {
			if r.underlying(t).Kind() != types.KindFunction {
				return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, callee.Name+" is not callable")
			}
			ret, err := r.checkCall(r.underlying(t), argTypes, e.Position)
			if err != nil {
				return nil, nil, err
			}
			callee.SetResolvedType(t)
			out := &ast.IndirectCall{ExprBase: e.ExprBase, Callee: callee, Args: args}
			out.SetResolvedType(ret)
			return out, ret, nil
		}
		if r.Loader != nil {
			if sig, ok := r.Loader.LookupFunction(callee.Name); ok {
				ret, err := r.checkCall(sig, argTypes, e.Position)
				if err != nil {
					return nil, nil, err
				}
				ref := &ast.FunctionRef{ExprBase: ast.ExprBase{Position: callee.Position}, Name: callee.Name}
				ref.SetResolvedType(sig)
				out := &ast.DirectCall{ExprBase: e.ExprBase, Callee: ref, Args: args}
				out.SetResolvedType(ret)
				return out, ret, nil
			}
		}
		return nil, nil, r.fail(cerrors.UnknownName, e.Position, "unknown function "+callee.Name)

	case *ast.FieldAccess:
		receiver, rt, err := r.resolveExpr(callee.Source, env)
		if err != nil {
			return nil, nil, err
		}
		callee.Source = receiver

		rec := expandRecord(rt)
		if rt.Kind() == types.KindNominal && r.Loader != nil {
			if sig, ok := r.Loader.LookupMethod(rt.Name, callee.Field); ok {
				ret, err := r.checkCall(sig, argTypes, e.Position)
				if err != nil {
					return nil, nil, err
				}
				method := &ast.MethodRef{ExprBase: ast.ExprBase{Position: callee.Position}, TypeName: rt.Name, Name: callee.Field}
				method.SetResolvedType(sig)
				out := &ast.MethodCall{ExprBase: e.ExprBase, Receiver: receiver, Method: method, Args: args}
				out.SetResolvedType(ret)
				return out, ret, nil
			}
		}
		if rec != nil {
			if ft, ok := recordFieldType(rec, callee.Field); ok && ft.Kind() == types.KindFunction {
				ret, err := r.checkCall(ft, argTypes, e.Position)
				if err != nil {
					return nil, nil, err
				}
				out := &ast.FieldIndirectCall{ExprBase: e.ExprBase, Receiver: receiver, Field: callee.Field, Args: args}
				out.SetResolvedType(ret)
				return out, ret, nil
			}
		}
		// Dynamic fallback: the exact override is chosen at runtime by the
		// receiver's concrete type. No static arity/param check is possible.
		out := &ast.MessageSend{ExprBase: e.ExprBase, Receiver: receiver, Selector: callee.Field, Args: args}
		out.SetResolvedType(types.Any)
		return out, types.Any, nil

	default:
		resolved, ct, err := r.resolveExpr(e.Callee, env)
		if err != nil {
			return nil, nil, err
		}
		uct := r.underlying(ct)
		if uct.Kind() != types.KindFunction {
			return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "callee is not a function value")
		}
		ret, err := r.checkCall(uct, argTypes, e.Position)
		if err != nil {
			return nil, nil, err
		}
		out := &ast.IndirectCall{ExprBase: e.ExprBase, Callee: resolved, Args: args}
		out.SetResolvedType(ret)
		return out, ret, nil
	}
}
