package resolver

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/cerrors"
	"github.com/coldfront-lang/corefront/internal/flowenv"
	"github.com/coldfront-lang/corefront/internal/types"
)

func (r *Resolver) resolveRecordLiteral(e *ast.RecordLiteral, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	fields := make([]types.RecordField, len(e.Fields))
	for i, f := range e.Fields {
		value, vt, err := r.resolveExpr(f.Value, env)
		if err != nil {
			return nil, nil, err
		}
		e.Fields[i].Value = value
		fields[i] = types.RecordField{Name: f.Name, Type: vt}
	}
	t := r.Types.NewRecord(fields, false)
	e.SetResolvedType(t)
	return e, t, nil
}

func (r *Resolver) resolveTupleLiteral(e *ast.TupleLiteral, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	elems := make([]*types.Type, len(e.Elems))
	for i, el := range e.Elems {
		resolved, et, err := r.resolveExpr(el, env)
		if err != nil {
			return nil, nil, err
		}
		e.Elems[i] = resolved
		elems[i] = et
	}
	t := r.Types.NewTuple(elems)
	e.SetResolvedType(t)
	return e, t, nil
}

func (r *Resolver) resolveListLiteral(e *ast.ListLiteral, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	var elemTypes []*types.Type
	for i, el := range e.Elems {
		resolved, et, err := r.resolveExpr(el, env)
		if err != nil {
			return nil, nil, err
		}
		e.Elems[i] = resolved
		elemTypes = append(elemTypes, et)
	}
	elem := types.Any
	if len(elemTypes) > 0 {
		elem = r.Types.NewUnion(elemTypes...)
	}
	t := r.Types.NewList(elem)
	e.SetResolvedType(t)
	return e, t, nil
}

func (r *Resolver) resolveSetLiteral(e *ast.SetLiteral, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	var elemTypes []*types.Type
	for i, el := range e.Elems {
		resolved, et, err := r.resolveExpr(el, env)
		if err != nil {
			return nil, nil, err
		}
		e.Elems[i] = resolved
		elemTypes = append(elemTypes, et)
	}
	elem := types.Any
	if len(elemTypes) > 0 {
		elem = r.Types.NewUnion(elemTypes...)
	}
	t := r.Types.NewSet(elem)
	e.SetResolvedType(t)
	return e, t, nil
}

func (r *Resolver) resolveMapLiteral(e *ast.MapLiteral, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	var keyTypes, valTypes []*types.Type
	for i, entry := range e.Entries {
		k, kt, err := r.resolveExpr(entry.Key, env)
		if err != nil {
			return nil, nil, err
		}
		v, vt, err := r.resolveExpr(entry.Value, env)
		if err != nil {
			return nil, nil, err
		}
		e.Entries[i].Key = k
		e.Entries[i].Value = v
		keyTypes = append(keyTypes, kt)
		valTypes = append(valTypes, vt)
	}
	key, val := types.Any, types.Any
	if len(keyTypes) > 0 {
		key = r.Types.NewUnion(keyTypes...)
		val = r.Types.NewUnion(valTypes...)
	}
	t := r.Types.NewMap(key, val)
	e.SetResolvedType(t)
	return e, t, nil
}

// expandRecord returns t's underlying record type, following a nominal
// wrapper if necessary, or nil if t is not (eventually) a record.
func expandRecord(t *types.Type) *types.Type {
	if t.Kind() == types.KindNominal {
		return expandRecord(t.Expander().Expand(t.Name))
	}
	if t.Kind() == types.KindRecord {
		return t
	}
	return nil
}

func recordFieldType(rec *types.Type, name string) (*types.Type, bool) {
	for i, f := range rec.Fields {
		if f == name {
			return rec.Children()[i], true
		}
	}
	return nil, false
}

func (r *Resolver) resolveFieldAccess(e *ast.FieldAccess, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	src, st, err := r.resolveExpr(e.Source, env)
	if err != nil {
		return nil, nil, err
	}
	e.Source = src

	rec := expandRecord(st)
	if rec == nil {
		return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "field access requires a record-typed source")
	}
	ft, ok := recordFieldType(rec, e.Field)
	if !ok {
		if rec.Open {
			ft = types.Any
		} else {
			return nil, nil, r.fail(cerrors.RecordMissingField, e.Position, "no field named "+e.Field)
		}
	}
	e.SetResolvedType(ft)
	return e, ft, nil
}

func (r *Resolver) resolveIndexOf(e *ast.IndexOf, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	src, st, err := r.resolveExpr(e.Source, env)
	if err != nil {
		return nil, nil, err
	}
	e.Source = src
	idx, it, err := r.resolveExpr(e.Index, env)
	if err != nil {
		return nil, nil, err
	}
	e.Index = idx

	switch {
	case r.isEffectiveString(st):
		if !r.isIntLike(it) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "string index must be int")
		}
		out := &ast.StringAccess{ExprBase: e.ExprBase, Source: e.Source, Index: e.Index}
		out.SetResolvedType(types.Char)
		return out, types.Char, nil

	case r.isEffectiveList(st):
		if !r.isIntLike(it) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "list index must be int")
		}
		elem := r.underlying(st).Elem()
		out := &ast.ListAccess{ExprBase: e.ExprBase, Source: e.Source, Index: e.Index}
		out.SetResolvedType(elem)
		return out, elem, nil

	case r.underlying(st).Kind() == types.KindMap:
		mt := r.underlying(st)
		if !r.Sub.IsSubtype(it, mt.Key()) {
			return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "map key type mismatch")
		}
		val := mt.Value()
		out := &ast.MapAccess{ExprBase: e.ExprBase, Source: e.Source, Key: e.Index}
		out.SetResolvedType(val)
		return out, val, nil
	}
	return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "indexing requires a string, list, or map source")
}

func (r *Resolver) resolveSubRange(e *ast.SubRange, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	src, st, err := r.resolveExpr(e.Source, env)
	if err != nil {
		return nil, nil, err
	}
	e.Source = src
	lo, lt, err := r.resolveExpr(e.Lo, env)
	if err != nil {
		return nil, nil, err
	}
	e.Lo = lo
	hi, ht, err := r.resolveExpr(e.Hi, env)
	if err != nil {
		return nil, nil, err
	}
	e.Hi = hi
	if !r.isIntLike(lt) || !r.isIntLike(ht) {
		return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "subrange bounds must be int")
	}

	switch {
	case r.isEffectiveString(st):
		out := &ast.SubString{ExprBase: e.ExprBase, Source: e.Source, Lo: e.Lo, Hi: e.Hi}
		out.SetResolvedType(types.String)
		return out, types.String, nil
	case r.isEffectiveList(st):
		out := &ast.SubList{ExprBase: e.ExprBase, Source: e.Source, Lo: e.Lo, Hi: e.Hi}
		out.SetResolvedType(st)
		return out, st, nil
	}
	return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "subrange requires a string or list source")
}

func (r *Resolver) resolveLengthOf(e *ast.LengthOf, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	src, st, err := r.resolveExpr(e.Source, env)
	if err != nil {
		return nil, nil, err
	}
	e.Source = src

	switch {
	case r.isEffectiveString(st):
		out := &ast.StringLength{ExprBase: e.ExprBase, Source: e.Source}
		out.SetResolvedType(types.Int)
		return out, types.Int, nil
	case r.isEffectiveList(st):
		out := &ast.ListLength{ExprBase: e.ExprBase, Source: e.Source}
		out.SetResolvedType(types.Int)
		return out, types.Int, nil
	case r.isEffectiveSet(st):
		out := &ast.SetLength{ExprBase: e.ExprBase, Source: e.Source}
		out.SetResolvedType(types.Int)
		return out, types.Int, nil
	case r.underlying(st).Kind() == types.KindMap:
		out := &ast.MapLength{ExprBase: e.ExprBase, Source: e.Source}
		out.SetResolvedType(types.Int)
		return out, types.Int, nil
	}
	return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "# requires a string, list, set, or map source")
}

func (r *Resolver) resolveDereference(e *ast.Dereference, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	src, st, err := r.resolveExpr(e.Source, env)
	if err != nil {
		return nil, nil, err
	}
	e.Source = src
	ust := r.underlying(st)
	if ust.Kind() != types.KindReference {
		return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "dereference requires a reference-typed source")
	}
	elem := ust.Elem()
	e.SetResolvedType(elem)
	return e, elem, nil
}

func (r *Resolver) resolveCast(e *ast.Cast, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	src, _, err := r.resolveExpr(e.Source, env)
	if err != nil {
		return nil, nil, err
	}
	e.Source = src
	target, err := r.ResolveTypeExpr(e.Target)
	if err != nil {
		return nil, nil, err
	}
	e.SetResolvedType(target)
	return e, target, nil
}

func (r *Resolver) resolveNew(e *ast.NewExpr, env *flowenv.Env) (ast.Expression, *types.Type, error) {
	target, err := r.ResolveTypeExpr(e.Target)
	if err != nil {
		return nil, nil, err
	}
	init, it, err := r.resolveExpr(e.Init, env)
	if err != nil {
		return nil, nil, err
	}
	e.Init = init
	if !r.Sub.IsSubtype(it, target) {
		return nil, nil, r.fail(cerrors.IncomparableOperands, e.Position, "new initializer is not a subtype of the target type")
	}
	result := r.Types.NewReference(target)
	e.SetResolvedType(result)
	return e, result, nil
}
