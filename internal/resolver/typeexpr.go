package resolver

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/cerrors"
	"github.com/coldfront-lang/corefront/internal/types"
)

var primitiveNames = map[string]*types.Type{
	"void":   types.Void,
	"any":    types.Any,
	"null":   types.Null,
	"bool":   types.Bool,
	"byte":   types.Byte,
	"int":    types.Int,
	"real":   types.Real,
	"char":   types.Char,
	"string": types.String,
	"meta":   types.Meta,
}

// ResolveTypeExpr turns a syntactic TypeExpr into a canonical types.Type,
// via the shared interning Table and NominalResolver.
func (r *Resolver) ResolveTypeExpr(te ast.TypeExpr) (*types.Type, error) {
	switch t := te.(type) {
	case *ast.NamedTypeExpr:
		if prim, ok := primitiveNames[t.Name]; ok {
			return prim, nil
		}
		if haser, ok := r.Nominal.(namedHaser); ok && !haser.Has(t.Name) {
			return nil, r.fail(cerrors.UnknownName, t.Pos(), "unknown type name "+t.Name)
		}
		return r.Types.NewNominal(t.Name, r.Nominal), nil

	case *ast.RecordTypeExpr:
		fields := make([]types.RecordField, len(t.Fields))
		for i, f := range t.Fields {
			ft, err := r.ResolveTypeExpr(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = types.RecordField{Name: f.Name, Type: ft}
		}
		return r.Types.NewRecord(fields, t.Open), nil

	case *ast.TupleTypeExpr:
		elems := make([]*types.Type, len(t.Elems))
		for i, e := range t.Elems {
			et, err := r.ResolveTypeExpr(e)
			if err != nil {
				return nil, err
			}
			elems[i] = et
		}
		return r.Types.NewTuple(elems), nil

	case *ast.ListTypeExpr:
		et, err := r.ResolveTypeExpr(t.Elem)
		if err != nil {
			return nil, err
		}
		return r.Types.NewList(et), nil

	case *ast.SetTypeExpr:
		et, err := r.ResolveTypeExpr(t.Elem)
		if err != nil {
			return nil, err
		}
		return r.Types.NewSet(et), nil

	case *ast.MapTypeExpr:
		kt, err := r.ResolveTypeExpr(t.Key)
		if err != nil {
			return nil, err
		}
		vt, err := r.ResolveTypeExpr(t.Value)
		if err != nil {
			return nil, err
		}
		return r.Types.NewMap(kt, vt), nil

	case *ast.ReferenceTypeExpr:
		tt, err := r.ResolveTypeExpr(t.Target)
		if err != nil {
			return nil, err
		}
		return r.Types.NewReference(tt), nil

	case *ast.FunctionTypeExpr:
		ret, err := r.ResolveTypeExpr(t.Return)
		if err != nil {
			return nil, err
		}
		var throws *types.Type
		if t.Throws != nil {
			throws, err = r.ResolveTypeExpr(t.Throws)
			if err != nil {
				return nil, err
			}
		}
		params := make([]*types.Type, len(t.Params))
		for i, p := range t.Params {
			pt, err := r.ResolveTypeExpr(p)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		if t.IsMethod {
			return r.Types.NewMethod(ret, throws, params), nil
		}
		return r.Types.NewFunction(ret, throws, params), nil

	case *ast.UnionTypeExpr:
		members := make([]*types.Type, len(t.Members))
		for i, m := range t.Members {
			mt, err := r.ResolveTypeExpr(m)
			if err != nil {
				return nil, err
			}
			members[i] = mt
		}
		return r.Types.NewUnion(members...), nil

	case *ast.IntersectionTypeExpr:
		members := make([]*types.Type, len(t.Members))
		for i, m := range t.Members {
			mt, err := r.ResolveTypeExpr(m)
			if err != nil {
				return nil, err
			}
			members[i] = mt
		}
		return r.Types.NewIntersection(members...), nil

	case *ast.NegationTypeExpr:
		ot, err := r.ResolveTypeExpr(t.Operand)
		if err != nil {
			return nil, err
		}
		return r.Types.NewNegation(ot), nil
	}
	return nil, r.internal(te.Pos(), "unknown TypeExpr kind")
}
