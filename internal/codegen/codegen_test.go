package codegen

import (
	"testing"

	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/config"
	"github.com/coldfront-lang/corefront/internal/nominal"
	"github.com/coldfront-lang/corefront/internal/resolver"
	"github.com/coldfront-lang/corefront/internal/subtype"
	"github.com/coldfront-lang/corefront/internal/types"
)

// stubLoader answers no callee signatures; tests that need one register
// their own loader inline.
type stubLoader struct {
	funcs   map[string]*types.Type
	methods map[[2]string]*types.Type
}

func (s *stubLoader) LookupFunction(name string) (*types.Type, bool) {
	if s.funcs == nil {
		return nil, false
	}
	t, ok := s.funcs[name]
	return t, ok
}

func (s *stubLoader) LookupMethod(typeName, method string) (*types.Type, bool) {
	if s.methods == nil {
		return nil, false
	}
	t, ok := s.methods[[2]string{typeName, method}]
	return t, ok
}

// newTestGenerator builds a Generator over a fresh Table/Engine/MemoryResolver,
// the fixture every test in this package shares.
func newTestGenerator(t *testing.T, loader resolver.ModuleLoader) *Generator {
	t.Helper()
	table := types.NewTable()
	nom := nominal.NewMemoryResolver()
	sub := subtype.New()
	if loader == nil {
		loader = &stubLoader{}
	}
	res := resolver.New(table, nom, sub, loader, "test.src")
	return New(table, res, "test.src", config.Default())
}

func namedType(name string) ast.TypeExpr {
	return &ast.NamedTypeExpr{Name: name}
}

func constant(v any) *ast.Constant {
	return &ast.Constant{Value: v}
}

func variable(name string) *ast.Variable {
	return &ast.Variable{Name: name}
}

func binary(op ast.BinaryOp, left, right ast.Expression) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}
}
