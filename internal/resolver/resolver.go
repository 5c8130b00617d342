package resolver

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/cerrors"
	"github.com/coldfront-lang/corefront/internal/flowenv"
	"github.com/coldfront-lang/corefront/internal/subtype"
	"github.com/coldfront-lang/corefront/internal/types"
)

// ModuleLoader is the external collaborator that answers "what is the
// signature of this top-level function/method" (§4.3/§6 "project/module
// loader for looking up callee signatures and preconditions"). The Resolver
// only needs signatures; preconditions are consulted later, by
// RuntimeAssertions, at code-generation time.
type ModuleLoader interface {
	LookupFunction(name string) (*types.Type, bool)
	LookupMethod(typeName, method string) (*types.Type, bool)
}

// namedHaser is implemented by nominal resolvers (internal/nominal.MemoryResolver
// does) that can answer whether a qualified name was ever declared, so the
// Resolver can raise UnknownName instead of panicking inside Expand.
type namedHaser interface {
	Has(name string) bool
}

// Resolver is the typed AST traversal described in §4.4.
type Resolver struct {
	Types   *types.Table
	Nominal types.NominalExpander
	Sub     *subtype.Engine
	Loader  ModuleLoader
	File    string
}

// New returns a Resolver over the given shared type table, nominal
// expander, subtype engine, and module loader.
func New(table *types.Table, nominal types.NominalExpander, sub *subtype.Engine, loader ModuleLoader, file string) *Resolver {
	return &Resolver{Types: table, Nominal: nominal, Sub: sub, Loader: loader, File: file}
}

func (r *Resolver) fail(kind cerrors.SyntaxErrorKind, pos ast.Position, msg string) error {
	return cerrors.NewSyntaxError(kind, pos, r.File, msg)
}

func (r *Resolver) internal(pos ast.Position, msg string) error {
	return cerrors.NewInternalFailure(pos, r.File, msg)
}

// Resolve types expr bottom-up, rewriting ambiguous nodes to their concrete
// variants in place, and returns the (possibly replaced) node. env supplies
// the current flow-refined type of every in-scope local.
func (r *Resolver) Resolve(expr ast.Expression, env *flowenv.Env) (ast.Expression, error) {
	resolved, _, err := r.resolveExpr(expr, env)
	return resolved, err
}

// ResolveCondition types expr in boolean-condition position, additionally
// computing the env each branch's truth value implies (§4.4 "flow-sensitive
// refinement"). sign is true when the caller wants the refinement implied
// by expr being true.
func (r *Resolver) ResolveCondition(expr ast.Expression, sign bool, env *flowenv.Env) (ast.Expression, *flowenv.Env, error) {
	return r.resolveCondition(expr, sign, env)
}

func boolEnv(sign bool, thenEnv, elseEnv *flowenv.Env) *flowenv.Env {
	if sign {
		return thenEnv
	}
	return elseEnv
}
