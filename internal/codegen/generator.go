package codegen

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/cerrors"
	"github.com/coldfront-lang/corefront/internal/clog"
	"github.com/coldfront-lang/corefront/internal/config"
	"github.com/coldfront-lang/corefront/internal/flowenv"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/resolver"
	"github.com/coldfront-lang/corefront/internal/types"
)

// Generator lowers one declaration at a time. A single Generator can be
// reused across every declaration in a compilation unit so its Options/Log
// are shared consistently; it holds no per-declaration state itself (each
// Generate* call builds a fresh funcCtx).
type Generator struct {
	Types    *types.Table
	Resolver *resolver.Resolver
	File     string
	Options  config.Options
	Log      *clog.Logger
}

// New returns a Generator sharing table/resolver with the rest of the
// compilation pipeline, tracing gated by opts.Trace (§1.1, §4.8).
func New(table *types.Table, res *resolver.Resolver, file string, opts config.Options) *Generator {
	return &Generator{Types: table, Resolver: res, File: file, Options: opts, Log: clog.New(opts.Trace)}
}

// funcCtx carries the per-declaration lowering state: the CodeBlock under
// construction, the name -> register binding (which register currently
// holds each in-scope variable's value), the name -> type flow-environment
// the Resolver needs for refinement, and the enclosing loops' break targets.
type funcCtx struct {
	gen         *Generator
	block       *ir.CodeBlock
	regs        map[string]ir.Reg
	env         *flowenv.Env
	breakLabels []ir.Label
	lambdas     []*ir.Decl
	retType     *types.Type
}

func (g *Generator) newFuncCtx() *funcCtx {
	return &funcCtx{
		gen:   g,
		block: ir.NewCodeBlock(),
		regs:  make(map[string]ir.Reg),
		env:   flowenv.New(g.Types),
	}
}

func (c *funcCtx) fail(kind cerrors.SyntaxErrorKind, pos ast.Position, msg string) error {
	return cerrors.NewSyntaxError(kind, pos, c.gen.File, msg)
}

func (c *funcCtx) internal(pos ast.Position, msg string) error {
	return cerrors.NewInternalFailure(pos, c.gen.File, msg)
}

// bindParam allocates a register for a declared parameter, in order, and
// binds both the register and flow-type environments (§4.5 "parameters
// allocated to consecutive registers starting at 0").
func (c *funcCtx) bindParam(name string, t *types.Type) ir.Reg {
	r := c.block.AllocReg(t)
	c.regs[name] = r
	c.env = c.env.Put(name, t)
	return r
}

// resolve types e against the current flow environment and returns the
// (possibly rewritten) node.
func (c *funcCtx) resolve(e ast.Expression) (ast.Expression, error) {
	return c.gen.Resolver.Resolve(e, c.env)
}

// resolveParamTypes resolves a declared parameter list against g's shared
// table into parallel name and type slices; callers bind them to registers
// themselves (the body's funcCtx, and each contract block's own funcCtx).
func (g *Generator) resolveParamTypes(params []*ast.Param) ([]string, []*types.Type, error) {
	names := make([]string, len(params))
	ptypes := make([]*types.Type, len(params))
	for i, p := range params {
		pt, err := g.Resolver.ResolveTypeExpr(p.Type)
		if err != nil {
			return nil, nil, err
		}
		names[i] = p.Name
		ptypes[i] = pt
	}
	return names, ptypes, nil
}

// GenerateFunction lowers a top-level function declaration into an ir.Decl,
// plus one extra ir.Decl per lambda literal synthesized out of its body.
func (g *Generator) GenerateFunction(fd *ast.FunctionDecl) (*ir.Decl, []*ir.Decl, error) {
	names, ptypes, err := g.resolveParamTypes(fd.Params)
	if err != nil {
		return nil, nil, err
	}

	c := g.newFuncCtx()
	params := make([]ir.Reg, len(names))
	for i, n := range names {
		params[i] = c.bindParam(n, ptypes[i])
	}

	retType := types.Void
	if fd.Return != nil {
		retType, err = g.Resolver.ResolveTypeExpr(fd.Return)
		if err != nil {
			return nil, nil, err
		}
	}

	decl := &ir.Decl{Name: fd.Name, Params: params, Return: retType, Block: c.block}
	c.retType = retType

	if fd.Precondition != nil {
		decl.Precondition, err = g.generateContract(fd.Precondition, names, ptypes, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := c.lowerStmts(fd.Body); err != nil {
		return nil, nil, err
	}

	if fd.Postcondition != nil {
		decl.Postcondition, err = g.generateContract(fd.Postcondition, names, ptypes, retType)
		if err != nil {
			return nil, nil, err
		}
	}

	g.Log.Tracef("generated %s: %d registers, %d lambdas", fd.Name, c.block.NumRegs(), len(c.lambdas))
	return decl, c.lambdas, nil
}

// GenerateMethod is GenerateFunction's counterpart for a method declaration;
// the receiver is bound as an implicit first parameter named "self".
func (g *Generator) GenerateMethod(md *ast.MethodDecl) (*ir.Decl, []*ir.Decl, error) {
	pnames, ptypes, err := g.resolveParamTypes(md.Params)
	if err != nil {
		return nil, nil, err
	}
	selfType := g.Types.NewNominal(md.TypeName, g.Resolver.Nominal)
	names := append([]string{"self"}, pnames...)
	allTypes := append([]*types.Type{selfType}, ptypes...)

	c := g.newFuncCtx()
	params := make([]ir.Reg, len(names))
	for i, n := range names {
		params[i] = c.bindParam(n, allTypes[i])
	}

	retType := types.Void
	if md.Return != nil {
		retType, err = g.Resolver.ResolveTypeExpr(md.Return)
		if err != nil {
			return nil, nil, err
		}
	}

	decl := &ir.Decl{Name: md.TypeName + "." + md.Name, Params: params, Return: retType, Block: c.block}
	c.retType = retType

	if md.Precondition != nil {
		decl.Precondition, err = g.generateContract(md.Precondition, names, allTypes, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := c.lowerStmts(md.Body); err != nil {
		return nil, nil, err
	}

	if md.Postcondition != nil {
		decl.Postcondition, err = g.generateContract(md.Postcondition, names, allTypes, retType)
		if err != nil {
			return nil, nil, err
		}
	}

	g.Log.Tracef("generated %s.%s: %d registers, %d lambdas", md.TypeName, md.Name, c.block.NumRegs(), len(c.lambdas))
	return decl, c.lambdas, nil
}

// generateContract lowers a precondition/postcondition's boolean assertions
// into their own small CodeBlock whose registers mirror the enclosing
// declaration's parameter order exactly (plus, for a postcondition, one
// trailing "result" register) — the fixed layout RuntimeAssertions relies
// on when it clones this block under a register-renaming binding at each
// call/return site (§4.6). Generator's job ends at producing the block
// once, in this canonical form.
func (g *Generator) generateContract(cb *ast.ContractBlock, names []string, ptypes []*types.Type, resultType *types.Type) (*ir.CodeBlock, error) {
	c := g.newFuncCtx()
	for i, n := range names {
		c.bindParam(n, ptypes[i])
	}
	if resultType != nil {
		c.bindParam("result", resultType)
	}
	for _, e := range cb.Exprs {
		r, err := c.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		c.block.Emit(ir.Instr{Op: ir.OpAssert, Pos: e.Pos(), A: r})
	}
	return c.block, nil
}
