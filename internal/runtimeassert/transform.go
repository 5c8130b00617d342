package runtimeassert

import (
	"github.com/coldfront-lang/corefront/internal/config"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

// CalleeInfo is what a Lookup returns for one callee name: its precondition/
// postcondition blocks (nil if the callee declared none) built by
// internal/codegen.generateContract, plus whether the callee is a method
// (its contract's formal slot 0 is the receiver, bound to the Invoke's A
// operand rather than its first Operands entry).
type CalleeInfo struct {
	Precondition  *ir.CodeBlock
	Postcondition *ir.CodeBlock
	Receiver      bool
}

// CalleeLookup is the project/module loader collaborator (§6) RuntimeAssertions
// consults for a callee's contracts. Unresolvable callees (Lookup returning
// false) are treated as contract-free, not an error — §4.6 only promises
// ResolveError surfaces for callees the Resolver itself could not bind, a
// failure that would already have stopped compilation before this pass runs.
type CalleeLookup interface {
	Lookup(name string) (CalleeInfo, bool)
}

// Transformer splices runtime checks into already-generated IR per §4.6.
type Transformer struct {
	Loader  CalleeLookup
	Options config.Options
}

// New returns a Transformer consulting loader for callee contracts, gated by
// opts.EmitRuntimeAssertions (§4.8).
func New(loader CalleeLookup, opts config.Options) *Transformer {
	return &Transformer{Loader: loader, Options: opts}
}

// Transform rewrites decl.Block in place and returns decl. With
// EmitRuntimeAssertions false it is a passthrough (§4.8).
func (t *Transformer) Transform(decl *ir.Decl) (*ir.Decl, error) {
	if !t.Options.EmitRuntimeAssertions {
		return decl, nil
	}
	block := decl.Block

	var shadow map[ir.Reg]ir.Reg
	var out []ir.Instr
	if decl.Postcondition != nil {
		shadow = make(map[ir.Reg]ir.Reg, len(decl.Params))
		for _, p := range decl.Params {
			s := block.AllocReg(block.RegType(p))
			out = append(out, ir.Instr{Op: ir.OpAssign, Type: block.RegType(p), Target: s, A: p})
			shadow[p] = s
		}
	}

	for _, in := range block.Instrs() {
		switch {
		case in.Op == ir.OpInvoke && t.Loader != nil:
			if info, ok := t.Loader.Lookup(in.Name); ok && info.Precondition != nil {
				out = append(out, cloneContract(block, info.Precondition, calleeBinding(info, in))...)
			}
			out = append(out, in)

		case in.Op == ir.OpIndexOf && isBoundsChecked(block.RegType(in.A)):
			out = append(out, t.boundsCheck(block, in)...)
			out = append(out, in)

		case in.Op == ir.OpBinArithOp && in.Arith == ir.ArithDiv:
			out = append(out, t.divCheck(block, in)...)
			out = append(out, in)

		case in.Op == ir.OpReturn && decl.Postcondition != nil && in.A != ir.NullReg:
			bind := make(map[ir.Reg]ir.Reg, len(decl.Params)+1)
			for _, p := range decl.Params {
				bind[p] = shadow[p]
			}
			bind[ir.Reg(len(decl.Params))] = in.A // generateContract's trailing "result" slot
			out = append(out, cloneContract(block, decl.Postcondition, bind)...)
			out = append(out, in)

		default:
			out = append(out, in)
		}
	}

	block.SetInstrs(out)
	return decl, nil
}

// calleeBinding maps a precondition block's formal-slot registers (0-based,
// self first when Receiver) to the caller's actual operand registers at in,
// the "clone under a binding mapping formal parameter registers to the
// caller's operand registers" rule (§4.6).
func calleeBinding(info CalleeInfo, in ir.Instr) map[ir.Reg]ir.Reg {
	bind := make(map[ir.Reg]ir.Reg, len(in.Operands)+1)
	next := 0
	if info.Receiver {
		bind[ir.Reg(0)] = in.A
		next = 1
	}
	for i, op := range in.Operands {
		bind[ir.Reg(next+i)] = op
	}
	return bind
}

// isBoundsChecked reports whether a source type is list/string-shaped (the
// only IndexOf sources §4.6 bounds-checks; map IndexOf has no notion of a
// valid index range).
func isBoundsChecked(t *types.Type) bool {
	t = underlying(t)
	return t != nil && (t.Kind() == types.KindList || t.Kind() == types.KindString)
}

// underlying strips one or more nominal wrappers to the structural type
// beneath, duplicating internal/resolver's helper of the same purpose in
// miniature: this package deliberately has no dependency on internal/resolver
// (§6 scopes RuntimeAssertions to a pure IR-to-IR rewrite), so it resolves
// just enough of a register's declared type to classify it.
func underlying(t *types.Type) *types.Type {
	for t != nil && t.Kind() == types.KindNominal {
		t = t.Expand()
	}
	return t
}

// boundsCheck emits §4.6's IndexOf bounds-check pair: the index must be
// >= 0 and < the source's length.
func (t *Transformer) boundsCheck(block *ir.CodeBlock, in ir.Instr) []ir.Instr {
	var out []ir.Instr

	zero := block.AllocReg(types.Int)
	out = append(out, ir.Instr{Op: ir.OpConst, Type: types.Int, Pos: in.Pos, Target: zero, Value: int64(0)})
	geZero, code := compareToBool(block, in.B, zero, ir.CmpGte)
	out = append(out, code...)
	out = append(out, ir.Instr{Op: ir.OpAssert, Pos: in.Pos, A: geZero, Msg: "index out of bounds (negative)"})

	length := block.AllocReg(types.Int)
	out = append(out, ir.Instr{Op: ir.OpLengthOf, Type: types.Int, Pos: in.Pos, Target: length, A: in.A})
	ltLen, code2 := compareToBool(block, in.B, length, ir.CmpLt)
	out = append(out, code2...)
	out = append(out, ir.Instr{Op: ir.OpAssert, Pos: in.Pos, A: ltLen, Msg: "not less than length"})

	return out
}

// divCheck emits §4.6's division-by-zero check ahead of a DIV.
func (t *Transformer) divCheck(block *ir.CodeBlock, in ir.Instr) []ir.Instr {
	var out []ir.Instr
	zt := types.Int
	var zv any = int64(0)
	if underlying(block.RegType(in.B)) == types.Real {
		zt, zv = types.Real, float64(0)
	}
	zero := block.AllocReg(zt)
	out = append(out, ir.Instr{Op: ir.OpConst, Type: zt, Pos: in.Pos, Target: zero, Value: zv})
	neqZero, code := compareToBool(block, in.B, zero, ir.CmpNeq)
	out = append(out, code...)
	out = append(out, ir.Instr{Op: ir.OpAssert, Pos: in.Pos, A: neqZero, Msg: "division by zero"})
	return out
}

// compareToBool materializes left `cmp` right into a fresh Bool register via
// the same jump-then-materialize shape internal/codegen/cond.go uses for an
// ordinary comparison expression, since OpAssert's operand is always a
// boolean-valued register, never a bare comparison.
func compareToBool(block *ir.CodeBlock, left, right ir.Reg, cmp ir.Cmp) (ir.Reg, []ir.Instr) {
	trueLabel := block.NewLabel()
	falseLabel := block.NewLabel()
	endLabel := block.NewLabel()
	result := block.AllocReg(types.Bool)

	code := []ir.Instr{
		{Op: ir.OpIf, A: left, B: right, Cmp: cmp, Label: trueLabel, Label2: falseLabel},
		{Op: ir.OpLabel, Label: trueLabel},
		{Op: ir.OpConst, Type: types.Bool, Target: result, Value: true},
		{Op: ir.OpGoto, Label: endLabel},
		{Op: ir.OpLabel, Label: falseLabel},
		{Op: ir.OpConst, Type: types.Bool, Target: result, Value: false},
		{Op: ir.OpLabel, Label: endLabel},
	}
	return result, code
}
