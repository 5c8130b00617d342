package runtimeassert

import (
	"testing"

	"github.com/coldfront-lang/corefront/internal/config"
	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

type fakeLoader map[string]CalleeInfo

func (f fakeLoader) Lookup(name string) (CalleeInfo, bool) {
	info, ok := f[name]
	return info, ok
}

func indexOf(instrs []ir.Instr, op ir.Op) int {
	for i, in := range instrs {
		if in.Op == op {
			return i
		}
	}
	return -1
}

func TestTransformSplicesPreconditionAtInvoke(t *testing.T) {
	block := ir.NewCodeBlock()
	arg := block.AllocReg(types.Int)
	result := block.AllocReg(types.Int)
	block.Emit(ir.Instr{Op: ir.OpInvoke, Target: result, Type: types.Int, Name: "f", Operands: []ir.Reg{arg}})
	decl := &ir.Decl{Name: "caller", Block: block}

	pre := ir.NewCodeBlock()
	p0 := pre.AllocReg(types.Int)
	assertReg := pre.AllocReg(types.Bool)
	zero := pre.AllocReg(types.Int)
	pre.Emit(ir.Instr{Op: ir.OpConst, Target: zero, Type: types.Int, Value: int64(0)})
	pre.Emit(ir.Instr{Op: ir.OpIf, A: p0, B: zero, Cmp: ir.CmpGt, Label: pre.NewLabel(), Label2: pre.NewLabel()})
	pre.Emit(ir.Instr{Op: ir.OpAssert, A: assertReg, Msg: "precondition"})

	loader := fakeLoader{"f": {Precondition: pre}}
	tr := New(loader, config.Options{EmitRuntimeAssertions: true})

	out, err := tr.Transform(decl)
	if err != nil {
		t.Fatal(err)
	}
	instrs := out.Block.Instrs()
	invokeIdx := indexOf(instrs, ir.OpInvoke)
	if invokeIdx <= 0 {
		t.Fatalf("expected Invoke preceded by spliced precondition, invoke at %d", invokeIdx)
	}
	if countOp(instrs, ir.OpAssert) != 1 {
		t.Fatalf("expected exactly one spliced Assert, got %d", countOp(instrs, ir.OpAssert))
	}
}

func TestTransformBoundsChecksListIndexOf(t *testing.T) {
	block := ir.NewCodeBlock()
	tb := types.NewTable()
	lst := tb.NewList(types.Int)
	src := block.AllocReg(lst)
	idx := block.AllocReg(types.Int)
	result := block.AllocReg(types.Int)
	block.Emit(ir.Instr{Op: ir.OpIndexOf, Target: result, Type: types.Int, A: src, B: idx})
	decl := &ir.Decl{Name: "idx", Block: block}

	tr := New(nil, config.Options{EmitRuntimeAssertions: true})
	out, err := tr.Transform(decl)
	if err != nil {
		t.Fatal(err)
	}
	instrs := out.Block.Instrs()
	if countOp(instrs, ir.OpAssert) != 2 {
		t.Fatalf("expected 2 bounds-check Asserts, got %d", countOp(instrs, ir.OpAssert))
	}
	if indexOf(instrs, ir.OpIndexOf) != len(instrs)-1 {
		t.Fatal("expected IndexOf to remain the last instruction, checks spliced ahead of it")
	}
}

func TestTransformSkipsMapIndexOf(t *testing.T) {
	block := ir.NewCodeBlock()
	tb := types.NewTable()
	m := tb.NewMap(types.Int, types.Int)
	src := block.AllocReg(m)
	key := block.AllocReg(types.Int)
	result := block.AllocReg(types.Int)
	block.Emit(ir.Instr{Op: ir.OpIndexOf, Target: result, Type: types.Int, A: src, B: key})
	decl := &ir.Decl{Name: "idx", Block: block}

	tr := New(nil, config.Options{EmitRuntimeAssertions: true})
	out, err := tr.Transform(decl)
	if err != nil {
		t.Fatal(err)
	}
	if countOp(out.Block.Instrs(), ir.OpAssert) != 0 {
		t.Fatal("expected no bounds check for a map IndexOf")
	}
}

func TestTransformDivisionByZeroCheck(t *testing.T) {
	block := ir.NewCodeBlock()
	a := block.AllocReg(types.Int)
	b := block.AllocReg(types.Int)
	result := block.AllocReg(types.Int)
	block.Emit(ir.Instr{Op: ir.OpBinArithOp, Target: result, Type: types.Int, A: a, B: b, Arith: ir.ArithDiv})
	decl := &ir.Decl{Name: "div", Block: block}

	tr := New(nil, config.Options{EmitRuntimeAssertions: true})
	out, err := tr.Transform(decl)
	if err != nil {
		t.Fatal(err)
	}
	instrs := out.Block.Instrs()
	if countOp(instrs, ir.OpAssert) != 1 {
		t.Fatalf("expected one division-by-zero Assert, got %d", countOp(instrs, ir.OpAssert))
	}
	divIdx := indexOf(instrs, ir.OpBinArithOp)
	assertIdx := indexOf(instrs, ir.OpAssert)
	if assertIdx >= divIdx {
		t.Fatal("expected the Assert to precede the DIV")
	}
}

func TestTransformPostconditionAtReturn(t *testing.T) {
	block := ir.NewCodeBlock()
	p0 := block.AllocReg(types.Int)
	retVal := block.AllocReg(types.Int)
	block.Emit(ir.Instr{Op: ir.OpReturn, A: retVal})

	post := ir.NewCodeBlock()
	post.AllocReg(types.Int) // formal slot 0, the shadowed param
	post.AllocReg(types.Int) // trailing result slot
	assertReg := post.AllocReg(types.Bool)
	post.Emit(ir.Instr{Op: ir.OpAssert, A: assertReg, Msg: "postcondition"})

	decl := &ir.Decl{Name: "f", Params: []ir.Reg{p0}, Block: block, Postcondition: post}

	tr := New(nil, config.Options{EmitRuntimeAssertions: true})
	out, err := tr.Transform(decl)
	if err != nil {
		t.Fatal(err)
	}
	instrs := out.Block.Instrs()
	if countOp(instrs, ir.OpAssert) != 1 {
		t.Fatalf("expected one spliced postcondition Assert, got %d", countOp(instrs, ir.OpAssert))
	}
	if countOp(instrs, ir.OpAssign) != 1 {
		t.Fatal("expected one shadow-register prelude assignment for the single parameter")
	}
	returnIdx := indexOf(instrs, ir.OpReturn)
	assertIdx := indexOf(instrs, ir.OpAssert)
	if assertIdx >= returnIdx {
		t.Fatal("expected the postcondition Assert to precede the Return")
	}
	assignIdx := indexOf(instrs, ir.OpAssign)
	if assignIdx >= returnIdx {
		t.Fatal("expected the shadow prelude to precede the Return")
	}
}

func TestTransformPassthroughWhenDisabled(t *testing.T) {
	block := ir.NewCodeBlock()
	a := block.AllocReg(types.Int)
	b := block.AllocReg(types.Int)
	result := block.AllocReg(types.Int)
	block.Emit(ir.Instr{Op: ir.OpBinArithOp, Target: result, Type: types.Int, A: a, B: b, Arith: ir.ArithDiv})
	decl := &ir.Decl{Name: "div", Block: block}

	tr := New(nil, config.Options{EmitRuntimeAssertions: false})
	out, err := tr.Transform(decl)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Block.Instrs()) != 1 {
		t.Fatal("expected Transform to be a no-op passthrough when disabled")
	}
}

func countOp(instrs []ir.Instr, op ir.Op) int {
	n := 0
	for _, in := range instrs {
		if in.Op == op {
			n++
		}
	}
	return n
}
