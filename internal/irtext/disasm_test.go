package irtext

import (
	"strings"
	"testing"

	"github.com/coldfront-lang/corefront/internal/ir"
	"github.com/coldfront-lang/corefront/internal/types"
)

func sampleDecl() *ir.Decl {
	block := ir.NewCodeBlock()
	x := block.AllocReg(types.Int)
	zero := block.AllocReg(types.Int)
	cond := block.AllocReg(types.Bool)
	thenLabel := block.NewLabel()
	elseLabel := block.NewLabel()

	block.Emit(ir.Instr{Op: ir.OpConst, Target: zero, Type: types.Int, Value: int64(0)})
	block.Emit(ir.Instr{Op: ir.OpIf, A: x, B: zero, Cmp: ir.CmpGt, Label: thenLabel, Label2: elseLabel})
	block.Emit(ir.Instr{Op: ir.OpLabel, Label: thenLabel})
	block.Emit(ir.Instr{Op: ir.OpAssert, A: cond, Msg: "positive"})
	block.Emit(ir.Instr{Op: ir.OpReturn, A: x})
	block.Emit(ir.Instr{Op: ir.OpLabel, Label: elseLabel})
	block.Emit(ir.Instr{Op: ir.OpReturn, A: zero})

	return &ir.Decl{Name: "abs", Params: []ir.Reg{x}, Block: block}
}

func TestRenderIncludesHeaderAndInstructions(t *testing.T) {
	out := Render(sampleDecl())
	if !strings.Contains(out, "== abs ==") {
		t.Fatal("expected a header line naming the declaration")
	}
	if !strings.Contains(out, "Assert") || !strings.Contains(out, "positive") {
		t.Fatal("expected the Assert instruction and its message to be rendered")
	}
	if strings.Count(out, "Return") != 2 {
		t.Fatalf("expected both Return instructions rendered, got:\n%s", out)
	}
}

func TestRenderShowsLabelsAndBranchTargets(t *testing.T) {
	out := Render(sampleDecl())
	if !strings.Contains(out, "-> L0 else L1") {
		t.Fatalf("expected the If instruction to show both branch targets, got:\n%s", out)
	}
	if !strings.Contains(out, "L0:") || !strings.Contains(out, "L1:") {
		t.Fatalf("expected both labels rendered, got:\n%s", out)
	}
}

func TestRenderInvokeShowsCalleeAndArgs(t *testing.T) {
	block := ir.NewCodeBlock()
	arg := block.AllocReg(types.Int)
	result := block.AllocReg(types.Int)
	block.Emit(ir.Instr{Op: ir.OpInvoke, Target: result, Type: types.Int, Name: "double", Operands: []ir.Reg{arg}})
	decl := &ir.Decl{Name: "caller", Block: block}

	out := Render(decl)
	if !strings.Contains(out, "double(r0)") {
		t.Fatalf("expected the invoke line to name the callee and its argument register, got:\n%s", out)
	}
}
