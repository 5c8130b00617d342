package ir

import (
	"testing"

	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/types"
)

func TestRegisterAllocationIsMonotonic(t *testing.T) {
	b := NewCodeBlock()
	r0 := b.AllocReg(types.Int)
	r1 := b.AllocReg(types.String)
	if r0 != 0 || r1 != 1 {
		t.Fatalf("expected registers 0, 1; got %d, %d", r0, r1)
	}
	if b.RegType(r0) != types.Int || b.RegType(r1) != types.String {
		t.Fatal("RegType must return the type a register was allocated with")
	}
}

func TestLabelsAreDistinct(t *testing.T) {
	b := NewCodeBlock()
	l0 := b.NewLabel()
	l1 := b.NewLabel()
	if l0 == l1 {
		t.Fatal("successive NewLabel calls must return distinct labels")
	}
}

func TestReserveAndReplace(t *testing.T) {
	b := NewCodeBlock()
	idx := b.Reserve(ast.Position{})
	b.Emit(Instr{Op: OpNop})
	if b.At(idx).Op != OpNop {
		t.Fatal("a freshly reserved slot must hold a placeholder Nop")
	}
	b.ReplaceAt(idx, Instr{Op: OpGoto, Label: 7})
	if b.At(idx).Op != OpGoto || b.At(idx).Label != 7 {
		t.Fatal("ReplaceAt must overwrite the reserved slot in place without shifting later instructions")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 instructions, got %d", b.Len())
	}
}

func TestSetInstrsReplacesSequence(t *testing.T) {
	b := NewCodeBlock()
	b.Emit(Instr{Op: OpNop})
	b.SetInstrs([]Instr{{Op: OpGoto, Label: 1}, {Op: OpLabel, Label: 1}})
	if b.Len() != 2 || b.At(0).Op != OpGoto {
		t.Fatal("SetInstrs must install the new sequence wholesale")
	}
}
