package ir

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/types"
)

// CodeBlock owns one declaration's lowered instruction sequence plus its
// register/label allocation state (§3 "CodeBlocks are built once per
// declaration; register indices within a block are permanent").
type CodeBlock struct {
	instrs    []Instr
	regTypes  []*types.Type
	nextLabel Label
}

// NewCodeBlock returns an empty block ready for Emit/AllocReg calls.
func NewCodeBlock() *CodeBlock {
	return &CodeBlock{}
}

// AllocReg allocates the next register, recording its declared type, and
// returns its index. Registers are never reused once allocated.
func (b *CodeBlock) AllocReg(t *types.Type) Reg {
	b.regTypes = append(b.regTypes, t)
	return Reg(len(b.regTypes) - 1)
}

// RegType returns the declared type of a previously allocated register.
func (b *CodeBlock) RegType(r Reg) *types.Type {
	if r < 0 || int(r) >= len(b.regTypes) {
		return nil
	}
	return b.regTypes[r]
}

// NumRegs reports the register high-water mark (useful for trace logging).
func (b *CodeBlock) NumRegs() int { return len(b.regTypes) }

// NewLabel allocates a fresh label, unattached to any position until a
// matching OpLabel instruction is emitted.
func (b *CodeBlock) NewLabel() Label {
	l := b.nextLabel
	b.nextLabel++
	return l
}

// Emit appends instr to the block and returns its index.
func (b *CodeBlock) Emit(instr Instr) int {
	b.instrs = append(b.instrs, instr)
	return len(b.instrs) - 1
}

// Reserve appends a placeholder Nop and returns its index, to be filled in
// later via ReplaceAt once the real instruction's operands (e.g. a Switch's
// case table, built only after all case bodies are emitted) are known. This
// is the "reserve space at the instruction stream's start ... insert at that
// reserved position" pattern §4.5 calls for with Switch and TryCatch.
func (b *CodeBlock) Reserve(pos ast.Position) int {
	return b.Emit(Instr{Op: OpNop, Pos: pos})
}

// ReplaceAt overwrites the instruction at index i (previously obtained from
// Reserve) with instr.
func (b *CodeBlock) ReplaceAt(i int, instr Instr) {
	b.instrs[i] = instr
}

// Len reports the number of instructions currently in the block.
func (b *CodeBlock) Len() int { return len(b.instrs) }

// At returns the instruction at index i.
func (b *CodeBlock) At(i int) Instr { return b.instrs[i] }

// Instrs returns the block's instructions. Callers must not mutate the
// returned slice's backing array through anything but ReplaceAt/Emit.
func (b *CodeBlock) Instrs() []Instr { return b.instrs }

// SetInstrs replaces the block's entire instruction sequence — used by
// RuntimeAssertions.Transform to install a rewritten sequence built on this
// same block (register/label numbering is preserved since Transform only
// allocates new registers/labels here and prepends check sequences ahead of
// an existing instruction, never renumbers).
func (b *CodeBlock) SetInstrs(instrs []Instr) { b.instrs = instrs }
