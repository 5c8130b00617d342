package ir

import (
	"github.com/coldfront-lang/corefront/internal/ast"
	"github.com/coldfront-lang/corefront/internal/types"
)

// CaseEntry is one (constant value, target label) pair of an OpSwitch.
type CaseEntry struct {
	Value any
	Label Label
}

// CatchEntry is one (exception type, handler label) pair of an OpTryCatch.
type CatchEntry struct {
	Type  *types.Type
	Label Label
}

// Instr is a single IR instruction. Not every field is meaningful for every
// Op; operand interpretation is keyed by Op, set by the code that emits
// each instruction, rather than by separate per-Op structs, mirroring how a
// real register machine's encoding reuses one physical layout across many
// opcodes.
type Instr struct {
	Op  Op
	Pos ast.Position

	Type *types.Type

	Target Reg
	A      Reg
	B      Reg
	C      Reg
	Operands []Reg

	Label  Label
	Label2 Label
	Labels []Label

	Cases   []CaseEntry
	Catches []CatchEntry

	Arith  ArithOp
	SetOp  SetOp
	String StringOp
	Cmp    Cmp

	Value any
	Name  string
	Msg   string
}
