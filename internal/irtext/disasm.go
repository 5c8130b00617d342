package irtext

import (
	"fmt"
	"io"
	"strings"

	"github.com/coldfront-lang/corefront/internal/ir"
)

// Disassembler renders one ir.Decl's CodeBlock, instruction by instruction,
// the way the teacher's bytecode.Disassembler renders a Chunk.
type Disassembler struct {
	writer io.Writer
	decl   *ir.Decl
}

// NewDisassembler returns a Disassembler writing decl's disassembly to w.
func NewDisassembler(decl *ir.Decl, w io.Writer) *Disassembler {
	return &Disassembler{writer: w, decl: decl}
}

// Disassemble prints a complete disassembly of the declaration.
func (d *Disassembler) Disassemble() {
	block := d.decl.Block
	fmt.Fprintf(d.writer, "== %s ==\n", d.decl.Name)
	fmt.Fprintf(d.writer, "registers: %d, instructions: %d, params: %d\n",
		block.NumRegs(), block.Len(), len(d.decl.Params))
	if d.decl.Precondition != nil {
		fmt.Fprintf(d.writer, "precondition: %d instructions\n", d.decl.Precondition.Len())
	}
	if d.decl.Postcondition != nil {
		fmt.Fprintf(d.writer, "postcondition: %d instructions\n", d.decl.Postcondition.Len())
	}
	fmt.Fprintln(d.writer)

	for offset := 0; offset < block.Len(); offset++ {
		d.DisassembleInstruction(offset)
	}
}

// DisassembleInstruction prints a single instruction at offset.
func (d *Disassembler) DisassembleInstruction(offset int) {
	block := d.decl.Block
	if offset < 0 || offset >= block.Len() {
		fmt.Fprintf(d.writer, "invalid offset: %d\n", offset)
		return
	}
	in := block.At(offset)
	fmt.Fprintf(d.writer, "%04d ", offset)

	switch {
	case d.tryRegOp(in):
	case d.tryControlOp(in):
	case d.tryCallOp(in):
	case d.tryMiscOp(in):
	default:
		fmt.Fprintf(d.writer, "%-14s ?\n", in.Op)
	}
}

// tryRegOp handles the straight-line, register-to-register instruction
// shapes: constants, arithmetic/set/string ops, conversions, and the
// composite-type constructors.
func (d *Disassembler) tryRegOp(in ir.Instr) bool {
	switch in.Op {
	case ir.OpConst:
		fmt.Fprintf(d.writer, "%-14s r%d := %v\n", in.Op, in.Target, in.Value)
	case ir.OpAssign:
		fmt.Fprintf(d.writer, "%-14s r%d := r%d\n", in.Op, in.Target, in.A)
	case ir.OpBinArithOp:
		fmt.Fprintf(d.writer, "%-14s r%d := r%d %s r%d\n", in.Op, in.Target, in.A, in.Arith, in.B)
	case ir.OpBinSetOp:
		fmt.Fprintf(d.writer, "%-14s r%d := r%d %s r%d\n", in.Op, in.Target, in.A, in.SetOp, in.B)
	case ir.OpBinListOp:
		fmt.Fprintf(d.writer, "%-14s r%d := r%d ++ r%d\n", in.Op, in.Target, in.A, in.B)
	case ir.OpBinStringOp:
		fmt.Fprintf(d.writer, "%-14s r%d := r%d %s r%d\n", in.Op, in.Target, in.A, in.String, in.B)
	case ir.OpUnArithOp:
		fmt.Fprintf(d.writer, "%-14s r%d := %s r%d\n", in.Op, in.Target, in.Arith, in.A)
	case ir.OpInvert:
		fmt.Fprintf(d.writer, "%-14s r%d := !r%d\n", in.Op, in.Target, in.A)
	case ir.OpLengthOf:
		fmt.Fprintf(d.writer, "%-14s r%d := len(r%d)\n", in.Op, in.Target, in.A)
	case ir.OpIndexOf:
		fmt.Fprintf(d.writer, "%-14s r%d := r%d[r%d]\n", in.Op, in.Target, in.A, in.B)
	case ir.OpSubList, ir.OpSubString:
		fmt.Fprintf(d.writer, "%-14s r%d := r%d[r%d:r%d]\n", in.Op, in.Target, in.A, in.B, in.C)
	case ir.OpFieldLoad:
		fmt.Fprintf(d.writer, "%-14s r%d := r%d.%s\n", in.Op, in.Target, in.A, in.Name)
	case ir.OpTupleLoad:
		fmt.Fprintf(d.writer, "%-14s r%d := r%d.%d\n", in.Op, in.Target, in.A, in.B)
	case ir.OpNewRecord, ir.OpNewTuple, ir.OpNewList, ir.OpNewSet, ir.OpNewObject:
		fmt.Fprintf(d.writer, "%-14s r%d := %s(%s)\n", in.Op, in.Target, in.Name, regList(in.Operands))
	case ir.OpNewMap:
		fmt.Fprintf(d.writer, "%-14s r%d := map(%s)\n", in.Op, in.Target, regList(in.Operands))
	case ir.OpDereference:
		fmt.Fprintf(d.writer, "%-14s r%d := *r%d\n", in.Op, in.Target, in.A)
	case ir.OpConvert:
		fmt.Fprintf(d.writer, "%-14s r%d := (%s)r%d\n", in.Op, in.Target, in.Type, in.A)
	default:
		return false
	}
	return true
}

// tryControlOp handles branches, labels, and loop/exception brackets.
func (d *Disassembler) tryControlOp(in ir.Instr) bool {
	switch in.Op {
	case ir.OpIf:
		fmt.Fprintf(d.writer, "%-14s r%d %s r%d -> L%d else L%d\n", in.Op, in.A, in.Cmp, in.B, in.Label, in.Label2)
	case ir.OpIfIs:
		fmt.Fprintf(d.writer, "%-14s r%d is %s -> L%d else L%d\n", in.Op, in.A, in.Type, in.Label, in.Label2)
	case ir.OpSwitch:
		fmt.Fprintf(d.writer, "%-14s r%d (%d cases) default L%d\n", in.Op, in.A, len(in.Cases), in.Label)
	case ir.OpGoto:
		fmt.Fprintf(d.writer, "%-14s -> L%d\n", in.Op, in.Label)
	case ir.OpLabel:
		fmt.Fprintf(d.writer, "%-14s L%d:\n", in.Op, in.Label)
	case ir.OpLoop:
		fmt.Fprintf(d.writer, "%-14s body L%d end L%d\n", in.Op, in.Label, in.Label2)
	case ir.OpLoopEnd:
		fmt.Fprintf(d.writer, "%-14s\n", in.Op)
	case ir.OpForAll:
		fmt.Fprintf(d.writer, "%-14s r%d over r%d body L%d end L%d\n", in.Op, in.Target, in.A, in.Label, in.Label2)
	case ir.OpTryCatch:
		fmt.Fprintf(d.writer, "%-14s try L%d catches=%d\n", in.Op, in.Label, len(in.Catches))
	case ir.OpTryEnd:
		fmt.Fprintf(d.writer, "%-14s\n", in.Op)
	default:
		return false
	}
	return true
}

// tryCallOp handles invocation, lambda synthesis, and return.
func (d *Disassembler) tryCallOp(in ir.Instr) bool {
	switch in.Op {
	case ir.OpInvoke, ir.OpIndirectInvoke:
		target := "_"
		if in.Target != ir.NullReg {
			target = fmt.Sprintf("r%d", in.Target)
		}
		fmt.Fprintf(d.writer, "%-14s %s := %s(%s)\n", in.Op, target, calleeLabel(in), regList(in.Operands))
	case ir.OpLambda:
		fmt.Fprintf(d.writer, "%-14s r%d := lambda %s captures(%s)\n", in.Op, in.Target, in.Name, regList(in.Operands))
	case ir.OpReturn:
		if in.A == ir.NullReg {
			fmt.Fprintf(d.writer, "%-14s\n", in.Op)
		} else {
			fmt.Fprintf(d.writer, "%-14s r%d\n", in.Op, in.A)
		}
	default:
		return false
	}
	return true
}

// tryMiscOp handles the remaining standalone opcodes.
func (d *Disassembler) tryMiscOp(in ir.Instr) bool {
	switch in.Op {
	case ir.OpAssert:
		fmt.Fprintf(d.writer, "%-14s r%d \"%s\"\n", in.Op, in.A, in.Msg)
	case ir.OpThrow:
		fmt.Fprintf(d.writer, "%-14s r%d\n", in.Op, in.A)
	case ir.OpDebug:
		fmt.Fprintf(d.writer, "%-14s r%d \"%s\"\n", in.Op, in.A, in.Msg)
	case ir.OpUpdate:
		fmt.Fprintf(d.writer, "%-14s r%d.r%d := r%d\n", in.Op, in.Target, in.B, in.A)
	case ir.OpNop:
		fmt.Fprintf(d.writer, "%-14s\n", in.Op)
	default:
		return false
	}
	return true
}

func calleeLabel(in ir.Instr) string {
	if in.A != ir.NullReg {
		return fmt.Sprintf("r%d.%s", in.A, in.Name)
	}
	return in.Name
}

func regList(regs []ir.Reg) string {
	parts := make([]string, len(regs))
	for i, r := range regs {
		parts[i] = fmt.Sprintf("r%d", r)
	}
	return strings.Join(parts, ", ")
}

// Render returns decl's disassembly as a string, the convenience form
// go-snaps golden tests call directly (mirroring the teacher's
// DisassembleToString).
func Render(decl *ir.Decl) string {
	var sb strings.Builder
	NewDisassembler(decl, &sb).Disassemble()
	return sb.String()
}
