package runtimeassert

import "github.com/coldfront-lang/corefront/internal/ir"

// cloneContract copies src's instructions into dst, with bind supplying the
// destination register for each of src's "formal slot" registers (a
// precondition/postcondition block's parameter/result registers, per
// internal/codegen.generateContract's fixed layout) and every other
// register/label src uses freshly allocated on dst. This is how a callee's
// contract block — built once, with its own independent 0-based register
// and label numbering — is spliced into a caller's block without colliding
// with anything already there.
func cloneContract(dst *ir.CodeBlock, src *ir.CodeBlock, bind map[ir.Reg]ir.Reg) []ir.Instr {
	regMap := make(map[ir.Reg]ir.Reg, src.NumRegs())
	for r, d := range bind {
		regMap[r] = d
	}
	for i := 0; i < src.NumRegs(); i++ {
		r := ir.Reg(i)
		if _, ok := regMap[r]; ok {
			continue
		}
		regMap[r] = dst.AllocReg(src.RegType(r))
	}
	remapReg := func(r ir.Reg) ir.Reg {
		if r == ir.NullReg {
			return ir.NullReg
		}
		if nr, ok := regMap[r]; ok {
			return nr
		}
		return r
	}

	labelMap := make(map[ir.Label]ir.Label)
	remapLabel := func(l ir.Label) ir.Label {
		if l == ir.NoLabel {
			return ir.NoLabel
		}
		if nl, ok := labelMap[l]; ok {
			return nl
		}
		nl := dst.NewLabel()
		labelMap[l] = nl
		return nl
	}

	out := make([]ir.Instr, 0, src.Len())
	for i := 0; i < src.Len(); i++ {
		in := src.At(i)
		in.Target = remapReg(in.Target)
		in.A = remapReg(in.A)
		in.B = remapReg(in.B)
		in.C = remapReg(in.C)
		if len(in.Operands) > 0 {
			ops := make([]ir.Reg, len(in.Operands))
			for j, op := range in.Operands {
				ops[j] = remapReg(op)
			}
			in.Operands = ops
		}
		in.Label = remapLabel(in.Label)
		in.Label2 = remapLabel(in.Label2)
		if len(in.Labels) > 0 {
			ls := make([]ir.Label, len(in.Labels))
			for j, l := range in.Labels {
				ls[j] = remapLabel(l)
			}
			in.Labels = ls
		}
		out = append(out, in)
	}
	return out
}
