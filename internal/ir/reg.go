package ir

// Reg is a register index. Registers are allocated monotonically within a
// CodeBlock and, once allocated, are never reused (§3 "register ...
// allocated monotonically").
type Reg int

// NullReg is the "no result" / "discard the result" sentinel used when an
// expression is evaluated purely for side effects (e.g. a bare-expression
// statement, §4.5).
const NullReg Reg = -1

// Label names a branch target within a CodeBlock.
type Label int

// NoLabel is the zero-value sentinel for an absent optional label operand.
const NoLabel Label = -1
