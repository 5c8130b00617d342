// Package runtimeassert implements the RuntimeAssertions rewriter (§4.6):
// given a fully generated ir.Decl, it rewrites that Decl's CodeBlock in place
// (and returns the same Decl) with runtime checks spliced in ahead of the
// instructions that need them — a callee's precondition at each Invoke, a
// bounds-check pair ahead of each list/string IndexOf, a division-by-zero
// check ahead of each BinArithOp DIV, and the declaration's own
// postcondition ahead of each value-returning Return — without
// renumbering any existing register or label (CodeBlock.SetInstrs's own
// doc comment states this invariant; Transform only ever allocates new
// registers/labels on the same block and prepends instructions using them).
package runtimeassert
