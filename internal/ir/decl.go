package ir

import "github.com/coldfront-lang/corefront/internal/types"

// Decl is the CodeGenerator's output for one source declaration: a function
// or method, or a lambda synthesized out of one, lowered to a CodeBlock.
// Constant and type-invariant declarations are not lowered to a Decl.
type Decl struct {
	Name   string
	Params []Reg // parameter registers, 0..len(Params)-1 by construction
	Return *types.Type // nil for a void-returning function/method
	Block  *CodeBlock

	// Precondition/Postcondition are set only for function/method decls
	// that declared a contract; RuntimeAssertions clones them at call and
	// return sites (§4.6).
	Precondition  *CodeBlock
	Postcondition *CodeBlock

	// Synthetic marks a declaration CodeGenerator produced itself (a
	// lowered lambda), as opposed to one directly authored by the source.
	Synthetic bool
}
