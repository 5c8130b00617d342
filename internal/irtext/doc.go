// Package irtext renders an ir.Decl's CodeBlock as human-readable text, the
// same ambient concern the teacher's internal/bytecode/disasm.go serves for
// its Chunk: a disassembly a developer can read and a test can snapshot.
// Nothing in internal/ir, internal/codegen, or internal/runtimeassert
// depends on this package — it is a pure downstream consumer of the public
// CodeBlock/Decl accessors.
package irtext
