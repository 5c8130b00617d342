// Package ir defines the register-based intermediate representation the
// CodeGenerator emits and RuntimeAssertions rewrites: a CodeBlock is a flat,
// appendable sequence of Instr values, each a tagged instruction plus a
// source Position (§3 "IR CodeBlock").
package ir
