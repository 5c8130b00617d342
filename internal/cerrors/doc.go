// Package cerrors defines the two error kinds the core raises: SyntaxError
// for user-facing language mistakes, and InternalFailure for compiler bugs
// (an unexpected AST/IR kind reaching a dispatch switch's default branch).
// CompilerError formats either with source-line context and an optional
// caret indicator, grounded on the teacher's errors.CompilerError.
package cerrors
