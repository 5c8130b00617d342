// Package codegen lowers resolved ast.Declaration trees into the register-
// based internal/ir CodeBlock form (§4.5). It interleaves resolution and
// lowering: each expression is resolved (internal/resolver) against the
// current flowenv.Env immediately before it is emitted, so boolean
// conditions get the same flow-sensitive refinement the Resolver computes
// threaded correctly through if/while/short-circuit control flow. Lambda
// literals are lowered by synthesizing an additional top-level ir.Decl per
// lambda, with captured free variables appended after the lambda's own
// declared parameters (§4.5.2).
package codegen
