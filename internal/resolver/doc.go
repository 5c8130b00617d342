// Package resolver implements the flow-sensitive type Resolver: a typed,
// bottom-up traversal of ast.Expression trees that assigns each node a
// resolved type, rewrites ambiguous AST shapes into concrete ones in place
// (IndexOf -> ListAccess/StringAccess/MapAccess, abstract invoke ->
// DirectCall/IndirectCall/MethodCall/FieldIndirectCall/MessageSend), and threads a
// flowenv.Env through conditionals to refine variable types across branches
// (§4.4). It consults internal/subtype for every type-compatibility
// decision and internal/nominal (via types.NominalExpander) for nominal
// lookups.
package resolver
