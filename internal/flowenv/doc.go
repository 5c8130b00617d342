// Package flowenv implements the Resolver's flow-sensitive type Environment:
// an immutable-semantics mapping from variable name to current type, used to
// thread refined types through conditionals (SPEC_FULL.md §Environment
// (flow)). clone/put never mutate the receiver; join computes the per-key
// type union at the merge point of two branches, with a distinguished bottom
// value standing in for an unreachable branch.
package flowenv
